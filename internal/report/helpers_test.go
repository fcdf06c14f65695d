package report

import (
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// snapshot builds a quarter snapshot fixture.
func snapshot(fy, q string, metrics map[string]models.MetricBlock) models.QuarterSnapshot {
	return models.QuarterSnapshot{
		FiscalYear:     fy,
		Quarter:        q,
		ExtractionDate: "2026-08-01",
		Metrics:        metrics,
	}
}

// block builds a workforce metric block with a total and optional
// per-business values.
func block(total float64, byBusiness map[string]float64) models.MetricBlock {
	return models.MetricBlock{Total: total, ByBusiness: byBusiness}
}

// hcSnapshot builds an HC snapshot with all nine required blocks, with
// per-business grand totals as given and the rest derived simply.
func hcSnapshot(fy, q string, byBusiness map[string]float64, kpo float64) models.QuarterSnapshot {
	var total float64
	for _, v := range byBusiness {
		total += v
	}
	return snapshot(fy, q, map[string]models.MetricBlock{
		"total_billable_hc":  block(total, byBusiness),
		"total_kpo_hc":       block(kpo, nil),
		"total_non_kpo_hc":   block(total-kpo, nil),
		"total_onsite_hc":    block(total/2, byBusiness),
		"onsite_kpo_hc":      block(kpo/2, nil),
		"onsite_non_kpo_hc":  block((total-kpo)/2, nil),
		"total_offshore_hc":  block(total/2, byBusiness),
		"offshore_kpo_hc":    block(kpo/2, nil),
		"offshore_non_kpo_hc": block((total-kpo)/2, nil),
	})
}
