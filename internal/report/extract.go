package report

import (
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// Record is one flat extraction row: a single metric value for one
// business unit in one quarter. Records are the input to pivoting.
type Record struct {
	Quarter  string
	Business string
	Value    float64
}

// requireBlock reads a metric block strictly, per the headcount/FTE policy.
func requireBlock(snap models.QuarterSnapshot, key string) (models.MetricBlock, error) {
	block, ok := snap.Block(key)
	if !ok {
		return models.MetricBlock{}, &MissingMetricError{Quarter: snap.Label(), Key: key}
	}
	return block, nil
}

// BusinessTotals extracts per-business grand totals for an HC or FTE
// family: one record per (quarter, business unit) over the full catalog.
// A unit absent from the by_business map contributes 0. A snapshot
// without the family's total block fails with MissingMetricError.
func BusinessTotals(snaps []models.QuarterSnapshot, family models.MetricFamily) ([]Record, error) {
	return extractTotals(snaps, totalKey(family))
}

// LocationBusinessTotals extracts per-business totals from the
// location-scoped block of an HC or FTE family.
func LocationBusinessTotals(snaps []models.QuarterSnapshot, family models.MetricFamily, loc models.Location) ([]Record, error) {
	return extractTotals(snaps, locationKey(family, loc))
}

func extractTotals(snaps []models.QuarterSnapshot, key string) ([]Record, error) {
	var records []Record
	for _, snap := range snaps {
		block, err := requireBlock(snap, key)
		if err != nil {
			return nil, err
		}
		for _, business := range models.BusinessUnits {
			records = append(records, Record{
				Quarter:  snap.Label(),
				Business: business,
				Value:    block.BusinessValue(business),
			})
		}
	}
	return records, nil
}

// TrendRow is one quarter of consolidated fulfillment metrics.
type TrendRow struct {
	Quarter   string
	Total     float64
	Filled    float64
	Open      float64
	Cancelled float64
	Expired   float64
	Rate      float64
}

// FulfillmentTrend extracts the per-quarter demand totals. Snapshots
// without a metrics object are skipped; missing blocks read as 0
// (the fulfillment path is tolerant, unlike HC/FTE).
func FulfillmentTrend(snaps []models.QuarterSnapshot) []TrendRow {
	var rows []TrendRow
	for _, snap := range snaps {
		if !snap.HasMetrics() {
			continue
		}
		rows = append(rows, TrendRow{
			Quarter:   snap.Label(),
			Total:     snap.Metrics["total_demands"].Total,
			Filled:    snap.Metrics["filled_demands"].Total,
			Open:      snap.Metrics["open_demands"].Total,
			Cancelled: snap.Metrics["cancelled_demands"].Total,
			Expired:   snap.Metrics["expired_demands"].Total,
			Rate:      snap.Metrics["fulfillment_rate"].Overall,
		})
	}
	return rows
}

// DemandRecord is one flat per-business fulfillment row.
type DemandRecord struct {
	Quarter  string
	Business string
	Total    float64
	Filled   float64
	Open     float64
	Rate     float64
}

// DemandsByBusiness extracts per-business demand counts and the
// pre-computed per-business fulfillment rate.
func DemandsByBusiness(snaps []models.QuarterSnapshot) []DemandRecord {
	var records []DemandRecord
	for _, snap := range snaps {
		if !snap.HasMetrics() {
			continue
		}
		for _, business := range models.BusinessUnits {
			records = append(records, DemandRecord{
				Quarter:  snap.Label(),
				Business: business,
				Total:    snap.Metrics["total_demands"].BusinessValue(business),
				Filled:   snap.Metrics["filled_demands"].BusinessValue(business),
				Open:     snap.Metrics["open_demands"].BusinessValue(business),
				Rate:     snap.Metrics["fulfillment_rate"].ByBusiness[business],
			})
		}
	}
	return records
}

// DemandsByLocation extracts per-business demand counts from a location
// block (onsite_demands / offshore_demands). Filled and open come from
// the block's own filled_by_business / open_by_business sub-maps, never
// from prorating the overall counts. The rate is recomputed from the
// location-scoped filled/open pair.
func DemandsByLocation(snaps []models.QuarterSnapshot, loc models.Location) []DemandRecord {
	key := locationKey(models.FamilyFulfillment, loc)

	var records []DemandRecord
	for _, snap := range snaps {
		if !snap.HasMetrics() {
			continue
		}
		block := snap.Metrics[key]
		for _, business := range models.BusinessUnits {
			filled := block.FilledByBusiness[business]
			open := block.OpenByBusiness[business]
			records = append(records, DemandRecord{
				Quarter:  snap.Label(),
				Business: business,
				Total:    block.BusinessValue(business),
				Filled:   filled,
				Open:     open,
				Rate:     FulfillmentRate(filled, open),
			})
		}
	}
	return records
}

// DemandColumn selects which demand measure a fulfillment pivot reports.
type DemandColumn string

const (
	DemandTotal  DemandColumn = "Total"
	DemandFilled DemandColumn = "Filled"
	DemandOpen   DemandColumn = "Open"
	DemandRate   DemandColumn = "Rate"
)

// value returns the record field this column reports.
func (c DemandColumn) value(r DemandRecord) float64 {
	switch c {
	case DemandFilled:
		return r.Filled
	case DemandOpen:
		return r.Open
	case DemandRate:
		return r.Rate
	default:
		return r.Total
	}
}

// IsRate reports whether the column is a percentage.
func (c DemandColumn) IsRate() bool {
	return c == DemandRate
}
