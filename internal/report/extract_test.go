package report

import (
	"errors"
	"testing"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

func TestBusinessTotals(t *testing.T) {
	snaps := []models.QuarterSnapshot{
		snapshot("FY26", "Q1", map[string]models.MetricBlock{
			"total_billable_hc": block(25, map[string]float64{"HIL": 10, "BET NA": 15}),
		}),
	}

	records, err := BusinessTotals(snaps, models.FamilyHC)
	if err != nil {
		t.Fatalf("BusinessTotals failed: %v", err)
	}

	// One record per catalog unit, absent units read 0.
	if len(records) != len(models.BusinessUnits) {
		t.Fatalf("Expected %d records, got %d", len(models.BusinessUnits), len(records))
	}

	byBusiness := make(map[string]float64)
	for _, r := range records {
		if r.Quarter != "FY26 Q1" {
			t.Errorf("Unexpected quarter label %q", r.Quarter)
		}
		byBusiness[r.Business] = r.Value
	}
	if byBusiness["HIL"] != 10 {
		t.Errorf("Expected HIL 10, got %v", byBusiness["HIL"])
	}
	if byBusiness["TIME"] != 0 {
		t.Errorf("Absent business must read 0, got %v", byBusiness["TIME"])
	}
}

func TestBusinessTotals_MissingMetric(t *testing.T) {
	snaps := []models.QuarterSnapshot{
		snapshot("FY26", "Q1", map[string]models.MetricBlock{
			"total_billable_hc": block(10, nil),
		}),
		snapshot("FY26", "Q2", map[string]models.MetricBlock{
			"something_else": block(5, nil),
		}),
	}

	_, err := BusinessTotals(snaps, models.FamilyHC)
	if err == nil {
		t.Fatal("Expected error for missing total block")
	}

	var missing *MissingMetricError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingMetricError, got %T", err)
	}
	if missing.Quarter != "FY26 Q2" || missing.Key != "total_billable_hc" {
		t.Errorf("Unexpected error fields: %+v", missing)
	}
}

func TestLocationBusinessTotals(t *testing.T) {
	snaps := []models.QuarterSnapshot{
		snapshot("FY26", "Q1", map[string]models.MetricBlock{
			"total_offshore_fte": block(8, map[string]float64{"GROWTH MARKETS": 8}),
		}),
	}

	records, err := LocationBusinessTotals(snaps, models.FamilyFTE, models.LocationOffshore)
	if err != nil {
		t.Fatalf("LocationBusinessTotals failed: %v", err)
	}

	for _, r := range records {
		want := 0.0
		if r.Business == "GROWTH MARKETS" {
			want = 8
		}
		if r.Value != want {
			t.Errorf("Business %s: expected %v, got %v", r.Business, want, r.Value)
		}
	}
}

func TestFulfillmentTrend(t *testing.T) {
	snaps := []models.QuarterSnapshot{
		snapshot("FY26", "Q1", map[string]models.MetricBlock{
			"total_demands":    block(100, nil),
			"filled_demands":   block(80, nil),
			"open_demands":     block(20, nil),
			"fulfillment_rate": {Overall: 80},
		}),
		snapshot("FY26", "Q2", nil), // no metrics: skipped, not an error
	}

	rows := FulfillmentTrend(snaps)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Total != 100 || rows[0].Filled != 80 || rows[0].Rate != 80 {
		t.Errorf("Unexpected trend row: %+v", rows[0])
	}

	// Missing blocks on the fulfillment path read 0.
	if rows[0].Cancelled != 0 || rows[0].Expired != 0 {
		t.Errorf("Expected zero cancelled/expired, got %+v", rows[0])
	}
}

func TestDemandsByBusiness(t *testing.T) {
	snaps := []models.QuarterSnapshot{
		snapshot("FY26", "Q1", map[string]models.MetricBlock{
			"total_demands":  block(0, map[string]float64{"HIL": 12}),
			"filled_demands": block(0, map[string]float64{"HIL": 9}),
			"open_demands":   block(0, map[string]float64{"HIL": 3}),
			"fulfillment_rate": {
				Overall:    75,
				ByBusiness: map[string]float64{"HIL": 75},
			},
		}),
	}

	records := DemandsByBusiness(snaps)
	if len(records) != len(models.BusinessUnits) {
		t.Fatalf("Expected %d records, got %d", len(models.BusinessUnits), len(records))
	}

	for _, r := range records {
		if r.Business == "HIL" {
			if r.Total != 12 || r.Filled != 9 || r.Open != 3 || r.Rate != 75 {
				t.Errorf("Unexpected HIL record: %+v", r)
			}
		} else if r.Total != 0 || r.Rate != 0 {
			t.Errorf("Expected zero record for %s: %+v", r.Business, r)
		}
	}
}

func TestDemandsByLocation(t *testing.T) {
	snaps := []models.QuarterSnapshot{
		snapshot("FY26", "Q1", map[string]models.MetricBlock{
			"onsite_demands": {
				Total:            10,
				ByBusiness:       map[string]float64{"TIME": 10},
				FilledByBusiness: map[string]float64{"TIME": 6},
				OpenByBusiness:   map[string]float64{"TIME": 2},
			},
		}),
	}

	records := DemandsByLocation(snaps, models.LocationOnsite)

	for _, r := range records {
		if r.Business != "TIME" {
			continue
		}
		// Filled/open come from the location block's own sub-maps, and
		// the rate is recomputed from that pair.
		if r.Total != 10 || r.Filled != 6 || r.Open != 2 {
			t.Errorf("Unexpected TIME record: %+v", r)
		}
		if r.Rate != 75 {
			t.Errorf("Expected rate 75, got %v", r.Rate)
		}
	}
}

func TestDemandColumnValue(t *testing.T) {
	r := DemandRecord{Total: 4, Filled: 3, Open: 1, Rate: 75}

	if DemandTotal.value(r) != 4 || DemandFilled.value(r) != 3 || DemandOpen.value(r) != 1 || DemandRate.value(r) != 75 {
		t.Error("Column selectors returned wrong fields")
	}
	if !DemandRate.IsRate() || DemandTotal.IsRate() {
		t.Error("IsRate misclassified a column")
	}
}
