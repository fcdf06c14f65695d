package report

import (
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// WorkforceOverview is the card set for a single HC/FTE quarter: the
// grand total, the KPO/non-KPO split, and the onsite/offshore
// breakdowns with their share percentages.
type WorkforceOverview struct {
	Quarter string
	Family  models.MetricFamily

	Total     float64
	KPO       float64
	NonKPO    float64
	KPOPct    float64
	NonKPOPct float64

	Onsite          float64
	OnsitePct       float64
	OnsiteKPO       float64
	OnsiteKPOPct    float64
	OnsiteNonKPO    float64
	OnsiteNonKPOPct float64

	Offshore          float64
	OffshorePct       float64
	OffshoreKPO       float64
	OffshoreKPOPct    float64
	OffshoreNonKPO    float64
	OffshoreNonKPOPct float64
}

// Overview builds the metric cards for one HC/FTE snapshot. All nine
// blocks are required; location-KPO shares are relative to their
// location total, not the grand total.
func Overview(snap models.QuarterSnapshot, family models.MetricFamily) (*WorkforceOverview, error) {
	read := func(key string, dst *float64, err *error) {
		if *err != nil {
			return
		}
		block, e := requireBlock(snap, key)
		if e != nil {
			*err = e
			return
		}
		*dst = block.Total
	}

	o := &WorkforceOverview{Quarter: snap.Label(), Family: family}

	var err error
	read(totalKey(family), &o.Total, &err)
	read(kpoKey(family, ScopeOverall), &o.KPO, &err)
	read(nonKPOKey(family, ScopeOverall), &o.NonKPO, &err)
	read(locationKey(family, models.LocationOnsite), &o.Onsite, &err)
	read(kpoKey(family, ScopeOnsite), &o.OnsiteKPO, &err)
	read(nonKPOKey(family, ScopeOnsite), &o.OnsiteNonKPO, &err)
	read(locationKey(family, models.LocationOffshore), &o.Offshore, &err)
	read(kpoKey(family, ScopeOffshore), &o.OffshoreKPO, &err)
	read(nonKPOKey(family, ScopeOffshore), &o.OffshoreNonKPO, &err)
	if err != nil {
		return nil, err
	}

	o.KPOPct = Ratio(o.KPO, o.Total)
	o.NonKPOPct = Ratio(o.NonKPO, o.Total)
	o.OnsitePct = Ratio(o.Onsite, o.Total)
	o.OffshorePct = Ratio(o.Offshore, o.Total)
	o.OnsiteKPOPct = Ratio(o.OnsiteKPO, o.Onsite)
	o.OnsiteNonKPOPct = Ratio(o.OnsiteNonKPO, o.Onsite)
	o.OffshoreKPOPct = Ratio(o.OffshoreKPO, o.Offshore)
	o.OffshoreNonKPOPct = Ratio(o.OffshoreNonKPO, o.Offshore)

	return o, nil
}

// DemandOverview is the card set for a single fulfillment quarter.
type DemandOverview struct {
	Quarter     string
	Total       float64
	Filled      float64
	Open        float64
	Cancelled   float64
	Expired     float64
	Rate        float64
	Onsite      float64
	Offshore    float64
	OffshorePct float64
}

// FulfillmentOverview builds the demand cards for one snapshot, nil when
// the snapshot carries no metrics.
func FulfillmentOverview(snap models.QuarterSnapshot) *DemandOverview {
	if !snap.HasMetrics() {
		return nil
	}

	o := &DemandOverview{
		Quarter:   snap.Label(),
		Total:     snap.Metrics["total_demands"].Total,
		Filled:    snap.Metrics["filled_demands"].Total,
		Open:      snap.Metrics["open_demands"].Total,
		Cancelled: snap.Metrics["cancelled_demands"].Total,
		Expired:   snap.Metrics["expired_demands"].Total,
		Rate:      snap.Metrics["fulfillment_rate"].Overall,
		Onsite:    snap.Metrics["onsite_demands"].Total,
		Offshore:  snap.Metrics["offshore_demands"].Total,
	}
	o.OffshorePct = Ratio(o.Offshore, o.Total)
	return o
}

// GrowthMetric pairs a measure's first and last values with the
// percentage change between them.
type GrowthMetric struct {
	First  float64
	Last   float64
	Growth float64
}

func growthMetric(first, last float64) GrowthMetric {
	return GrowthMetric{First: first, Last: last, Growth: GrowthRate(first, last)}
}

// GrowthReport summarizes first-to-last movement for an HC/FTE family.
// Growth is pairwise between the chronologically first and last
// snapshot, never quarter-over-quarter.
type GrowthReport struct {
	Family       models.MetricFamily
	FirstQuarter string
	LastQuarter  string

	Total    GrowthMetric
	KPO      GrowthMetric
	NonKPO   GrowthMetric
	Onsite   GrowthMetric
	Offshore GrowthMetric
}

// Growth computes the first-to-last growth report. Fewer than two
// snapshots produce no report (nil, nil), not a zero report.
func Growth(snaps []models.QuarterSnapshot, family models.MetricFamily) (*GrowthReport, error) {
	if len(snaps) < 2 {
		return nil, nil
	}

	first, last := snaps[0], snaps[len(snaps)-1]

	pair := func(key string, dst *GrowthMetric, err *error) {
		if *err != nil {
			return
		}
		fb, e := requireBlock(first, key)
		if e != nil {
			*err = e
			return
		}
		lb, e := requireBlock(last, key)
		if e != nil {
			*err = e
			return
		}
		*dst = growthMetric(fb.Total, lb.Total)
	}

	r := &GrowthReport{
		Family:       family,
		FirstQuarter: first.Label(),
		LastQuarter:  last.Label(),
	}

	var err error
	pair(totalKey(family), &r.Total, &err)
	pair(kpoKey(family, ScopeOverall), &r.KPO, &err)
	pair(nonKPOKey(family, ScopeOverall), &r.NonKPO, &err)
	pair(locationKey(family, models.LocationOnsite), &r.Onsite, &err)
	pair(locationKey(family, models.LocationOffshore), &r.Offshore, &err)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// ComparisonRow pairs the HC and FTE grand totals for one quarter.
type ComparisonRow struct {
	Quarter string
	HC      float64
	FTE     float64
	Diff    float64
	PctDiff float64
}

// CompareHCFTE pairs the two snapshot sequences positionally and reports
// the per-quarter difference. Pairs where either side lacks metrics are
// skipped; the quarter label comes from the HC side.
func CompareHCFTE(hc, fte []models.QuarterSnapshot) []ComparisonRow {
	n := min(len(hc), len(fte))

	var rows []ComparisonRow
	for i := 0; i < n; i++ {
		if !hc[i].HasMetrics() || !fte[i].HasMetrics() {
			continue
		}
		h := hc[i].Metrics[totalKey(models.FamilyHC)].Total
		f := fte[i].Metrics[totalKey(models.FamilyFTE)].Total
		rows = append(rows, ComparisonRow{
			Quarter: hc[i].Label(),
			HC:      h,
			FTE:     f,
			Diff:    h - f,
			PctDiff: Ratio(h-f, h),
		})
	}
	return rows
}
