package report

import (
	"fmt"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// WorkforceTable builds the full pivot table for one scope of an HC or
// FTE family: extraction, pivot, QTD column, then the three summary
// rows. Cells carry two decimal places.
func WorkforceTable(snaps []models.QuarterSnapshot, family models.MetricFamily, scope Scope) (*Grid, error) {
	var (
		records []Record
		err     error
	)
	if loc, ok := scope.Location(); ok {
		records, err = LocationBusinessTotals(snaps, family, loc)
	} else {
		records, err = BusinessTotals(snaps, family)
	}
	if err != nil {
		return nil, err
	}

	g, err := Pivot(records)
	if err != nil {
		return nil, err
	}
	g.Title = fmt.Sprintf("%s %s by Business Unit", scope, family)
	g.Decimals = 2
	g.AppendQTD()

	kpo, err := WorkforceKPOSeries(snaps, family, scope)
	if err != nil {
		return nil, err
	}
	g.AppendSummary(kpo)

	return g, nil
}

// DemandTable builds the fulfillment pivot for one demand column and
// scope. Count columns carry zero decimals; the rate column two, marked
// as a percentage.
func DemandTable(snaps []models.QuarterSnapshot, col DemandColumn, scope Scope) (*Grid, error) {
	var records []DemandRecord
	if loc, ok := scope.Location(); ok {
		records = DemandsByLocation(snaps, loc)
	} else {
		records = DemandsByBusiness(snaps)
	}

	flat := make([]Record, len(records))
	for i, r := range records {
		flat[i] = Record{Quarter: r.Quarter, Business: r.Business, Value: col.value(r)}
	}

	g, err := Pivot(flat)
	if err != nil {
		return nil, err
	}
	if col.IsRate() {
		g.Title = fmt.Sprintf("%s Fulfillment Rate by Business", scope)
		g.Decimals = 2
		g.Percent = true
	} else {
		g.Title = fmt.Sprintf("%s %s Demands by Business", scope, col)
		g.Decimals = 0
	}
	g.AppendQTD()
	g.AppendSummary(DemandKPOSeries(snaps, col, scope, g))

	return g, nil
}
