package report

import (
	"github.com/j-veylop/coo-dashboard-tui/internal/logger"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// WorkforceKPOSeries reads the scope-appropriate KPO block for every
// snapshot: total_kpo_* for overall tables, onsite_kpo_* / offshore_kpo_*
// for the location tables. The read is strict: a snapshot without the
// block fails with MissingMetricError.
func WorkforceKPOSeries(snaps []models.QuarterSnapshot, family models.MetricFamily, scope Scope) (KPOSeries, error) {
	key := kpoKey(family, scope)

	series := make(KPOSeries, len(snaps))
	for _, snap := range snaps {
		block, err := requireBlock(snap, key)
		if err != nil {
			return nil, err
		}
		series[snap.Label()] = block.Total
	}
	return series, nil
}

// DemandKPOSeries builds the KPO row values for a fulfillment pivot.
// Onsite tables carry no KPO slice: every quarter reads 0. Overall and
// offshore tables read the kpo_demands block; when a quarter lacks the
// block, the TIME business column of the grid stands in as a documented
// approximation and the fallback is logged.
func DemandKPOSeries(snaps []models.QuarterSnapshot, col DemandColumn, scope Scope, g *Grid) KPOSeries {
	quarters := g.QuarterCols()

	series := make(KPOSeries, len(quarters))
	if scope == ScopeOnsite {
		for _, q := range quarters {
			series[q] = 0
		}
		return series
	}

	inGrid := make(map[string]bool, len(quarters))
	for _, q := range quarters {
		inGrid[q] = true
	}

	for _, snap := range snaps {
		if !snap.HasMetrics() {
			continue
		}
		q := snap.Label()
		if !inGrid[q] {
			continue
		}

		block, ok := snap.Block("kpo_demands")
		if !ok {
			series[q] = g.Value("TIME", q)
			logger.Warn("kpo_demands block missing, using TIME column value",
				"quarter", q, "column", string(col))
			continue
		}

		switch col {
		case DemandFilled:
			series[q] = block.Filled
		case DemandOpen:
			series[q] = block.Open
		case DemandRate:
			series[q] = FulfillmentRate(block.Filled, block.Open)
		default:
			series[q] = block.Total
		}
	}
	return series
}
