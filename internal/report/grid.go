package report

import (
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

type cellKey struct {
	row string
	col string
}

// Grid is a Business × Quarter pivot table. Rows and columns keep
// first-appearance order; the QTD column, once appended, is always
// rightmost, and the summary rows, once appended, are always last.
type Grid struct {
	Title     string
	RowHeader string
	Rows      []string
	Cols      []string

	// Decimals is the cell precision for display and CSV export.
	Decimals int

	// Percent marks the cells as percentages; the '%' suffix is
	// display-only and never written to CSV.
	Percent bool

	cells      map[cellKey]float64
	hasQTD     bool
	hasSummary bool
	// businessRows counts the genuine business-unit rows, before
	// the summary rows were appended.
	businessRows int
}

// Pivot builds a grid from flat records. Row order is first appearance
// of each business, column order first appearance of each quarter. A
// second record for the same (business, quarter) cell is a
// DuplicateCellError, never a silent overwrite.
func Pivot(records []Record) (*Grid, error) {
	g := &Grid{
		RowHeader: "Business",
		cells:     make(map[cellKey]float64, len(records)),
	}

	seenRows := make(map[string]bool)
	seenCols := make(map[string]bool)

	for _, r := range records {
		key := cellKey{row: r.Business, col: r.Quarter}
		if _, dup := g.cells[key]; dup {
			return nil, &DuplicateCellError{Business: r.Business, Quarter: r.Quarter}
		}
		if !seenRows[r.Business] {
			seenRows[r.Business] = true
			g.Rows = append(g.Rows, r.Business)
		}
		if !seenCols[r.Quarter] {
			seenCols[r.Quarter] = true
			g.Cols = append(g.Cols, r.Quarter)
		}
		g.cells[key] = r.Value
	}

	g.businessRows = len(g.Rows)
	return g, nil
}

// Value returns the cell for (row, col), 0 when absent.
func (g *Grid) Value(row, col string) float64 {
	return g.cells[cellKey{row: row, col: col}]
}

func (g *Grid) set(row, col string, v float64) {
	g.cells[cellKey{row: row, col: col}] = v
}

// QuarterCols returns the quarter columns, excluding QTD.
func (g *Grid) QuarterCols() []string {
	if g.hasQTD {
		return g.Cols[:len(g.Cols)-1]
	}
	return g.Cols
}

// BusinessRows returns the genuine business-unit rows, excluding the
// summary rows.
func (g *Grid) BusinessRows() []string {
	return g.Rows[:g.businessRows]
}

// IsSummaryRow reports whether the label names one of the synthesized
// summary rows of this grid.
func (g *Grid) IsSummaryRow(row string) bool {
	if !g.hasSummary {
		return false
	}
	return row == models.RowVRTU || row == models.RowKPO || row == models.RowVRTUExclKPO
}

// AppendQTD appends the quarter-to-date column: per row, the last
// quarter minus the second-to-last. With fewer than two quarters every
// QTD cell is 0.
func (g *Grid) AppendQTD() {
	if g.hasQTD {
		return
	}

	quarters := g.Cols
	for _, row := range g.Rows {
		var qtd float64
		if len(quarters) >= 2 {
			last := quarters[len(quarters)-1]
			prev := quarters[len(quarters)-2]
			qtd = g.Value(row, last) - g.Value(row, prev)
		}
		g.set(row, models.ColQTD, qtd)
	}

	g.Cols = append(g.Cols, models.ColQTD)
	g.hasQTD = true
}

// KPOSeries holds the per-quarter values feeding a KPO summary row,
// keyed by quarter label. A quarter absent from the series has no KPO
// entry (distinct from an explicit 0).
type KPOSeries map[string]float64

// AppendSummary appends the VRTU, KPO and VRTU Excl KPO rows, in that
// order. The grid must already carry its QTD column.
//
// VRTU is the column-wise sum over the business rows; its QTD cell is
// the sum of the business rows' QTD cells. The KPO row comes from the
// series, not from summing business rows; its QTD is last minus
// second-to-last of its own per-quarter values. VRTU Excl KPO is the
// cell-wise difference, leaving VRTU unchanged for quarters the series
// does not cover.
func (g *Grid) AppendSummary(kpo KPOSeries) {
	if g.hasSummary {
		return
	}

	quarters := g.QuarterCols()
	business := g.BusinessRows()

	for _, col := range g.Cols {
		var sum float64
		for _, row := range business {
			sum += g.Value(row, col)
		}
		g.set(models.RowVRTU, col, sum)
	}

	for _, q := range quarters {
		if v, ok := kpo[q]; ok {
			g.set(models.RowKPO, q, v)
		}
	}
	var kpoQTD float64
	if len(quarters) >= 2 {
		kpoQTD = kpo[quarters[len(quarters)-1]] - kpo[quarters[len(quarters)-2]]
	}
	if g.hasQTD {
		g.set(models.RowKPO, models.ColQTD, kpoQTD)
	}

	for _, col := range g.Cols {
		vrtu := g.Value(models.RowVRTU, col)
		switch {
		case col == models.ColQTD:
			g.set(models.RowVRTUExclKPO, col, vrtu-kpoQTD)
		default:
			if v, ok := kpo[col]; ok {
				g.set(models.RowVRTUExclKPO, col, vrtu-v)
			} else {
				g.set(models.RowVRTUExclKPO, col, vrtu)
			}
		}
	}

	g.Rows = append(g.Rows, models.RowVRTU, models.RowKPO, models.RowVRTUExclKPO)
	g.hasSummary = true
}
