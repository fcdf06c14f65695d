package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// FormatCell renders a cell at the grid's precision for display,
// including the '%' suffix on percentage grids.
func (g *Grid) FormatCell(v float64) string {
	s := strconv.FormatFloat(v, 'f', g.Decimals, 64)
	if g.Percent {
		return s + "%"
	}
	return s
}

// WriteCSV writes the grid as CSV: a row-label column, the quarter
// columns in order, then QTD. Cells use the grid's precision; the '%'
// suffix is display-only and never exported.
func (g *Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{g.RowHeader}, g.Cols...)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range g.Rows {
		record := make([]string, 0, len(g.Cols)+1)
		record = append(record, row)
		for _, col := range g.Cols {
			record = append(record, strconv.FormatFloat(g.Value(row, col), 'f', g.Decimals, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrendCSV writes the consolidated fulfillment trends table.
// Counts export at zero decimals, the rate at two.
func WriteTrendCSV(w io.Writer, rows []TrendRow) error {
	cw := csv.NewWriter(w)

	header := []string{"Quarter", "Total", "Filled", "Open", "Cancelled", "Expired", "Fulfillment_Rate"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Quarter,
			strconv.FormatFloat(r.Total, 'f', 0, 64),
			strconv.FormatFloat(r.Filled, 'f', 0, 64),
			strconv.FormatFloat(r.Open, 'f', 0, 64),
			strconv.FormatFloat(r.Cancelled, 'f', 0, 64),
			strconv.FormatFloat(r.Expired, 'f', 0, 64),
			strconv.FormatFloat(r.Rate, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDemandCSV writes the flat per-business fulfillment table.
func WriteDemandCSV(w io.Writer, records []DemandRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"Quarter", "Business", "Total", "Filled", "Open", "Fulfillment_Rate"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		record := []string{
			r.Quarter,
			r.Business,
			strconv.FormatFloat(r.Total, 'f', 0, 64),
			strconv.FormatFloat(r.Filled, 'f', 0, 64),
			strconv.FormatFloat(r.Open, 'f', 0, 64),
			strconv.FormatFloat(r.Rate, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSV writes the HC vs FTE comparison table.
func WriteComparisonCSV(w io.Writer, rows []ComparisonRow) error {
	cw := csv.NewWriter(w)

	header := []string{"Quarter", "Total HC", "Total FTE", "Difference", "% Difference"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Quarter,
			strconv.FormatFloat(r.HC, 'f', 2, 64),
			strconv.FormatFloat(r.FTE, 'f', 2, 64),
			strconv.FormatFloat(r.Diff, 'f', 2, 64),
			strconv.FormatFloat(r.PctDiff, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
