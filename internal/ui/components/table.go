package components

import (
	"fmt"
	"strings"

	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/styles"
)

// RenderGrid renders a pivot grid as an aligned text table. The first
// column holds row labels, value columns are right-aligned, and the
// synthesized summary rows are emphasized.
func RenderGrid(g *report.Grid) string {
	labelWidth := len(g.RowHeader)
	for _, row := range g.Rows {
		if len(row) > labelWidth {
			labelWidth = len(row)
		}
	}

	colWidths := make([]int, len(g.Cols))
	for i, col := range g.Cols {
		colWidths[i] = len(col)
		for _, row := range g.Rows {
			if w := len(g.FormatCell(g.Value(row, col))); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var b strings.Builder

	header := fmt.Sprintf("%-*s", labelWidth, g.RowHeader)
	for i, col := range g.Cols {
		header += fmt.Sprintf("  %*s", colWidths[i], col)
	}
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, row := range g.Rows {
		line := fmt.Sprintf("%-*s", labelWidth, row)
		for i, col := range g.Cols {
			line += fmt.Sprintf("  %*s", colWidths[i], g.FormatCell(g.Value(row, col)))
		}
		if g.IsSummaryRow(row) {
			line = styles.SummaryRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderTable renders a plain header-and-rows table with left-aligned
// first column and right-aligned value columns.
func RenderTable(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	format := func(row []string) string {
		var parts []string
		for i := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == 0 {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			} else {
				parts = append(parts, fmt.Sprintf("%*s", widths[i], cell))
			}
		}
		return strings.Join(parts, "  ")
	}

	var b strings.Builder
	b.WriteString(styles.TableHeaderStyle.Render(format(header)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(format(row))
	}
	return b.String()
}
