package compare

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/styles"
)

// View renders the compare tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderTitle())

	rows := m.rows()
	if len(rows) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No quarters where both HC and FTE are available."))
	} else {
		sections = append(sections, m.renderTable())
		sections = append(sections, "")
		sections = append(sections, m.renderChart())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("HC vs FTE")
	subtitle := styles.HelpStyle.Render("Per-quarter grand totals · press 'e' to export")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderTable() string {
	rows := m.rows()

	header := []string{"Quarter", "HC", "FTE", "Diff", "Diff %"}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.Quarter,
			fmt.Sprintf("%.2f", r.HC),
			fmt.Sprintf("%.2f", r.FTE),
			fmt.Sprintf("%.2f", r.Diff),
			fmt.Sprintf("%.2f%%", r.PctDiff),
		}
	}

	return components.RenderTable(header, cells)
}

func (m *Model) renderChart() string {
	rows := m.rows()
	if len(rows) < 2 {
		return ""
	}

	hc := make([]float64, len(rows))
	fte := make([]float64, len(rows))
	for i, r := range rows {
		hc[i] = r.HC
		fte[i] = r.FTE
	}

	chartWidth := max(m.width-12, 20)
	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderDualLineChart(hc, fte, chartWidth, 8, ""),
		"",
		components.RenderLegend([]components.LegendItem{
			{Label: "HC", Color: components.ChartHCColor},
			{Label: "FTE", Color: components.ChartFTEColor},
		}),
	)
}
