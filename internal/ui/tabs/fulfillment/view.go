package fulfillment

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/styles"
)

// View renders the fulfillment tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	if !m.state.HasFulfillment() {
		return m.renderEmpty()
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderTrend())
	sections = append(sections, "")
	sections = append(sections, m.renderBreakdown())
	sections = append(sections, "")
	sections = append(sections, m.renderTable())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderEmpty covers the optional-file case: the tab stays reachable but
// explains that no fulfillment file was found.
func (m *Model) renderEmpty() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.SubTitleStyle.Render("No fulfillment data"),
		styles.HelpStyle.Render("fulfillment_metrics.json was not found next to the HC/FTE files."),
	)
	return styles.CenterBoth(msg, m.width, m.height)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Demand Fulfillment")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"Column: %s · Scope: %s · 'c'/'s' to cycle, 'e' to export", m.Column(), m.Scope(),
	))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderTrend renders the per-quarter totals with a colorized rate column.
func (m *Model) renderTrend() string {
	rows := report.FulfillmentTrend(m.state.Snapshots(models.FamilyFulfillment))
	if len(rows) == 0 {
		return styles.HelpStyle.Render("No quarters with demand metrics.")
	}

	header := []string{"Quarter", "Total", "Filled", "Open", "Cancelled", "Expired", "Rate"}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.Quarter,
			fmt.Sprintf("%.0f", r.Total),
			fmt.Sprintf("%.0f", r.Filled),
			fmt.Sprintf("%.0f", r.Open),
			fmt.Sprintf("%.0f", r.Cancelled),
			fmt.Sprintf("%.0f", r.Expired),
			styles.GetRateStyle(r.Rate).Render(fmt.Sprintf("%.2f%%", r.Rate)),
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render("Quarterly Trend"),
		components.RenderTable(header, cells),
	)
}

// renderBreakdown renders the per-business counts for the latest quarter
// under the current scope.
func (m *Model) renderBreakdown() string {
	records := m.breakdown()
	if len(records) == 0 {
		return styles.HelpStyle.Render("No per-business demand data.")
	}

	// Records span every quarter; the breakdown shows the latest one.
	latest := records[len(records)-1].Quarter
	header := []string{"Business", "Total", "Filled", "Open", "Rate"}
	var cells [][]string
	for _, r := range records {
		if r.Quarter != latest {
			continue
		}
		cells = append(cells, []string{
			r.Business,
			fmt.Sprintf("%.0f", r.Total),
			fmt.Sprintf("%.0f", r.Filled),
			fmt.Sprintf("%.0f", r.Open),
			styles.GetRateStyle(r.Rate).Render(fmt.Sprintf("%.2f%%", r.Rate)),
		})
	}

	title := fmt.Sprintf("By Business Unit · %s (%s)", latest, m.Scope())
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render(title),
		components.RenderTable(header, cells),
	)
}

func (m *Model) renderTable() string {
	grid, err := m.table()
	if err != nil {
		return styles.ErrorTextStyle.Render(fmt.Sprintf("Failed to build table: %v", err))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render(grid.Title),
		components.RenderGrid(grid),
	)
}
