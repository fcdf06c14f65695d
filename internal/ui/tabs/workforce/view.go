package workforce

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/styles"
)

// View renders the workforce tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderTitle())

	if err := m.state.DataError(m.family); err != nil {
		sections = append(sections, m.renderError(err))
	} else {
		sections = append(sections, m.renderTable())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render(m.family.String() + " by Business Unit")
	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("Scope: %s · press 's' to cycle, 'e' to export", m.Scope()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderTable() string {
	snaps := m.state.Snapshots(m.family)
	if len(snaps) == 0 {
		return styles.HelpStyle.Render("No quarters loaded yet.")
	}

	grid, err := m.table()
	if err != nil {
		return m.renderError(err)
	}

	return components.RenderGrid(grid)
}

func (m *Model) renderError(err error) string {
	var missing *report.MissingMetricError
	if errors.As(err, &missing) {
		return styles.ErrorTextStyle.Render(
			fmt.Sprintf("Metrics file is incomplete: %v", missing),
		)
	}
	return styles.ErrorTextStyle.Render(fmt.Sprintf("Failed to load %s data: %v", m.family, err))
}
