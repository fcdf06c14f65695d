package info

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/styles"
)

// Version info - can be set at build time
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

func init() {
	if BuildDate == "dev" {
		BuildDate = time.Now().Format("2006-01-02") + "-dev"
	}
}

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderDataCard())
	sections = append(sections, m.renderActivityCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, data files, and recent activity")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	cardWidth := m.width - 6
	if cardWidth < 50 {
		cardWidth = 50
	}
	if cardWidth > 90 {
		cardWidth = 90
	}
	return cardWidth
}

// renderConfigCard renders the configuration paths card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderConfigRow("HC Metrics", m.config.HCPath))
		rows = append(rows, m.renderConfigRow("FTE Metrics", m.config.FTEPath))
		rows = append(rows, m.renderConfigRow("Fulfillment", m.config.FulfillmentPath))
		rows = append(rows, m.renderConfigRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderConfigRow("Export Dir", m.config.ExportDir))
		rows = append(rows, m.renderConfigRow("Reload Debounce", m.config.ReloadDebounce.String()))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDataCard renders per-family load status.
func (m *Model) renderDataCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Data Files"))
	rows = append(rows, "")

	for _, family := range []models.MetricFamily{models.FamilyHC, models.FamilyFTE, models.FamilyFulfillment} {
		rows = append(rows, m.renderFamilyStatus(family))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderFamilyStatus(family models.MetricFamily) string {
	if err := m.state.DataError(family); err != nil {
		return m.renderConfigRow(family.String(), styles.ErrorTextStyle.Render(err.Error()))
	}

	snaps := m.state.Snapshots(family)
	if len(snaps) == 0 {
		if family == models.FamilyFulfillment && !m.state.HasFulfillment() {
			return m.renderConfigRow(family.String(), styles.HelpStyle.Render("not present (optional)"))
		}
		return m.renderConfigRow(family.String(), styles.HelpStyle.Render("no quarters loaded"))
	}

	status := fmt.Sprintf("%d quarters (%s – %s)", len(snaps), snaps[0].Label(), snaps[len(snaps)-1].Label())
	if date := snaps[len(snaps)-1].ExtractionDate; date != "" {
		status += ", extracted " + date
	}
	return m.renderConfigRow(family.String(), styles.SuccessTextStyle.Render(status))
}

// renderActivityCard renders the recent load/export log from the database.
func (m *Model) renderActivityCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent Activity"))
	rows = append(rows, "")

	if m.stats != nil {
		rows = append(rows, m.renderConfigRow("Loads", fmt.Sprintf("%d (%d failed)", m.stats.TotalLoads, m.stats.FailedLoads)))
		rows = append(rows, m.renderConfigRow("Exports", fmt.Sprintf("%d", m.stats.TotalExports)))
		rows = append(rows, "")
	}

	if len(m.loads) == 0 && len(m.exports) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No activity recorded yet"))
	}

	for _, l := range m.loads {
		line := fmt.Sprintf("%s  load   %-11s %d quarters", l.Timestamp.Format("15:04:05"), l.Family, l.Quarters)
		if l.Error != "" {
			line = fmt.Sprintf("%s  load   %-11s %s", l.Timestamp.Format("15:04:05"), l.Family, styles.ErrorTextStyle.Render(l.Error))
		}
		rows = append(rows, styles.HelpStyle.Render(line))
	}
	for _, e := range m.exports {
		rows = append(rows, styles.HelpStyle.Render(
			fmt.Sprintf("%s  export %s (%dx%d)", e.Timestamp.Format("15:04:05"), e.Name, e.Rows, e.Cols),
		))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About COO Dashboard TUI"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", Version))
	rows = append(rows, m.renderConfigRow("Build Date", BuildDate))
	rows = append(rows, m.renderConfigRow("Git Commit", GitCommit))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
