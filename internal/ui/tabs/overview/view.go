package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderWorkforceCards())

	if m.state.HasFulfillment() {
		sections = append(sections, m.renderFulfillmentCard())
	}

	sections = append(sections, m.renderTrendCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Workforce Overview")

	subtitle := "Waiting for metrics files..."
	if snap, ok := m.selected(models.FamilyHC); ok {
		subtitle = fmt.Sprintf("Quarter: %s", snap.Label())
		if m.offset == 0 {
			subtitle += " (latest)"
		}
		if m.maxOffset() > 0 {
			subtitle += " · ←/→ to change quarter"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

// renderWorkforceCards renders the latest-quarter HC and FTE cards.
func (m *Model) renderWorkforceCards() string {
	var cards []string
	for _, family := range []models.MetricFamily{models.FamilyHC, models.FamilyFTE} {
		cards = append(cards, m.renderFamilyCard(family))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m *Model) renderFamilyCard(family models.MetricFamily) string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render(family.String()))

	if err := m.state.DataError(family); err != nil {
		rows = append(rows, styles.ErrorTextStyle.Render(fmt.Sprintf("Load failed: %v", err)))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	snap, ok := m.selected(family)
	if !ok {
		rows = append(rows, styles.HelpStyle.Render("No quarters loaded"))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	o, err := report.Overview(snap, family)
	if err != nil {
		rows = append(rows, styles.ErrorTextStyle.Render(fmt.Sprintf("Metrics incomplete: %v", err)))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	rows = append(rows, "")
	rows = append(rows, m.metricRow("Total", fmt.Sprintf("%.2f", o.Total)))
	rows = append(rows, m.metricRow("KPO", fmt.Sprintf("%.2f (%.2f%%)", o.KPO, o.KPOPct)))
	rows = append(rows, m.metricRow("Non-KPO", fmt.Sprintf("%.2f (%.2f%%)", o.NonKPO, o.NonKPOPct)))
	rows = append(rows, m.metricRow("Onsite", fmt.Sprintf("%.2f (%.2f%%)", o.Onsite, o.OnsitePct)))
	rows = append(rows, m.metricRow("Offshore", fmt.Sprintf("%.2f (%.2f%%)", o.Offshore, o.OffshorePct)))

	if g := m.growthLine(family); g != "" {
		rows = append(rows, "")
		rows = append(rows, g)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) growthLine(family models.MetricFamily) string {
	r, err := report.Growth(m.state.Snapshots(family), family)
	if err != nil || r == nil {
		return ""
	}

	style := styles.SuccessTextStyle
	arrow := "▲"
	if r.Total.Growth < 0 {
		style = styles.ErrorTextStyle
		arrow = "▼"
	}

	return m.metricRow(
		"Growth",
		style.Render(fmt.Sprintf("%s %.2f%% (%s → %s)", arrow, r.Total.Growth, r.FirstQuarter, r.LastQuarter)),
	)
}

func (m *Model) renderFulfillmentCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Demand Fulfillment"))

	var o *report.DemandOverview
	if snap, ok := m.selected(models.FamilyFulfillment); ok {
		o = report.FulfillmentOverview(snap)
	}
	if o == nil {
		rows = append(rows, styles.HelpStyle.Render("No demand data for this quarter"))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	rows = append(rows, "")
	rows = append(rows, m.metricRow("Quarter", o.Quarter))
	rows = append(rows, m.metricRow("Total Demands", fmt.Sprintf("%.0f", o.Total)))
	rows = append(rows, m.metricRow("Filled", fmt.Sprintf("%.0f", o.Filled)))
	rows = append(rows, m.metricRow("Open", fmt.Sprintf("%.0f", o.Open)))
	rows = append(rows, m.metricRow("Fulfillment", styles.GetRateStyle(o.Rate).Render(fmt.Sprintf("%.2f%%", o.Rate))))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderTrendCard renders the HC vs FTE totals chart across quarters.
func (m *Model) renderTrendCard() string {
	rows := report.CompareHCFTE(
		m.state.Snapshots(models.FamilyHC),
		m.state.Snapshots(models.FamilyFTE),
	)

	var cardRows []string
	cardRows = append(cardRows, styles.CardTitleStyle.Render("HC vs FTE Trend"))

	if len(rows) < 2 {
		cardRows = append(cardRows, styles.HelpStyle.Render("Need at least two quarters for a trend"))
		return styles.CardStyle.Width(m.cardWidth()).Render(
			lipgloss.JoinVertical(lipgloss.Left, cardRows...),
		)
	}

	hc := make([]float64, len(rows))
	fte := make([]float64, len(rows))
	for i, r := range rows {
		hc[i] = r.HC
		fte[i] = r.FTE
	}

	chartWidth := max(m.cardWidth()-10, 20)
	cardRows = append(cardRows, "")
	cardRows = append(cardRows, components.RenderDualLineChart(hc, fte, chartWidth, 8, ""))
	cardRows = append(cardRows, "")
	cardRows = append(cardRows, components.RenderLegend([]components.LegendItem{
		{Label: "HC", Color: components.ChartHCColor},
		{Label: "FTE", Color: components.ChartFTEColor},
	}))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, cardRows...),
	)
}

func (m *Model) metricRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(16).
		Foreground(styles.TextMuted)

	return labelStyle.Render(label+":") + " " + value
}
