// Package fulfillment provides the demand-fulfillment tab: the quarter
// trend plus per-business pivot tables for each demand column.
package fulfillment

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/coo-dashboard-tui/internal/app"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
)

var (
	scopes  = []report.Scope{report.ScopeOverall, report.ScopeOnsite, report.ScopeOffshore}
	columns = []report.DemandColumn{report.DemandTotal, report.DemandFilled, report.DemandOpen, report.DemandRate}
)

// keyMap defines the key bindings specific to the fulfillment tab.
type keyMap struct {
	CycleColumn     key.Binding
	CycleScope      key.Binding
	Export          key.Binding
	ExportTrend     key.Binding
	ExportBreakdown key.Binding
	Up              key.Binding
	Down            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		CycleColumn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle column"),
		),
		CycleScope: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle scope"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export table"),
		),
		ExportTrend: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export trend"),
		),
		ExportBreakdown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "export breakdown"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the fulfillment tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	column   int
	scope    int
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new fulfillment model.
func New(state *app.State, commands *app.Commands) *Model {
	return &Model{
		state:    state,
		commands: commands,
		spinner:  components.NewSpinner("Loading demand metrics..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Column returns the currently selected demand column.
func (m *Model) Column() report.DemandColumn {
	return columns[m.column]
}

// Scope returns the currently selected scope.
func (m *Model) Scope() report.Scope {
	return scopes[m.scope]
}

// Init initializes the tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the fulfillment tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.CycleColumn):
		m.column = (m.column + 1) % len(columns)
		m.viewport.GotoTop()
		return nil

	case key.Matches(msg, m.keys.CycleScope):
		m.scope = (m.scope + 1) % len(scopes)
		m.viewport.GotoTop()
		return nil

	case key.Matches(msg, m.keys.Export):
		return m.exportCmd()

	case key.Matches(msg, m.keys.ExportTrend):
		return m.exportTrendCmd()

	case key.Matches(msg, m.keys.ExportBreakdown):
		return m.exportBreakdownCmd()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

func (m *Model) exportCmd() tea.Cmd {
	if m.commands == nil || !m.state.HasFulfillment() {
		return nil
	}
	grid, err := m.table()
	if err != nil {
		return m.commands.NotifyError("Cannot export: " + err.Error())
	}
	return m.commands.ExportGrid(grid)
}

func (m *Model) exportTrendCmd() tea.Cmd {
	if m.commands == nil || !m.state.HasFulfillment() {
		return nil
	}
	rows := report.FulfillmentTrend(m.state.Snapshots(models.FamilyFulfillment))
	if len(rows) == 0 {
		return m.commands.NotifyError("Nothing to export: no quarters with demand metrics")
	}
	return m.commands.ExportTrend(rows)
}

func (m *Model) exportBreakdownCmd() tea.Cmd {
	if m.commands == nil || !m.state.HasFulfillment() {
		return nil
	}
	records := m.breakdown()
	if len(records) == 0 {
		return m.commands.NotifyError("Nothing to export: no per-business demand data")
	}
	name := "demands_" + strings.ToLower(m.Scope().String())
	return m.commands.ExportDemands(name, records)
}

// table builds the demand pivot for the current column and scope.
func (m *Model) table() (*report.Grid, error) {
	snaps := m.state.Snapshots(models.FamilyFulfillment)
	return report.DemandTable(snaps, m.Column(), m.Scope())
}

// breakdown returns the per-business demand records for the current scope.
func (m *Model) breakdown() []report.DemandRecord {
	snaps := m.state.Snapshots(models.FamilyFulfillment)
	if loc, ok := m.Scope().Location(); ok {
		return report.DemandsByLocation(snaps, loc)
	}
	return report.DemandsByBusiness(snaps)
}

// SetSize sets the available size for the fulfillment tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.CycleColumn,
		m.keys.CycleScope,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.CycleColumn, m.keys.CycleScope},
		{m.keys.Export, m.keys.ExportTrend, m.keys.ExportBreakdown},
		{m.keys.Up, m.keys.Down},
	}
}
