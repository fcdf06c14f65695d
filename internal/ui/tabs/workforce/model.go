// Package workforce provides the headcount and FTE pivot-table tabs.
// The same model serves both; the metric family is fixed at construction.
package workforce

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/coo-dashboard-tui/internal/app"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
)

// scopes is the cycle order for the 's' key.
var scopes = []report.Scope{report.ScopeOverall, report.ScopeOnsite, report.ScopeOffshore}

// keyMap defines the key bindings specific to the workforce tabs.
type keyMap struct {
	CycleScope key.Binding
	Export     key.Binding
	Up         key.Binding
	Down       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		CycleScope: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle scope"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export CSV"),
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

// Model represents one workforce tab (headcount or FTE).
type Model struct {
	state    *app.State
	commands *app.Commands
	family   models.MetricFamily
	scope    int
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates a workforce tab for the given metric family.
func New(state *app.State, commands *app.Commands, family models.MetricFamily) *Model {
	return &Model{
		state:    state,
		commands: commands,
		family:   family,
		spinner:  components.NewSpinner("Loading " + family.String() + " metrics..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Family returns the metric family this tab renders.
func (m *Model) Family() models.MetricFamily {
	return m.family
}

// Scope returns the currently selected scope.
func (m *Model) Scope() report.Scope {
	return scopes[m.scope]
}

// Init initializes the tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the tab.
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
	case key.Matches(msg, m.keys.CycleScope):
		m.scope = (m.scope + 1) % len(scopes)
		m.viewport.GotoTop()
		return nil

	case key.Matches(msg, m.keys.Export):
		return m.exportCmd()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

func (m *Model) exportCmd() tea.Cmd {
	if m.commands == nil {
		return nil
	}
	grid, err := m.table()
	if err != nil {
		return m.commands.NotifyError("Cannot export: " + err.Error())
	}
	return m.commands.ExportGrid(grid)
}

// table builds the pivot grid for the current scope.
func (m *Model) table() (*report.Grid, error) {
	return report.WorkforceTable(m.state.Snapshots(m.family), m.family, m.Scope())
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.CycleScope,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.CycleScope, m.keys.Export},
		{m.keys.Up, m.keys.Down},
	}
}
