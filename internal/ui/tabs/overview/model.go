// Package overview provides the landing tab: headline cards for the
// latest quarter plus the HC/FTE trend chart.
package overview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/coo-dashboard-tui/internal/app"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the overview tab.
type keyMap struct {
	PrevQuarter key.Binding
	NextQuarter key.Binding
	Refresh     key.Binding
	Up          key.Binding
	Down        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevQuarter: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "earlier quarter"),
		),
		NextQuarter: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "later quarter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
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

// Model represents the overview tab state.
type Model struct {
	state *app.State

	// offset counts quarters back from the latest one; 0 is the
	// newest quarter in the headcount series.
	offset int

	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new overview model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading metrics..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the overview tab.
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
	case key.Matches(msg, m.keys.PrevQuarter):
		if m.offset < m.maxOffset() {
			m.offset++
		}
		return nil

	case key.Matches(msg, m.keys.NextQuarter):
		if m.offset > 0 {
			m.offset--
		}
		return nil

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

// maxOffset is bounded by the longest workforce series.
func (m *Model) maxOffset() int {
	n := len(m.state.Snapshots(models.FamilyHC))
	if fte := len(m.state.Snapshots(models.FamilyFTE)); fte > n {
		n = fte
	}
	return max(n-1, 0)
}

// selected returns the quarter the current offset lands on within a
// family's series, counting back from its newest snapshot.
func (m *Model) selected(family models.MetricFamily) (models.QuarterSnapshot, bool) {
	snaps := m.state.Snapshots(family)
	idx := len(snaps) - 1 - m.offset
	if idx < 0 || idx >= len(snaps) {
		return models.QuarterSnapshot{}, false
	}
	return snaps[idx], true
}

// SetSize sets the available size for the overview tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.PrevQuarter,
		m.keys.NextQuarter,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.PrevQuarter, m.keys.NextQuarter},
		{m.keys.Up, m.keys.Down},
		{m.keys.Refresh},
	}
}
