// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/coo-dashboard-tui/internal/config"
	"github.com/j-veylop/coo-dashboard-tui/internal/db"
	"github.com/j-veylop/coo-dashboard-tui/internal/logger"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/services/export"
	"github.com/j-veylop/coo-dashboard-tui/internal/services/snapshots"
)

type (
	// DataChangedEvent is emitted when a family's snapshots load or reload.
	DataChangedEvent struct {
		Family   models.MetricFamily
		Quarters int
		External bool
	}

	// ExportCompletedEvent is emitted when a CSV export finishes.
	ExportCompletedEvent struct {
		Name string
		Path string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DataChangedEvent) isServiceEvent()     {}
func (ExportCompletedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	snapshots   *snapshots.Service
	export      *export.Service
	database    *db.DB
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.snapshots, err = snapshots.New(cfg)
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	m.export, err = export.New(cfg.ExportDir, m.database)
	if err != nil {
		_ = m.snapshots.Close()
		_ = m.database.Close()
		return nil, err
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.snapshots.Events():
			m.handleSnapshotEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleSnapshotEvent logs the load to the activity log and broadcasts
// it. External file changes additionally raise a desktop notification,
// since the user did not trigger them from inside the TUI.
func (m *Manager) handleSnapshotEvent(event snapshots.Event) {
	switch event.Type {
	case snapshots.EventLoaded, snapshots.EventChanged:
		quarters := m.snapshots.QuarterCount(event.Family)
		m.recordLoad(event.Family, quarters, nil)

		external := event.Type == snapshots.EventChanged
		if external {
			title := fmt.Sprintf("%s data updated", event.Family)
			body := fmt.Sprintf("Reloaded %d quarters from disk", quarters)
			_ = beeep.Notify(title, body, "")
		}

		m.broadcast(DataChangedEvent{
			Family:   event.Family,
			Quarters: quarters,
			External: external,
		})

	case snapshots.EventError:
		if event.Family != "" {
			m.recordLoad(event.Family, 0, event.Error)
		}
		m.broadcast(ErrorEvent{
			Service: "snapshots",
			Error:   event.Error,
		})
	}
}

// recordLoad appends one row to the load_events activity log.
func (m *Manager) recordLoad(family models.MetricFamily, quarters int, loadErr error) {
	event := models.LoadEvent{
		Family:         string(family),
		Path:           m.snapshots.Path(family),
		Quarters:       quarters,
		ExtractionDate: m.snapshots.ExtractionDate(family),
	}
	if loadErr != nil {
		event.Error = loadErr.Error()
	}

	if err := m.database.InsertLoadEvent(&event); err != nil {
		logger.Warn("failed to record load event", "family", string(family), "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Snapshots returns a copy of a family's snapshot sequence.
func (m *Manager) Snapshots(family models.MetricFamily) []models.QuarterSnapshot {
	return m.snapshots.Snapshots(family)
}

// DataErr returns the load error recorded for a family, nil when healthy.
func (m *Manager) DataErr(family models.MetricFamily) error {
	return m.snapshots.Err(family)
}

// HasFulfillment reports whether fulfillment data is available.
func (m *Manager) HasFulfillment() bool {
	return m.snapshots.HasFulfillment()
}

// DataPath returns the file path configured for a family.
func (m *Manager) DataPath(family models.MetricFamily) string {
	return m.snapshots.Path(family)
}

// ExtractionDate returns a family's extraction date, empty when unloaded.
func (m *Manager) ExtractionDate(family models.MetricFamily) string {
	return m.snapshots.ExtractionDate(family)
}

// QuarterCount returns the number of snapshots loaded for a family.
func (m *Manager) QuarterCount(family models.MetricFamily) int {
	return m.snapshots.QuarterCount(family)
}

// Reload reloads every metrics file from disk.
func (m *Manager) Reload() {
	m.snapshots.ReloadAll()
}

// ExportGrid exports a pivot grid to CSV and announces the result.
func (m *Manager) ExportGrid(g *report.Grid) (*export.Result, error) {
	return m.finishExport(m.export.Grid(g))
}

// ExportTrend exports the fulfillment trends table to CSV.
func (m *Manager) ExportTrend(rows []report.TrendRow) (*export.Result, error) {
	return m.finishExport(m.export.Trend(rows))
}

// ExportDemands exports a per-business fulfillment table to CSV.
func (m *Manager) ExportDemands(name string, records []report.DemandRecord) (*export.Result, error) {
	return m.finishExport(m.export.Demands(name, records))
}

// ExportComparison exports the HC vs FTE comparison table to CSV.
func (m *Manager) ExportComparison(rows []report.ComparisonRow) (*export.Result, error) {
	return m.finishExport(m.export.Comparison(rows))
}

func (m *Manager) finishExport(result *export.Result, err error) (*export.Result, error) {
	if err != nil {
		m.broadcast(ErrorEvent{Service: "export", Error: err})
		return nil, err
	}

	_ = beeep.Notify("Export complete", result.Path, "")
	m.broadcast(ExportCompletedEvent{Name: result.Name, Path: result.Path})
	return result, nil
}

// ExportDir returns the export directory.
func (m *Manager) ExportDir() string {
	return m.export.Dir()
}

// RecentActivity returns the most recent loads and exports for display.
func (m *Manager) RecentActivity(limit int) ([]models.LoadEvent, []models.ExportEvent, error) {
	loads, err := m.database.GetRecentLoadEvents(limit)
	if err != nil {
		return nil, nil, err
	}
	exports, err := m.database.GetRecentExportEvents(limit)
	if err != nil {
		return nil, nil, err
	}
	return loads, exports, nil
}

// ActivityStats returns aggregated counts over the activity log.
func (m *Manager) ActivityStats() (*models.ActivityStats, error) {
	return m.database.GetActivityStats()
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if m.snapshots != nil {
		if err := m.snapshots.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
