package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/config"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
)

const testHCJSON = `[
	{"fiscal_year": "FY26", "quarter": "Q1", "extraction_date": "2026-08-01",
	 "metrics": {"total_billable_hc": {"total": 100, "by_business": {"HIL": 100}}}}
]`

func testManagerConfig(t *testing.T) *config.Config {
	t.Helper()
	dataDir := t.TempDir()

	cfg := &config.Config{
		DatabasePath:    filepath.Join(t.TempDir(), "test.db"),
		HCPath:          filepath.Join(dataDir, "billable_hc_metrics.json"),
		FTEPath:         filepath.Join(dataDir, "billable_fte_metrics.json"),
		FulfillmentPath: filepath.Join(dataDir, "fulfillment_metrics.json"),
		ExportDir:       filepath.Join(t.TempDir(), "exports"),
		ReloadDebounce:  20 * time.Millisecond,
	}

	if err := os.WriteFile(cfg.HCPath, []byte(testHCJSON), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.FTEPath, []byte(testHCJSON), 0600); err != nil {
		t.Fatal(err)
	}

	return cfg
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mgr, err := NewManager(testManagerConfig(t))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })

	return mgr
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t)

	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
	if mgr.QuarterCount(models.FamilyHC) != 1 {
		t.Errorf("Expected 1 HC quarter, got %d", mgr.QuarterCount(models.FamilyHC))
	}
	if mgr.HasFulfillment() {
		t.Error("Expected no fulfillment data")
	}
	if mgr.ExtractionDate(models.FamilyHC) != "2026-08-01" {
		t.Errorf("Unexpected extraction date %q", mgr.ExtractionDate(models.FamilyHC))
	}
}

func TestManager_RecordsInitialLoads(t *testing.T) {
	mgr := newTestManager(t)

	// The initial loads are routed to the activity log asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for {
		loads, _, err := mgr.RecentActivity(10)
		if err != nil {
			t.Fatalf("RecentActivity failed: %v", err)
		}
		if len(loads) >= 2 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected 2 recorded loads, got %d", len(loads))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t)

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	// Check if channel is closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr := newTestManager(t)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := DataChangedEvent{Family: models.FamilyHC, Quarters: 1}
	mgr.broadcast(event)

	deadline := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if e == ServiceEvent(event) {
				return
			}
			// Skip initial load events still in flight
		case <-deadline:
			t.Fatal("Timeout waiting for broadcast")
		}
	}
}

func TestManager_ExportGrid(t *testing.T) {
	mgr := newTestManager(t)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	g, err := report.WorkforceTable(mgr.Snapshots(models.FamilyHC), models.FamilyHC, report.ScopeOverall)
	if err != nil {
		t.Fatalf("WorkforceTable failed: %v", err)
	}

	result, err := mgr.ExportGrid(g)
	if err != nil {
		t.Fatalf("ExportGrid failed: %v", err)
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("Export file missing: %v", err)
	}

	// Export is announced to subscribers
	deadline := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if done, ok := e.(ExportCompletedEvent); ok {
				if done.Path != result.Path {
					t.Errorf("Unexpected path %q", done.Path)
				}
				return
			}
		case <-deadline:
			t.Fatal("Timeout waiting for export event")
		}
	}
}

func TestManager_ReloadBroadcastsChange(t *testing.T) {
	mgr := newTestManager(t)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	mgr.Reload()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-ch:
			if changed, ok := e.(DataChangedEvent); ok && changed.Family == models.FamilyHC && changed.External {
				return
			}
		case <-deadline:
			t.Fatal("Timeout waiting for change event")
		}
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- DataChangedEvent{Family: models.FamilyHC}

	cmd := WaitForEvent(ch)
	if msg := cmd(); msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = DataChangedEvent{}
	var _ ServiceEvent = ExportCompletedEvent{}
	var _ ServiceEvent = ErrorEvent{}
}
