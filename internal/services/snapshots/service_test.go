package snapshots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/config"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

const hcJSON = `[
	{
		"fiscal_year": "FY26",
		"quarter": "Q1",
		"extraction_date": "2026-08-01",
		"metrics": {
			"total_billable_hc": {"total": 100, "by_business": {"HIL": 100}}
		}
	},
	{
		"fiscal_year": "FY26",
		"quarter": "Q2",
		"extraction_date": "2026-08-01",
		"metrics": {
			"total_billable_hc": {"total": 120, "by_business": {"HIL": 120}}
		}
	}
]`

const fteJSON = `[
	{
		"fiscal_year": "FY26",
		"quarter": "Q1",
		"extraction_date": "2026-08-01",
		"metrics": {
			"total_billable_fte": {"total": 90, "by_business": {"HIL": 90}}
		}
	}
]`

const fulfillmentJSON = `[
	{
		"fiscal_year": "FY26",
		"quarter": "Q1",
		"extraction_date": "2026-08-01",
		"metrics": {
			"total_demands": {"total": 50, "by_business": {"HIL": 50}},
			"filled_demands": {"total": 40, "by_business": {"HIL": 40}},
			"open_demands": {"total": 10, "by_business": {"HIL": 10}},
			"fulfillment_rate": {"overall": 80, "by_business": {"HIL": 80}}
		}
	}
]`

func testConfig(t *testing.T, withFulfillment bool) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		HCPath:          filepath.Join(dir, "billable_hc_metrics.json"),
		FTEPath:         filepath.Join(dir, "billable_fte_metrics.json"),
		FulfillmentPath: filepath.Join(dir, "fulfillment_metrics.json"),
		ReloadDebounce:  20 * time.Millisecond,
	}

	if err := os.WriteFile(cfg.HCPath, []byte(hcJSON), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.FTEPath, []byte(fteJSON), 0600); err != nil {
		t.Fatal(err)
	}
	if withFulfillment {
		if err := os.WriteFile(cfg.FulfillmentPath, []byte(fulfillmentJSON), 0600); err != nil {
			t.Fatal(err)
		}
	}

	return cfg
}

func TestNew(t *testing.T) {
	svc, err := New(testConfig(t, true))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	hc := svc.Snapshots(models.FamilyHC)
	if len(hc) != 2 {
		t.Fatalf("Expected 2 HC snapshots, got %d", len(hc))
	}
	if hc[0].Label() != "FY26 Q1" {
		t.Errorf("Unexpected label %q", hc[0].Label())
	}
	if svc.QuarterCount(models.FamilyFTE) != 1 {
		t.Errorf("Expected 1 FTE snapshot")
	}
	if !svc.HasFulfillment() {
		t.Error("Expected fulfillment data")
	}
	if svc.ExtractionDate(models.FamilyHC) != "2026-08-01" {
		t.Errorf("Unexpected extraction date %q", svc.ExtractionDate(models.FamilyHC))
	}
	if svc.Err(models.FamilyHC) != nil {
		t.Errorf("Unexpected HC error: %v", svc.Err(models.FamilyHC))
	}
}

func TestNew_FulfillmentOptional(t *testing.T) {
	svc, err := New(testConfig(t, false))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	// Absent fulfillment file is degradation, not an error.
	if svc.HasFulfillment() {
		t.Error("Expected no fulfillment data")
	}
	if svc.Err(models.FamilyFulfillment) != nil {
		t.Errorf("Missing fulfillment file must not be an error: %v", svc.Err(models.FamilyFulfillment))
	}
}

func TestNew_BadFileDoesNotBlockOthers(t *testing.T) {
	cfg := testConfig(t, true)
	if err := os.WriteFile(cfg.FTEPath, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() must not fail for a single bad family: %v", err)
	}
	defer svc.Close()

	// FTE records its load error; HC and fulfillment stay healthy.
	var loadErr *LoadError
	if !errors.As(svc.Err(models.FamilyFTE), &loadErr) {
		t.Fatalf("Expected LoadError for FTE, got %v", svc.Err(models.FamilyFTE))
	}
	if loadErr.Family != models.FamilyFTE {
		t.Errorf("Unexpected family in error: %v", loadErr.Family)
	}
	if svc.Err(models.FamilyHC) != nil {
		t.Errorf("HC must stay healthy: %v", svc.Err(models.FamilyHC))
	}
	if !svc.HasFulfillment() {
		t.Error("Fulfillment must stay healthy")
	}
}

func TestSnapshots_ReturnsCopy(t *testing.T) {
	svc, err := New(testConfig(t, true))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	snaps := svc.Snapshots(models.FamilyHC)
	snaps[0].FiscalYear = "tampered"

	if svc.Snapshots(models.FamilyHC)[0].FiscalYear == "tampered" {
		t.Error("Snapshots() must return a copy")
	}
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	cfg := testConfig(t, true)

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	// Drain initial load events
	drainEvents(svc)

	updated := `[{"fiscal_year": "FY26", "quarter": "Q3", "extraction_date": "2026-09-01",
		"metrics": {"total_billable_hc": {"total": 140, "by_business": {"HIL": 140}}}}]`
	if err := os.WriteFile(cfg.HCPath, []byte(updated), 0600); err != nil {
		t.Fatal(err)
	}

	if !waitForEvent(t, svc, EventChanged, models.FamilyHC) {
		t.Fatal("Timed out waiting for change event")
	}

	snaps := svc.Snapshots(models.FamilyHC)
	if len(snaps) != 1 || snaps[0].Label() != "FY26 Q3" {
		t.Errorf("Expected reloaded data, got %+v", snaps)
	}
}

func TestWatcher_ErrorOnBadRewrite(t *testing.T) {
	cfg := testConfig(t, true)

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	drainEvents(svc)

	if err := os.WriteFile(cfg.HCPath, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	if !waitForEvent(t, svc, EventError, models.FamilyHC) {
		t.Fatal("Timed out waiting for error event")
	}
	if svc.Err(models.FamilyHC) == nil {
		t.Error("Expected recorded load error")
	}
}

func TestReloadAll(t *testing.T) {
	cfg := testConfig(t, true)

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	drainEvents(svc)
	svc.ReloadAll()

	if !waitForEvent(t, svc, EventChanged, models.FamilyHC) {
		t.Fatal("Timed out waiting for reload event")
	}
}

func drainEvents(svc *Service) {
	for {
		select {
		case <-svc.Events():
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func waitForEvent(t *testing.T, svc *Service, eventType EventType, family models.MetricFamily) bool {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-svc.Events():
			if event.Type == eventType && event.Family == family {
				return true
			}
		case <-deadline:
			return false
		}
	}
}
