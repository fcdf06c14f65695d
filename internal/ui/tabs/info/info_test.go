package info

import (
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/app"
	"github.com/j-veylop/coo-dashboard-tui/internal/config"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		DatabasePath:    "/tmp/coodash.db",
		HCPath:          "/data/billable_hc_metrics.json",
		FTEPath:         "/data/billable_fte_metrics.json",
		FulfillmentPath: "/data/fulfillment_metrics.json",
		ExportDir:       "/tmp/exports",
		ReloadDebounce:  100 * time.Millisecond,
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	// Init with no manager should not panic.
	_ = m.Init()
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	state.SetSnapshots(models.FamilyHC, []models.QuarterSnapshot{
		{FiscalYear: "FY26", Quarter: "Q1", ExtractionDate: "2026-08-01"},
		{FiscalYear: "FY26", Quarter: "Q2", ExtractionDate: "2026-08-01"},
	})

	m := New(state, testConfig(), nil)
	m.SetSize(100, 50)

	view := m.View()
	if !strings.Contains(view, "billable_hc_metrics.json") {
		t.Errorf("View should show the HC path:\n%s", view)
	}
	if !strings.Contains(view, "2 quarters") {
		t.Errorf("View should show the HC quarter count:\n%s", view)
	}
	if !strings.Contains(view, "2026-08-01") {
		t.Errorf("View should show the extraction date:\n%s", view)
	}
	if !strings.Contains(view, Version) {
		t.Errorf("View should show the version:\n%s", view)
	}
}

func TestModel_View_OptionalFulfillment(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	m.SetSize(100, 50)

	if !strings.Contains(m.View(), "optional") {
		t.Error("View should mark the absent fulfillment file as optional")
	}
}

func TestModel_View_NilConfig(t *testing.T) {
	m := New(app.NewState(), nil, nil)
	m.SetSize(100, 50)

	if !strings.Contains(m.View(), "Configuration not loaded") {
		t.Error("View should handle a nil config")
	}
}

func TestModel_SetSize(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), testConfig(), nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
