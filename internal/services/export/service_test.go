package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/coo-dashboard-tui/internal/db"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
)

func testService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	svc, err := New(filepath.Join(t.TempDir(), "exports"), database)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return svc, database
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	svc, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if svc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", svc.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("export directory not created: %v", err)
	}
}

func TestGrid(t *testing.T) {
	svc, database := testService(t)

	g, err := report.Pivot([]report.Record{
		{Quarter: "FY26 Q1", Business: "HIL", Value: 10.5},
		{Quarter: "FY26 Q2", Business: "HIL", Value: 12},
	})
	if err != nil {
		t.Fatalf("Pivot() failed: %v", err)
	}
	g.Title = "Headcount Overall by Business Unit"
	g.Decimals = 2

	result, err := svc.Grid(g)
	if err != nil {
		t.Fatalf("Grid() failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(result.Path), "headcount_overall_by_business_unit_") {
		t.Errorf("Unexpected file name %q", result.Path)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("Export file unreadable: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "HIL,10.50,12.00") {
		t.Errorf("Unexpected CSV content:\n%s", content)
	}

	// The export is recorded in the activity log
	events, err := database.GetRecentExportEvents(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Name != result.Name {
		t.Errorf("Expected logged export event, got %+v", events)
	}
}

func TestTrend(t *testing.T) {
	svc, _ := testService(t)

	result, err := svc.Trend([]report.TrendRow{
		{Quarter: "FY26 Q1", Total: 100, Filled: 80, Open: 20, Rate: 80},
	})
	if err != nil {
		t.Fatalf("Trend() failed: %v", err)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "FY26 Q1,100,80,20,0,0,80.00") {
		t.Errorf("Unexpected CSV content:\n%s", data)
	}
}

func TestComparison(t *testing.T) {
	svc, _ := testService(t)

	result, err := svc.Comparison([]report.ComparisonRow{
		{Quarter: "FY26 Q1", HC: 100, FTE: 90, Diff: 10, PctDiff: 10},
	})
	if err != nil {
		t.Fatalf("Comparison() failed: %v", err)
	}
	if result.Rows != 1 || result.Cols != 5 {
		t.Errorf("Unexpected result shape: %+v", result)
	}
}

func TestWrite_NoTempFileLeftBehind(t *testing.T) {
	svc, _ := testService(t)

	if _, err := svc.Demands("open demands", []report.DemandRecord{
		{Quarter: "FY26 Q1", Business: "HIL", Total: 10, Filled: 8, Open: 2, Rate: 80},
	}); err != nil {
		t.Fatalf("Demands() failed: %v", err)
	}

	entries, err := os.ReadDir(svc.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("Temp file left behind: %s", entry.Name())
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Headcount Overall by Business Unit", "headcount_overall_by_business_unit"},
		{"FTE (Offshore) by Business Unit", "fte_offshore_by_business_unit"},
		{"open demands", "open_demands"},
	}
	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
