package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/services"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabOverview {
		t.Error("Default tab should be Overview")
	}
	if len(model.tabs) != 6 {
		t.Errorf("Should have 6 tabs placeholder, got %d", len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	cmd := model.Init()
	if cmd == nil {
		t.Error("Init returned nil command")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	msg := tea.WindowSizeMsg{Width: 100, Height: 50}

	newModel, _ := model.Update(msg)

	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 {
		t.Errorf("Width = %d, want 100", m.width)
	}
	if m.height != 50 {
		t.Errorf("Height = %d, want 50", m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_Update_TabSwitch(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 100
	model.height = 50

	msg := TabSwitchMsg{Tab: TabFTE}
	newModel, _ := model.Update(msg)
	m := newModel.(*Model)

	if m.activeTab != TabFTE {
		t.Errorf("ActiveTab = %v, want FTE", m.activeTab)
	}

	// Key binding '4' jumps to fulfillment
	keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}}
	model.handleKeyMsg(keyMsg)
	if model.activeTab != TabFulfillment {
		t.Errorf("ActiveTab = %v, want Fulfillment", model.activeTab)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	msg := TickMsg{Time: time.Now()}

	_, cmd := model.Update(msg)
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	// Not ready
	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	// Ready
	model.ready = true
	model.width = 80
	model.height = 24

	view = model.View()
	if !strings.Contains(view, "Headcount") {
		t.Error("View should show Headcount tab in the navbar")
	}
	// Should show placeholder since tabs are nil
	if !strings.Contains(view, "not yet implemented") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 80
	model.height = 24

	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	// Toggle off via key
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	msg := AddNotificationMsg{
		Message:  "Test Note",
		Type:     NotificationInfo,
		Duration: 0,
	}

	model.Update(msg)

	notifs := model.state.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}

	// Test rendering
	model.ready = true
	model.width = 80
	model.height = 24
	view := model.View()
	if !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}
}

func TestModel_HandleDataLoaded(t *testing.T) {
	model := NewModel(nil)

	hc := []models.QuarterSnapshot{{FiscalYear: "FY26", Quarter: "Q1"}}
	loadErr := errors.New("fte file missing")

	model.Update(DataLoadedMsg{
		HC:             hc,
		HasFulfillment: true,
		Errors:         map[models.MetricFamily]error{models.FamilyFTE: loadErr},
	})

	if len(model.state.Snapshots(models.FamilyHC)) != 1 {
		t.Error("HC snapshots should be stored")
	}
	if !model.state.HasFulfillment() {
		t.Error("HasFulfillment should be true")
	}
	if !errors.Is(model.state.DataError(models.FamilyFTE), loadErr) {
		t.Error("FTE error should be recorded")
	}
	if model.state.IsInitialLoading() {
		t.Error("Initial loading should be cleared")
	}

	// A clean reload clears the stale error.
	model.Update(DataLoadedMsg{HC: hc, Errors: map[models.MetricFamily]error{}})
	if model.state.DataError(models.FamilyFTE) != nil {
		t.Error("A clean load should clear previous errors")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	// Error events trigger an error notification.
	errEvent := services.ErrorEvent{Service: "snapshots", Error: errors.New("boom")}
	if cmd := model.handleServiceEvent(errEvent); cmd == nil {
		t.Error("Error event should trigger notification command")
	}

	// External data changes trigger a reload plus an info notification.
	change := services.DataChangedEvent{Family: models.FamilyHC, Quarters: 3, External: true}
	if cmd := model.handleServiceEvent(change); cmd == nil {
		t.Error("Data change event should trigger reload command")
	}

	// Export completion is reported by the export command itself.
	if cmd := model.handleServiceEvent(services.ExportCompletedEvent{Name: "x", Path: "/tmp/x.csv"}); cmd != nil {
		t.Error("Export event should not produce an extra command")
	}
}

func TestModel_HandleExportResult(t *testing.T) {
	model := NewModel(nil)

	cmds := model.handleExportResult(ExportResultMsg{Name: "hc", Path: "/tmp/hc.csv", Success: true})
	if len(cmds) != 1 {
		t.Fatalf("Expected 1 command, got %d", len(cmds))
	}
	msg := cmds[0]()
	addMsg, ok := msg.(AddNotificationMsg)
	if !ok {
		t.Fatal("Command should return AddNotificationMsg")
	}
	if addMsg.Type != NotificationSuccess || !strings.Contains(addMsg.Message, "/tmp/hc.csv") {
		t.Errorf("Unexpected notification: %+v", addMsg)
	}

	cmds = model.handleExportResult(ExportResultMsg{Success: false, Error: errors.New("disk full")})
	msg = cmds[0]()
	addMsg, ok = msg.(AddNotificationMsg)
	if !ok {
		t.Fatal("Command should return AddNotificationMsg")
	}
	if addMsg.Type != NotificationError || !strings.Contains(addMsg.Message, "disk full") {
		t.Errorf("Unexpected notification: %+v", addMsg)
	}
}

func TestModel_StartLoading(t *testing.T) {
	model := NewModel(nil)
	model.Update(StartLoadingMsg{})

	if !model.state.IsRefreshing() {
		t.Error("Refreshing should be true")
	}
	notifs := model.state.GetNotifications()
	if len(notifs) != 1 || notifs[0].ID != LoadingNotificationID {
		t.Error("Loading notification should be shown")
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabOverview, "Overview"},
		{TabHeadcount, "Headcount"},
		{TabFTE, "FTE"},
		{TabFulfillment, "Fulfillment"},
		{TabCompare, "Compare"},
		{TabInfo, "Info"},
		{TabID(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	// Just check it doesn't panic and returns something
	_ = s
}
