package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if len(s.Snapshots(models.FamilyHC)) != 0 {
		t.Error("Snapshots should be empty")
	}
	if !s.IsInitialLoading() {
		t.Error("Initial loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true while initial load is pending")
	}
}

func TestState_Snapshots(t *testing.T) {
	s := NewState()

	snaps := []models.QuarterSnapshot{
		{FiscalYear: "FY26", Quarter: "Q1"},
		{FiscalYear: "FY26", Quarter: "Q2"},
	}
	s.SetSnapshots(models.FamilyHC, snaps)

	got := s.Snapshots(models.FamilyHC)
	if len(got) != 2 {
		t.Fatalf("Snapshots len = %d, want 2", len(got))
	}

	// Mutating the returned slice must not affect the state.
	got[0].FiscalYear = "FY99"
	if s.Snapshots(models.FamilyHC)[0].FiscalYear != "FY26" {
		t.Error("Snapshots should return a copy")
	}

	if len(s.Snapshots(models.FamilyFTE)) != 0 {
		t.Error("FTE snapshots should still be empty")
	}
}

func TestState_DataErrors(t *testing.T) {
	s := NewState()

	loadErr := errors.New("bad json")
	s.SetDataError(models.FamilyFTE, loadErr)

	if !errors.Is(s.DataError(models.FamilyFTE), loadErr) {
		t.Error("DataError should return the recorded error")
	}
	if s.DataError(models.FamilyHC) != nil {
		t.Error("HC should have no error")
	}

	s.SetDataError(models.FamilyFTE, nil)
	if s.DataError(models.FamilyFTE) != nil {
		t.Error("SetDataError(nil) should clear the error")
	}
}

func TestState_HasFulfillment(t *testing.T) {
	s := NewState()
	if s.HasFulfillment() {
		t.Error("HasFulfillment should default to false")
	}
	s.SetHasFulfillment(true)
	if !s.HasFulfillment() {
		t.Error("HasFulfillment should be true after set")
	}
}

func TestState_Loading(t *testing.T) {
	s := NewState()

	s.SetInitialLoading(false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	s.SetRefreshing(true)
	if !s.IsRefreshing() || !s.AnyLoading() {
		t.Error("refreshing should count as loading")
	}

	s.SetRefreshing(false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false again")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	// Expired
	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})

	// Active
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != "active" {
		t.Errorf("Expected active notification, got %s", notifs[0].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID {
		t.Errorf("Expected ID %s, got %s", LoadingNotificationID, notifs[0].ID)
	}
	if notifs[0].Message != "loading..." {
		t.Errorf("Expected message loading..., got %s", notifs[0].Message)
	}

	// Update message
	s.SetLoadingNotification("still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification after update")
	}
	if notifs[0].Message != "still loading..." {
		t.Errorf("Expected message still loading..., got %s", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestState_LastUpdated(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any data arrives")
	}

	s.SetSnapshots(models.FamilyHC, nil)
	time.Sleep(time.Millisecond)

	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}
	if s.TimeSinceUpdate() == 0 {
		t.Error("TimeSinceUpdate should be > 0")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		t    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
