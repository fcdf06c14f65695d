package app

import (
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a data reload has started.
type StartLoadingMsg struct{}

// DataLoadedMsg carries a fresh copy of every family's snapshots.
type DataLoadedMsg struct {
	HC             []models.QuarterSnapshot
	FTE            []models.QuarterSnapshot
	Fulfillment    []models.QuarterSnapshot
	HasFulfillment bool
	Errors         map[models.MetricFamily]error
}

// RefreshMsg requests reloading the metrics files from disk.
type RefreshMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// ExportResultMsg contains the result of a CSV export.
type ExportResultMsg struct {
	Name    string
	Path    string
	Success bool
	Error   error
}
