package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
	"github.com/j-veylop/coo-dashboard-tui/internal/services"
	"github.com/j-veylop/coo-dashboard-tui/internal/services/export"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadDataCmd returns a command that copies the current snapshot data
// out of the service layer.
func loadDataCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		errs := make(map[models.MetricFamily]error)
		for _, family := range []models.MetricFamily{models.FamilyHC, models.FamilyFTE, models.FamilyFulfillment} {
			if err := mgr.DataErr(family); err != nil {
				errs[family] = err
			}
		}

		return DataLoadedMsg{
			HC:             mgr.Snapshots(models.FamilyHC),
			FTE:            mgr.Snapshots(models.FamilyFTE),
			Fulfillment:    mgr.Snapshots(models.FamilyFulfillment),
			HasFulfillment: mgr.HasFulfillment(),
			Errors:         errs,
		}
	}
}

// reloadCmd returns a command that reloads the metrics files from disk.
// The resulting change events come back through the service subscription.
func reloadCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Reload()
		return StartLoadingMsg{}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// WaitForServiceEvent is the public version for use in models.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return services.WaitForEvent(ch)
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// exportResultMsg converts an export outcome into a message.
func exportResultMsg(result *export.Result, err error) tea.Msg {
	if err != nil {
		return ExportResultMsg{Success: false, Error: err}
	}
	return ExportResultMsg{Name: result.Name, Path: result.Path, Success: true}
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Manager returns the underlying service manager.
func (c *Commands) Manager() *services.Manager {
	return c.manager
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// LoadData returns a command that loads a fresh copy of the snapshot data.
func (c *Commands) LoadData() tea.Cmd {
	return loadDataCmd(c.manager)
}

// Reload returns a command that reloads the metrics files from disk.
func (c *Commands) Reload() tea.Cmd {
	return reloadCmd(c.manager)
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// ExportGrid returns a command that exports a pivot grid to CSV.
func (c *Commands) ExportGrid(g *report.Grid) tea.Cmd {
	return func() tea.Msg {
		result, err := c.manager.ExportGrid(g)
		return exportResultMsg(result, err)
	}
}

// ExportTrend returns a command that exports the fulfillment trends to CSV.
func (c *Commands) ExportTrend(rows []report.TrendRow) tea.Cmd {
	return func() tea.Msg {
		result, err := c.manager.ExportTrend(rows)
		return exportResultMsg(result, err)
	}
}

// ExportDemands returns a command that exports a per-business demand table to CSV.
func (c *Commands) ExportDemands(name string, records []report.DemandRecord) tea.Cmd {
	return func() tea.Msg {
		result, err := c.manager.ExportDemands(name, records)
		return exportResultMsg(result, err)
	}
}

// ExportComparison returns a command that exports the HC vs FTE table to CSV.
func (c *Commands) ExportComparison(rows []report.ComparisonRow) tea.Cmd {
	return func() tea.Msg {
		result, err := c.manager.ExportComparison(rows)
		return exportResultMsg(result, err)
	}
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}
