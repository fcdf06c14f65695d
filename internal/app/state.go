// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the shared application state: the loaded snapshot sequences
// per metric family plus notification and loading bookkeeping. Tabs
// read from it, the root model writes to it.
type State struct {
	mu sync.RWMutex

	snapshots       map[models.MetricFamily][]models.QuarterSnapshot
	dataErrs        map[models.MetricFamily]error
	hasFulfillment  bool
	initialLoading  bool
	refreshing      bool
	lastUpdated     time.Time
	notifications   []Notification
	notificationSeq int
}

// NewState creates the shared application state.
func NewState() *State {
	return &State{
		snapshots:      make(map[models.MetricFamily][]models.QuarterSnapshot),
		dataErrs:       make(map[models.MetricFamily]error),
		initialLoading: true,
		notifications:  make([]Notification, 0),
	}
}

// SetSnapshots replaces one family's snapshot sequence.
func (s *State) SetSnapshots(family models.MetricFamily, snaps []models.QuarterSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[family] = snaps
	s.lastUpdated = time.Now()
}

// Snapshots returns a copy of one family's snapshot sequence.
func (s *State) Snapshots(family models.MetricFamily) []models.QuarterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := make([]models.QuarterSnapshot, len(s.snapshots[family]))
	copy(snaps, s.snapshots[family])
	return snaps
}

// SetDataError records one family's load error, nil to clear it.
func (s *State) SetDataError(family models.MetricFamily, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataErrs[family] = err
}

// DataError returns the load error recorded for a family.
func (s *State) DataError(family models.MetricFamily) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataErrs[family]
}

// SetHasFulfillment records whether fulfillment data is available.
func (s *State) SetHasFulfillment(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasFulfillment = ok
}

// HasFulfillment reports whether fulfillment data is available.
func (s *State) HasFulfillment() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasFulfillment
}

// SetInitialLoading marks whether the first data load is still pending.
func (s *State) SetInitialLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialLoading = loading
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialLoading
}

// SetRefreshing marks whether a reload is in flight.
func (s *State) SetRefreshing(refreshing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = refreshing
}

// IsRefreshing returns true if a reload is in flight.
func (s *State) IsRefreshing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshing
}

// AnyLoading returns true if anything is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialLoading || s.refreshing
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time snapshot data changed.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// TimeSinceUpdate returns the duration since the last data change.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.lastUpdated)
}
