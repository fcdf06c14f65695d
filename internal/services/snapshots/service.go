// Package snapshots loads the metrics JSON files with file watching and
// change notifications.
package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/coo-dashboard-tui/internal/config"
	"github.com/j-veylop/coo-dashboard-tui/internal/logger"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// LoadError reports an unreadable or malformed metrics file. A failing
// family never blocks the other families from loading.
type LoadError struct {
	Family models.MetricFamily
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s metrics from %s: %v", e.Family, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Event represents a snapshots service event.
type Event struct {
	Type   EventType
	Family models.MetricFamily
	Error  error
}

// EventType defines the type of snapshots event.
type EventType int

const (
	EventLoaded EventType = iota
	EventChanged
	EventError
)

// Service holds the three snapshot sequences and reloads them when the
// files change on disk.
type Service struct {
	mu       sync.RWMutex
	data     map[models.MetricFamily][]models.QuarterSnapshot
	loadErrs map[models.MetricFamily]error

	paths    map[models.MetricFamily]string
	debounce time.Duration

	watcher   *fsnotify.Watcher
	eventChan chan Event
	stopChan  chan struct{}

	timerMu sync.Mutex
	timers  map[models.MetricFamily]*time.Timer
}

// New creates the service, performs the initial load of all three
// families, and starts watching their directories. HC and FTE load
// failures are recorded per family, not returned: one bad file must not
// take the dashboard down. A missing fulfillment file is not an error
// at all; the dashboard degrades to HC/FTE-only mode.
func New(cfg *config.Config) (*Service, error) {
	s := &Service{
		data:     make(map[models.MetricFamily][]models.QuarterSnapshot),
		loadErrs: make(map[models.MetricFamily]error),
		paths: map[models.MetricFamily]string{
			models.FamilyHC:          cfg.HCPath,
			models.FamilyFTE:         cfg.FTEPath,
			models.FamilyFulfillment: cfg.FulfillmentPath,
		},
		debounce:  cfg.ReloadDebounce,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
		timers:    make(map[models.MetricFamily]*time.Timer),
	}
	if s.debounce <= 0 {
		s.debounce = 100 * time.Millisecond
	}

	for _, family := range s.Families() {
		if err := s.loadFamily(family); err != nil {
			s.sendEvent(Event{Type: EventError, Family: family, Error: err})
		} else {
			s.sendEvent(Event{Type: EventLoaded, Family: family})
		}
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	return s, nil
}

// Families returns the metric families in canonical order.
func (s *Service) Families() []models.MetricFamily {
	return []models.MetricFamily{models.FamilyHC, models.FamilyFTE, models.FamilyFulfillment}
}

// Events returns the event channel for subscribing to data changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Snapshots returns a copy of the snapshot sequence for a family.
func (s *Service) Snapshots(family models.MetricFamily) []models.QuarterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := make([]models.QuarterSnapshot, len(s.data[family]))
	copy(snaps, s.data[family])
	return snaps
}

// Err returns the load error recorded for a family, nil when healthy.
func (s *Service) Err(family models.MetricFamily) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErrs[family]
}

// HasFulfillment reports whether fulfillment data is available.
func (s *Service) HasFulfillment() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[models.FamilyFulfillment]) > 0 && s.loadErrs[models.FamilyFulfillment] == nil
}

// Path returns the file path configured for a family.
func (s *Service) Path(family models.MetricFamily) string {
	return s.paths[family]
}

// ExtractionDate returns the extraction date stamped on a family's
// first snapshot, empty when no data is loaded.
func (s *Service) ExtractionDate(family models.MetricFamily) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snaps := s.data[family]; len(snaps) > 0 {
		return snaps[0].ExtractionDate
	}
	return ""
}

// QuarterCount returns the number of snapshots loaded for a family.
func (s *Service) QuarterCount(family models.MetricFamily) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[family])
}

// ReloadAll reloads every family from disk, emitting change events.
func (s *Service) ReloadAll() {
	for _, family := range s.Families() {
		s.reloadFamily(family)
	}
}

// loadFamily reads and decodes one metrics file into memory.
func (s *Service) loadFamily(family models.MetricFamily) error {
	path := s.paths[family]

	data, err := os.ReadFile(path)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.data[family] = nil

		// The fulfillment file is optional: absence degrades, it
		// does not fail.
		if family == models.FamilyFulfillment && os.IsNotExist(err) {
			s.loadErrs[family] = nil
			logger.Info("fulfillment metrics file absent, running in HC/FTE-only mode", "path", path)
			return nil
		}

		loadErr := &LoadError{Family: family, Path: path, Err: err}
		s.loadErrs[family] = loadErr
		return loadErr
	}

	var snaps []models.QuarterSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		loadErr := &LoadError{Family: family, Path: path, Err: err}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.data[family] = nil
		s.loadErrs[family] = loadErr
		return loadErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[family] = snaps
	s.loadErrs[family] = nil
	logger.Info("loaded metrics file", "family", string(family), "path", path, "quarters", len(snaps))
	return nil
}

// startWatcher starts the file system watcher over the directories
// holding the metrics files.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch directories (to catch file creation/deletion), deduplicated
	// since the three files usually share one.
	watched := make(map[string]bool)
	for _, path := range s.paths {
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.Warn("failed to watch directory", "dir", dir, "error", err)
			continue
		}
		watched[dir] = true
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with per-family debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			family, matches := s.familyForPath(event.Name)
			if !matches {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.scheduleReload(family)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// familyForPath matches a watcher event path against the metrics files.
func (s *Service) familyForPath(name string) (models.MetricFamily, bool) {
	base := filepath.Base(name)
	for family, path := range s.paths {
		if base == filepath.Base(path) {
			return family, true
		}
	}
	return "", false
}

// scheduleReload debounces rapid changes to one family's file.
func (s *Service) scheduleReload(family models.MetricFamily) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if timer, ok := s.timers[family]; ok {
		timer.Stop()
	}
	s.timers[family] = time.AfterFunc(s.debounce, func() {
		s.reloadFamily(family)
	})
}

// reloadFamily reloads one family after an external change.
func (s *Service) reloadFamily(family models.MetricFamily) {
	if err := s.loadFamily(family); err != nil {
		s.sendEvent(Event{Type: EventError, Family: family, Error: err})
		return
	}
	s.sendEvent(Event{Type: EventChanged, Family: family})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	s.timerMu.Lock()
	for _, timer := range s.timers {
		timer.Stop()
	}
	s.timerMu.Unlock()

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
