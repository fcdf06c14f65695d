// Package models defines data structures and domain types.
package models

import "time"

// LoadEvent records one load (or reload) of a metrics file (DB model).
type LoadEvent struct {
	Timestamp      time.Time
	Family         string
	Path           string
	ExtractionDate string
	Error          string
	ID             int64
	Quarters       int
}

// ExportEvent records one CSV export (DB model).
type ExportEvent struct {
	Timestamp time.Time
	Name      string
	Path      string
	ID        int64
	Rows      int
	Cols      int
}

// ActivityStats aggregates the activity log for the info tab.
type ActivityStats struct {
	TotalLoads   int64
	TotalExports int64
	FailedLoads  int64
	LastLoad     time.Time
	LastExport   time.Time
}
