package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/logger"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
)

// InsertLoadEvent logs a metrics-file load to the database.
func (db *DB) InsertLoadEvent(event *models.LoadEvent) error {
	query := `
		INSERT INTO load_events (timestamp, family, path, quarters, extraction_date, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.Format("2006-01-02 15:04:05"),
		event.Family,
		event.Path,
		event.Quarters,
		nullString(event.ExtractionDate),
		nullString(event.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert load event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		event.ID = id
	}

	return nil
}

// InsertExportEvent logs a CSV export to the database.
func (db *DB) InsertExportEvent(event *models.ExportEvent) error {
	query := `
		INSERT INTO export_events (timestamp, name, path, rows, cols)
		VALUES (?, ?, ?, ?, ?)
	`

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.Format("2006-01-02 15:04:05"),
		event.Name,
		event.Path,
		event.Rows,
		event.Cols,
	)
	if err != nil {
		return fmt.Errorf("failed to insert export event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		event.ID = id
	}

	return nil
}

// GetRecentLoadEvents returns the most recent metrics-file loads.
func (db *DB) GetRecentLoadEvents(limit int) ([]models.LoadEvent, error) {
	query := `
		SELECT id, timestamp, family, path, quarters, extraction_date, error
		FROM load_events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent load events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var events []models.LoadEvent
	for rows.Next() {
		var event models.LoadEvent
		var extraction, errStr sql.NullString

		err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.Family,
			&event.Path,
			&event.Quarters,
			&extraction,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load event: %w", err)
		}

		event.ExtractionDate = extraction.String
		event.Error = errStr.String
		events = append(events, event)
	}

	return events, rows.Err()
}

// GetRecentExportEvents returns the most recent CSV exports.
func (db *DB) GetRecentExportEvents(limit int) ([]models.ExportEvent, error) {
	query := `
		SELECT id, timestamp, name, path, rows, cols
		FROM export_events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent export events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var events []models.ExportEvent
	for rows.Next() {
		var event models.ExportEvent
		err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.Name,
			&event.Path,
			&event.Rows,
			&event.Cols,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// GetActivityStats returns aggregated counts over the activity log.
func (db *DB) GetActivityStats() (*models.ActivityStats, error) {
	var stats models.ActivityStats

	query := `
		SELECT
			COUNT(*) as total_loads,
			COALESCE(SUM(CASE WHEN error IS NOT NULL AND error != '' THEN 1 ELSE 0 END), 0) as failed_loads,
			COALESCE(MAX(timestamp), '') as last_load
		FROM load_events
	`
	var lastLoad string
	err := db.QueryRowContext(context.Background(), query).Scan(
		&stats.TotalLoads,
		&stats.FailedLoads,
		&lastLoad,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query load stats: %w", err)
	}
	stats.LastLoad, _ = time.Parse("2006-01-02 15:04:05", lastLoad)

	query = `
		SELECT COUNT(*) as total_exports, COALESCE(MAX(timestamp), '') as last_export
		FROM export_events
	`
	var lastExport string
	err = db.QueryRowContext(context.Background(), query).Scan(&stats.TotalExports, &lastExport)
	if err != nil {
		return nil, fmt.Errorf("failed to query export stats: %w", err)
	}
	stats.LastExport, _ = time.Parse("2006-01-02 15:04:05", lastExport)

	return &stats, nil
}

// PruneActivity deletes activity rows older than the retention window.
func (db *DB) PruneActivity(retention time.Duration) error {
	cutoff := time.Now().Add(-retention).Format("2006-01-02 15:04:05")

	if _, err := db.ExecContext(context.Background(),
		"DELETE FROM load_events WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("failed to prune load events: %w", err)
	}
	if _, err := db.ExecContext(context.Background(),
		"DELETE FROM export_events WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("failed to prune export events: %w", err)
	}
	return nil
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
