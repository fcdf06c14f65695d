// Package export writes report tables to CSV files and records each
// export in the activity log.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/j-veylop/coo-dashboard-tui/internal/db"
	"github.com/j-veylop/coo-dashboard-tui/internal/logger"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/report"
)

// Result describes one completed export.
type Result struct {
	Name string
	Path string
	Rows int
	Cols int
}

// Service writes CSV files into the configured export directory.
type Service struct {
	dir      string
	database *db.DB
}

// New creates the export service, creating the export directory if
// needed. The database is optional; without it exports are not logged.
func New(dir string, database *db.DB) (*Service, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Service{dir: dir, database: database}, nil
}

// Dir returns the export directory.
func (s *Service) Dir() string {
	return s.dir
}

// Grid exports a pivot grid. The file name derives from the grid title.
func (s *Service) Grid(g *report.Grid) (*Result, error) {
	return s.write(slug(g.Title), len(g.Rows), len(g.Cols), g.WriteCSV)
}

// Trend exports the consolidated fulfillment trends table.
func (s *Service) Trend(rows []report.TrendRow) (*Result, error) {
	return s.write("fulfillment_trends", len(rows), 7, func(w io.Writer) error {
		return report.WriteTrendCSV(w, rows)
	})
}

// Demands exports a flat per-business fulfillment table.
func (s *Service) Demands(name string, records []report.DemandRecord) (*Result, error) {
	return s.write(slug(name), len(records), 6, func(w io.Writer) error {
		return report.WriteDemandCSV(w, records)
	})
}

// Comparison exports the HC vs FTE comparison table.
func (s *Service) Comparison(rows []report.ComparisonRow) (*Result, error) {
	return s.write("hc_vs_fte_comparison", len(rows), 5, func(w io.Writer) error {
		return report.WriteComparisonCSV(w, rows)
	})
}

// write renders the table into a timestamped file via a temp file and
// rename, so a crash never leaves a half-written CSV behind.
func (s *Service) write(name string, rows, cols int, render func(io.Writer) error) (*Result, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to finalize export file: %w", err)
	}

	result := &Result{Name: name, Path: path, Rows: rows, Cols: cols}

	if s.database != nil {
		event := models.ExportEvent{Name: name, Path: path, Rows: rows, Cols: cols}
		if err := s.database.InsertExportEvent(&event); err != nil {
			logger.Warn("failed to record export event", "name", name, "error", err)
		}
	}

	logger.Info("exported CSV", "name", name, "path", path, "rows", rows)
	return result, nil
}

// slug turns a table title into a safe file name stem.
func slug(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
