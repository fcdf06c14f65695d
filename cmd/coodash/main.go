// Package main is the entry point for the COO Dashboard TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/coo-dashboard-tui/internal/app"
	"github.com/j-veylop/coo-dashboard-tui/internal/config"
	"github.com/j-veylop/coo-dashboard-tui/internal/logger"
	"github.com/j-veylop/coo-dashboard-tui/internal/models"
	"github.com/j-veylop/coo-dashboard-tui/internal/services"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/tabs/compare"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/tabs/fulfillment"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/coo-dashboard-tui/internal/ui/tabs/workforce"
	"github.com/j-veylop/coo-dashboard-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Route logs to a file; stderr belongs to the TUI while it runs.
	logPath := filepath.Join(filepath.Dir(cfg.DatabasePath), "coodash.log")
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
		logger.SetOutput(logFile)
		defer logFile.Close()
	}

	// 2. Initialize the service manager
	// This starts the snapshot watchers and the export service
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 4. Initialize tabs with shared state and services
	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	commands := model.GetCommands()
	tabs := []app.Tab{
		overview.New(state),                              // Tab 0: Overview - headline cards
		workforce.New(state, commands, models.FamilyHC),  // Tab 1: Headcount pivot tables
		workforce.New(state, commands, models.FamilyFTE), // Tab 2: FTE pivot tables
		fulfillment.New(state, commands),                 // Tab 3: Demand fulfillment
		compare.New(state, commands),                     // Tab 4: HC vs FTE comparison
		info.New(state, cfg, svcManager),                 // Tab 5: Info - config and activity
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		// Send quit message to the program
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`COO Dashboard TUI - Workforce metrics reporting dashboard

Usage:
  coodash [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-6             Switch between tabs (Overview, Headcount, FTE, Fulfillment, Compare, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll tables
  Left/Right      Change quarter (overview tab)
  s               Cycle scope (overall/onsite/offshore)
  c               Cycle demand column (fulfillment tab)
  e               Export the current table to CSV
  E               Export the fulfillment trend to CSV (fulfillment tab)
  d               Export the per-business breakdown to CSV (fulfillment tab)
  r               Reload metrics files from disk
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  METRICS_DATA_DIR          Directory holding the metrics JSON files
  HC_METRICS_PATH           Headcount metrics file (default: <data dir>/billable_hc_metrics.json)
  FTE_METRICS_PATH          FTE metrics file (default: <data dir>/billable_fte_metrics.json)
  FULFILLMENT_METRICS_PATH  Fulfillment metrics file, optional
  DATABASE_PATH             SQLite activity-log database path
  EXPORT_DIR                Directory for CSV exports
  RELOAD_DEBOUNCE           File-watch debounce (default: 100ms)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/coodash/.env
  - ~/.coodash/.env

For more information, visit: https://github.com/j-veylop/coo-dashboard-tui`)
}
