// Package internal provides the App struct that wires all components of the
// docaudit validation system together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calebodette/docaudit/internal/cli"
	"github.com/calebodette/docaudit/internal/observability"
	"github.com/calebodette/docaudit/internal/storage"
	"github.com/calebodette/docaudit/internal/validate"
)

// rcFileName is the config file that marks an engagement root.
const rcFileName = ".docauditrc"

// App holds all service dependencies for the docaudit system.
type App struct {
	BasePath string

	// Configuration
	Rules validate.RuleSetLoader

	// Validation engine
	Engine validate.Engine

	// Storage layer
	Artifacts storage.ArtifactStore
	Reports   storage.ReportStore

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components of the docaudit system.
// basePath is the engagement root directory (typically the directory
// containing .docauditrc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.Rules = validate.NewRuleSetLoader(basePath)
	rules, err := app.Rules.Load()
	if err != nil {
		return nil, fmt.Errorf("loading validation rules: %w", err)
	}

	// --- Validation engine ---
	app.Engine = validate.NewEngine(rules)

	// --- Storage layer ---
	app.Artifacts = storage.NewArtifactStore()
	app.Reports = storage.NewReportStore()

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".docaudit_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, observability.DefaultAlertThresholds())
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if webhook := os.Getenv("DOCAUDIT_SLACK_WEBHOOK"); webhook != "" {
		app.Notifier = observability.NewSlackNotifier(webhook)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Engine = app.Engine
	cli.Rules = app.Rules
	cli.Artifacts = app.Artifacts
	cli.Reports = app.Reports

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the engagement root directory. It checks the
// DOCAUDIT_HOME env var, then walks up from the current directory looking
// for a .docauditrc file, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("DOCAUDIT_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, rcFileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
