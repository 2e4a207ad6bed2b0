package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calebodette/docaudit/pkg/models"
)

const (
	// ReportFileName is the conventional location of the rendered report
	// inside an output directory.
	ReportFileName = "validation_report.md"
	// SummaryFileName is the machine-readable companion to the report.
	SummaryFileName = "validation_summary.yaml"
)

// ReportStore persists validation reports into an output directory and reads
// back the machine-readable summary of the last run.
type ReportStore interface {
	Write(dir string, report *models.Report) (string, error)
	ReadSummary(dir string) (*models.Summary, error)
}

type reportStore struct {
	// now is replaceable in tests.
	now func() time.Time
}

// NewReportStore creates a ReportStore.
func NewReportStore() ReportStore {
	return &reportStore{now: time.Now}
}

// Write stores the rendered Markdown as validation_report.md and the
// structured summary as validation_summary.yaml inside dir, creating the
// directory if needed. It returns the report path.
func (s *reportStore) Write(dir string, report *models.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	reportPath := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(reportPath, []byte(report.Markdown), 0o600); err != nil {
		return "", fmt.Errorf("writing validation report: %w", err)
	}

	summary := models.Summary{
		Verdict:      report.Verdict,
		IssueCount:   report.IssueCount,
		WarningCount: report.WarningCount,
		PassCount:    report.PassCount,
		Findings:     report.Findings,
		GeneratedAt:  s.now().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(&summary)
	if err != nil {
		return "", fmt.Errorf("marshalling validation summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryFileName), data, 0o600); err != nil {
		return "", fmt.Errorf("writing validation summary: %w", err)
	}

	return reportPath, nil
}

// ReadSummary loads the summary written by the most recent validation run in
// dir.
func (s *reportStore) ReadSummary(dir string) (*models.Summary, error) {
	path := filepath.Join(dir, SummaryFileName)
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the summary from the caller-chosen output directory
	if err != nil {
		return nil, fmt.Errorf("reading validation summary %s: %w", path, err)
	}
	var summary models.Summary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parsing validation summary %s: %w", path, err)
	}
	return &summary, nil
}
