package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calebodette/docaudit/internal/observability"
	"github.com/calebodette/docaudit/internal/storage"
	"github.com/calebodette/docaudit/internal/validate"
	"github.com/calebodette/docaudit/pkg/models"
)

// setupValidateServices wires real services against a temp base path and
// restores the originals on cleanup.
func setupValidateServices(t *testing.T) {
	t.Helper()
	origEngine, origArtifacts, origReports := Engine, Artifacts, Reports
	origRules, origEventLog := Rules, EventLog
	t.Cleanup(func() {
		Engine, Artifacts, Reports = origEngine, origArtifacts, origReports
		Rules, EventLog = origRules, origEventLog
	})

	Engine = validate.NewEngine(nil)
	Artifacts = storage.NewArtifactStore()
	Reports = storage.NewReportStore()
	Rules = validate.NewRuleSetLoader(t.TempDir())
	EventLog = nil
}

func writeOutputDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestValidateCmd_NilServices(t *testing.T) {
	orig := Engine
	defer func() { Engine = orig }()
	Engine = nil

	err := validateCmd.RunE(validateCmd, []string{})
	if err == nil {
		t.Fatal("expected error when services are not initialized")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCmd_WritesReportAndSummary(t *testing.T) {
	setupValidateServices(t)
	dir := writeOutputDir(t, map[string]string{
		"02_scope_of_work.md": "# Executive Summary\n\nBudget: TBD\n",
	})

	if err := validateCmd.RunE(validateCmd, []string{dir}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, storage.ReportFileName)); err != nil {
		t.Errorf("report not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.SummaryFileName)); err != nil {
		t.Errorf("summary not written: %v", err)
	}

	summary, err := Reports.ReadSummary(dir)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Verdict != models.VerdictFail {
		t.Errorf("verdict = %s, want fail for a TBD placeholder", summary.Verdict)
	}
}

func TestValidateCmd_DryRunWritesNothing(t *testing.T) {
	setupValidateServices(t)
	dir := writeOutputDir(t, map[string]string{
		"02_scope_of_work.md": "# Executive Summary\n\nshort\n",
	})

	validateDryRun = true
	defer func() { validateDryRun = false }()

	if err := validateCmd.RunE(validateCmd, []string{dir}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, storage.ReportFileName)); !os.IsNotExist(err) {
		t.Error("dry run must not write the report")
	}
}

func TestValidateCmd_CheckFailsOnIssues(t *testing.T) {
	setupValidateServices(t)
	dir := writeOutputDir(t, map[string]string{
		"02_scope_of_work.md": "# Executive Summary\n\nBudget: TBD\n",
	})

	validateCheck = true
	defer func() { validateCheck = false }()

	err := validateCmd.RunE(validateCmd, []string{dir})
	if err == nil {
		t.Fatal("expected --check to fail on a fail verdict")
	}
	if !strings.Contains(err.Error(), "issue") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCmd_RecordsRunEvent(t *testing.T) {
	setupValidateServices(t)
	dir := writeOutputDir(t, map[string]string{
		"02_scope_of_work.md": "# Executive Summary\n\nshort\n",
	})

	log, err := observability.NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = log.Close() }()
	EventLog = log

	if err := validateCmd.RunE(validateCmd, []string{dir}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := log.Read(observability.EventFilter{Type: observability.EventRunCompleted})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 run event, got %d", len(events))
	}
	if events[0].Data["output_dir"] != dir {
		t.Errorf("output_dir = %v", events[0].Data["output_dir"])
	}
}

func TestValidateCmd_MissingDirectory(t *testing.T) {
	setupValidateServices(t)

	err := validateCmd.RunE(validateCmd, []string{filepath.Join(t.TempDir(), "absent")})
	if err == nil {
		t.Fatal("expected error for a missing output directory")
	}
}
