package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebodette/docaudit/internal/observability"
	"github.com/calebodette/docaudit/internal/storage"
	"github.com/calebodette/docaudit/pkg/models"
)

func loadedModel(t *testing.T) dashboardModel {
	t.Helper()
	m := newDashboardModel("outputs")
	m.width = 100
	m.height = 40
	m.loading = false
	m.summary = &summarySnapshot{
		verdict:      "fail",
		issueCount:   2,
		warningCount: 1,
		passCount:    3,
		findings: []findingSnapshot{
			{severity: "issue", scope: "sow", message: "required section missing"},
			{severity: "pass", scope: "compliance", message: "standards referenced"},
		},
	}
	m.metricsData = &metricsSnapshot{
		runsCompleted: 4,
		runsByVerdict: map[string]int{"fail": 3, "pass": 1},
		totalIssues:   8,
		totalWarnings: 2,
		eventCount:    4,
	}
	m.alerts = []alertSnapshot{
		{severity: "high", message: "runs not converging"},
	}
	return m
}

func TestDashboard_TabCyclesPanels(t *testing.T) {
	m := loadedModel(t)
	if m.activePanel != panelFindings {
		t.Fatalf("initial panel = %d", m.activePanel)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(dashboardModel)
	if m.activePanel != panelMetrics {
		t.Errorf("after tab, panel = %d, want metrics", m.activePanel)
	}

	for i := 0; i < panelCount-1; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(dashboardModel)
	}
	if m.activePanel != panelFindings {
		t.Errorf("tab should wrap around to the first panel, got %d", m.activePanel)
	}

	back, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if back.(dashboardModel).activePanel != panelAlerts {
		t.Errorf("shift+tab should cycle backwards, got %d", back.(dashboardModel).activePanel)
	}
}

func TestDashboard_QuitKeys(t *testing.T) {
	m := loadedModel(t)
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch key {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s should quit", key)
		}
	}
}

func TestDashboard_RefreshTriggersLoad(t *testing.T) {
	m := loadedModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(dashboardModel)
	if !m.loading {
		t.Error("refresh should enter the loading state")
	}
	if cmd == nil {
		t.Error("refresh should schedule a data load")
	}
}

func TestDashboard_DataLoadedMsg(t *testing.T) {
	m := newDashboardModel("outputs")
	m.loading = true

	next, _ := m.Update(dataLoadedMsg{
		summary: &summarySnapshot{verdict: "pass"},
		metrics: &metricsSnapshot{runsCompleted: 1},
	})
	m = next.(dashboardModel)

	if m.loading {
		t.Error("loading should clear once data arrives")
	}
	if m.summary == nil || m.summary.verdict != "pass" {
		t.Errorf("summary = %+v", m.summary)
	}
	if m.metricsData == nil || m.metricsData.runsCompleted != 1 {
		t.Errorf("metrics = %+v", m.metricsData)
	}
}

func TestDashboard_ViewRendersPanels(t *testing.T) {
	m := loadedModel(t)
	m.width = 80

	view := m.View()
	for _, want := range []string{"Last Run", "Metrics (7d)", "Alerts", "fail", "required section missing", "runs not converging"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// Pass findings are hidden from the findings panel.
	if strings.Contains(view, "standards referenced") {
		t.Error("pass findings should not clutter the last-run panel")
	}
}

func TestDashboard_ViewBeforeSize(t *testing.T) {
	m := newDashboardModel("outputs")
	if got := m.View(); got != "Loading..." {
		t.Errorf("view before sizing = %q", got)
	}
}

func TestLoadDashboardData_UsesServices(t *testing.T) {
	origReports, origMetrics, origAlerts := Reports, MetricsCalc, AlertEngine
	defer func() { Reports, MetricsCalc, AlertEngine = origReports, origMetrics, origAlerts }()

	dir := t.TempDir()
	Reports = storage.NewReportStore()
	report := &models.Report{
		Findings: []models.Finding{models.Issue("sow", "missing section")},
		Markdown: "# Validation Report\n",
	}
	report.Tally()
	if _, err := Reports.Write(dir, report); err != nil {
		t.Fatal(err)
	}

	MetricsCalc = &metricsMock{metrics: &observability.Metrics{
		RunsCompleted: 2,
		RunsByVerdict: map[string]int{"fail": 2},
		EventCount:    2,
	}}
	AlertEngine = &alertsMock{
		evaluateFn: func() ([]observability.Alert, error) {
			return []observability.Alert{
				{Severity: observability.SeverityLow, Message: "low", TriggeredAt: time.Now()},
				{Severity: observability.SeverityHigh, Message: "high", TriggeredAt: time.Now()},
			}, nil
		},
	}

	msg := loadDashboardData(dir)()
	loaded, ok := msg.(dataLoadedMsg)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if loaded.err != nil {
		t.Fatalf("unexpected error: %v", loaded.err)
	}
	if loaded.summary == nil || loaded.summary.verdict != "fail" {
		t.Errorf("summary = %+v", loaded.summary)
	}
	if loaded.metrics == nil || loaded.metrics.runsCompleted != 2 {
		t.Errorf("metrics = %+v", loaded.metrics)
	}
	// Alerts come back sorted by severity, high first.
	if len(loaded.alerts) != 2 || loaded.alerts[0].severity != "high" {
		t.Errorf("alerts = %+v", loaded.alerts)
	}
}
