// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the deliverable validation engine as MCP tools for AI coding assistants and
// generation orchestrators.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/calebodette/docaudit/internal/observability"
	"github.com/calebodette/docaudit/internal/storage"
	"github.com/calebodette/docaudit/internal/validate"
	"github.com/calebodette/docaudit/pkg/models"
)

// Server wraps the validation services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	engine      validate.Engine
	artifacts   storage.ArtifactStore
	reports     storage.ReportStore
	metricsCalc observability.MetricsCalculator
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server with the given service dependencies.
// metricsCalc and alertEngine may be nil if observability is disabled.
func NewServer(engine validate.Engine, artifacts storage.ArtifactStore, reports storage.ReportStore,
	metricsCalc observability.MetricsCalculator, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		engine:      engine,
		artifacts:   artifacts,
		reports:     reports,
		metricsCalc: metricsCalc,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "docaudit", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type validateInput struct {
	Dir    string `json:"dir" jsonschema:"required,the output directory containing the generated deliverable documents"`
	Domain string `json:"domain,omitempty" jsonschema:"optional project domain override (software_development, ai_ml, fintech, healthcare, ecommerce, quantitative_trading, robotics_iot)"`
	Write  bool   `json:"write,omitempty" jsonschema:"when true, persist validation_report.md and validation_summary.yaml into the directory"`
}

type findingOutput struct {
	Severity string `json:"severity"`
	Scope    string `json:"scope"`
	Message  string `json:"message"`
}

type validateOutput struct {
	Verdict      string          `json:"verdict"`
	IssueCount   int             `json:"issue_count"`
	WarningCount int             `json:"warning_count"`
	PassCount    int             `json:"pass_count"`
	Findings     []findingOutput `json:"findings"`
	ReportPath   string          `json:"report_path,omitempty"`
}

type getSummaryInput struct {
	Dir string `json:"dir" jsonschema:"required,the output directory a previous validation run wrote its summary into"`
}

type summaryOutput struct {
	Verdict      string          `json:"verdict"`
	IssueCount   int             `json:"issue_count"`
	WarningCount int             `json:"warning_count"`
	PassCount    int             `json:"pass_count"`
	Findings     []findingOutput `json:"findings"`
	GeneratedAt  string          `json:"generated_at"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	RunsCompleted int            `json:"runs_completed"`
	RunsByVerdict map[string]int `json:"runs_by_verdict"`
	TotalIssues   int            `json:"total_issues"`
	TotalWarnings int            `json:"total_warnings"`
	LastVerdict   string         `json:"last_verdict,omitempty"`
	EventCount    int            `json:"event_count"`
	OldestEvent   string         `json:"oldest_event,omitempty"`
	NewestEvent   string         `json:"newest_event,omitempty"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "validate_documents",
		Description: "Run the full validation pass over the deliverable documents in a directory. Returns the verdict, severity counts, and every finding.",
	}, s.handleValidate)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_last_summary",
		Description: "Read the machine-readable summary written by the most recent validation run in a directory.",
	}, s.handleGetSummary)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_run_metrics",
		Description: "Get aggregated validation-run metrics from the event log, including runs by verdict and issue totals.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts over the validation run history (consecutive failures, issue regressions, chronic warnings).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleValidate(_ context.Context, _ *gomcp.CallToolRequest, input validateInput) (*gomcp.CallToolResult, validateOutput, error) {
	if input.Dir == "" {
		return errorResult("dir is required"), validateOutput{}, nil
	}

	artifacts, err := s.artifacts.LoadAll(input.Dir)
	if err != nil {
		return errorResult(fmt.Sprintf("loading documents from %s: %s", input.Dir, err)), validateOutput{}, nil
	}

	engine := s.engine
	if input.Domain != "" {
		engine = validate.NewEngineForDomain(nil, validate.ProjectDomain(input.Domain))
	}

	report, err := engine.Validate(artifacts)
	if err != nil {
		return errorResult(fmt.Sprintf("validating documents: %s", err)), validateOutput{}, nil
	}

	out := validateOutput{
		Verdict:      string(report.Verdict),
		IssueCount:   report.IssueCount,
		WarningCount: report.WarningCount,
		PassCount:    report.PassCount,
		Findings:     findingsToOutput(report.Findings),
	}

	if input.Write {
		path, err := s.reports.Write(input.Dir, report)
		if err != nil {
			return errorResult(fmt.Sprintf("persisting report: %s", err)), validateOutput{}, nil
		}
		out.ReportPath = path
	}

	return nil, out, nil
}

func (s *Server) handleGetSummary(_ context.Context, _ *gomcp.CallToolRequest, input getSummaryInput) (*gomcp.CallToolResult, summaryOutput, error) {
	if input.Dir == "" {
		return errorResult("dir is required"), summaryOutput{}, nil
	}

	summary, err := s.reports.ReadSummary(input.Dir)
	if err != nil {
		return errorResult(fmt.Sprintf("reading summary: %s", err)), summaryOutput{}, nil
	}

	return nil, summaryOutput{
		Verdict:      string(summary.Verdict),
		IssueCount:   summary.IssueCount,
		WarningCount: summary.WarningCount,
		PassCount:    summary.PassCount,
		Findings:     findingsToOutput(summary.Findings),
		GeneratedAt:  summary.GeneratedAt,
	}, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		RunsCompleted: metrics.RunsCompleted,
		RunsByVerdict: metrics.RunsByVerdict,
		TotalIssues:   metrics.TotalIssues,
		TotalWarnings: metrics.TotalWarnings,
		LastVerdict:   metrics.LastVerdict,
		EventCount:    metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available (observability may be disabled)"), getAlertsOutput{}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func findingsToOutput(findings []models.Finding) []findingOutput {
	out := make([]findingOutput, len(findings))
	for i, f := range findings {
		out[i] = findingOutput{
			Severity: string(f.Severity),
			Scope:    f.Scope,
			Message:  f.Message,
		}
	}
	return out
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{RunsByVerdict: make(map[string]int)}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince converts a shorthand duration like "7d", "24h", or "30d" into an
// absolute time in the past.
func parseSince(s string) (time.Time, error) {
	var n int
	var unit rune
	if _, err := fmt.Sscanf(s, "%d%c", &n, &unit); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q (expected forms like 7d or 24h)", s)
	}
	if n < 0 {
		return time.Time{}, fmt.Errorf("invalid duration %q: negative count", s)
	}

	var d time.Duration
	switch unit {
	case 'h':
		d = time.Duration(n) * time.Hour
	case 'd':
		d = time.Duration(n) * 24 * time.Hour
	case 'w':
		d = time.Duration(n) * 7 * 24 * time.Hour
	default:
		return time.Time{}, fmt.Errorf("invalid duration unit %q (use h, d, or w)", unit)
	}

	return time.Now().UTC().Add(-d), nil
}
