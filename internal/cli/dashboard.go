package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/calebodette/docaudit/pkg/models"
)

// Dashboard panel indices.
const (
	panelFindings = iota
	panelMetrics
	panelAlerts
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	summary     *summarySnapshot
	metricsData *metricsSnapshot
	alerts      []alertSnapshot

	// State.
	outputDir string
	loading   bool
	err       error
}

type summarySnapshot struct {
	verdict      string
	issueCount   int
	warningCount int
	passCount    int
	findings     []findingSnapshot
	generatedAt  string
}

type findingSnapshot struct {
	severity string
	scope    string
	message  string
}

type metricsSnapshot struct {
	runsCompleted int
	runsByVerdict map[string]int
	totalIssues   int
	totalWarnings int
	eventCount    int
}

type alertSnapshot struct {
	severity string
	message  string
	time     string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	summary *summarySnapshot
	metrics *metricsSnapshot
	alerts  []alertSnapshot
	err     error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	issueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	verdictPassStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	verdictPartialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	verdictFailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// findingStyle returns the terminal style for a finding severity.
func findingStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityIssue:
		return issueStyle
	case models.SeverityWarning:
		return warningStyle
	default:
		return passStyle
	}
}

func newDashboardModel(outputDir string) dashboardModel {
	return dashboardModel{
		activePanel: panelFindings,
		outputDir:   outputDir,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData(m.outputDir)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData(m.outputDir)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.metricsData = msg.metrics
		m.alerts = msg.alerts
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" docaudit Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	findingsPanel := m.renderFindingsPanel()
	metricsPanel := m.renderMetricsPanel()
	alertsPanel := m.renderAlertsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		findingsPanel = m.applyPanelStyle(panelFindings, findingsPanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, findingsPanel, metricsPanel, alertsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		findingsPanel = m.applyPanelStyle(panelFindings, findingsPanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, findingsPanel, metricsPanel, alertsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderFindingsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Last Run"))
	b.WriteString("\n")

	if m.summary == nil {
		b.WriteString("  No validation run found.")
		return b.String()
	}

	s := m.summary
	b.WriteString(fmt.Sprintf("  Verdict: %s\n", styleForVerdict(s.verdict).Render(s.verdict)))
	b.WriteString(fmt.Sprintf("  Issues %d | Warnings %d | Passes %d\n\n", s.issueCount, s.warningCount, s.passCount))

	shown := 0
	for _, f := range s.findings {
		if f.severity == string(models.SeverityPass) {
			continue
		}
		label := findingStyle(models.Severity(f.severity)).Render(fmt.Sprintf("[%s]", f.severity))
		b.WriteString(fmt.Sprintf("  %s %s\n", label, f.message))
		shown++
		if shown >= 10 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", nonPassCount(s.findings)-shown))
			break
		}
	}
	if shown == 0 {
		b.WriteString("  No issues or warnings.\n")
	}

	return b.String()
}

func nonPassCount(findings []findingSnapshot) int {
	count := 0
	for _, f := range findings {
		if f.severity != string(models.SeverityPass) {
			count++
		}
	}
	return count
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	lines := []struct {
		label string
		value int
	}{
		{"Events", md.eventCount},
		{"Runs", md.runsCompleted},
		{"Issues", md.totalIssues},
		{"Warnings", md.totalWarnings},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	if len(md.runsByVerdict) > 0 {
		b.WriteString("\n")
		for _, verdict := range []string{"pass", "partial_pass", "fail"} {
			if count, ok := md.runsByVerdict[verdict]; ok {
				label := fmt.Sprintf("  %-14s %d", verdict, count)
				b.WriteString(styleForVerdict(verdict).Render(label))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (m dashboardModel) renderAlertsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Alerts"))
	b.WriteString("\n")

	if len(m.alerts) == 0 {
		b.WriteString("  No active alerts.")
		return b.String()
	}

	for _, a := range m.alerts {
		sev := styleForSeverity(a.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(a.severity)))
		b.WriteString(fmt.Sprintf("  %s %s\n", sev, a.message))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d alert(s)", len(m.alerts)))

	return b.String()
}

func styleForVerdict(verdict string) lipgloss.Style {
	switch verdict {
	case "pass":
		return verdictPassStyle
	case "partial_pass":
		return verdictPartialStyle
	case "fail":
		return verdictFailStyle
	default:
		return lipgloss.NewStyle()
	}
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadDashboardData(outputDir string) tea.Cmd {
	return func() tea.Msg {
		var result dataLoadedMsg

		// Load the last run summary; a missing summary is not an error,
		// the engagement may simply not have been validated yet.
		if Reports != nil {
			if summary, err := Reports.ReadSummary(outputDir); err == nil {
				snap := &summarySnapshot{
					verdict:      string(summary.Verdict),
					issueCount:   summary.IssueCount,
					warningCount: summary.WarningCount,
					passCount:    summary.PassCount,
					generatedAt:  summary.GeneratedAt,
				}
				for _, f := range summary.Findings {
					snap.findings = append(snap.findings, findingSnapshot{
						severity: string(f.Severity),
						scope:    f.Scope,
						message:  f.Message,
					})
				}
				result.summary = snap
			}
		}

		// Load metrics from MetricsCalc.
		if MetricsCalc != nil {
			since := time.Now().UTC().AddDate(0, 0, -7)
			metrics, err := MetricsCalc.Calculate(since)
			if err != nil {
				result.err = fmt.Errorf("loading metrics: %w", err)
				return result
			}
			result.metrics = &metricsSnapshot{
				runsCompleted: metrics.RunsCompleted,
				runsByVerdict: metrics.RunsByVerdict,
				totalIssues:   metrics.TotalIssues,
				totalWarnings: metrics.TotalWarnings,
				eventCount:    metrics.EventCount,
			}
		}

		// Load alerts from AlertEngine.
		if AlertEngine != nil {
			alerts, err := AlertEngine.Evaluate()
			if err != nil {
				result.err = fmt.Errorf("loading alerts: %w", err)
				return result
			}
			result.alerts = make([]alertSnapshot, 0, len(alerts))

			// Sort alerts by severity: high first, then medium, then low.
			sort.Slice(alerts, func(i, j int) bool {
				return severityRank(string(alerts[i].Severity)) < severityRank(string(alerts[j].Severity))
			})

			for _, a := range alerts {
				result.alerts = append(result.alerts, alertSnapshot{
					severity: string(a.Severity),
					message:  a.Message,
					time:     a.TriggeredAt.Format("2006-01-02 15:04 UTC"),
				})
			}
		}

		return result
	}
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

var dashboardDir string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for validation runs and alerts",
	Long: `Launch an interactive terminal dashboard showing the last validation run,
run metrics, and alerts in a live-updating view.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}
		p := tea.NewProgram(newDashboardModel(dashboardDir), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardDir, "dir", "outputs", "Output directory of the validation run to display")
	rootCmd.AddCommand(dashboardCmd)
}
