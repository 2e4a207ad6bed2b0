package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebodette/docaudit/internal/observability"
	"github.com/calebodette/docaudit/internal/validate"
	"github.com/calebodette/docaudit/pkg/models"
)

var (
	validateDomain string
	validateDryRun bool
	validateCheck  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [output-dir]",
	Short: "Validate the deliverable documents in an output directory",
	Long: `Run the full validation pass over the deliverable documents in an output
directory (default "outputs"). Documents are located by their conventional
names (01_discovery_report.md, 02_scope_of_work.md, ...); missing files are
reported as findings, never as errors.

The rendered report is written to validation_report.md and a machine-readable
summary to validation_summary.yaml inside the same directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil || Artifacts == nil || Reports == nil {
			return fmt.Errorf("validation services not initialized")
		}

		dir := "outputs"
		if len(args) == 1 {
			dir = args[0]
		}

		artifacts, err := Artifacts.LoadAll(dir)
		if err != nil {
			return fmt.Errorf("loading documents: %w", err)
		}

		engine := Engine
		if validateDomain != "" {
			rules, err := Rules.Load()
			if err != nil {
				return fmt.Errorf("loading rule set: %w", err)
			}
			engine = validate.NewEngineForDomain(rules, validate.ProjectDomain(validateDomain))
		}

		report, err := engine.Validate(artifacts)
		if err != nil {
			return fmt.Errorf("validating documents: %w", err)
		}

		if !validateDryRun {
			path, err := Reports.Write(dir, report)
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Printf("Report written to %s\n\n", path)
		}

		printReportSummary(report)

		if EventLog != nil {
			_ = EventLog.Write(observability.RunCompletedEvent(
				string(report.Verdict), report.IssueCount, report.WarningCount, report.PassCount, dir))
		}

		if validateCheck && report.Verdict == models.VerdictFail {
			return fmt.Errorf("validation failed with %d issue(s)", report.IssueCount)
		}
		return nil
	},
}

// printReportSummary renders the findings and verdict to the terminal with
// severity coloring.
func printReportSummary(report *models.Report) {
	for _, f := range report.Findings {
		label := findingStyle(f.Severity).Render(fmt.Sprintf("[%s]", f.Severity))
		fmt.Printf("  %s %s: %s\n", label, f.Scope, f.Message)
	}

	fmt.Printf("\n  Issues: %d  Warnings: %d  Passes: %d\n", report.IssueCount, report.WarningCount, report.PassCount)

	switch report.Verdict {
	case models.VerdictPass:
		fmt.Println(verdictPassStyle.Render("  VALIDATION PASSED"))
	case models.VerdictPartialPass:
		fmt.Println(verdictPartialStyle.Render("  VALIDATION PARTIAL - review warnings before delivery"))
	default:
		fmt.Println(verdictFailStyle.Render("  VALIDATION FAILED - revisions required"))
	}
}

func init() {
	validateCmd.Flags().StringVar(&validateDomain, "domain", "",
		"Project domain override (software_development, ai_ml, fintech, healthcare, ecommerce, quantitative_trading, robotics_iot)")
	validateCmd.Flags().BoolVar(&validateDryRun, "dry-run", false, "Do not write the report or summary to disk")
	validateCmd.Flags().BoolVar(&validateCheck, "check", false, "Exit non-zero when the verdict is fail (for CI gates)")
	rootCmd.AddCommand(validateCmd)
}
