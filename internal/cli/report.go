package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebodette/docaudit/pkg/models"
)

var reportIssuesOnly bool

var reportCmd = &cobra.Command{
	Use:   "report [output-dir]",
	Short: "Show the summary of the last validation run",
	Long: `Read the machine-readable summary written by the most recent validation run
in an output directory (default "outputs") and display its findings and
verdict.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report store not initialized")
		}

		dir := "outputs"
		if len(args) == 1 {
			dir = args[0]
		}

		summary, err := Reports.ReadSummary(dir)
		if err != nil {
			return fmt.Errorf("reading last run summary: %w", err)
		}

		fmt.Printf("Last validation run: %s\n\n", summary.GeneratedAt)
		for _, f := range summary.Findings {
			if reportIssuesOnly && f.Severity != models.SeverityIssue {
				continue
			}
			label := findingStyle(f.Severity).Render(fmt.Sprintf("[%s]", f.Severity))
			fmt.Printf("  %s %s: %s\n", label, f.Scope, f.Message)
		}

		fmt.Printf("\n  Issues: %d  Warnings: %d  Passes: %d\n  Verdict: %s\n",
			summary.IssueCount, summary.WarningCount, summary.PassCount, summary.Verdict)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportIssuesOnly, "issues-only", false, "Show only issue-severity findings")
	rootCmd.AddCommand(reportCmd)
}
