package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	damcp "github.com/calebodette/docaudit/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the docaudit MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docaudit MCP server on stdio",
	Long: `Start the docaudit MCP server on stdio transport.

The server exposes validation functionality as MCP tools that AI coding
assistants can call: validate_documents, get_last_summary, get_run_metrics,
get_alerts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("validation engine not initialized")
		}

		srv := damcp.NewServer(Engine, Artifacts, Reports, MetricsCalc, AlertEngine, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
