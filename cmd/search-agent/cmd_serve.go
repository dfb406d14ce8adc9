package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/janhq/search-agent/internal/infrastructure/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the search adapter over MCP",
	Long: `Serve the adapter as MCP tools (mcp_search, mcp_execute).

By default an HTTP server listens on SEARCH_AGENT_HTTP_PORT with POST /v1/mcp,
POST /v1/execute, /healthz, /readyz and /metrics. With --stdio the MCP protocol
runs over stdin/stdout instead.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	stdio, _ := cmd.Flags().GetBool("stdio")
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Bool("stdio", stdio).
		Msg("Starting search agent MCP service")

	application, err := CreateApplication(ctx)
	if err != nil {
		return err
	}
	if stdio {
		return application.StartStdio(ctx)
	}
	return application.Start(ctx)
}
