package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/infrastructure/logger"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "search-agent",
	Short: "Web search agent backed by Serper",
	Long: `search-agent answers questions by letting an LLM call a Serper web search
through a small command protocol.

Examples:
  # Interactive research chat
  search-agent chat

  # One-shot search, prints the normalized JSON
  search-agent search "rust ownership"

  # Expose the search tools over MCP (HTTP or stdio)
  search-agent serve
  search-agent serve --stdio`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnvFiles(".env", "../.env")
	},
}

func init() {
	// Initialize logger with default settings
	logger.Init("info", "console", os.Stderr)

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("mcp-url", "", "Remote MCP endpoint; empty runs the adapter in-process (env MCP_SERVER_URL)")
}

// loadEnvFiles applies .env files in order. Variables already set, by the shell or
// an earlier file, are kept. Missing files are skipped.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn().Err(err).Str("path", path).Msg("failed to load env file")
			}
			continue
		}
		log.Debug().Str("path", path).Msg("loaded env file")
	}
}

// setupLogging re-initializes the logger from config. Logs go to SEARCH_AGENT_LOG_FILE
// when set, otherwise to fallback. The returned func closes the log file.
func setupLogging(cfg *config.Config, fallback io.Writer) (func(), error) {
	out := fallback
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := logger.OpenLogFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		out = f
		closer = func() { _ = f.Close() }
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, out)
	return closer, nil
}

func mcpURL(cmd *cobra.Command, cfg *config.Config) string {
	if url, _ := cmd.Flags().GetString("mcp-url"); url != "" {
		return url
	}
	return cfg.MCPServerURL
}
