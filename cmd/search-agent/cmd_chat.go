package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/janhq/search-agent/internal/application/agent"
	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/interfaces/cli"
	"github.com/janhq/search-agent/pkg/observability"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive research chat",
	Long: `Start the interactive agent. Each query may trigger web searches through the
adapter; answers stream to the terminal.

Type 'clear' to forget the conversation and 'exit' or 'quit' to stop.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().Bool("markdown", true, "Render answers as markdown")
	chatCmd.Flags().String("profile", "", "Agent profile YAML (env AGENT_PROFILE_FILE)")
	chatCmd.Flags().String("model", "", "Model name (env AGENT_MODEL)")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.LLMAPIKey == "" {
		return errors.New("GROQ_API_KEY is required for chat")
	}
	closeLog, err := setupLogging(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	profilePath := cfg.AgentProfileFile
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		profilePath = p
	}
	profile, err := agent.LoadProfile(profilePath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("markdown") {
		profile.Markdown, _ = cmd.Flags().GetBool("markdown")
	}

	model := cfg.AgentModel
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		model = m
	}

	rt, err := CreateRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Shutdown()

	session, release, err := rt.Session(ctx, mcpURL(cmd, cfg))
	if err != nil {
		return err
	}
	defer release()

	instrumenter, err := observability.NewTurnInstrumenter(rt.observability.Tracer, rt.observability.Meter, config.ServiceName)
	if err != nil {
		return fmt.Errorf("create turn instrumenter: %w", err)
	}

	researcher, err := agent.New(agent.NewChatClient(cfg.LLMAPIKey, cfg.LLMBaseURL), session, profile, agent.Options{
		Model:         model,
		MaxSteps:      cfg.AgentMaxSteps,
		MemoryEnabled: cfg.AgentMemoryEnabled,
		Retry: agent.RetryConfig{
			MaxAttempts:     cfg.LLMRetryMaxAttempts,
			InitialDelay:    cfg.RetryInitialDelay(),
			MaxDelay:        cfg.RetryMaxDelay(),
			BackoffFactor:   cfg.LLMRetryBackoffFactor,
			RetryableErrors: agent.DefaultRetryConfig().RetryableErrors,
		},
		Instrumenter: instrumenter,
	})
	if err != nil {
		return err
	}

	log.Info().Str("model", model).Str("profile", profile.Name).Msg("starting chat")

	repl, err := cli.NewREPL(researcher, cmd.InOrStdin(), cmd.OutOrStdout(), cli.Options{Markdown: profile.Markdown})
	if err != nil {
		return err
	}
	return repl.Run(ctx)
}
