package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/internal/infrastructure/config"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one adapter command and print the JSON response",
	Long: `Run a single command through the adapter and print the Response JSON.

Without a query the command is sent without a query field, which the adapter
rejects with "Missing required field: query".`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("action", string(adapter.ActionSearch), "Adapter action to run")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

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

	action, _ := cmd.Flags().GetString("action")
	command := adapter.Command{"action": action}
	if len(args) > 0 {
		command["query"] = strings.Join(args, " ")
	}

	resp := session.Execute(ctx, command)
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
