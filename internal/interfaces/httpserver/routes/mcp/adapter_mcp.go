package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/janhq/search-agent/internal/domain/adapter"
)

const (
	// SearchToolName runs a web search and returns normalized results.
	SearchToolName = "mcp_search"
	// ExecuteToolName runs a raw adapter command.
	ExecuteToolName = "mcp_execute"
)

// AdapterMCP exposes the adapter session as MCP tools.
type AdapterMCP struct {
	session adapter.Session
}

// NewAdapterMCP creates the tool handlers over the given session.
func NewAdapterMCP(session adapter.Session) *AdapterMCP {
	return &AdapterMCP{session: session}
}

// RegisterTools registers mcp_search and mcp_execute on the server.
func (a *AdapterMCP) RegisterTools(server *mcp.Server) error {
	searchSchema, err := adapter.ToolInputSchema(&adapter.SearchArgs{})
	if err != nil {
		return fmt.Errorf("search tool schema: %w", err)
	}
	executeSchema, err := adapter.ToolInputSchema(&adapter.ExecuteArgs{})
	if err != nil {
		return fmt.Errorf("execute tool schema: %w", err)
	}

	server.AddTool(&mcp.Tool{
		Name:        SearchToolName,
		Description: "Search the web through Serper/Google. Returns up to 5 results as {mcp_version, results:[{title,url,content,source}]}.",
		InputSchema: searchSchema,
	}, a.handleSearch)

	server.AddTool(&mcp.Tool{
		Name:        ExecuteToolName,
		Description: "Execute a raw adapter command such as {\"action\":\"search\",\"query\":\"...\"}. Unsupported actions return an error payload.",
		InputSchema: executeSchema,
	}, a.handleExecute)

	return nil
}

func (a *AdapterMCP) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArguments(req)
	if err != nil {
		return errorToolResult(err.Error()), nil
	}

	cmd := adapter.Command{"action": string(adapter.ActionSearch)}
	if query, ok := args["query"]; ok {
		cmd["query"] = query
	}
	return a.execute(ctx, SearchToolName, cmd)
}

func (a *AdapterMCP) handleExecute(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArguments(req)
	if err != nil {
		return errorToolResult(err.Error()), nil
	}
	return a.execute(ctx, ExecuteToolName, adapter.Command(args))
}

func (a *AdapterMCP) execute(ctx context.Context, tool string, cmd adapter.Command) (*mcp.CallToolResult, error) {
	resp := a.session.Execute(ctx, cmd)

	payload, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Str("tool", tool).Msg("failed to encode adapter response")
		return errorToolResult("failed to encode response"), nil
	}

	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(payload)}},
		StructuredContent: json.RawMessage(payload),
		IsError:           adapter.IsError(resp),
	}, nil
}

// decodeArguments keeps numbers as json.Number so they forward in their textual form.
func decodeArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(req.Params.Arguments))
	decoder.UseNumber()

	var args map[string]any
	if err := decoder.Decode(&args); err != nil {
		return nil, fmt.Errorf("invalid tool arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func errorToolResult(message string) *mcp.CallToolResult {
	payload, _ := json.Marshal(adapter.ErrorResult{Error: message})
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(payload)}},
		StructuredContent: json.RawMessage(payload),
		IsError:           true,
	}
}
