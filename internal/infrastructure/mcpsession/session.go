package mcpsession

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/janhq/search-agent/internal/domain/adapter"
)

// ExecuteToolName is the tool RemoteSession calls on the server.
const ExecuteToolName = "mcp_execute"

var clientImplementation = &mcp.Implementation{
	Name:    "search-agent-client",
	Version: "1.0.0",
}

// RemoteSession implements adapter.Session by forwarding commands to an MCP
// server. Transport failures are returned as ErrorResults, never as errors.
type RemoteSession struct {
	session *mcp.ClientSession
}

var _ adapter.Session = (*RemoteSession)(nil)

// Connect dials a streamable HTTP MCP endpoint such as http://localhost:8091/v1/mcp.
func Connect(ctx context.Context, endpoint string, httpClient *http.Client) (*RemoteSession, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("mcp endpoint is required")
	}
	transport := &mcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: httpClient,
	}
	return ConnectWithTransport(ctx, transport)
}

// ConnectWithTransport connects over an arbitrary MCP transport.
func ConnectWithTransport(ctx context.Context, transport mcp.Transport) (*RemoteSession, error) {
	client := mcp.NewClient(clientImplementation, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to mcp server: %w", err)
	}
	return &RemoteSession{session: session}, nil
}

// Execute sends the command through the mcp_execute tool.
func (s *RemoteSession) Execute(ctx context.Context, cmd adapter.Command) adapter.Response {
	args := map[string]any(cmd)
	if args == nil {
		args = map[string]any{}
	}

	result, err := s.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      ExecuteToolName,
		Arguments: args,
	})
	if err != nil {
		log.Warn().Err(err).Interface("action", cmd["action"]).Msg("remote mcp call failed")
		if action, _ := cmd.Action(); action == adapter.ActionSearch {
			return adapter.NewErrorResult("Search failed: %s", err.Error())
		}
		return &adapter.ErrorResult{Error: err.Error()}
	}

	resp, err := decodeToolResult(result)
	if err != nil {
		log.Warn().Err(err).Msg("remote mcp returned an unreadable result")
		return &adapter.ErrorResult{Error: err.Error()}
	}
	return resp
}

// Close ends the MCP session.
func (s *RemoteSession) Close() error {
	return s.session.Close()
}

func decodeToolResult(result *mcp.CallToolResult) (adapter.Response, error) {
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err == nil {
			if resp, err := adapter.DecodeResponse(data); err == nil {
				return resp, nil
			}
		}
	}

	var text strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			text.WriteString(tc.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("empty tool result")
	}

	resp, err := adapter.DecodeResponse([]byte(text.String()))
	if err != nil {
		if result.IsError {
			return &adapter.ErrorResult{Error: text.String()}, nil
		}
		return nil, err
	}
	return resp, nil
}
