package mcpsession

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/search-agent/internal/domain/adapter"
)

func connectTestServer(t *testing.T, handler mcp.ToolHandler) *RemoteSession {
	t.Helper()
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	server.AddTool(&mcp.Tool{
		Name:        ExecuteToolName,
		Description: "test tool",
		InputSchema: map[string]any{"type": "object"},
	}, handler)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	session, err := ConnectWithTransport(ctx, clientTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestRemoteSession_ForwardsCommand(t *testing.T) {
	var got map[string]any
	session := connectTestServer(t, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		assert.NoError(t, json.Unmarshal(req.Params.Arguments, &got))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{
				Text: `{"mcp_version":"1.0","results":[{"title":"T","url":"U","content":null,"source":"Serper/Google"}]}`,
			}},
		}, nil
	})

	resp := session.Execute(context.Background(), adapter.NewSearchCommand("rust ownership"))

	assert.Equal(t, map[string]any{"action": "search", "query": "rust ownership"}, got)
	result, ok := resp.(*adapter.NormalizedResult)
	require.True(t, ok)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "T", *result.Results[0].Title)
	assert.Nil(t, result.Results[0].Content)
}

func TestRemoteSession_ErrorPayload(t *testing.T) {
	session := connectTestServer(t, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: `{"error":"Unsupported MCP action"}`}},
			IsError: true,
		}, nil
	})

	resp := session.Execute(context.Background(), adapter.Command{"action": "weather"})
	assert.Equal(t, &adapter.ErrorResult{Error: "Unsupported MCP action"}, resp)
}

func TestRemoteSession_PlainTextError(t *testing.T) {
	session := connectTestServer(t, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "tool is disabled"}},
			IsError: true,
		}, nil
	})

	resp := session.Execute(context.Background(), adapter.NewSearchCommand("q"))
	assert.Equal(t, &adapter.ErrorResult{Error: "tool is disabled"}, resp)
}

func TestRemoteSession_ClosedSession(t *testing.T) {
	session := connectTestServer(t, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{}, nil
	})
	require.NoError(t, session.Close())

	resp := session.Execute(context.Background(), adapter.NewSearchCommand("q"))
	errResult, ok := resp.(*adapter.ErrorResult)
	require.True(t, ok)
	assert.Contains(t, errResult.Error, "Search failed: ")
}

func TestRemoteSession_ClosedSessionNonSearchAction(t *testing.T) {
	session := connectTestServer(t, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{}, nil
	})
	require.NoError(t, session.Close())

	for _, cmd := range []adapter.Command{{"action": "weather"}, {"query": "q"}, nil} {
		resp := session.Execute(context.Background(), cmd)
		errResult, ok := resp.(*adapter.ErrorResult)
		require.True(t, ok)
		assert.NotEmpty(t, errResult.Error)
		assert.NotContains(t, errResult.Error, "Search failed")
	}
}

func TestConnect_RequiresEndpoint(t *testing.T) {
	_, err := Connect(context.Background(), " ", nil)
	assert.Error(t, err)
}
