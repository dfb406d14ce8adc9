package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/internal/infrastructure/mcpsession"
)

type recordingSession struct {
	mu       sync.Mutex
	commands []adapter.Command
	resp     adapter.Response
}

func (s *recordingSession) Execute(_ context.Context, cmd adapter.Command) adapter.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
	if s.resp != nil {
		return s.resp
	}
	return &adapter.NormalizedResult{MCPVersion: adapter.SchemaVersion, Results: []adapter.ResultItem{}}
}

func connect(t *testing.T, session adapter.Session) *mcp.ClientSession {
	t.Helper()
	route, err := NewMCPRoute(NewAdapterMCP(session), "test")
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() {
		_ = route.Server().Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })
	return clientSession
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAdapterMCP_ListTools(t *testing.T) {
	clientSession := connect(t, &recordingSession{})

	tools, err := clientSession.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.InputSchema)
	}
	assert.True(t, names[SearchToolName])
	assert.True(t, names[ExecuteToolName])
}

func TestAdapterMCP_SearchTool(t *testing.T) {
	title := "T"
	session := &recordingSession{resp: &adapter.NormalizedResult{
		MCPVersion: "1.0",
		Results:    []adapter.ResultItem{{Title: &title, Source: adapter.SourceSerperGoogle}},
	}}
	clientSession := connect(t, session)

	result, err := clientSession.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      SearchToolName,
		Arguments: map[string]any{"query": "rust ownership"},
	})
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.JSONEq(t,
		`{"mcp_version":"1.0","results":[{"title":"T","url":null,"content":null,"source":"Serper/Google"}]}`,
		resultText(t, result))
	require.Len(t, session.commands, 1)
	assert.Equal(t, adapter.Command{"action": "search", "query": "rust ownership"}, session.commands[0])
}

func TestAdapterMCP_SearchToolWithoutQuery(t *testing.T) {
	session := &recordingSession{}
	clientSession := connect(t, session)

	_, err := clientSession.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      SearchToolName,
		Arguments: map[string]any{},
	})
	require.NoError(t, err)

	require.Len(t, session.commands, 1)
	_, hasQuery := session.commands[0]["query"]
	assert.False(t, hasQuery)
}

func TestAdapterMCP_ExecuteToolPassesRawCommand(t *testing.T) {
	session := &recordingSession{resp: &adapter.ErrorResult{Error: "Unsupported MCP action"}}
	clientSession := connect(t, session)

	result, err := clientSession.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ExecuteToolName,
		Arguments: map[string]any{"action": "weather", "query": 42},
	})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.JSONEq(t, `{"error":"Unsupported MCP action"}`, resultText(t, result))
	require.Len(t, session.commands, 1)
	assert.Equal(t, "weather", session.commands[0]["action"])
	assert.Equal(t, json.Number("42"), session.commands[0]["query"])
}

func TestAdapterMCP_RemoteSessionRoundTrip(t *testing.T) {
	session := &recordingSession{resp: &adapter.ErrorResult{Error: "Search failed: timeout"}}
	route, err := NewMCPRoute(NewAdapterMCP(session), "test")
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	go func() {
		_ = route.Server().Run(context.Background(), serverTransport)
	}()

	remote, err := mcpsession.ConnectWithTransport(context.Background(), clientTransport)
	require.NoError(t, err)
	defer remote.Close()

	resp := remote.Execute(context.Background(), adapter.NewSearchCommand("q"))
	assert.Equal(t, &adapter.ErrorResult{Error: "Search failed: timeout"}, resp)
}

func TestMCPMethodGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/mcp", MCPMethodGuard(allowedMCPMethods), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"invalid json", "{", http.StatusBadRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, http.StatusBadRequest},
		{"unsupported method", `{"jsonrpc":"2.0","id":1,"method":"resources/read"}`, http.StatusBadRequest},
		{"tools list", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`, http.StatusNoContent},
		{"tools call", `{"jsonrpc":"2.0","id":1,"method":"tools/call"}`, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
