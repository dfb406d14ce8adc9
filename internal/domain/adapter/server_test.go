package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/search-agent/pkg/telemetry"
)

type fakeSearchClient struct {
	calls   atomic.Int32
	mu      sync.Mutex
	queries []string
	payload map[string]any
	err     error
	panicV  any
}

func (f *fakeSearchClient) Search(_ context.Context, query string) (map[string]any, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.panicV != nil {
		panic(f.panicV)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type recordedCommand struct {
	action string
	status string
}

type fakeRecorder struct {
	mu      sync.Mutex
	samples []recordedCommand
}

func (r *fakeRecorder) RecordCommand(action, status string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, recordedCommand{action: action, status: status})
}

func TestServer_Actions(t *testing.T) {
	server := NewServer(&fakeSearchClient{})
	assert.Equal(t, []Action{ActionSearch}, server.Actions())
}

func TestServer_Execute_UnsupportedAction(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"unknown action", Command{"action": "weather"}},
		{"unknown action with query", Command{"action": "scrape", "query": "x"}},
		{"missing action", Command{"query": "rust"}},
		{"non-string action", Command{"action": 1}},
		{"null action", Command{"action": nil}},
		{"wrong case", Command{"action": "SEARCH", "query": "rust"}},
		{"nil command", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSearchClient{}
			server := NewServer(client)

			resp := server.Execute(context.Background(), tt.cmd)
			assert.Equal(t, &ErrorResult{Error: "Unsupported MCP action"}, resp)
			assert.Zero(t, client.calls.Load())
		})
	}
}

func TestServer_Execute_Search(t *testing.T) {
	client := &fakeSearchClient{payload: map[string]any{
		"organic": []any{
			map[string]any{"title": "T", "link": "U", "snippet": "S"},
		},
	}}
	server := NewServer(client)

	resp := server.Execute(context.Background(), NewSearchCommand("rust ownership"))

	result, ok := resp.(*NormalizedResult)
	require.True(t, ok)
	assert.Equal(t, SchemaVersion, result.MCPVersion)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "T", *result.Results[0].Title)
	assert.Equal(t, int32(1), client.calls.Load())
	assert.Equal(t, []string{"rust ownership"}, client.queries)
}

func TestServer_Execute_QueryHandling(t *testing.T) {
	tests := []struct {
		name      string
		cmd       Command
		wantQuery string
		wantError string
	}{
		{name: "empty query forwarded", cmd: Command{"action": "search", "query": ""}, wantQuery: ""},
		{name: "numeric query stringified", cmd: Command{"action": "search", "query": 2024}, wantQuery: "2024"},
		{name: "missing query", cmd: Command{"action": "search"}, wantError: "Missing required field: query"},
		{name: "null query", cmd: Command{"action": "search", "query": nil}, wantError: "Missing required field: query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSearchClient{payload: map[string]any{}}
			server := NewServer(client)

			resp := server.Execute(context.Background(), tt.cmd)
			if tt.wantError != "" {
				assert.Equal(t, &ErrorResult{Error: tt.wantError}, resp)
				assert.Zero(t, client.calls.Load())
				return
			}
			assert.False(t, IsError(resp))
			assert.Equal(t, []string{tt.wantQuery}, client.queries)
		})
	}
}

func TestServer_Execute_TransportErrorWrapped(t *testing.T) {
	cause := &TransportError{Err: errors.New("connection reset by peer")}
	server := NewServer(&fakeSearchClient{err: cause})

	resp := server.Execute(context.Background(), NewSearchCommand("q"))
	assert.Equal(t, &ErrorResult{Error: "Search failed: connection reset by peer"}, resp)
}

func TestServer_Execute_WrappedTransportError(t *testing.T) {
	cause := fmt.Errorf("outer: %w", &TransportError{StatusCode: 429, Body: "slow down"})
	server := NewServer(&fakeSearchClient{err: cause})

	resp := server.Execute(context.Background(), NewSearchCommand("q"))
	assert.Equal(t, &ErrorResult{Error: "Search failed: search API error (status 429): slow down"}, resp)
}

func TestServer_Execute_OtherError(t *testing.T) {
	server := NewServer(&fakeSearchClient{err: errors.New("decode serper response: invalid character")})

	resp := server.Execute(context.Background(), NewSearchCommand("q"))
	assert.Equal(t, &ErrorResult{Error: "decode serper response: invalid character"}, resp)
}

func TestServer_Execute_RecoversPanic(t *testing.T) {
	server := NewServer(&fakeSearchClient{panicV: "nil map write"})

	var resp Response
	require.NotPanics(t, func() {
		resp = server.Execute(context.Background(), NewSearchCommand("q"))
	})
	assert.Equal(t, &ErrorResult{Error: "nil map write"}, resp)
}

func TestServer_Execute_Concurrent(t *testing.T) {
	client := &fakeSearchClient{payload: map[string]any{"organic": []any{map[string]any{"title": "T"}}}}
	server := NewServer(client, WithSanitizer(telemetry.NewSanitizer(telemetry.PIILevelHashed, "test")))

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			resp := server.Execute(context.Background(), NewSearchCommand(fmt.Sprintf("query %d", i)))
			assert.False(t, IsError(resp))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(n), client.calls.Load())
	assert.Len(t, client.queries, n)
}

func TestLocalSession_Forwards(t *testing.T) {
	client := &fakeSearchClient{payload: map[string]any{}}
	var session Session = NewLocalSession(NewServer(client))

	resp := session.Execute(context.Background(), NewSearchCommand("q"))
	assert.Equal(t, &NormalizedResult{MCPVersion: "1.0", Results: []ResultItem{}}, resp)

	resp = session.Execute(context.Background(), Command{"action": "weather"})
	assert.True(t, IsError(resp))
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestServer_RecordsEveryCommand(t *testing.T) {
	client := &fakeSearchClient{payload: map[string]any{}}
	recorder := &fakeRecorder{}
	server := NewServer(client, WithRecorder(recorder))

	server.Execute(context.Background(), NewSearchCommand("q"))
	server.Execute(context.Background(), Command{"action": "weather"})
	server.Execute(context.Background(), Command{"action": "search"})

	assert.Equal(t, []recordedCommand{
		{action: "search", status: "success"},
		{action: "unsupported", status: "error"},
		{action: "search", status: "error"},
	}, recorder.samples)
}

func TestServer_WithoutRecorder(t *testing.T) {
	server := NewServer(&fakeSearchClient{payload: map[string]any{}})
	assert.NotPanics(t, func() {
		server.Execute(context.Background(), NewSearchCommand("q"))
	})
}
