package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/pkg/observability"
)

// DefaultModel is the Groq-hosted model the agent uses unless configured otherwise.
const DefaultModel = "llama-3.3-70b-versatile"

// ErrMaxSteps is returned when the model keeps requesting tools past the step budget.
var ErrMaxSteps = errors.New("agent stopped: maximum steps reached")

// ChatClient is the streaming subset of *openai.Client the agent needs.
type ChatClient interface {
	CreateChatCompletionStream(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionStream, error)
}

// Options tune the agent loop.
type Options struct {
	Model         string
	MaxSteps      int
	MemoryEnabled bool
	Retry         RetryConfig
	Instrumenter  *observability.TurnInstrumenter
}

// Agent answers queries by letting the model call the search tool through an adapter session.
type Agent struct {
	client       ChatClient
	session      adapter.Session
	profile      Profile
	model        string
	maxSteps     int
	memory       bool
	retry        RetryConfig
	instrumenter *observability.TurnInstrumenter
	tools        []openai.Tool

	mu      sync.Mutex
	history []openai.ChatCompletionMessage
}

// NewChatClient builds an OpenAI-compatible client for the given endpoint.
func NewChatClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg)
}

// New creates an agent.
func New(client ChatClient, session adapter.Session, profile Profile, opts Options) (*Agent, error) {
	if client == nil {
		return nil, errors.New("chat client is required")
	}
	if session == nil {
		return nil, errors.New("adapter session is required")
	}

	searchTool, err := SearchTool()
	if err != nil {
		return nil, err
	}

	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxSteps < 1 {
		opts.MaxSteps = 15
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = DefaultRetryConfig()
	}

	return &Agent{
		client:       client,
		session:      session,
		profile:      profile,
		model:        opts.Model,
		maxSteps:     opts.MaxSteps,
		memory:       opts.MemoryEnabled,
		retry:        opts.Retry,
		instrumenter: opts.Instrumenter,
		tools:        []openai.Tool{searchTool},
	}, nil
}

// Profile returns the agent's profile.
func (a *Agent) Profile() Profile {
	return a.profile
}

// ClearHistory forgets earlier turns.
func (a *Agent) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}

// HistoryLen reports how many messages are remembered.
func (a *Agent) HistoryLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.history)
}

// Run answers one query, streaming assistant text to out as it arrives,
// and returns the final answer. Turns are serialized.
func (a *Agent) Run(ctx context.Context, query string, out io.Writer) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.instrumenter == nil {
		return a.run(ctx, query, out)
	}

	var answer string
	err := a.instrumenter.InstrumentTurn(ctx, a.model, func(ctx context.Context) error {
		var runErr error
		answer, runErr = a.run(ctx, query, out)
		return runErr
	})
	return answer, err
}

func (a *Agent) run(ctx context.Context, query string, out io.Writer) (string, error) {
	turn := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	}}

	for step := 1; step <= a.maxSteps; step++ {
		messages := a.buildMessages(turn)

		reply, err := a.complete(ctx, messages, out)
		if err != nil {
			return "", err
		}
		turn = append(turn, reply)

		if len(reply.ToolCalls) == 0 {
			if a.memory {
				a.history = append(a.history, turn...)
			}
			return reply.Content, nil
		}

		log.Debug().Int("step", step).Int("tool_calls", len(reply.ToolCalls)).Msg("model requested tools")
		for _, call := range reply.ToolCalls {
			turn = append(turn, a.callTool(ctx, call, out))
		}
	}

	log.Warn().Int("max_steps", a.maxSteps).Msg("agent step budget exhausted")
	return "", ErrMaxSteps
}

func (a *Agent) buildMessages(turn []openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 1+len(a.history)+len(turn))
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: a.profile.SystemPrompt(),
	})
	if a.memory {
		messages = append(messages, a.history...)
	}
	return append(messages, turn...)
}

// complete streams one model reply, writing text deltas to out.
func (a *Agent) complete(ctx context.Context, messages []openai.ChatCompletionMessage, out io.Writer) (openai.ChatCompletionMessage, error) {
	request := openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		Tools:    a.tools,
		Stream:   true,
	}

	stream, err := WithRetry(ctx, a.retry, "llm_chat_stream", func() (*openai.ChatCompletionStream, error) {
		return a.client.CreateChatCompletionStream(ctx, request)
	})
	if err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("create chat completion: %w", err)
	}
	defer stream.Close()

	var content strings.Builder
	calls := &toolCallAccumulator{}
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return openai.ChatCompletionMessage{}, fmt.Errorf("read chat stream: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta
		if delta.Content != "" {
			content.WriteString(delta.Content)
			if out != nil {
				_, _ = io.WriteString(out, delta.Content)
			}
		}
		for _, tc := range delta.ToolCalls {
			calls.add(tc)
		}
	}

	return openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		Content:   content.String(),
		ToolCalls: calls.result(),
	}, nil
}

func (a *Agent) callTool(ctx context.Context, call openai.ToolCall, out io.Writer) openai.ChatCompletionMessage {
	if a.profile.ShowToolCalls && out != nil {
		fmt.Fprintf(out, "\nRunning: %s(%s)\n", call.Function.Name, call.Function.Arguments)
	}

	var resp adapter.Response
	cmd, err := commandForToolCall(call)
	if err != nil {
		resp = &adapter.ErrorResult{Error: err.Error()}
	} else {
		resp = a.session.Execute(ctx, cmd)
	}

	failed := adapter.IsError(resp)
	if failed {
		log.Warn().Str("tool", call.Function.Name).Interface("response", resp).Msg("tool call returned an error")
	}
	if a.instrumenter != nil {
		a.instrumenter.RecordToolCall(ctx, call.Function.Name, failed)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		payload = []byte(`{"error":"failed to encode tool result"}`)
	}

	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    string(payload),
		Name:       call.Function.Name,
		ToolCallID: call.ID,
	}
}

// toolCallAccumulator merges streamed tool call fragments by index.
type toolCallAccumulator struct {
	calls map[int]*openai.ToolCall
	last  int
}

func (t *toolCallAccumulator) add(delta openai.ToolCall) {
	if t.calls == nil {
		t.calls = make(map[int]*openai.ToolCall)
	}

	idx := t.last
	switch {
	case delta.Index != nil:
		idx = *delta.Index
	case delta.ID != "" && len(t.calls) > 0:
		idx = t.last + 1
	}
	t.last = idx

	call, ok := t.calls[idx]
	if !ok {
		call = &openai.ToolCall{Type: openai.ToolTypeFunction}
		t.calls[idx] = call
	}
	if delta.ID != "" {
		call.ID = delta.ID
	}
	if delta.Type != "" {
		call.Type = delta.Type
	}
	if delta.Function.Name != "" {
		call.Function.Name = delta.Function.Name
	}
	call.Function.Arguments += delta.Function.Arguments
}

func (t *toolCallAccumulator) result() []openai.ToolCall {
	if len(t.calls) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(t.calls))
	for idx := range t.calls {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	calls := make([]openai.ToolCall, 0, len(indexes))
	for _, idx := range indexes {
		calls = append(calls, *t.calls[idx])
	}
	return calls
}
