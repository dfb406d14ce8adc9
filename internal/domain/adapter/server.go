package adapter

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/search-agent/pkg/observability"
	"github.com/janhq/search-agent/pkg/telemetry"
)

const tracerName = "github.com/janhq/search-agent/internal/domain/adapter"

// SearchClient performs one upstream search and returns the raw JSON payload.
// Upstream failures are reported as *TransportError.
type SearchClient interface {
	Search(ctx context.Context, query string) (map[string]any, error)
}

// CommandRecorder receives one sample per executed command.
type CommandRecorder interface {
	RecordCommand(action, status string, duration time.Duration)
}

type handlerFunc func(ctx context.Context, cmd Command) (Response, error)

// Server validates commands and routes them to their action handler.
// It is the single point where every failure below it becomes an ErrorResult.
type Server struct {
	client    SearchClient
	handlers  map[Action]handlerFunc
	sanitizer *telemetry.Sanitizer
	recorder  CommandRecorder
	tracer    trace.Tracer
}

// Option configures a Server.
type Option func(*Server)

// WithSanitizer scrubs queries before they reach logs and span attributes.
func WithSanitizer(sanitizer *telemetry.Sanitizer) Option {
	return func(s *Server) {
		s.sanitizer = sanitizer
	}
}

// WithRecorder reports every command's action, status and duration.
func WithRecorder(recorder CommandRecorder) Option {
	return func(s *Server) {
		s.recorder = recorder
	}
}

// NewServer creates a command dispatcher backed by the given search client.
func NewServer(client SearchClient, opts ...Option) *Server {
	s := &Server{
		client: client,
		tracer: otel.Tracer(tracerName),
	}
	s.handlers = map[Action]handlerFunc{
		ActionSearch: s.handleSearch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Actions lists the recognized actions in sorted order.
func (s *Server) Actions() []Action {
	actions := make([]Action, 0, len(s.handlers))
	for action := range s.handlers {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

// Execute runs a command and always returns a Response, never an error or panic.
func (s *Server) Execute(ctx context.Context, cmd Command) (resp Response) {
	startTime := time.Now()
	action, _ := cmd.Action()
	handler, supported := s.handlers[action]

	label := string(action)
	if !supported {
		label = "unsupported"
	}

	ctx, span := s.tracer.Start(ctx, "adapter.execute", trace.WithAttributes(
		attribute.String(observability.AttrAction, label),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("action", label).
				Msg("mcp command panicked")
			resp = NewErrorResult("%v", r)
		}

		errResult, failed := resp.(*ErrorResult)
		if failed {
			span.SetStatus(codes.Error, errResult.Error)
		}
		if s.recorder != nil {
			s.recorder.RecordCommand(label, observability.Status(failed), time.Since(startTime))
		}
	}()

	query, hasQuery := cmd.Field("query")
	if hasQuery {
		span.SetAttributes(observability.QueryAttr(query, s.sanitizer))
	}
	log.Info().
		Interface("action", cmd["action"]).
		Str("query", s.sanitize(query)).
		Bool("has_query", hasQuery).
		Msg("mcp command received")

	if !supported {
		log.Warn().
			Interface("action", cmd["action"]).
			Msg("rejecting unsupported mcp action")
		return &ErrorResult{Error: ErrUnsupportedAction.Error()}
	}

	result, err := handler(ctx, cmd)
	if err != nil {
		return s.errorResult(label, err)
	}
	return result
}

func (s *Server) handleSearch(ctx context.Context, cmd Command) (Response, error) {
	query, ok := cmd.Field("query")
	if !ok {
		return nil, &ValidationError{Field: "query", Message: "Missing required field: query"}
	}

	raw, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

func (s *Server) errorResult(action string, err error) *ErrorResult {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		log.Warn().
			Err(err).
			Str("action", action).
			Int("status", transportErr.StatusCode).
			Msg("search backend failed")
		return NewErrorResult("Search failed: %s", transportErr.Error())
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		log.Warn().
			Str("action", action).
			Str("field", validationErr.Field).
			Msg("mcp command failed validation")
		return &ErrorResult{Error: validationErr.Error()}
	}

	log.Error().Err(err).Str("action", action).Msg("mcp command failed")
	return &ErrorResult{Error: err.Error()}
}

func (s *Server) sanitize(query string) string {
	if s.sanitizer == nil {
		return query
	}
	return s.sanitizer.SanitizePrompt(query)
}
