package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// TurnInstrumenter records agent turns and the tool calls made during them.
// The chat CLI has no scrape endpoint, so these go out through the OTLP meter.
type TurnInstrumenter struct {
	tracer       trace.Tracer
	turnDuration metric.Float64Histogram
	turnsTotal   metric.Int64Counter
	toolCalls    metric.Int64Counter
}

// NewTurnInstrumenter creates the turn instruments on the given meter
func NewTurnInstrumenter(tracer trace.Tracer, meter metric.Meter, serviceName string) (*TurnInstrumenter, error) {
	prefix := strings.ReplaceAll(serviceName, "-", "_")

	turnDuration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_turn_duration_seconds", prefix),
		metric.WithDescription("Agent turn duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	turnsTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_turns_total", prefix),
		metric.WithDescription("Total agent turns"),
	)
	if err != nil {
		return nil, err
	}

	toolCalls, err := meter.Int64Counter(
		fmt.Sprintf("%s_tool_calls_total", prefix),
		metric.WithDescription("Tool calls issued by the model"),
	)
	if err != nil {
		return nil, err
	}

	return &TurnInstrumenter{
		tracer:       tracer,
		turnDuration: turnDuration,
		turnsTotal:   turnsTotal,
		toolCalls:    toolCalls,
	}, nil
}

// InstrumentTurn wraps one agent turn in a span and records its outcome
func (t *TurnInstrumenter) InstrumentTurn(ctx context.Context, model string, fn func(context.Context) error) error {
	ctx, span := t.tracer.Start(ctx, "agent.turn",
		trace.WithAttributes(attribute.String(AttrModel, model)),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	status := Status(err != nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	attrs := metric.WithAttributes(
		attribute.String(AttrModel, model),
		attribute.String(AttrStatus, status),
	)
	t.turnDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	t.turnsTotal.Add(ctx, 1, attrs)
	return err
}

// RecordToolCall counts a tool call and whether the adapter reported an error
func (t *TurnInstrumenter) RecordToolCall(ctx context.Context, tool string, failed bool) {
	status := Status(failed)
	t.toolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrToolName, tool),
		attribute.String(AttrStatus, status),
	))
}
