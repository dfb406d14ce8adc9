package serper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/internal/infrastructure/metrics"
)

const (
	// DefaultBaseURL is the hosted Serper API.
	DefaultBaseURL = "https://google.serper.dev"

	// ResultCount is the fixed number of results requested per search.
	ResultCount = 5

	providerName = "serper"
	searchPath   = "/search"
	tracerName   = "github.com/janhq/search-agent/internal/infrastructure/serper"
)

// ClientConfig captures the knobs exposed to operators for the Serper client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout   time.Duration
	UserAgent string
}

// Client issues exactly one HTTP request per Search call. It never retries.
type Client struct {
	cfg    ClientConfig
	http   *resty.Client
	tracer trace.Tracer
}

var _ adapter.SearchClient = (*Client)(nil)

// NewClient creates a Serper client.
func NewClient(cfg ClientConfig) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "search-agent/1.0"
	}

	httpClient := resty.New().
		SetHeader("User-Agent", cfg.UserAgent).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	return &Client{
		cfg:    cfg,
		http:   httpClient,
		tracer: otel.Tracer(tracerName),
	}
}

// Search posts the query to Serper and returns the decoded JSON object.
// A 2xx body that is JSON but not an object decodes to an empty payload.
func (c *Client) Search(ctx context.Context, query string) (map[string]any, error) {
	ctx, span := c.tracer.Start(ctx, "serper.search", trace.WithAttributes(
		attribute.Int("serper.num", ResultCount),
	))
	defer span.End()

	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordExternalProviderLatency(providerName, status, time.Since(startTime).Seconds())
	}()

	endpoint := c.cfg.BaseURL + searchPath
	body := map[string]any{
		"q":   query,
		"num": ResultCount,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		log.Error().Err(err).Str("service", providerName).Str("endpoint", endpoint).Msg("failed to query serper search API")
		return nil, &adapter.TransportError{Err: fmt.Errorf("failed to query serper search API: %w", err)}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	// Unfollowed redirects (300, 304, 3xx without Location) are failures too.
	if !resp.IsSuccess() {
		status = "error"
		span.SetStatus(codes.Error, resp.Status())
		log.Error().Int("status", resp.StatusCode()).Str("service", providerName).Str("response", resp.String()).Msg("serper search API error")
		return nil, &adapter.TransportError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var decoded any
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid response body")
		log.Error().Err(err).Str("service", providerName).Msg("serper returned a non-JSON body")
		return nil, fmt.Errorf("decode serper response: %w", err)
	}

	payload, ok := decoded.(map[string]any)
	if !ok {
		log.Warn().Str("service", providerName).Msg("serper returned a non-object body, treating as empty")
		payload = map[string]any{}
	}

	organic, _ := payload["organic"].([]any)
	metrics.RecordSearchResults(providerName, len(organic))
	span.SetAttributes(attribute.Int("serper.organic_count", len(organic)))
	return payload, nil
}
