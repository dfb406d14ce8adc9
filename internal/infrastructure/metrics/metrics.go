package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search agent metrics - using explicit registration
var (
	// HTTP requests served by the MCP endpoint
	RequestsTotal *prometheus.CounterVec

	// Adapter command outcomes
	ToolCallsTotal *prometheus.CounterVec

	// Adapter command duration histogram
	ToolDuration *prometheus.HistogramVec

	// Results returned per successful search
	SearchResults *prometheus.HistogramVec

	// External provider latency
	ExternalProviderLatency *prometheus.HistogramVec
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "search_agent",
			Subsystem: "mcp",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "status"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "search_agent",
			Subsystem: "mcp",
			Name:      "commands_total",
			Help:      "Total adapter commands by action and outcome",
		},
		[]string{"action", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "search_agent",
			Subsystem: "mcp",
			Name:      "command_duration_seconds",
			Help:      "Adapter command duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"action"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "search_agent",
			Subsystem: "mcp",
			Name:      "search_results_returned",
			Help:      "Number of organic results returned by the provider",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10},
		},
		[]string{"provider"},
	)

	ExternalProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "search_agent",
			Subsystem: "mcp",
			Name:      "external_provider_latency_seconds",
			Help:      "External provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "status"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ExternalProviderLatency)
}

// RecordRequest records an HTTP request
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall records an adapter command outcome
func RecordToolCall(action, status string, durationSec float64) {
	if action == "" {
		action = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(action, status).Inc()
	ToolDuration.WithLabelValues(action).Observe(durationSec)
}

// CommandRecorder feeds dispatcher outcomes into the command metrics.
type CommandRecorder struct{}

// RecordCommand implements adapter.CommandRecorder
func (CommandRecorder) RecordCommand(action, status string, duration time.Duration) {
	RecordToolCall(action, status, duration.Seconds())
}

// RecordSearchResults records how many results a provider returned
func RecordSearchResults(provider string, count int) {
	if count < 0 {
		return
	}
	SearchResults.WithLabelValues(provider).Observe(float64(count))
}

// RecordExternalProviderLatency records external provider response time
func RecordExternalProviderLatency(provider, status string, durationSec float64) {
	ExternalProviderLatency.WithLabelValues(provider, status).Observe(durationSec)
}
