package observability

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Config wraps tracing and push-metric settings
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string // dev, staging, production
	TracingEnabled bool
	MetricsEnabled bool
	OTLPEndpoint   string
	OTLPHeaders    map[string]string
	OTLPInsecure   bool
	SamplingRate   float64 // 0.0 - 1.0
	PIILevel       string  // none|hashed|full
	PIISalt        string

	TraceBatchTimeout time.Duration
	MetricInterval    time.Duration
	ResourceAttrs     []attribute.KeyValue
}

// DefaultConfig returns sensible defaults; exporters stay off until enabled
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:       serviceName,
		ServiceVersion:    "unknown",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4318",
		OTLPInsecure:      true,
		SamplingRate:      1.0,
		PIILevel:          "hashed",
		TraceBatchTimeout: 5 * time.Second,
		MetricInterval:    15 * time.Second,
	}
}
