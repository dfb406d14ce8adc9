package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/janhq/search-agent/pkg/observability"
)

// ServiceName identifies this program in traces and metrics
const ServiceName = "search-agent"

// Config holds all configuration for the search agent
type Config struct {
	// HTTP Server - using SEARCH_AGENT_ prefix to avoid collisions
	HTTPPort  string `env:"SEARCH_AGENT_HTTP_PORT" envDefault:"8091"`
	LogLevel  string `env:"SEARCH_AGENT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SEARCH_AGENT_LOG_FORMAT" envDefault:"console"` // json or console
	LogFile   string `env:"SEARCH_AGENT_LOG_FILE"`
	Version   string `env:"SEARCH_AGENT_VERSION" envDefault:"dev"`

	// Search backend
	SerperAPIKey      string `env:"SERPER_API_KEY"`
	SerperBaseURL     string `env:"SERPER_BASE_URL" envDefault:"https://google.serper.dev"`
	SerperHTTPTimeout int    `env:"SERPER_HTTP_TIMEOUT" envDefault:"0"` // seconds, 0 disables

	// LLM driving the agent loop
	LLMAPIKey          string `env:"GROQ_API_KEY"`
	LLMBaseURL         string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	AgentModel         string `env:"AGENT_MODEL" envDefault:"llama-3.3-70b-versatile"`
	AgentProfileFile   string `env:"AGENT_PROFILE_FILE"`
	AgentMaxSteps      int    `env:"AGENT_MAX_STEPS" envDefault:"15"`
	AgentMemoryEnabled bool   `env:"AGENT_MEMORY_ENABLED" envDefault:"true"`

	// Retry for LLM calls
	LLMRetryMaxAttempts   int     `env:"LLM_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	LLMRetryInitialDelay  int     `env:"LLM_RETRY_INITIAL_DELAY" envDefault:"500"`
	LLMRetryMaxDelay      int     `env:"LLM_RETRY_MAX_DELAY" envDefault:"5000"`
	LLMRetryBackoffFactor float64 `env:"LLM_RETRY_BACKOFF_FACTOR" envDefault:"2.0"`

	// Remote adapter; empty runs the dispatcher in-process
	MCPServerURL string `env:"MCP_SERVER_URL"`

	// OpenTelemetry
	OTELEnabled      bool              `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint     string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELHeaders      map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envSeparator:"," envKeyValSeparator:"="`
	OTELInsecure     bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELSamplingRate float64           `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
	Environment      string            `env:"ENVIRONMENT" envDefault:"development"`
	PIILevel         string            `env:"TELEMETRY_PII_LEVEL" envDefault:"hashed"`
	PIISalt          string            `env:"TELEMETRY_PII_SALT"`

	// Authentication
	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	Account      string `env:"ACCOUNT"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
	AuthAudience string `env:"AUTH_AUDIENCE"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(os.Getenv("SEARCH_AGENT_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("SEARCH_AGENT_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}
	if cfg.SerperHTTPTimeout < 0 {
		return nil, fmt.Errorf("SERPER_HTTP_TIMEOUT must not be negative")
	}
	if cfg.AgentMaxSteps < 1 {
		return nil, fmt.Errorf("AGENT_MAX_STEPS must be at least 1")
	}
	if cfg.OTELSamplingRate < 0 || cfg.OTELSamplingRate > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLING_RATE must be between 0 and 1")
	}
	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.Account) == "" {
			return nil, fmt.Errorf("ACCOUNT is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return cfg, nil
}

// SerperTimeout converts SERPER_HTTP_TIMEOUT to a duration; zero means no deadline
func (c *Config) SerperTimeout() time.Duration {
	return time.Duration(c.SerperHTTPTimeout) * time.Second
}

// Observability maps the OTEL settings onto an observability.Config
func (c *Config) Observability() observability.Config {
	obs := observability.DefaultConfig(ServiceName)
	obs.ServiceVersion = c.Version
	obs.Environment = c.Environment
	obs.TracingEnabled = c.OTELEnabled
	obs.MetricsEnabled = c.OTELEnabled
	obs.OTLPEndpoint = c.OTELEndpoint
	obs.OTLPHeaders = c.OTELHeaders
	obs.OTLPInsecure = c.OTELInsecure
	obs.SamplingRate = c.OTELSamplingRate
	obs.PIILevel = c.PIILevel
	obs.PIISalt = c.PIISalt
	return obs
}

// RetryInitialDelay is LLM_RETRY_INITIAL_DELAY as a duration
func (c *Config) RetryInitialDelay() time.Duration {
	return time.Duration(c.LLMRetryInitialDelay) * time.Millisecond
}

// RetryMaxDelay is LLM_RETRY_MAX_DELAY as a duration
func (c *Config) RetryMaxDelay() time.Duration {
	return time.Duration(c.LLMRetryMaxDelay) * time.Millisecond
}
