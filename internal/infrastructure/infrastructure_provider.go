package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog/log"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/internal/infrastructure/auth"
	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/infrastructure/metrics"
	"github.com/janhq/search-agent/internal/infrastructure/serper"
	"github.com/janhq/search-agent/pkg/observability"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Telemetry
	ProvideObservability,

	// Search backend and the dispatcher in front of it
	ProvideSearchClient,
	ProvideAdapterServer,

	// Auth validator
	ProvideAuthValidator,
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideObservability initializes tracing and metrics exporters
func ProvideObservability(ctx context.Context, cfg *config.Config) (*observability.Provider, error) {
	return observability.Init(ctx, cfg.Observability())
}

// ProvideSearchClient provides the Serper search client
func ProvideSearchClient(cfg *config.Config) adapter.SearchClient {
	if cfg.SerperAPIKey == "" {
		log.Warn().Msg("SERPER_API_KEY is not set; searches will be rejected upstream")
	}
	return serper.NewClient(serper.ClientConfig{
		APIKey:    cfg.SerperAPIKey,
		BaseURL:   cfg.SerperBaseURL,
		Timeout:   cfg.SerperTimeout(),
		UserAgent: config.ServiceName + "/" + cfg.Version,
	})
}

// ProvideAdapterServer provides the command dispatcher
func ProvideAdapterServer(client adapter.SearchClient, provider *observability.Provider) *adapter.Server {
	return adapter.NewServer(client,
		adapter.WithSanitizer(provider.Sanitizer),
		adapter.WithRecorder(metrics.CommandRecorder{}),
	)
}

// ProvideAuthValidator provides the JWT validator; it passes requests through when auth is disabled
func ProvideAuthValidator(ctx context.Context, cfg *config.Config) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log.Logger)
}
