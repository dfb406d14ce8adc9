package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/search-agent/internal/domain/adapter"
	"github.com/janhq/search-agent/internal/infrastructure/auth"
	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/infrastructure/mcpsession"
	"github.com/janhq/search-agent/internal/interfaces/httpserver"
	mcproute "github.com/janhq/search-agent/internal/interfaces/httpserver/routes/mcp"
	"github.com/janhq/search-agent/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// Application is the serve-mode object graph.
type Application struct {
	config        *config.Config
	httpServer    *httpserver.HTTPServer
	mcpRoute      *mcproute.MCPRoute
	observability *observability.Provider
	authValidator *auth.Validator
}

// Runtime is the smaller graph used by chat and search: an adapter session plus telemetry.
type Runtime struct {
	config        *config.Config
	session       adapter.Session
	observability *observability.Provider
}

// @title Search Agent MCP Service
// @version 1.0
// @description Serper web search exposed as a command protocol and as MCP tools.
// @contact.name Jan Server Team
// @contact.url https://github.com/janhq/jan-server
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func (app *Application) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.httpServer.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		app.shutdown()
		return nil
	})

	return g.Wait()
}

// StartStdio serves the MCP tools over stdin/stdout until ctx is done.
func (app *Application) StartStdio(ctx context.Context) error {
	defer app.shutdown()
	log.Info().Str("server", mcproute.ServerName).Msg("serving MCP over stdio")
	err := app.mcpRoute.Server().Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *Application) shutdown() {
	if app.authValidator != nil {
		app.authValidator.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.observability.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to flush telemetry")
	}
}

// Session returns the in-process session, or a remote MCP session when url is set.
// The returned func releases it.
func (rt *Runtime) Session(ctx context.Context, url string) (adapter.Session, func(), error) {
	if url == "" {
		return rt.session, func() {}, nil
	}

	remote, err := mcpsession.Connect(ctx, url, &http.Client{})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("endpoint", url).Msg("using remote MCP adapter")
	return remote, func() {
		if err := remote.Close(); err != nil {
			log.Debug().Err(err).Msg("close remote session")
		}
	}, nil
}

// Shutdown flushes telemetry.
func (rt *Runtime) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := rt.observability.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to flush telemetry")
	}
}
