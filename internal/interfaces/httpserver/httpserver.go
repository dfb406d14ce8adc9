package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	searchagentdocs "github.com/janhq/search-agent/docs/swagger"
	"github.com/janhq/search-agent/internal/infrastructure/auth"
	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/routes"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/routes/mcp"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	router        *gin.Engine
	config        *config.Config
	mcpRoute      *mcp.MCPRoute
	commandRoute  *routes.CommandRoute
	authValidator *auth.Validator
}

func NewHTTPServer(
	cfg *config.Config,
	mcpRoute *mcp.MCPRoute,
	commandRoute *routes.CommandRoute,
	authValidator *auth.Validator,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.Tracing(config.ServiceName))
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	s := &HTTPServer{
		router:        router,
		config:        cfg,
		mcpRoute:      mcpRoute,
		commandRoute:  commandRoute,
		authValidator: authValidator,
	}
	s.setupRoutes()
	return s
}

func (s *HTTPServer) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": config.ServiceName})
	})

	s.router.GET("/readyz", func(c *gin.Context) {
		if s.authValidator != nil && !s.authValidator.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "initializing", "service": config.ServiceName})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": config.ServiceName})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	searchagentdocs.SwaggerInfo.Version = s.config.Version
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/v1")
	if s.authValidator != nil {
		v1.Use(s.authValidator.Middleware())
	}
	s.mcpRoute.RegisterRouter(v1)
	s.commandRoute.RegisterRouter(v1)
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.config.HTTPPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("search-agent HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
