package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/janhq/search-agent/internal/infrastructure/config"
	"github.com/janhq/search-agent/internal/interfaces/httpserver/responses"
	"github.com/janhq/search-agent/internal/utils/platformerrors"
)

var validMethods = []string{"RS256", "RS384", "RS512"}

// Validator validates JWTs using JWKS.
type Validator struct {
	enabled  bool
	issuer   string
	audience string
	log      zerolog.Logger
	jwks     *keyfunc.JWKS
	keyFunc  jwt.Keyfunc
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	v := &Validator{
		enabled:  cfg.AuthEnabled,
		issuer:   cfg.AuthIssuer,
		audience: audience(cfg),
		log:      log,
	}
	if !cfg.AuthEnabled {
		return v, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}
	v.jwks = jwks
	v.keyFunc = jwks.Keyfunc
	return v, nil
}

func audience(cfg *config.Config) string {
	if cfg.AuthAudience != "" {
		return cfg.AuthAudience
	}
	return cfg.Account
}

// Ready reports whether the validator can check tokens.
func (v *Validator) Ready() bool {
	return v == nil || !v.enabled || v.keyFunc != nil
}

// Close stops the background JWKS refresh.
func (v *Validator) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Middleware enforces JWT auth when enabled.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing bearer token", "c3f1a9d2-7e45-4b8a-9f06-1d2e3c4b5a67")
			return
		}

		opts := []jwt.ParserOption{
			jwt.WithIssuer(v.issuer),
			jwt.WithValidMethods(validMethods),
		}
		if v.audience != "" {
			opts = append(opts, jwt.WithAudience(v.audience))
		}

		token, err := jwt.Parse(tokenString, v.keyFunc, opts...)
		if err != nil || !token.Valid {
			v.log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("rejected bearer token")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "invalid token", "5a7e2b90-1c3d-4f68-8e24-b6d9a0c7f315")
			return
		}

		c.Set("auth_token", token)
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
