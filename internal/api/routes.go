// Package api provides the HTTP API for the Helpdesk Pro server.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/api/handlers"
	"github.com/helpdeskpro/helpdesk/internal/api/middleware"
	"github.com/helpdeskpro/helpdesk/internal/auth"
	"github.com/helpdeskpro/helpdesk/internal/config"
	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/metrics"
	"github.com/helpdeskpro/helpdesk/internal/tenancy"
)

// RouterConfig holds configuration for the API router.
type RouterConfig struct {
	Environment config.Environment
	// AllowedOrigins for CORS. Empty means all origins allowed in dev mode.
	AllowedOrigins []string
	// RateLimitRequests is the number of requests allowed per period.
	RateLimitRequests int64
	// RateLimitPeriod is the duration string for rate limiting (e.g. "1m", "1h").
	RateLimitPeriod string
	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration
	// Version information for the version endpoint.
	Version   string
	Commit    string
	BuildDate string
}

// DefaultRouterConfig returns a RouterConfig with sensible defaults for development.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		Environment:       config.EnvDevelopment,
		AllowedOrigins:    []string{},
		RateLimitRequests: 100,
		RateLimitPeriod:   "1m",
		SessionTTL:        24 * time.Hour,
		Version:           "dev",
		Commit:            "unknown",
		BuildDate:         "unknown",
	}
}

// Router wraps a Gin engine with configured middleware and routes.
type Router struct {
	Engine   *gin.Engine
	logger   zerolog.Logger
	sessions *auth.SessionStore
	db       *db.DB
}

// NewRouter creates a new Router with the given dependencies.
func NewRouter(
	cfg RouterConfig,
	database *db.DB,
	sessions *auth.SessionStore,
	logger zerolog.Logger,
) (*Router, error) {
	r := &Router{
		Engine:   gin.New(),
		logger:   logger.With().Str("component", "router").Logger(),
		sessions: sessions,
		db:       database,
	}

	httpMetrics := metrics.NewHTTPMetrics()
	httpMetrics.MustRegister(metrics.NewOrgCollector(database, logger))

	// Global middleware
	r.Engine.Use(gin.Recovery())
	r.Engine.Use(middleware.RequestLogger(logger))
	r.Engine.Use(middleware.CORS(cfg.AllowedOrigins, cfg.Environment))
	r.Engine.Use(middleware.SecurityHeaders())
	r.Engine.Use(httpMetrics.Middleware())

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitPeriod)
	if err != nil {
		return nil, err
	}
	r.Engine.Use(rateLimiter)

	// Unauthenticated endpoints
	healthHandler := handlers.NewHealthHandler(database, logger)
	healthHandler.RegisterPublicRoutes(r.Engine)

	versionHandler := handlers.NewVersionHandler(cfg.Version, cfg.Commit, cfg.BuildDate, logger)
	versionHandler.RegisterPublicRoutes(r.Engine)

	r.Engine.GET("/metrics", httpMetrics.Handler())

	// Tenancy workflows shared by auth and organization endpoints
	resolver := tenancy.NewResolver(database, logger)
	bootstrapper := tenancy.NewBootstrapper(database, logger)

	authHandler := handlers.NewAuthHandler(database, sessions, bootstrapper, resolver, cfg.SessionTTL, logger)

	authPublic := r.Engine.Group("/auth")
	authHandler.RegisterPublicRoutes(authPublic)

	authProtected := r.Engine.Group("/auth")
	authProtected.Use(middleware.RequireAuth(sessions, database, logger))
	authProtected.Use(middleware.VerifyUser(database, sessions, logger))
	authHandler.RegisterProtectedRoutes(authProtected)

	// API v1 routes (session required)
	apiV1 := r.Engine.Group("/api/v1")
	apiV1.Use(middleware.RequireAuth(sessions, database, logger))
	apiV1.Use(middleware.VerifyUser(database, sessions, logger))

	requireOrg := middleware.RequireOrg(resolver)

	orgsHandler := handlers.NewOrganizationsHandler(database, bootstrapper, logger)
	orgsHandler.RegisterRoutes(apiV1, requireOrg)

	// Everything below is tenant-scoped
	tenantScoped := apiV1.Group("")
	tenantScoped.Use(requireOrg)

	handlers.NewTicketsHandler(database, logger).RegisterRoutes(tenantScoped)
	handlers.NewArticlesHandler(database, logger).RegisterRoutes(tenantScoped)
	handlers.NewDashboardHandler(database, logger).RegisterRoutes(tenantScoped)

	return r, nil
}
