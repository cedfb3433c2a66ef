package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spacehq/space-auth/internal/api/handler"
	"github.com/spacehq/space-auth/internal/api/middleware"
	"github.com/spacehq/space-auth/internal/core/ports"
	"github.com/spacehq/space-auth/internal/core/service"
	"github.com/spacehq/space-auth/internal/infrastructure/config"
	mongodb "github.com/spacehq/space-auth/internal/infrastructure/db/mongo"
	redisdb "github.com/spacehq/space-auth/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The middleware pipeline is composed here, in order: identity resolution
// first, then the access-policy decision, then the matched handler.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	store := mongodb.NewUserRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := service.NewBcryptHasher()
	limiter := redisdb.NewLoginLimiter(rdb, log)
	authService := service.NewAuthService(store, tokens, hasher, limiter, audit, log)
	authHandler := handler.NewAuthHandler(authService)

	// --- Authentication pipeline ---
	e.Use(middleware.Authenticate(tokens, store, log))
	e.Use(middleware.RequireAccess(middleware.DefaultAccessPolicy()))

	// --- Auth routes (public prefix) ---
	e.POST("/api/v1/auth/register", authHandler.Register)
	e.POST("/api/v1/auth/login", authHandler.Login)
	e.GET("/api/v1/auth/check", authHandler.Check)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
