package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/middleware"
	"github.com/loopyard/loyalty_backend/internal/notifications"
	"github.com/loopyard/loyalty_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *notifications.Hub,
	dbPool *pgxpool.Pool,
) {
	home := NewHomeHandler(dbPool)
	r.GET("/health", home.Health)
	r.GET("/ready", home.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register public authentication routes
	registerAuthRoutes(r, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, hub)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *notifications.Hub,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// The issuance and validation endpoints get their own, tighter limits so
	// a misbehaving client cannot mint or probe codes at line rate.
	generateLimit := rateLimitFromFormat(cfg.RateLimitGenerate)
	validateLimit := rateLimitFromFormat(cfg.RateLimitValidate)

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User)
	registerVenueRoutes(v1, services.Venue)
	registerCodeRoutes(v1, services.Code, generateLimit, validateLimit)
	registerLedgerRoutes(v1, services.Ledger)
	registerRewardRoutes(v1, services.Reward)
	registerDashboardRoutes(v1, services.Reporting)
	registerWSRoutes(v1, hub)
}

// rateLimitFromFormat builds a per-IP limiter middleware from a formatted
// rate like "30-M". A malformed rate falls back to a no-op middleware rather
// than failing startup.
func rateLimitFromFormat(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}
