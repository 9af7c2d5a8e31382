package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-pos/internal/config"
	"github.com/iliyamo/cinema-pos/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/cinema-pos/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/cinema-pos/internal/model"
)

// POSHandlers bundles every handler the box-office API exposes.
type POSHandlers struct {
	Halls     *handler.HallHandler
	Movies    *handler.MovieHandler
	Sessions  *handler.SessionHandler
	Schedule  *handler.ScheduleHandler
	SeatMaps  *handler.SeatMapHandler
	Sales     *handler.SaleHandler
	Customers *handler.CustomerHandler
	Reports   *handler.ReportHandler
}

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout with a refresh token in the body works without a JWT; a
	// session can always terminate itself.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Revoking every session of the calling employee requires the JWT.
	auth.POST("/logout", a.Logout)

	// Only admins create employee accounts; there is no self-signup at
	// a box office.
	admin := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	admin.POST("/register", a.Register)
}

// RegisterAPI registers the box-office endpoints under /v1.  All of
// them require a valid JWT; mutations of the catalog and schedule are
// admin-only, selling is open to both roles.  Read-heavy GET routes
// sit behind the Redis response cache, and the whole group behind the
// token-bucket rate limiter.
func RegisterAPI(e *echo.Echo, h POSHandlers, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
	g := e.Group(
		"/v1",
		middleware.NewTokenBucket(rlCfg, rdb),
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleOperator),
	)
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// ---- Halls ----
	g.GET("/halls", h.Halls.List, cached)
	g.POST("/halls", h.Halls.Create, adminOnly)

	// ---- Movies ----
	g.GET("/movies", h.Movies.List, cached)
	g.GET("/movies/:id", h.Movies.Get, cached)
	g.POST("/movies", h.Movies.Create, adminOnly)

	// ---- Sessions and schedule ----
	g.POST("/sessions", h.Sessions.Create, adminOnly)
	g.GET("/sessions/suggestions", h.Sessions.Suggestions)
	g.GET("/schedule", h.Schedule.Day)

	// ---- Seat maps ----
	// Never cached: availability must reflect concurrent sales.
	g.GET("/sessions/:id/seatmap", h.SeatMaps.Get)

	// ---- Sales ----
	g.POST("/sales", h.Sales.Sell)
	g.GET("/customers", h.Customers.Lookup)

	// ---- Reports ----
	g.GET("/reports/daily", h.Reports.Daily, adminOnly)
}
