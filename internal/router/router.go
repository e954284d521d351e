// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/propdesk/property-api/internal/config"
	"github.com/propdesk/property-api/internal/handler"
	"github.com/propdesk/property-api/internal/middleware"
	"github.com/propdesk/property-api/internal/model"
)

// RegisterRoutes registers routes that need no authentication or handler
// dependencies. Currently that is only the health check used by load
// balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session-lifecycle endpoints under /v1/auth and
// the protected /v1/me. The rate limiter is applied to the auth group to
// slow credential stuffing; jwtSecret verifies access tokens on protected
// routes.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh-token", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterUsers registers the admin-only users listing.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1/users")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))
	g.GET("", u.List)
}

// RegisterProperties registers property, unit and lease storage endpoints.
// Reads are public and cached; writes require a landlord or admin token.
func RegisterProperties(e *echo.Echo, p *handler.PropertyHandler, jwtSecret string, rdb *redis.Client) {
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/properties", p.ListProperties, cache)
	e.GET("/v1/properties/:id", p.GetProperty, cache)
	e.GET("/v1/properties/:id/units", p.ListUnits, cache)

	w := e.Group("/v1")
	w.Use(middleware.JWTAuth(jwtSecret))
	w.Use(middleware.RequireRole(model.RoleLandlord, model.RoleAdmin))
	w.POST("/properties", p.CreateProperty)
	w.POST("/properties/:id/units", p.CreateUnit)
	w.POST("/units/:id/leases", p.CreateLease)
	// Lease rows carry tenant data, so even reads stay behind the role gate.
	w.GET("/units/:id/leases", p.ListLeases)
}

// RegisterContact registers the public contact-form endpoint, rate limited
// like the auth group.
func RegisterContact(e *echo.Echo, h *handler.ContactHandler, rdb *redis.Client) {
	e.POST("/v1/contact", h.Submit, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
}
