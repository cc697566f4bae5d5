// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/soulful-cms/internal/config"
	"github.com/iliyamo/soulful-cms/internal/handler"
	"github.com/iliyamo/soulful-cms/internal/middleware"
)

// RegisterRoutes registers routes that need no handler state. Currently it
// exposes only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic wires the website-facing endpoints. The blog listing and
// detail responses go through the Redis response cache; the contact intake is
// rate limited. A nil Redis client disables both transparently.
func RegisterPublic(e *echo.Echo, blogs *handler.PublicBlogHandler, contact *handler.ContactHandler, rdb *redis.Client) {
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	g := e.Group("/api")
	g.GET("/blogs", blogs.List, middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/blogs/:slug", blogs.GetBySlug, middleware.NewRedisCache(cacheCfg, rdb))
	g.POST("/contact", contact.Submit, middleware.NewTokenBucket(rlCfg, rdb))
}

// RegisterAdmin wires the admin API under /api/admin. Login and logout are
// reachable without a session (login is rate limited); everything else sits
// behind the cookie session guard requiring the ADMIN role.
func RegisterAdmin(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	auth *handler.AuthHandler, blogs *handler.BlogHandler,
	stats *handler.StatsHandler, upload *handler.UploadHandler) {

	rlCfg := config.LoadRateLimitConfig()

	open := e.Group("/api/admin")
	open.POST("/login", auth.Login, middleware.NewTokenBucket(rlCfg, rdb))
	open.POST("/logout", auth.Logout)

	guarded := e.Group("/api/admin")
	guarded.Use(middleware.SessionAuth(cfg.JWTSecret))
	guarded.GET("/me", auth.Me)
	guarded.PUT("/password", auth.ChangePassword)
	guarded.PUT("/profile", auth.UpdateProfile)
	guarded.GET("/stats", stats.Get)
	guarded.POST("/upload", upload.Upload)

	guarded.POST("/blogs", blogs.Create)
	guarded.GET("/blogs", blogs.List)
	guarded.GET("/blogs/:id", blogs.Get)
	guarded.PUT("/blogs/:id", blogs.Update)
	guarded.DELETE("/blogs/:id", blogs.Delete)
}

// RegisterAdminPages serves the static admin panel under /admin behind the
// redirecting page guard. /admin/login always passes so the login page never
// loops through auth; every other path outside /admin bypasses the guard
// entirely.
func RegisterAdminPages(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin", middleware.PageGuard(cfg.JWTSecret, "/admin/login"))
	g.Static("", cfg.AdminPagesDir)
}
