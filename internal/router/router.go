package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/notes-api/internal/cache"
	"github.com/iliyamo/notes-api/internal/handler"
	"github.com/iliyamo/notes-api/internal/middleware"
)

// RegisterRoutes registers the routes that live outside the /api prefix:
// liveness, readiness, prometheus metrics and the static dashboard.
func RegisterRoutes(e *echo.Echo, db *sql.DB, store cache.Store) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db, store))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	// The dashboard is a static single page served from web/.
	e.Static("/", "web")
}

// RegisterAuth registers the authentication endpoints under /api/auth and
// the protected profile endpoint. rateLimit guards the unauthenticated
// credential endpoints against brute forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register, rateLimit)
	g.POST("/login", a.Login, rateLimit)
	g.GET("/profile", a.Profile, middleware.JWTAuth(jwtSecret))
}

// RegisterNotes registers the note CRUD endpoints under /api/notes. All
// of them require a valid access token; the middleware injects the
// caller's id, which every handler uses as the owner.
func RegisterNotes(e *echo.Echo, n *handler.NotesHandler, jwtSecret string) {
	g := e.Group("/api/notes")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("", n.List)
	g.POST("", n.Create)
	g.GET("/:id", n.Get)
	g.PATCH("/:id", n.Update)
	g.DELETE("/:id", n.Delete)
}
