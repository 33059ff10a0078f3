package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/notes-api/internal/cache"
)

// Health is a simple liveness endpoint used by load balancers and
// monitoring systems to verify that the process is running. It returns a
// plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready returns a readiness handler that pings the database and the
// cache. The cache is advisory, so a cache failure is reported in the
// body but does not fail the probe; a database failure does.
func Ready(db *sql.DB, store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := echo.Map{"database": "up", "cache": "up"}
		if err := db.PingContext(ctx); err != nil {
			status["database"] = "down"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		if err := store.Ping(ctx); err != nil {
			status["cache"] = "down"
		}
		return c.JSON(http.StatusOK, status)
	}
}
