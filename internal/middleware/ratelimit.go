package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/notes-api/internal/config"
)

// NewRateLimiter returns a fixed-window rate limiter backed by Redis.
// Each client key gets cfg.Limit requests per cfg.Window; the counter key
// expires with the window. When the limiter is disabled, no Redis client
// is available, or Redis errors mid-request, traffic passes through —
// limiting is protection, not a dependency.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	windowSecs := int64(cfg.Window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			now := time.Now().Unix()
			window := now - now%windowSecs
			key := strings.Join([]string{
				cfg.Prefix,
				clientID(c),
				c.Request().Method + " " + c.Path(),
				strconv.FormatInt(window, 10),
			}, ":")

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				retry := window + windowSecs - now
				c.Response().Header().Set("Retry-After", strconv.FormatInt(retry, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}

// clientID keys the limiter by authenticated user when present, falling
// back to the caller's IP for anonymous endpoints such as login.
func clientID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return "user:" + v
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
