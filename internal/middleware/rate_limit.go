package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows limit requests per client IP per fixed one-minute
// window, counted in redis. Redis failures let the request through.
func RateLimit(rdb redis.Cmdable, limit int, log *slog.Logger) echo.MiddlewareFunc {
	return rateLimit(rdb, limit, log, time.Now)
}

func rateLimit(rdb redis.Cmdable, limit int, log *slog.Logger, now func() time.Time) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 {
				return next(c)
			}
			window := now().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", c.RealIP(), window)
			ctx := c.Request().Context()

			pipe := rdb.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, time.Minute)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Warn("rate limiter unavailable", "error", err)
				return next(c)
			}

			count := incr.Val()
			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				h.Set("Retry-After", strconv.FormatInt(60-now().Unix()%60, 10))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}
