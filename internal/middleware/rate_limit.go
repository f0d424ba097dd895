package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/careerpulse/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CheckRateLimit counts one hit for (resource, id) in a fixed window.
// It reports false once more than limit hits fell in the current window.
// The window key is created with its TTL and incremented in one MULTI/EXEC,
// so a counter can never outlive its window.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	var incr *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// RateLimit limits requests per client IP for resource. Without Redis, or when
// Redis fails, requests are let through.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if rdb == nil || limit <= 0 {
			return next
		}
		return func(c echo.Context) error {
			allowed, err := CheckRateLimit(c.Request().Context(), rdb, resource, "ip:"+c.RealIP(), limit, window)
			if err != nil {
				log.Warn("Rate limit check failed, allowing request", zap.String("resource", resource), zap.Error(err))
				return next(c)
			}
			if !allowed {
				metrics.RateLimited.WithLabelValues(resource).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, try again later")
			}
			return next(c)
		}
	}
}
