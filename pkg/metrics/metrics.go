// Package metrics defines the Prometheus collectors and the HTTP instrumentation.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	// HTTPRequests counts handled requests by method, route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerpulse_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPLatency records request latency by method and route template.
	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "careerpulse_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// NotificationsCreated counts persisted notifications by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerpulse_notifications_created_total",
		Help: "Total number of notifications persisted",
	}, []string{"type"})

	// NotificationFailures counts notifications that could not be persisted.
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerpulse_notification_failures_total",
		Help: "Total number of notifications dropped after a store error",
	}, []string{"type"})

	// ReactionTransitions counts reaction toggles by outcome.
	ReactionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerpulse_reaction_transitions_total",
		Help: "Total number of reaction toggles by transition",
	}, []string{"transition"})

	// CacheLookups counts cache reads by key prefix and result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerpulse_cache_lookups_total",
		Help: "Total number of cache lookups",
	}, []string{"key", "result"})

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerpulse_rate_limited_total",
		Help: "Total number of requests rejected by rate limiting",
	}, []string{"resource"})
)

// Middleware records request count and latency for every route
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			HTTPLatency.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Serve exposes /metrics on its own listener until ctx is cancelled
func Serve(ctx context.Context, port string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Metrics server listening", zap.String("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Metrics server stopped", zap.Error(err))
	}
}
