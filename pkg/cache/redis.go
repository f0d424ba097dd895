// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/anonto42/careerpulse/backend/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache wraps an optional Redis client. A Cache with no client is a pass-through.
type Cache struct {
	client *redis.Client
	log    *zap.Logger
}

// Connect returns a Cache for addr. An empty addr, a bad URL or a failed ping
// yields a pass-through cache so the service keeps running without Redis.
func Connect(addr string, log *zap.Logger) *Cache {
	if addr == "" {
		log.Info("REDIS_URL not set, running without cache")
		return &Cache{log: log}
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Warn("Invalid REDIS_URL, continuing without cache", zap.Error(err))
			return &Cache{log: log}
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		_ = client.Close()
		return &Cache{log: log}
	}

	log.Info("Redis connected successfully")
	return &Cache{client: client, log: log}
}

// New wraps an existing client
func New(client *redis.Client, log *zap.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// Client returns the underlying Redis client, nil when running without Redis
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// GetJSON reports (true, nil) when key was found and decoded into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c.Client() == nil {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key with ttl
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.Client() == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

// Delete removes keys, ignoring a missing client
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c.Client() == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Aside reads key into dest, or calls fetch to fill dest and stores the result.
// Redis errors are logged and never fail the read.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := c.GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues(key, "error").Inc()
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	case found:
		metrics.CacheLookups.WithLabelValues(key, "hit").Inc()
		return nil
	case c.Client() != nil:
		metrics.CacheLookups.WithLabelValues(key, "miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	if err := c.SetJSON(ctx, key, dest, ttl); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Close releases the client
func (c *Cache) Close() error {
	if c.Client() == nil {
		return nil
	}
	return c.client.Close()
}
