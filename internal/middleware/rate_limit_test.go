package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestCheckRateLimitWindow(t *testing.T) {
	rdb, mr := newRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "login", "ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "hit %d", i+1)
	}
	allowed, err := CheckRateLimit(ctx, rdb, "login", "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// other clients have their own budget
	allowed, err = CheckRateLimit(ctx, rdb, "login", "ip:2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	mr.FastForward(time.Minute + time.Second)
	allowed, err = CheckRateLimit(ctx, rdb, "login", "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitKeyAlwaysExpires(t *testing.T) {
	rdb, mr := newRedis(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := CheckRateLimit(ctx, rdb, "login", "ip:9", 5, time.Minute)
		require.NoError(t, err)

		v, err := mr.Get("rl:login:ip:9")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), v)
		ttl := mr.TTL("rl:login:ip:9")
		assert.Greater(t, ttl, time.Duration(0), "hit %d left the counter without a TTL", i)
		assert.LessOrEqual(t, ttl, time.Minute)
	}

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists("rl:login:ip:9"))
}

func TestCheckRateLimitNilClient(t *testing.T) {
	allowed, err := CheckRateLimit(context.Background(), nil, "login", "ip:1", 1, time.Minute)
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	rdb, mr := newRedis(t)
	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RateLimit(rdb, "auth", 2, time.Minute, zap.NewNop()))

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// fail open once Redis is gone
	mr.Close()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
