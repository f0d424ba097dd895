package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, zap.NewNop()), mr
}

func TestAsideFetchesOnceThenHits(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0

	for i := 0; i < 3; i++ {
		var got []string
		err := c.Aside(ctx, "trending", &got, time.Minute, func() error {
			calls++
			got = []string{"p1", "p2"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, got)
	}
	assert.Equal(t, 1, calls)
}

func TestAsideExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	fetch := func(dest *int) func() error {
		return func() error {
			calls++
			*dest = calls
			return nil
		}
	}

	var first int
	require.NoError(t, c.Aside(ctx, "k", &first, time.Second, fetch(&first)))
	mr.FastForward(2 * time.Second)

	var second int
	require.NoError(t, c.Aside(ctx, "k", &second, time.Second, fetch(&second)))
	assert.Equal(t, 2, second)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	c, mr := newTestCache(t)
	var dest string

	err := c.Aside(context.Background(), "k", &dest, time.Minute, func() error {
		return errors.New("store down")
	})
	assert.EqualError(t, err, "store down")
	assert.False(t, mr.Exists("k"))
}

func TestPassThroughWithoutClient(t *testing.T) {
	c := Connect("", zap.NewNop())
	assert.Nil(t, c.Client())

	calls := 0
	var dest int
	for i := 0; i < 2; i++ {
		require.NoError(t, c.Aside(context.Background(), "k", &dest, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Delete(context.Background(), "k"))
}

func TestAsideSurvivesRedisOutage(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var dest string
	err := c.Aside(context.Background(), "k", &dest, time.Minute, func() error {
		dest = "fresh"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", dest)
}
