package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/testutil"
	"github.com/anonto42/careerpulse/backend/pkg/metrics"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostFanOutIsCapped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.signup(t, "author")

	var followerIDs []string
	for i := 0; i < MaxPostFanOut+5; i++ {
		f := e.signup(t, fmt.Sprintf("follower%02d", i))
		_, _, err := e.follows.ToggleFollow(ctx, f, author.ID)
		require.NoError(t, err)
		followerIDs = append(followerIDs, f.ID)
	}
	author = e.reload(t, author.ID)
	before := len(e.store.Notifications())

	post := e.post(t, author, "hello #world")

	created := e.store.Notifications()[before:]
	require.Len(t, created, MaxPostFanOut)
	for i, n := range created {
		assert.Equal(t, followerIDs[i], n.UserID)
		assert.Equal(t, models.NotificationPost, n.Type)
		assert.Equal(t, post.ID, n.PostID)
		assert.Equal(t, "author created a new post", n.Message)
		assert.False(t, n.Read)
	}
}

func TestNotificationFailureDoesNotFailPrimaryAction(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	bob := e.signup(t, "bob")
	e.store.NotificationErr = testutil.ErrStoreDown

	failures := metrics.NotificationFailures.WithLabelValues(string(models.NotificationFollow))
	before := promtestutil.ToFloat64(failures)

	following, followed, err := e.follows.ToggleFollow(ctx, ada, bob.ID)
	require.NoError(t, err)
	assert.True(t, followed)
	assert.Equal(t, []string{bob.ID}, following)
	assert.Empty(t, e.store.Notifications())
	assert.Equal(t, before+1, promtestutil.ToFloat64(failures))
}

func TestNotifyReportsStoreErrors(t *testing.T) {
	e := newEnv(t)
	ada := e.signup(t, "ada")
	e.store.NotificationErr = testutil.ErrStoreDown

	err := e.notifications.Notify(context.Background(), "bob", models.NotificationFollow, ada, "hi", "")
	assert.ErrorIs(t, err, testutil.ErrStoreDown)
}

func TestNotificationInbox(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	bob := e.signup(t, "bob")

	for i := 0; i < 3; i++ {
		require.NoError(t, e.notifications.Notify(ctx, bob.ID, models.NotificationFollow, ada, fmt.Sprintf("n%d", i), ""))
	}

	list, err := e.notifications.List(ctx, bob, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "n2", list[0].Message, "newest first")

	count, err := e.notifications.UnreadCount(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	marked, err := e.notifications.MarkAllRead(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	count, err = e.notifications.UnreadCount(ctx, bob)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClampPage(t *testing.T) {
	skip, limit := clampPage(-4, 0, 20, 50)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(20), limit)

	_, limit = clampPage(0, 500, 20, 50)
	assert.Equal(t, int64(50), limit)
}
