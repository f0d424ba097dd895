package services

import (
	"context"
	"testing"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowIsSymmetric(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	bob := e.signup(t, "bob")

	following, followed, err := e.follows.ToggleFollow(ctx, ada, bob.ID)
	require.NoError(t, err)
	assert.True(t, followed)
	assert.Equal(t, []string{bob.ID}, following)
	assert.Contains(t, e.reload(t, ada.ID).Following, bob.ID)
	assert.Contains(t, e.reload(t, bob.ID).Followers, ada.ID)

	following, followed, err = e.follows.ToggleFollow(ctx, e.reload(t, ada.ID), bob.ID)
	require.NoError(t, err)
	assert.False(t, followed)
	assert.Empty(t, following)
	assert.NotContains(t, e.reload(t, ada.ID).Following, bob.ID)
	assert.NotContains(t, e.reload(t, bob.ID).Followers, ada.ID)
}

func TestToggleFollowNotifiesOnlyOnFollow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	bob := e.signup(t, "bob")

	_, _, err := e.follows.ToggleFollow(ctx, ada, bob.ID)
	require.NoError(t, err)
	_, _, err = e.follows.ToggleFollow(ctx, e.reload(t, ada.ID), bob.ID)
	require.NoError(t, err)

	notifications := e.store.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, bob.ID, notifications[0].UserID)
	assert.Equal(t, "ada started following you", notifications[0].Message)
	assert.Empty(t, notifications[0].PostID)
}

func TestToggleFollowRejectsSelfAndUnknownUsers(t *testing.T) {
	e := newEnv(t)
	ada := e.signup(t, "ada")

	_, _, err := e.follows.ToggleFollow(context.Background(), ada, ada.ID)
	assert.Equal(t, models.KindInvalidRequest, models.KindOf(err))

	_, _, err = e.follows.ToggleFollow(context.Background(), ada, "nobody")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
	assert.Empty(t, e.reload(t, ada.ID).Following)
}
