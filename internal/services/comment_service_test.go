package services

import (
	"context"
	"testing"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentNotifiesPostOwnerUnlessSelf(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	bob := e.signup(t, "bob")
	post := e.post(t, ada, "thoughts?")

	_, err := e.comments.Create(ctx, ada, post.ID, models.CommentRequest{Content: "bump"})
	require.NoError(t, err)
	assert.Empty(t, e.store.Notifications())

	c, err := e.comments.Create(ctx, bob, post.ID, models.CommentRequest{Content: "great"})
	require.NoError(t, err)
	assert.Equal(t, "bob", c.UserName)

	notifications := e.store.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)
	assert.Equal(t, "bob commented on your post", notifications[0].Message)
	assert.Equal(t, post.ID, notifications[0].PostID)
}

func TestCommentOnMissingPost(t *testing.T) {
	e := newEnv(t)
	ada := e.signup(t, "ada")

	_, err := e.comments.Create(context.Background(), ada, "missing", models.CommentRequest{Content: "hello?"})
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestCommentsListedOldestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	post := e.post(t, ada, "thread")

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		c, err := e.comments.Create(ctx, ada, post.ID, models.CommentRequest{Content: text})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	list, err := e.comments.List(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, c := range list {
		assert.Equal(t, ids[i], c.ID)
	}
}

func TestOnlyAuthorCanEditOrDeleteComment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	bob := e.signup(t, "bob")
	post := e.post(t, ada, "thread")
	c, err := e.comments.Create(ctx, bob, post.ID, models.CommentRequest{Content: "orig"})
	require.NoError(t, err)

	_, err = e.comments.Update(ctx, ada, c.ID, models.CommentRequest{Content: "edited"})
	assert.Equal(t, models.KindForbidden, models.KindOf(err))
	assert.Equal(t, models.KindForbidden, models.KindOf(e.comments.Delete(ctx, ada, c.ID)))

	updated, err := e.comments.Update(ctx, bob, c.ID, models.CommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, e.comments.Delete(ctx, bob, c.ID))
	assert.Equal(t, models.KindNotFound, models.KindOf(e.comments.Delete(ctx, bob, c.ID)))
}

func TestCommentRejectsBlankContent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.signup(t, "ada")
	post := e.post(t, ada, "thread")

	_, err := e.comments.Create(ctx, ada, post.ID, models.CommentRequest{Content: " \t "})
	assert.Equal(t, models.KindInvalidRequest, models.KindOf(err))

	c, err := e.comments.Create(ctx, ada, post.ID, models.CommentRequest{Content: "first"})
	require.NoError(t, err)
	_, err = e.comments.Update(ctx, ada, c.ID, models.CommentRequest{Content: "  "})
	assert.Equal(t, models.KindInvalidRequest, models.KindOf(err))

	comments, err := e.comments.List(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Content)
}
