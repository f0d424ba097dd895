package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/careerpulse/backend/internal/auth"
	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/testutil"
	"github.com/anonto42/careerpulse/backend/pkg/cache"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-test-secret-test-secret"

// stepClock advances one second per call so creation order is strict
func stepClock() Clock {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return Clock{
		Now: func() time.Time {
			t = t.Add(time.Second)
			return t
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

type env struct {
	store         *testutil.Store
	tokens        *auth.TokenService
	resolver      *IdentityResolver
	auth          *AuthService
	notifications *NotificationService
	posts         *PostService
	reactions     *ReactionService
	follows       *FollowService
	feed          *FeedService
	comments      *CommentService
	bookmarks     *BookmarkService
	users         *UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWithCache(t, cache.New(nil, zap.NewNop()))
}

func newEnvWithCache(t *testing.T, c Cache) *env {
	t.Helper()
	store := testutil.NewStore()
	clock := stepClock()
	log := zap.NewNop()
	tokens := auth.NewTokenService(testSecret)
	notifier := NewNotificationService(store, log, clock)

	return &env{
		store:         store,
		tokens:        tokens,
		resolver:      NewIdentityResolver(tokens, store),
		auth:          NewAuthService(store, auth.NewPasswordHasher(bcrypt.MinCost), tokens, nil, log, clock),
		notifications: notifier,
		posts:         NewPostService(store, store, store, notifier, c, log, clock),
		reactions:     NewReactionService(store, store, notifier),
		follows:       NewFollowService(store, store, notifier),
		feed:          NewFeedService(store, c, time.Minute),
		comments:      NewCommentService(store, store, notifier, clock),
		bookmarks:     NewBookmarkService(store, store),
		users:         NewUserService(store),
	}
}

// signup registers a user and returns it as freshly loaded from the store
func (e *env) signup(t *testing.T, name string) *models.User {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), models.SignupRequest{
		Name:     name,
		Email:    name + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return e.reload(t, resp.User.ID)
}

func (e *env) reload(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := e.store.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (e *env) post(t *testing.T, author *models.User, content string) *models.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), author, models.CreatePostRequest{Content: content})
	require.NoError(t, err)
	return p
}
