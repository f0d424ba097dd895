package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anonto42/careerpulse/backend/internal/services"
	"github.com/anonto42/careerpulse/backend/internal/testutil"
	"github.com/anonto42/careerpulse/backend/pkg/cache"
	"github.com/anonto42/careerpulse/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type server struct {
	t     *testing.T
	e     *echo.Echo
	store *testutil.Store
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "router-secret-router-secret-router",
		BcryptCost:       bcrypt.MinCost,
		TrendingCacheTTL: time.Minute,
		MaxUploadBytes:   1 << 20,
	}
}

func newServer(t *testing.T, cfg *config.Config, c *cache.Cache) *server {
	store := testutil.NewStore()
	repos := Repositories{
		Users:         store,
		Posts:         store,
		Comments:      store,
		Notifications: store,
		Follows:       store,
		Reactions:     store,
		Bookmarks:     store,
		Tx:            store,
	}
	log := zap.NewNop()
	svc := NewServices(cfg, repos, c, nil, log, services.SystemClock())

	e := echo.New()
	SetupRoutes(e, cfg, svc, c, false, log)
	return &server{t: t, e: e, store: store}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *server) decode(rec *httptest.ResponseRecorder, v any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), v))
}

// signup returns the new user's token and id
func (s *server) signup(name, email string) (string, string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/signup", "", echo.Map{"name": name, "email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	s.decode(rec, &resp)
	return resp.Token, resp.User.ID
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	m, _ := body["message"].(string)
	return m
}

func TestHealth(t *testing.T) {
	s := newServer(t, testConfig(), cache.New(nil, zap.NewNop()))
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"careerpulse-api"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t, testConfig(), cache.New(nil, zap.NewNop()))
	token, id := s.signup("Ada Lovelace", "Ada@Example.com")

	rec := s.do(http.MethodPost, "/api/auth/signup", "", echo.Map{"name": "Ada", "email": "ada@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", message(t, rec))

	rec = s.do(http.MethodPost, "/api/auth/signup", "", echo.Map{"name": "Bob", "email": "not-an-email", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address", message(t, rec))

	rec = s.do(http.MethodPost, "/api/auth/login", "", echo.Map{"email": "ada@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", message(t, rec))

	rec = s.do(http.MethodPost, "/api/auth/login", "", echo.Map{"email": "ADA@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", message(t, rec))

	rec = s.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", message(t, rec))

	rec = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	s.decode(rec, &me)
	assert.Equal(t, id, me["id"])
	assert.NotContains(t, me, "password")

	rec = s.do(http.MethodPut, "/api/auth/profile", token, echo.Map{"headline": "Analyst"})
	require.Equal(t, http.StatusOK, rec.Code)
	s.decode(rec, &me)
	assert.Equal(t, "Analyst", me["headline"])

	rec = s.do(http.MethodPost, "/api/auth/firebase", "", echo.Map{"idToken": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostLifecycle(t *testing.T) {
	s := newServer(t, testConfig(), cache.New(nil, zap.NewNop()))
	adaToken, adaID := s.signup("Ada", "ada@example.com")
	bobToken, bobID := s.signup("Bob", "bob@example.com")

	rec := s.do(http.MethodPost, "/api/users/"+adaID+"/follow", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var follow struct {
		Message   string   `json:"message"`
		Following []string `json:"following"`
	}
	s.decode(rec, &follow)
	assert.Equal(t, "User followed", follow.Message)
	assert.Equal(t, []string{adaID}, follow.Following)

	rec = s.do(http.MethodPost, "/api/users/"+bobID+"/follow", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot follow yourself", message(t, rec))

	rec = s.do(http.MethodPost, "/api/posts", adaToken, echo.Map{"content": "Hello #Go and #go"})
	require.Equal(t, http.StatusOK, rec.Code)
	var post struct {
		ID       string   `json:"id"`
		UserName string   `json:"user_name"`
		Hashtags []string `json:"hashtags"`
	}
	s.decode(rec, &post)
	assert.Equal(t, "Ada", post.UserName)
	assert.Equal(t, []string{"#go"}, post.Hashtags)

	rec = s.do(http.MethodPost, "/api/posts", adaToken, echo.Map{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bob follows Ada, so the new post lands in Bob's feed
	rec = s.do(http.MethodGet, "/api/posts", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []map[string]any
	s.decode(rec, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, post.ID, feed[0]["id"])

	rec = s.do(http.MethodPut, "/api/posts/"+post.ID, bobToken, echo.Map{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to edit this post", message(t, rec))

	rec = s.do(http.MethodPost, "/api/posts/"+post.ID+"/react?reaction_type=shrug", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `Invalid reaction type: "shrug"`, message(t, rec))

	rec = s.do(http.MethodPost, "/api/posts/"+post.ID+"/react?reaction_type=celebrate", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reaction struct {
		Message   string `json:"message"`
		Reactions []struct {
			UserID string `json:"user_id"`
			Type   string `json:"type"`
		} `json:"reactions"`
	}
	s.decode(rec, &reaction)
	assert.Equal(t, "Reaction added", reaction.Message)
	require.Len(t, reaction.Reactions, 1)
	assert.Equal(t, bobID, reaction.Reactions[0].UserID)
	assert.Equal(t, "celebrate", reaction.Reactions[0].Type)

	rec = s.do(http.MethodPost, "/api/posts/"+post.ID+"/comments", bobToken, echo.Map{"content": "Nice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/posts/"+post.ID+"/bookmark", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bookmark added", message(t, rec))

	rec = s.do(http.MethodGet, "/api/posts/bookmarked/me", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.decode(rec, &feed)
	assert.Len(t, feed, 1)

	// follow, reaction and comment
	rec = s.do(http.MethodGet, "/api/notifications/unread/count", adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/notifications/read", adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/notifications/unread/count", adaToken, nil)
	assert.JSONEq(t, `{"count":0}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/api/posts/"+post.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/posts/"+post.ID, adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post deleted", message(t, rec))

	rec = s.do(http.MethodGet, "/api/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", message(t, rec))

	rec = s.do(http.MethodGet, "/api/posts/"+post.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPublicRoutes(t *testing.T) {
	s := newServer(t, testConfig(), cache.New(nil, zap.NewNop()))
	token, id := s.signup("Grace Hopper", "grace@example.com")
	s.do(http.MethodPost, "/api/posts", token, echo.Map{"content": "Compilers #cobol"})

	rec := s.do(http.MethodGet, "/api/posts/search?q=COBOL", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []map[string]any
	s.decode(rec, &posts)
	assert.Len(t, posts, 1)

	rec = s.do(http.MethodGet, "/api/posts/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/posts/user/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.decode(rec, &posts)
	assert.Len(t, posts, 1)

	rec = s.do(http.MethodGet, "/api/posts/all?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/posts/trending", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/users/search/query?q=grace", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	s.decode(rec, &users)
	require.Len(t, users, 1)
	assert.Equal(t, id, users[0]["id"])

	rec = s.do(http.MethodGet, "/api/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", message(t, rec))

	rec = s.do(http.MethodGet, "/api/users/suggested/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	cfg.AuthRateLimit = 2
	s := newServer(t, cfg, cache.New(rdb, zap.NewNop()))

	login := echo.Map{"email": "nobody@example.com", "password": "whatever"}
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/login", "", login).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/login", "", login).Code)

	rec := s.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, try again later", message(t, rec))

	// other routes are not limited
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
}
