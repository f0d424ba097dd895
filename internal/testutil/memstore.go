// Package testutil provides in-memory repositories for service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/anonto42/careerpulse/backend/internal/models"
)

// Store implements every repository interface in memory. Zero value is not usable; call NewStore.
type Store struct {
	mu            sync.Mutex
	seq           int
	users         map[string]*models.User
	posts         map[string]*models.Post
	comments      map[string]*models.Comment
	notifications []*models.Notification
	order         map[string]int

	// NotificationErr, when set, is returned by CreateNotification
	NotificationErr error
}

func NewStore() *Store {
	return &Store{
		users:    map[string]*models.User{},
		posts:    map[string]*models.Post{},
		comments: map[string]*models.Comment{},
		order:    map[string]int{},
	}
}

func (s *Store) next(id string) {
	s.seq++
	s.order[id] = s.seq
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Following = append([]string{}, u.Following...)
	c.Followers = append([]string{}, u.Followers...)
	c.Bookmarks = append([]string{}, u.Bookmarks...)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Hashtags = append([]string{}, p.Hashtags...)
	c.Reactions = models.Reactions{}
	for k, v := range p.Reactions {
		c.Reactions[k] = v
	}
	return &c
}

func addUnique(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

func page[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.NewInvalidRequestError("Email already registered")
		}
	}
	s.users[user.ID] = cloneUser(user)
	s.next(user.ID)
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User")
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, models.NewNotFoundError("User")
}

func (s *Store) UpdateProfile(_ context.Context, id string, fields map[string]string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User")
	}
	for key, value := range fields {
		switch key {
		case "bio":
			u.Bio = value
		case "avatar":
			u.Avatar = value
		case "cover_image":
			u.CoverImage = value
		case "headline":
			u.Headline = value
		case "location":
			u.Location = value
		case "website":
			u.Website = value
		}
	}
	return cloneUser(u), nil
}

func (s *Store) sortedUsers() []*models.User {
	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return s.order[users[i].ID] < s.order[users[j].ID] })
	return users
}

func (s *Store) SearchUsers(_ context.Context, query string, limit int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range s.sortedUsers() {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Headline), q) {
			out = append(out, *cloneUser(u))
		}
	}
	return page(out, 0, limit), nil
}

func (s *Store) GetSuggestedUsers(_ context.Context, exclude []string, limit int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	skip := map[string]bool{}
	for _, id := range exclude {
		skip[id] = true
	}
	var out []models.User
	for _, u := range s.sortedUsers() {
		if !skip[u.ID] {
			out = append(out, *cloneUser(u))
		}
	}
	return page(out, 0, limit), nil
}

// --- follow graph ---

func (s *Store) Follow(ctx context.Context, followerID, targetID string) ([]string, error) {
	return s.editFollow(followerID, targetID, addUnique)
}

func (s *Store) Unfollow(ctx context.Context, followerID, targetID string) ([]string, error) {
	return s.editFollow(followerID, targetID, remove)
}

func (s *Store) editFollow(followerID, targetID string, op func([]string, string) []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.users[targetID]
	if !ok {
		return nil, models.NewNotFoundError("User")
	}
	follower, ok := s.users[followerID]
	if !ok {
		return nil, models.NewNotFoundError("User")
	}
	target.Followers = op(target.Followers, followerID)
	follower.Following = op(follower.Following, targetID)
	return append([]string{}, follower.Following...), nil
}

// --- bookmarks ---

func (s *Store) AddBookmark(_ context.Context, userID, postID string) ([]string, error) {
	return s.editBookmarks(userID, postID, addUnique)
}

func (s *Store) RemoveBookmark(_ context.Context, userID, postID string) ([]string, error) {
	return s.editBookmarks(userID, postID, remove)
}

func (s *Store) editBookmarks(userID, postID string, op func([]string, string) []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, models.NewNotFoundError("User")
	}
	u.Bookmarks = op(u.Bookmarks, postID)
	return append([]string{}, u.Bookmarks...), nil
}

// --- posts ---

func (s *Store) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = clonePost(post)
	s.next(post.ID)
	return nil
}

func (s *Store) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post")
	}
	return clonePost(p), nil
}

// newestPosts returns matching posts by created_at desc, latest insert first on ties
func (s *Store) newestPosts(match func(*models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range s.posts {
		if match(p) {
			out = append(out, *clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.After(out[j].CreatedAt.Time)
		}
		return s.order[out[i].ID] > s.order[out[j].ID]
	})
	return out
}

func (s *Store) GetFeed(_ context.Context, authorIDs []string, skip, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	authors := map[string]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	return page(s.newestPosts(func(p *models.Post) bool { return authors[p.UserID] }), skip, limit), nil
}

func (s *Store) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.newestPosts(func(*models.Post) bool { return true }), skip, limit), nil
}

func (s *Store) GetTrendingPosts(_ context.Context, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.newestPosts(func(*models.Post) bool { return true })
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Views > posts[j].Views })
	return page(posts, 0, limit), nil
}

func (s *Store) SearchPosts(_ context.Context, query string, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	match := func(p *models.Post) bool {
		if strings.Contains(strings.ToLower(p.Content), q) {
			return true
		}
		for _, tag := range p.Hashtags {
			if strings.Contains(tag, q) {
				return true
			}
		}
		return false
	}
	return page(s.newestPosts(match), 0, limit), nil
}

func (s *Store) GetPostsByUserID(_ context.Context, userID string, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(s.newestPosts(func(p *models.Post) bool { return p.UserID == userID }), 0, limit), nil
}

func (s *Store) GetPostsByIDs(_ context.Context, ids []string, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return page(s.newestPosts(func(p *models.Post) bool { return want[p.ID] }), 0, limit), nil
}

func (s *Store) UpdateContent(_ context.Context, id, content string, hashtags []string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post")
	}
	p.Content = content
	p.Hashtags = append([]string{}, hashtags...)
	return clonePost(p), nil
}

func (s *Store) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return models.NewNotFoundError("Post")
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.NewNotFoundError("Post")
	}
	p.Views++
	return nil
}

// ApplyReaction applies transition only if it still matches the stored state
func (s *Store) ApplyReaction(_ context.Context, postID, userID string, kind models.ReactionKind, transition models.ReactionTransition) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, models.NewNotFoundError("Post")
	}
	if p.Reactions == nil {
		p.Reactions = models.Reactions{}
	}
	if p.Reactions.Transition(userID, kind) != transition {
		return nil, models.NewConflictError("Reaction changed concurrently, retry")
	}
	p.Reactions.Toggle(userID, kind)
	return clonePost(p), nil
}

// --- comments ---

func (s *Store) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *comment
	s.comments[c.ID] = &c
	s.next(c.ID)
	return nil
}

func (s *Store) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, models.NewNotFoundError("Comment")
	}
	out := *c
	return &out, nil
}

func (s *Store) GetCommentsByPostID(_ context.Context, postID string, limit int64) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
		}
		return s.order[out[i].ID] < s.order[out[j].ID]
	})
	return page(out, 0, limit), nil
}

func (s *Store) UpdateComment(_ context.Context, id, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, models.NewNotFoundError("Comment")
	}
	c.Content = content
	out := *c
	return &out, nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return models.NewNotFoundError("Comment")
	}
	delete(s.comments, id)
	return nil
}

func (s *Store) DeleteCommentsByPostID(_ context.Context, postID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) CountCommentsByPostID(_ context.Context, postID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

// --- notifications ---

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.NotificationErr != nil {
		return s.NotificationErr
	}
	c := *n
	s.notifications = append(s.notifications, &c)
	s.next(c.ID)
	return nil
}

func (s *Store) GetNotificationsByUserID(_ context.Context, userID string, skip, limit int64) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if n := s.notifications[i]; n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return page(out, skip, limit), nil
}

func (s *Store) MarkAllAsRead(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, notification := range s.notifications {
		if notification.UserID == userID && !notification.Read {
			notification.Read = true
			n++
		}
	}
	return n, nil
}

func (s *Store) CountUnread(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, notification := range s.notifications {
		if notification.UserID == userID && !notification.Read {
			n++
		}
	}
	return n, nil
}

// Notifications returns every stored notification in insertion order
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	return out
}

// WithTransaction runs fn directly; the store is already serialized by its mutex
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ErrStoreDown is a convenience error for failure injection
var ErrStoreDown = errors.New("store unavailable")
