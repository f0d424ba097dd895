package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
	TrendingLimit    = 5
	SearchLimit      = 20
	ProfilePostLimit = 1000
	BookmarkLimit    = 1000

	trendingCacheKey = "posts:trending"
)

// FeedService composes the read-side lists of posts
type FeedService struct {
	posts       repositories.PostRepository
	cache       Cache
	trendingTTL time.Duration
}

func NewFeedService(posts repositories.PostRepository, cache Cache, trendingTTL time.Duration) *FeedService {
	return &FeedService{posts: posts, cache: cache, trendingTTL: trendingTTL}
}

// Feed returns posts by user and everyone user follows, newest first
func (s *FeedService) Feed(ctx context.Context, user *models.User, skip, limit int64) ([]models.Post, error) {
	skip, limit = clampPage(skip, limit, DefaultFeedLimit, MaxFeedLimit)
	authors := make([]string, 0, len(user.Following)+1)
	authors = append(authors, user.Following...)
	authors = append(authors, user.ID)
	return s.posts.GetFeed(ctx, authors, skip, limit)
}

// All returns every post, newest first
func (s *FeedService) All(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	skip, limit = clampPage(skip, limit, DefaultFeedLimit, MaxFeedLimit)
	return s.posts.GetAllPosts(ctx, skip, limit)
}

// Trending returns the most viewed posts, served from cache when available
func (s *FeedService) Trending(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.cache.Aside(ctx, trendingCacheKey, &posts, s.trendingTTL, func() error {
		var err error
		posts, err = s.posts.GetTrendingPosts(ctx, TrendingLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Search matches query against post content and hashtags
func (s *FeedService) Search(ctx context.Context, query string) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewInvalidRequestError("Search query is required")
	}
	return s.posts.SearchPosts(ctx, query, SearchLimit)
}

// ByUser returns one author's posts, newest first
func (s *FeedService) ByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.GetPostsByUserID(ctx, userID, ProfilePostLimit)
}

// Bookmarked returns the posts user has bookmarked
func (s *FeedService) Bookmarked(ctx context.Context, user *models.User) ([]models.Post, error) {
	return s.posts.GetPostsByIDs(ctx, user.Bookmarks, BookmarkLimit)
}
