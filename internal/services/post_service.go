package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

// Cache is the read-through cache used for hot, slowly changing lists
type Cache interface {
	Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error
	Delete(ctx context.Context, keys ...string) error
}

// PostService creates, edits and deletes posts
type PostService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	tx       repositories.Transactor
	notifier *NotificationService
	cache    Cache
	log      *zap.Logger
	clock    Clock
}

func NewPostService(posts repositories.PostRepository, comments repositories.CommentRepository, tx repositories.Transactor, notifier *NotificationService, cache Cache, log *zap.Logger, clock Clock) *PostService {
	return &PostService{posts: posts, comments: comments, tx: tx, notifier: notifier, cache: cache, log: log, clock: clock}
}

// Create stores a post with an author snapshot and notifies the author's followers
func (s *PostService) Create(ctx context.Context, author *models.User, req models.CreatePostRequest) (*models.Post, error) {
	if err := requireContent(req.Content, "Post"); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:           s.clock.NewID(),
		UserID:       author.ID,
		UserName:     author.Name,
		UserHeadline: author.Headline,
		UserAvatar:   author.Avatar,
		Content:      req.Content,
		Image:        req.Image,
		Hashtags:     ExtractHashtags(req.Content),
		Reactions:    models.Reactions{},
		CreatedAt:    models.NewTimestamp(s.clock.Now()),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	notified := s.notifier.FanOutNewPost(ctx, author, post)
	s.log.Debug("Post created", zap.String("post_id", post.ID), zap.Int("notified", notified))
	return post, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, postID)
}

// Update replaces the content of actor's post and re-extracts its hashtags
func (s *PostService) Update(ctx context.Context, actor *models.User, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := requireContent(req.Content, "Post"); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(actor, post.UserID, "edit this post"); err != nil {
		return nil, err
	}

	updated, err := s.posts.UpdateContent(ctx, postID, req.Content, ExtractHashtags(req.Content))
	if err != nil {
		return nil, err
	}
	s.invalidateTrending(ctx)
	return updated, nil
}

// Delete removes actor's post together with its comments
func (s *PostService) Delete(ctx context.Context, actor *models.User, postID string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(actor, post.UserID, "delete this post"); err != nil {
		return err
	}

	var removed int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.posts.DeletePost(ctx, postID); err != nil {
			return err
		}
		removed, err = s.comments.DeleteCommentsByPostID(ctx, postID)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidateTrending(ctx)
	s.log.Debug("Post deleted", zap.String("post_id", postID), zap.Int64("comments_removed", removed))
	return nil
}

// View counts one view of a post
func (s *PostService) View(ctx context.Context, postID string) error {
	return s.posts.IncrementViews(ctx, postID)
}

func (s *PostService) invalidateTrending(ctx context.Context) {
	if err := s.cache.Delete(ctx, trendingCacheKey); err != nil {
		s.log.Warn("Trending cache invalidation failed", zap.Error(err))
	}
}

// requireContent rejects content that is empty after trimming whitespace
func requireContent(content, resource string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewInvalidRequestError(resource + " content is required")
	}
	return nil
}
