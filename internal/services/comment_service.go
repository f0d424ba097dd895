package services

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
)

// CommentLimit bounds how many comments are returned for one post
const CommentLimit = 1000

// CommentService manages comments on posts
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	notifier *NotificationService
	clock    Clock
}

func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, notifier *NotificationService, clock Clock) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifier: notifier, clock: clock}
}

// Create comments on an existing post and notifies its owner unless they wrote the comment
func (s *CommentService) Create(ctx context.Context, author *models.User, postID string, req models.CommentRequest) (*models.Comment, error) {
	if err := requireContent(req.Content, "Comment"); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:           s.clock.NewID(),
		PostID:       postID,
		UserID:       author.ID,
		UserName:     author.Name,
		UserHeadline: author.Headline,
		UserAvatar:   author.Avatar,
		Content:      req.Content,
		CreatedAt:    models.NewTimestamp(s.clock.Now()),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != author.ID {
		s.notifier.Deliver(ctx, post.UserID, models.NotificationComment, author,
			fmt.Sprintf("%s commented on your post", author.Name), postID)
	}
	return comment, nil
}

// List returns a post's comments oldest first
func (s *CommentService) List(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.GetCommentsByPostID(ctx, postID, CommentLimit)
}

// Update edits the content of actor's comment
func (s *CommentService) Update(ctx context.Context, actor *models.User, commentID string, req models.CommentRequest) (*models.Comment, error) {
	if err := requireContent(req.Content, "Comment"); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(actor, comment.UserID, "edit this comment"); err != nil {
		return nil, err
	}
	return s.comments.UpdateComment(ctx, commentID, req.Content)
}

// Delete removes actor's comment
func (s *CommentService) Delete(ctx context.Context, actor *models.User, commentID string) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(actor, comment.UserID, "delete this comment"); err != nil {
		return err
	}
	return s.comments.DeleteComment(ctx, commentID)
}
