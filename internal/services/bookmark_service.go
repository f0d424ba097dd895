package services

import (
	"context"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
)

// BookmarkService toggles post ids in a user's bookmark set
type BookmarkService struct {
	bookmarks repositories.BookmarkRepository
	posts     repositories.PostRepository
}

func NewBookmarkService(bookmarks repositories.BookmarkRepository, posts repositories.PostRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, posts: posts}
}

// Toggle bookmarks postID, or removes the bookmark if present. Only adding requires the post to exist.
func (s *BookmarkService) Toggle(ctx context.Context, user *models.User, postID string) ([]string, bool, error) {
	if user.HasBookmarked(postID) {
		bookmarks, err := s.bookmarks.RemoveBookmark(ctx, user.ID, postID)
		return bookmarks, false, err
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, false, err
	}
	bookmarks, err := s.bookmarks.AddBookmark(ctx, user.ID, postID)
	if err != nil {
		return nil, false, err
	}
	return bookmarks, true, nil
}
