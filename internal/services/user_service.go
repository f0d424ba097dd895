package services

import (
	"context"
	"strings"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
)

const (
	UserSearchLimit     = 10
	SuggestedUsersLimit = 5
)

// UserService serves profile lookups and people discovery
type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// Search matches query against names and headlines
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewInvalidRequestError("Search query is required")
	}
	return s.users.SearchUsers(ctx, query, UserSearchLimit)
}

// Suggested returns users that user neither is nor follows
func (s *UserService) Suggested(ctx context.Context, user *models.User) ([]models.User, error) {
	exclude := append([]string{user.ID}, user.Following...)
	return s.users.GetSuggestedUsers(ctx, exclude, SuggestedUsersLimit)
}
