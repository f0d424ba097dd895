package services

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
)

// FollowService toggles follow edges between users
type FollowService struct {
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	notifier *NotificationService
}

func NewFollowService(users repositories.UserRepository, follows repositories.FollowRepository, notifier *NotificationService) *FollowService {
	return &FollowService{users: users, follows: follows, notifier: notifier}
}

// ToggleFollow follows targetID if actor does not follow them yet, unfollows otherwise.
// It returns actor's updated following list and whether the edge now exists.
func (s *FollowService) ToggleFollow(ctx context.Context, actor *models.User, targetID string) ([]string, bool, error) {
	if err := AuthorizeFollow(actor, targetID); err != nil {
		return nil, false, err
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return nil, false, err
	}

	if actor.IsFollowing(targetID) {
		following, err := s.follows.Unfollow(ctx, actor.ID, targetID)
		return following, false, err
	}

	following, err := s.follows.Follow(ctx, actor.ID, targetID)
	if err != nil {
		return nil, false, err
	}
	s.notifier.Deliver(ctx, targetID, models.NotificationFollow, actor,
		fmt.Sprintf("%s started following you", actor.Name), "")
	return following, true, nil
}
