package services

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
	"github.com/anonto42/careerpulse/backend/pkg/metrics"
)

// ReactionService runs the per-(post, user) reaction state machine
type ReactionService struct {
	posts     repositories.PostRepository
	reactions repositories.ReactionRepository
	notifier  *NotificationService
}

func NewReactionService(posts repositories.PostRepository, reactions repositories.ReactionRepository, notifier *NotificationService) *ReactionService {
	return &ReactionService{posts: posts, reactions: reactions, notifier: notifier}
}

// Toggle adds, removes or changes actor's reaction on a post. Only an add notifies
// the post owner, and never when the owner reacts to their own post.
func (s *ReactionService) Toggle(ctx context.Context, actor *models.User, postID, rawKind string) (*models.ReactionResponse, error) {
	kind, err := models.ParseReactionKind(rawKind)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	transition := post.Reactions.Transition(actor.ID, kind)
	updated, err := s.reactions.ApplyReaction(ctx, postID, actor.ID, kind, transition)
	if err != nil {
		return nil, err
	}
	metrics.ReactionTransitions.WithLabelValues(transition.String()).Inc()

	if transition == models.ReactionAdded && post.UserID != actor.ID {
		s.notifier.Deliver(ctx, post.UserID, models.NotificationReaction, actor,
			fmt.Sprintf("%s reacted to your post", actor.Name), postID)
	}

	return &models.ReactionResponse{
		Message:   fmt.Sprintf("Reaction %s", transition),
		Reactions: updated.Reactions,
	}, nil
}
