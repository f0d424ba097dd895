package services

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"github.com/anonto42/careerpulse/backend/internal/repositories"
	"github.com/anonto42/careerpulse/backend/pkg/metrics"
	"go.uber.org/zap"
)

// MaxPostFanOut caps how many followers are notified of a new post. The first
// entries of the follower list win; this bounds the cost of a post, it is not a ranking.
const MaxPostFanOut = 20

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 50
)

// NotificationService persists derived notifications and serves a recipient's inbox
type NotificationService struct {
	repo  repositories.NotificationRepository
	log   *zap.Logger
	clock Clock
}

func NewNotificationService(repo repositories.NotificationRepository, log *zap.Logger, clock Clock) *NotificationService {
	return &NotificationService{repo: repo, log: log, clock: clock}
}

// Notify builds and stores one notification for recipientID
func (s *NotificationService) Notify(ctx context.Context, recipientID string, kind models.NotificationType, actor *models.User, message, postID string) error {
	n := &models.Notification{
		ID:          s.clock.NewID(),
		UserID:      recipientID,
		Type:        kind,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorAvatar: actor.Avatar,
		PostID:      postID,
		Message:     message,
		CreatedAt:   models.NewTimestamp(s.clock.Now()),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("create %s notification: %w", kind, err)
	}
	metrics.NotificationsCreated.WithLabelValues(string(kind)).Inc()
	return nil
}

// Deliver is Notify without a failure path: errors are logged and counted, never returned.
func (s *NotificationService) Deliver(ctx context.Context, recipientID string, kind models.NotificationType, actor *models.User, message, postID string) {
	if err := s.Notify(ctx, recipientID, kind, actor, message, postID); err != nil {
		metrics.NotificationFailures.WithLabelValues(string(kind)).Inc()
		s.log.Warn("Notification dropped",
			zap.String("type", string(kind)),
			zap.String("recipient_id", recipientID),
			zap.String("actor_id", actor.ID),
			zap.Error(err),
		)
	}
}

// FanOutNewPost notifies at most MaxPostFanOut of author's followers about post
func (s *NotificationService) FanOutNewPost(ctx context.Context, author *models.User, post *models.Post) int {
	recipients := author.Followers
	if len(recipients) > MaxPostFanOut {
		recipients = recipients[:MaxPostFanOut]
	}
	message := fmt.Sprintf("%s created a new post", author.Name)
	for _, followerID := range recipients {
		s.Deliver(ctx, followerID, models.NotificationPost, author, message, post.ID)
	}
	return len(recipients)
}

// List returns the user's newest notifications
func (s *NotificationService) List(ctx context.Context, user *models.User, skip, limit int64) ([]models.Notification, error) {
	skip, limit = clampPage(skip, limit, defaultNotificationLimit, maxNotificationLimit)
	return s.repo.GetNotificationsByUserID(ctx, user.ID, skip, limit)
}

// MarkAllRead flags every unread notification of user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, user *models.User) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, user.ID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, user *models.User) (int64, error) {
	return s.repo.CountUnread(ctx, user.ID)
}

// clampPage applies defaults to non-positive limits and caps large ones
func clampPage(skip, limit, defaultLimit, maxLimit int64) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
