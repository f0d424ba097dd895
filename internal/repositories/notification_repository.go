package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationsByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if _, err := r.collection.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetNotificationsByUserID returns a recipient's notifications, newest first
func (r *MongoNotificationRepository) GetNotificationsByUserID(ctx context.Context, userID string, skip, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(newestFirst)
	return findAll[models.Notification](ctx, r.collection, bson.M{"user_id": userID}, opts)
}

// MarkAllAsRead flags every unread notification of userID as read
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
}
