package repositories

import (
	"context"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookmarkRepository keeps the set of bookmarked post ids on each user
type BookmarkRepository interface {
	AddBookmark(ctx context.Context, userID, postID string) ([]string, error)
	RemoveBookmark(ctx context.Context, userID, postID string) ([]string, error)
}

// MongoBookmarkRepository implements BookmarkRepository on the users collection
type MongoBookmarkRepository struct {
	collection *mongo.Collection
}

// NewMongoBookmarkRepository creates a new MongoBookmarkRepository
func NewMongoBookmarkRepository(db *mongo.Database) *MongoBookmarkRepository {
	return &MongoBookmarkRepository{collection: db.Collection("users")}
}

// AddBookmark adds postID to the user's bookmarks and returns the updated list
func (r *MongoBookmarkRepository) AddBookmark(ctx context.Context, userID, postID string) ([]string, error) {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"bookmarks": postID}})
}

// RemoveBookmark removes postID from the user's bookmarks and returns the updated list
func (r *MongoBookmarkRepository) RemoveBookmark(ctx context.Context, userID, postID string) ([]string, error) {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"bookmarks": postID}})
}

func (r *MongoBookmarkRepository) update(ctx context.Context, userID string, update bson.M) ([]string, error) {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": userID}, update, opts).Decode(&user); err != nil {
		return nil, notFound(err, "User")
	}
	if user.Bookmarks == nil {
		return []string{}, nil
	}
	return user.Bookmarks, nil
}
