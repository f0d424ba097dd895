package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReactionRepository applies reaction transitions to stored posts
type ReactionRepository interface {
	ApplyReaction(ctx context.Context, postID, userID string, kind models.ReactionKind, transition models.ReactionTransition) (*models.Post, error)
}

// MongoReactionRepository implements ReactionRepository on the posts collection
type MongoReactionRepository struct {
	collection *mongo.Collection
}

// NewMongoReactionRepository creates a new MongoReactionRepository
func NewMongoReactionRepository(db *mongo.Database) *MongoReactionRepository {
	return &MongoReactionRepository{collection: db.Collection("posts")}
}

// ApplyReaction performs transition as one guarded update. The filter only matches
// when the stored state is the one the transition was computed from; otherwise the
// post changed underneath the caller and a Conflict is returned.
func (r *MongoReactionRepository) ApplyReaction(ctx context.Context, postID, userID string, kind models.ReactionKind, transition models.ReactionTransition) (*models.Post, error) {
	filter, update, err := reactionUpdate(postID, userID, kind, transition)
	if err != nil {
		return nil, err
	}

	var post models.Post
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("apply reaction: %w", err)
	}

	n, countErr := r.collection.CountDocuments(ctx, bson.M{"id": postID})
	if countErr != nil {
		return nil, fmt.Errorf("apply reaction: %w", countErr)
	}
	if n == 0 {
		return nil, models.NewNotFoundError("Post")
	}
	return nil, models.NewConflictError("Reaction changed concurrently, retry")
}

func reactionUpdate(postID, userID string, kind models.ReactionKind, transition models.ReactionTransition) (bson.M, bson.M, error) {
	switch transition {
	case models.ReactionAdded:
		filter := bson.M{"id": postID, "reactions.user_id": bson.M{"$ne": userID}}
		update := bson.M{"$push": bson.M{"reactions": models.Reaction{UserID: userID, Type: kind}}}
		return filter, update, nil
	case models.ReactionRemoved:
		filter := bson.M{"id": postID, "reactions": bson.M{"$elemMatch": bson.M{"user_id": userID, "type": kind}}}
		update := bson.M{"$pull": bson.M{"reactions": bson.M{"user_id": userID}}}
		return filter, update, nil
	case models.ReactionChanged:
		filter := bson.M{"id": postID, "reactions": bson.M{"$elemMatch": bson.M{"user_id": userID, "type": bson.M{"$ne": kind}}}}
		update := bson.M{"$set": bson.M{"reactions.$.type": kind}}
		return filter, update, nil
	}
	return nil, nil, fmt.Errorf("unknown reaction transition %d", transition)
}
