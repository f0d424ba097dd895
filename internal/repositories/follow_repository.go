package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowRepository edits the follow graph. Both directions change together:
// target in follower.following exactly when follower in target.followers.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, targetID string) ([]string, error)
	Unfollow(ctx context.Context, followerID, targetID string) ([]string, error)
}

// MongoFollowRepository implements FollowRepository on the users collection
type MongoFollowRepository struct {
	collection *mongo.Collection
	tx         Transactor
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database, tx Transactor) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("users"), tx: tx}
}

// Follow adds the edge and returns the follower's updated following list
func (r *MongoFollowRepository) Follow(ctx context.Context, followerID, targetID string) ([]string, error) {
	return r.edit(ctx, "$addToSet", followerID, targetID)
}

// Unfollow removes the edge and returns the follower's updated following list
func (r *MongoFollowRepository) Unfollow(ctx context.Context, followerID, targetID string) ([]string, error) {
	return r.edit(ctx, "$pull", followerID, targetID)
}

// edit applies op to target.followers and follower.following. $addToSet and $pull
// are idempotent, so a retried or concurrent edit cannot duplicate an entry.
func (r *MongoFollowRepository) edit(ctx context.Context, op, followerID, targetID string) ([]string, error) {
	var following []string
	err := r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		res, err := r.collection.UpdateOne(ctx, bson.M{"id": targetID}, bson.M{op: bson.M{"followers": followerID}})
		if err != nil {
			return fmt.Errorf("update followers: %w", err)
		}
		if res.MatchedCount == 0 {
			return models.NewNotFoundError("User")
		}

		var follower models.User
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.collection.FindOneAndUpdate(ctx, bson.M{"id": followerID}, bson.M{op: bson.M{"following": targetID}}, opts).Decode(&follower)
		if err != nil {
			return notFound(err, "User")
		}
		following = follower.Following
		return nil
	})
	if err != nil {
		return nil, err
	}
	if following == nil {
		following = []string{}
	}
	return following, nil
}
