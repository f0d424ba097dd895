package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string, limit int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentsByPostID(ctx context.Context, postID string) (int64, error)
	CountCommentsByPostID(ctx context.Context, postID string) (int64, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&comment); err != nil {
		return nil, notFound(err, "Comment")
	}
	return &comment, nil
}

// GetCommentsByPostID returns a post's comments oldest first
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string, limit int64) ([]models.Comment, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[models.Comment](ctx, r.collection, bson.M{"post_id": postID}, opts)
}

func (r *MongoCommentRepository) UpdateComment(ctx context.Context, id, content string) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment models.Comment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"content": content}}, opts).Decode(&comment)
	if err != nil {
		return nil, notFound(err, "Comment")
	}
	return &comment, nil
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("Comment")
	}
	return nil
}

// DeleteCommentsByPostID removes every comment on a post and reports how many were removed
func (r *MongoCommentRepository) DeleteCommentsByPostID(ctx context.Context, postID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, fmt.Errorf("delete comments of post: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentRepository) CountCommentsByPostID(ctx context.Context, postID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"post_id": postID})
}
