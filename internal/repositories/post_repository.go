package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetFeed(ctx context.Context, authorIDs []string, skip, limit int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetTrendingPosts(ctx context.Context, limit int64) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, limit int64) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string, limit int64) ([]models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []string, limit int64) ([]models.Post, error)
	UpdateContent(ctx context.Context, id, content string, hashtags []string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.Reactions == nil {
		post.Reactions = models.Reactions{}
	}
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&post); err != nil {
		return nil, notFound(err, "Post")
	}
	return &post, nil
}

// GetFeed returns posts written by any of authorIDs, newest first
func (r *MongoPostRepository) GetFeed(ctx context.Context, authorIDs []string, skip, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(newestFirst)
	return findAll[models.Post](ctx, r.collection, feedFilter(authorIDs), opts)
}

func feedFilter(authorIDs []string) bson.M {
	return bson.M{"user_id": bson.M{"$in": authorIDs}}
}

// GetAllPosts retrieves all posts from MongoDB with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(newestFirst)
	return findAll[models.Post](ctx, r.collection, bson.D{}, opts)
}

// GetTrendingPosts returns the most viewed posts
func (r *MongoPostRepository) GetTrendingPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "views", Value: -1}, {Key: "created_at", Value: -1}})
	return findAll[models.Post](ctx, r.collection, bson.D{}, opts)
}

// SearchPosts matches query as a literal substring of content or of any hashtag
func (r *MongoPostRepository) SearchPosts(ctx context.Context, query string, limit int64) ([]models.Post, error) {
	opts := options.Find().SetLimit(limit).SetSort(newestFirst)
	return findAll[models.Post](ctx, r.collection, searchFilter(query), opts)
}

func searchFilter(query string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"content": containsFold(query)},
		bson.M{"hashtags": containsFold(query)},
	}}
}

// GetPostsByUserID retrieves posts by a specific user from MongoDB
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string, limit int64) ([]models.Post, error) {
	opts := options.Find().SetLimit(limit).SetSort(newestFirst)
	return findAll[models.Post](ctx, r.collection, bson.M{"user_id": userID}, opts)
}

// GetPostsByIDs retrieves the posts whose id is in ids, newest first
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []string, limit int64) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	opts := options.Find().SetLimit(limit).SetSort(newestFirst)
	return findAll[models.Post](ctx, r.collection, bson.M{"id": bson.M{"$in": ids}}, opts)
}

// UpdateContent replaces content and hashtags and returns the updated post
func (r *MongoPostRepository) UpdateContent(ctx context.Context, id, content string, hashtags []string) (*models.Post, error) {
	update := bson.M{"$set": bson.M{"content": content, "hashtags": hashtags}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&post); err != nil {
		return nil, notFound(err, "Post")
	}
	return &post, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("Post")
	}
	return nil
}

// IncrementViews bumps the view counter by one
func (r *MongoPostRepository) IncrementViews(ctx context.Context, id string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("Post")
	}
	return nil
}
