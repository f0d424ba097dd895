package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]string) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error)
	GetSuggestedUsers(ctx context.Context, exclude []string, limit int64) ([]models.User, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a user. A duplicate email is an invalid request.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Following == nil {
		user.Following = []string{}
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewInvalidRequestError("Email already registered")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, notFound(err, "User")
	}
	return &user, nil
}

// UpdateProfile sets the given fields and returns the updated user
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, fields map[string]string) (*models.User, error) {
	if len(fields) == 0 {
		return r.GetUserByID(ctx, id)
	}
	set := bson.M{}
	for key, value := range fields {
		set[key] = value
	}

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return &user, nil
}

// SearchUsers matches query against name or headline, case-insensitively
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"name": containsFold(query)},
		bson.M{"headline": containsFold(query)},
	}}
	return findAll[models.User](ctx, r.collection, filter, options.Find().SetLimit(limit))
}

// GetSuggestedUsers returns users whose id is not in exclude
func (r *MongoUserRepository) GetSuggestedUsers(ctx context.Context, exclude []string, limit int64) ([]models.User, error) {
	filter := bson.M{"id": bson.M{"$nin": exclude}}
	return findAll[models.User](ctx, r.collection, filter, options.Find().SetLimit(limit))
}
