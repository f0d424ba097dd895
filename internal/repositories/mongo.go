package repositories

import (
	"context"
	"errors"
	"regexp"

	"github.com/anonto42/careerpulse/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

// containsFold matches q as a literal, case-insensitive substring
func containsFold(q string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

// notFound maps mongo.ErrNoDocuments to a NotFound AppError for resource
func notFound(err error, resource string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewNotFoundError(resource)
	}
	return err
}

func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts *options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
