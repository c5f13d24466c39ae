package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the service relies on. The unique
// indexes on users.email and on the enrollment/progress (user_id, course_id)
// pairs are load-bearing: they are what makes duplicate signup, duplicate
// enrollment and concurrent progress upserts safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	pair := bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}}

	specs := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{
			collection: "users",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "role", Value: 1}}},
				{Keys: bson.D{{Key: "first_name", Value: 1}, {Key: "last_name", Value: 1}}},
			},
		},
		{
			collection: "courses",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "instructor", Value: 1}}},
				{Keys: bson.D{{Key: "category", Value: 1}}},
				{Keys: bson.D{{Key: "created_at", Value: 1}}},
			},
		},
		{
			collection: "enrollments",
			models: []mongo.IndexModel{
				{Keys: pair, Options: options.Index().SetUnique(true)},
			},
		},
		{
			collection: "progress",
			models: []mongo.IndexModel{
				{Keys: pair, Options: options.Index().SetUnique(true)},
			},
		},
	}

	for _, spec := range specs {
		if _, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", spec.collection, err)
		}
		logger.Info("indexes ensured", zap.String("collection", spec.collection), zap.Int("count", len(spec.models)))
	}
	return nil
}
