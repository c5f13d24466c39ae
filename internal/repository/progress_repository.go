package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/lms-service/internal/domain"
)

const progressCollection = "progress"

// ProgressRepository defines persistence access for progress records.
type ProgressRepository interface {
	Upsert(ctx context.Context, userID, courseID string, percentage int, now time.Time) (*domain.Progress, error)
	Get(ctx context.Context, userID, courseID string) (*domain.Progress, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Progress, error)
}

type progressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository returns a Mongo-backed implementation.
func NewProgressRepository(db *mongo.Database) ProgressRepository {
	return &progressRepository{collection: db.Collection(progressCollection)}
}

// Upsert atomically creates or replaces the progress for a pair in a single
// round trip, so concurrent updates cannot produce duplicate records.
// created_at is only written on insert.
func (r *progressRepository) Upsert(ctx context.Context, userID, courseID string, percentage int, now time.Time) (*domain.Progress, error) {
	query, err := pairQuery(userID, courseID)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"progress":     percentage,
			"is_completed": percentage == 100,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"user_id":    query["user_id"],
			"course_id":  query["course_id"],
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var progress domain.Progress
	if err := r.collection.FindOneAndUpdate(ctx, query, update, opts).Decode(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) Get(ctx context.Context, userID, courseID string) (*domain.Progress, error) {
	query, err := pairQuery(userID, courseID)
	if err != nil {
		return nil, err
	}
	var progress domain.Progress
	if err := r.collection.FindOne(ctx, query).Decode(&progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.Progress
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
