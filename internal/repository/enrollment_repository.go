package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/lms-service/internal/domain"
)

const enrollmentsCollection = "enrollments"

// EnrollmentRepository defines persistence access for enrollments.
// Create relies on the unique (user_id, course_id) index; a duplicate
// insert surfaces as a driver duplicate-key error.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	GetPair(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error)
}

type enrollmentRepository struct {
	collection *mongo.Collection
}

// NewEnrollmentRepository returns a Mongo-backed implementation.
func NewEnrollmentRepository(db *mongo.Database) EnrollmentRepository {
	return &enrollmentRepository{collection: db.Collection(enrollmentsCollection)}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	if enrollment.ID.IsZero() {
		enrollment.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, enrollment)
	return err
}

func (r *enrollmentRepository) GetPair(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	query, err := pairQuery(userID, courseID)
	if err != nil {
		return nil, err
	}
	var enrollment domain.Enrollment
	if err := r.collection.FindOne(ctx, query).Decode(&enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var enrollments []domain.Enrollment
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func pairQuery(userID, courseID string) (bson.M, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	cid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	return bson.M{"user_id": uid, "course_id": cid}, nil
}
