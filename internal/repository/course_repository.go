package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/lms-service/internal/domain"
)

const coursesCollection = "courses"

// CourseListFilter carries filtering, searching, sorting and pagination
// parameters for the course listing. Search matches title or description
// case-insensitively.
type CourseListFilter struct {
	Category   string
	Instructor string
	Search     string
	Skip       int64
	Limit      int64
	SortField  string
	SortDesc   bool
}

// CourseRepository defines persistence access for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter CourseListFilter) ([]domain.Course, int64, error)
	ListByInstructor(ctx context.Context, instructorEmail string) ([]domain.Course, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
}

type courseRepository struct {
	collection *mongo.Collection
}

// NewCourseRepository returns a Mongo-backed implementation.
func NewCourseRepository(db *mongo.Database) CourseRepository {
	return &courseRepository{collection: db.Collection(coursesCollection)}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, course)
	return err
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var course domain.Course
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, filter CourseListFilter) ([]domain.Course, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Instructor != "" {
		query["instructor"] = filter.Instructor
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
	}

	direction := 1
	if filter.SortDesc {
		direction = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortField, Value: direction}}).
		SetSkip(filter.Skip)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var courses []domain.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) ListByInstructor(ctx context.Context, instructorEmail string) ([]domain.Course, error) {
	return r.findAll(ctx, bson.M{"instructor": instructorEmail})
}

func (r *courseRepository) ListByCategory(ctx context.Context, category string) ([]domain.Course, error) {
	return r.findAll(ctx, bson.M{"category": category})
}

func (r *courseRepository) findAll(ctx context.Context, query bson.M) ([]domain.Course, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []domain.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	update := bson.M{"$set": bson.M{
		"title":       course.Title,
		"description": course.Description,
		"category":    course.Category,
		"updated_at":  course.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, course.ID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
