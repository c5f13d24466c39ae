package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
)

// duplicateKeyErr mimics the server error the driver returns when a unique
// index rejects an insert.
func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

type memUserRepo struct {
	users []*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return duplicateKeyErr()
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	for i, existing := range r.users {
		if existing.ID == user.ID {
			copied := *user
			r.users[i] = &copied
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID.Hex() == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) List(_ context.Context, filter repository.UserListFilter) ([]domain.User, error) {
	matched := r.match(filter)
	start := int(filter.Skip)
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+int(filter.Limit) < end {
		end = start + int(filter.Limit)
	}
	page := make([]domain.User, 0, end-start)
	for _, user := range matched[start:end] {
		page = append(page, *user)
	}
	return page, nil
}

func (r *memUserRepo) Count(_ context.Context, filter repository.UserListFilter) (int64, error) {
	return int64(len(r.match(filter))), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	for i, user := range r.users {
		if user.ID.Hex() == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memUserRepo) match(filter repository.UserListFilter) []*domain.User {
	matched := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		matched = append(matched, user)
	}
	return matched
}

type memCourseRepo struct {
	courses    []*domain.Course
	lastFilter repository.CourseListFilter
}

func (r *memCourseRepo) Create(_ context.Context, course *domain.Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	copied := *course
	r.courses = append(r.courses, &copied)
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, mongo.ErrNoDocuments
	}
	for _, course := range r.courses {
		if course.ID.Hex() == id {
			copied := *course
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memCourseRepo) List(_ context.Context, filter repository.CourseListFilter) ([]domain.Course, int64, error) {
	r.lastFilter = filter
	matched := make([]*domain.Course, 0, len(r.courses))
	for _, course := range r.courses {
		if filter.Category != "" && course.Category != filter.Category {
			continue
		}
		if filter.Instructor != "" && course.Instructor != filter.Instructor {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(course.Title), needle) &&
				!strings.Contains(strings.ToLower(course.Description), needle) {
				continue
			}
		}
		matched = append(matched, course)
	}

	total := int64(len(matched))
	start := int(filter.Skip)
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+int(filter.Limit) < end {
		end = start + int(filter.Limit)
	}
	page := make([]domain.Course, 0, end-start)
	for _, course := range matched[start:end] {
		page = append(page, *course)
	}
	return page, total, nil
}

func (r *memCourseRepo) ListByInstructor(_ context.Context, instructorEmail string) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, course := range r.courses {
		if course.Instructor == instructorEmail {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (r *memCourseRepo) ListByCategory(_ context.Context, category string) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, course := range r.courses {
		if course.Category == category {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (r *memCourseRepo) Update(_ context.Context, course *domain.Course) error {
	for i, existing := range r.courses {
		if existing.ID == course.ID {
			copied := *course
			r.courses[i] = &copied
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memCourseRepo) Delete(_ context.Context, id string) error {
	for i, course := range r.courses {
		if course.ID.Hex() == id {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type memEnrollmentRepo struct {
	enrollments []*domain.Enrollment
}

func (r *memEnrollmentRepo) Create(_ context.Context, enrollment *domain.Enrollment) error {
	for _, existing := range r.enrollments {
		if existing.UserID == enrollment.UserID && existing.CourseID == enrollment.CourseID {
			return duplicateKeyErr()
		}
	}
	if enrollment.ID.IsZero() {
		enrollment.ID = primitive.NewObjectID()
	}
	copied := *enrollment
	r.enrollments = append(r.enrollments, &copied)
	return nil
}

func (r *memEnrollmentRepo) GetPair(_ context.Context, userID, courseID string) (*domain.Enrollment, error) {
	for _, enrollment := range r.enrollments {
		if enrollment.UserID.Hex() == userID && enrollment.CourseID.Hex() == courseID {
			copied := *enrollment
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]domain.Enrollment, error) {
	out := []domain.Enrollment{}
	for _, enrollment := range r.enrollments {
		if enrollment.UserID.Hex() == userID {
			out = append(out, *enrollment)
		}
	}
	return out, nil
}

type memProgressRepo struct {
	entries []*domain.Progress
}

func (r *memProgressRepo) Upsert(_ context.Context, userID, courseID string, percentage int, now time.Time) (*domain.Progress, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	cid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	for _, entry := range r.entries {
		if entry.UserID == uid && entry.CourseID == cid {
			entry.Percentage = percentage
			entry.IsCompleted = percentage == 100
			entry.UpdatedAt = now
			copied := *entry
			return &copied, nil
		}
	}

	entry := &domain.Progress{
		ID:          primitive.NewObjectID(),
		UserID:      uid,
		CourseID:    cid,
		Percentage:  percentage,
		IsCompleted: percentage == 100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.entries = append(r.entries, entry)
	copied := *entry
	return &copied, nil
}

func (r *memProgressRepo) Get(_ context.Context, userID, courseID string) (*domain.Progress, error) {
	for _, entry := range r.entries {
		if entry.UserID.Hex() == userID && entry.CourseID.Hex() == courseID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memProgressRepo) ListByUser(_ context.Context, userID string) ([]domain.Progress, error) {
	out := []domain.Progress{}
	for _, entry := range r.entries {
		if entry.UserID.Hex() == userID {
			out = append(out, *entry)
		}
	}
	return out, nil
}
