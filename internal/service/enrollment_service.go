package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/events"
	"github.com/spec-kit/lms-service/internal/repository"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// ErrAlreadyEnrolled signals that the (user, course) pair already exists.
// It is an expected outcome, not a failure; the handler layer translates it
// into a client error.
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

// EnrollmentService creates and queries enrollments.
type EnrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	dispatcher  events.Dispatcher
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, dispatcher events.Dispatcher) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses, dispatcher: dispatcher}
}

// Enroll records the student in the course. The unique (user_id, course_id)
// index makes the operation safe under concurrent duplicate attempts; the
// second writer gets ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, user *domain.User, courseID string) (*domain.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("course", map[string]any{"id": courseID})
		}
		return nil, apperrors.MapError(err)
	}

	enrollment := &domain.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		EnrolledAt: time.Now().UTC(),
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventUserEnrolled)
		event.ActorRole = user.Role
		event.UserID = user.ID.Hex()
		event.CourseID = course.ID.Hex()
		_ = s.dispatcher.Publish(ctx, event)
	}
	return enrollment, nil
}

// ListByUser returns every enrollment for the user.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return enrollments, nil
}

// GetPair returns the enrollment for a (user, course) pair. Used as the
// precondition check before progress updates.
func (s *EnrollmentService) GetPair(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	enrollment, err := s.enrollments.GetPair(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("enrollment", map[string]any{"user_id": userID, "course_id": courseID})
		}
		return nil, apperrors.MapError(err)
	}
	return enrollment, nil
}
