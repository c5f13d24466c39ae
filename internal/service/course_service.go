package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/events"
	"github.com/spec-kit/lms-service/internal/repository"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// validSortFields enumerates accepted course sort keys.
var validSortFields = []string{"title", "created_at", "updated_at"}

// CourseCreateInput carries new course fields.
type CourseCreateInput struct {
	Title       string
	Description string
	Category    string
}

// CourseService performs course CRUD with the ownership rules applied.
type CourseService struct {
	courses    repository.CourseRepository
	dispatcher events.Dispatcher
}

// NewCourseService constructs the service.
func NewCourseService(courses repository.CourseRepository, dispatcher events.Dispatcher) *CourseService {
	return &CourseService{courses: courses, dispatcher: dispatcher}
}

// Create stores a course owned by the acting instructor.
func (s *CourseService) Create(ctx context.Context, actor *domain.User, input CourseCreateInput) (*domain.Course, error) {
	now := time.Now().UTC()
	course := &domain.Course{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Instructor:  actor.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventCourseCreated, actor, course)
	return course, nil
}

// Get returns a course by id. Malformed and unknown ids both read as absent.
func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("course", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return course, nil
}

// List returns a page of courses plus the total match count. The sort field
// must be one of title, created_at, updated_at.
func (s *CourseService) List(ctx context.Context, filter repository.CourseListFilter) ([]domain.Course, int64, error) {
	if filter.SortField == "" {
		filter.SortField = "created_at"
	}
	if !sortFieldValid(filter.SortField) {
		return nil, 0, apperrors.NewValidationError(
			"invalid sort field, valid fields are: "+strings.Join(validSortFields, ", "), nil)
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return courses, total, nil
}

// ListByInstructor returns every course owned by the instructor email.
func (s *CourseService) ListByInstructor(ctx context.Context, instructorEmail string) ([]domain.Course, error) {
	courses, err := s.courses.ListByInstructor(ctx, instructorEmail)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return courses, nil
}

// ListByCategory returns every course in the category.
func (s *CourseService) ListByCategory(ctx context.Context, category string) ([]domain.Course, error) {
	courses, err := s.courses.ListByCategory(ctx, category)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return courses, nil
}

// Update applies a partial patch to a course. Only the exact owning
// instructor may update; admins are not exempt here, unlike Delete.
func (s *CourseService) Update(ctx context.Context, actor *domain.User, id string, patch domain.CoursePatch) (*domain.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Email != course.Instructor {
		return nil, apperrors.NewForbidden("only the owning instructor may update this course")
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Category != nil {
		course.Category = *patch.Category
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("course", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventCourseUpdated, actor, course)
	return course, nil
}

// Delete removes a course. Allowed to the owning instructor or any admin.
func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrAdmin(actor, course.Instructor); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewNotFound("course", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventCourseDeleted, actor, course)
	return nil
}

func (s *CourseService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, course *domain.Course) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(eventType)
	event.ActorRole = actor.Role
	event.UserID = actor.ID.Hex()
	event.CourseID = course.ID.Hex()
	event.Payload = events.CourseChangedPayload{Title: course.Title, Instructor: course.Instructor}
	_ = s.dispatcher.Publish(ctx, event)
}

func sortFieldValid(field string) bool {
	for _, valid := range validSortFields {
		if field == valid {
			return true
		}
	}
	return false
}
