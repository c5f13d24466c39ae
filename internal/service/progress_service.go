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

// ProgressService tracks how far students have advanced through courses.
// It does not verify enrollment itself; the handler layer checks that
// precondition before calling Upsert.
type ProgressService struct {
	progress   repository.ProgressRepository
	dispatcher events.Dispatcher
}

// NewProgressService constructs the service.
func NewProgressService(progress repository.ProgressRepository, dispatcher events.Dispatcher) *ProgressService {
	return &ProgressService{progress: progress, dispatcher: dispatcher}
}

// Upsert creates or replaces the progress for a pair. The completion flag
// is recomputed on every call, so dropping back below 100 clears it.
func (s *ProgressService) Upsert(ctx context.Context, user *domain.User, courseID string, percentage int) (*domain.Progress, error) {
	if percentage < 0 || percentage > 100 {
		return nil, apperrors.NewValidationError("progress must be between 0 and 100", map[string]any{"progress": percentage})
	}

	progress, err := s.progress.Upsert(ctx, user.ID.Hex(), courseID, percentage, time.Now().UTC())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("course", map[string]any{"id": courseID})
		}
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventProgressUpdated)
		event.ActorRole = user.Role
		event.UserID = user.ID.Hex()
		event.CourseID = courseID
		event.Payload = events.ProgressUpdatedPayload{Percentage: progress.Percentage, IsCompleted: progress.IsCompleted}
		_ = s.dispatcher.Publish(ctx, event)

		if progress.IsCompleted {
			completed := events.NewEvent(events.EventCourseCompleted)
			completed.ActorRole = user.Role
			completed.UserID = user.ID.Hex()
			completed.CourseID = courseID
			_ = s.dispatcher.Publish(ctx, completed)
		}
	}
	return progress, nil
}

// Get returns the progress for a (user, course) pair.
func (s *ProgressService) Get(ctx context.Context, userID, courseID string) (*domain.Progress, error) {
	progress, err := s.progress.Get(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("progress", map[string]any{"user_id": userID, "course_id": courseID})
		}
		return nil, apperrors.MapError(err)
	}
	return progress, nil
}

// ListByUser returns every progress entry for the user.
func (s *ProgressService) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	entries, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
