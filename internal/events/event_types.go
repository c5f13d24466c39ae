package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/lms-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventCourseCreated   EventType = "course_created"
	EventCourseUpdated   EventType = "course_updated"
	EventCourseDeleted   EventType = "course_deleted"
	EventUserEnrolled    EventType = "user_enrolled"
	EventProgressUpdated EventType = "progress_updated"
	EventCourseCompleted EventType = "course_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorRole domain.Role `json:"actor_role,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	CourseID  string      `json:"course_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps id and timestamp for an event.
func NewEvent(eventType EventType) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// CourseChangedPayload payload for create/update/delete.
type CourseChangedPayload struct {
	Title      string `json:"title,omitempty"`
	Instructor string `json:"instructor"`
}

// ProgressUpdatedPayload payload.
type ProgressUpdatedPayload struct {
	Percentage  int  `json:"percentage"`
	IsCompleted bool `json:"is_completed"`
}
