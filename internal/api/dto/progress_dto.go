package dto

import "time"

// UpdateProgressRequest payload.
type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

// ProgressResponse is the public shape of a progress record.
type ProgressResponse struct {
	UserID      string    `json:"user_id"`
	CourseID    string    `json:"course_id"`
	Progress    int       `json:"progress"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
