package dto

import "time"

// CreateCourseRequest payload.
type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateCourseRequest carries the partial patch; absent fields are left as-is.
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// CourseResponse is the public shape of a course.
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Instructor  string    `json:"instructor"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaginatedCourses wraps a course listing page.
type PaginatedCourses struct {
	Total int64            `json:"total"`
	Data  []CourseResponse `json:"data"`
}
