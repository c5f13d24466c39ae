package dto

import "time"

// EnrollmentResponse is the public shape of an enrollment.
type EnrollmentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
