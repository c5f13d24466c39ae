package dto

import (
	"time"

	"github.com/spec-kit/lms-service/internal/domain"
)

// CreateUserRequest payload for the admin creation path; may set any role.
type CreateUserRequest struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	DateOfBirth string      `json:"date_of_birth"`
	PhoneNumber string      `json:"phone_number"`
	Address     string      `json:"address"`
	Gender      string      `json:"gender"`
}

// UpdateProfileRequest payload for self-service profile updates. Role and
// email are not accepted here.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Gender      *string `json:"gender"`
}

// UserResponse is the public shape of a user record; the hash never leaves
// the service.
type UserResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	DateOfBirth *time.Time  `json:"date_of_birth,omitempty"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	Address     string      `json:"address,omitempty"`
	Gender      string      `json:"gender,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PaginatedUsers wraps a user listing page.
type PaginatedUsers struct {
	Total int64          `json:"total"`
	Data  []UserResponse `json:"data"`
}
