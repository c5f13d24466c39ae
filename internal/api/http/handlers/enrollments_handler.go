package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/api/dto"
	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/service"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// EnrollmentsHandler exposes enrollment endpoints.
type EnrollmentsHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentsHandler constructs handler.
func NewEnrollmentsHandler(enrollmentService *service.EnrollmentService) *EnrollmentsHandler {
	return &EnrollmentsHandler{enrollments: enrollmentService}
}

// Enroll handles POST /enrollments/:course_id (students only).
func (h *EnrollmentsHandler) Enroll(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	enrollment, err := h.enrollments.Enroll(c.Context(), user, c.Params("course_id"))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyEnrolled) {
			return apperrors.NewConflict("already enrolled in this course", nil)
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": enrollmentResponse(enrollment)})
}

// ListByUser handles GET /enrollments/user/:user_id. Callers may only read
// their own enrollments unless they are admins.
func (h *EnrollmentsHandler) ListByUser(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	userID := c.Params("user_id")
	if user.Role != domain.RoleAdmin && user.ID.Hex() != userID {
		return apperrors.NewForbidden("cannot read another user's enrollments")
	}

	enrollments, err := h.enrollments.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	items := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		items = append(items, enrollmentResponse(&enrollments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func enrollmentResponse(enrollment *domain.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:         enrollment.ID.Hex(),
		UserID:     enrollment.UserID.Hex(),
		CourseID:   enrollment.CourseID.Hex(),
		EnrolledAt: enrollment.EnrolledAt,
	}
}
