package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/api/dto"
	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/service"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// ProgressHandler exposes progress tracking endpoints. The enrollment
// precondition for updates lives here, not in the progress service.
type ProgressHandler struct {
	progress    *service.ProgressService
	enrollments *service.EnrollmentService
}

// NewProgressHandler constructs handler.
func NewProgressHandler(progressService *service.ProgressService, enrollmentService *service.EnrollmentService) *ProgressHandler {
	return &ProgressHandler{progress: progressService, enrollments: enrollmentService}
}

// Update handles POST /progress/:course_id (students only, must be enrolled).
func (h *ProgressHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	courseID := c.Params("course_id")

	if _, err := h.enrollments.GetPair(c.Context(), user.ID.Hex(), courseID); err != nil {
		// only a missing enrollment reads as a rejection; store failures
		// stay server errors
		if apperrors.ToDomainError(err).Code == "NOT_FOUND" {
			return apperrors.NewForbidden("user is not enrolled in this course")
		}
		return err
	}

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	progress, err := h.progress.Upsert(c.Context(), user, courseID, req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": progressResponse(progress)})
}

// Get handles GET /progress/:course_id for the calling user.
func (h *ProgressHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	progress, err := h.progress.Get(c.Context(), user.ID.Hex(), c.Params("course_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": progressResponse(progress)})
}

// ListMine handles GET /progress/user, every progress entry for the caller.
func (h *ProgressHandler) ListMine(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	entries, err := h.progress.ListByUser(c.Context(), user.ID.Hex())
	if err != nil {
		return err
	}

	items := make([]dto.ProgressResponse, 0, len(entries))
	for i := range entries {
		items = append(items, progressResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func progressResponse(progress *domain.Progress) dto.ProgressResponse {
	return dto.ProgressResponse{
		UserID:      progress.UserID.Hex(),
		CourseID:    progress.CourseID.Hex(),
		Progress:    progress.Percentage,
		IsCompleted: progress.IsCompleted,
		CreatedAt:   progress.CreatedAt,
		UpdatedAt:   progress.UpdatedAt,
	}
}
