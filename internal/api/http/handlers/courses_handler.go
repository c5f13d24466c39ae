package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/api/dto"
	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
	"github.com/spec-kit/lms-service/internal/service"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// CoursesHandler exposes course CRUD endpoints.
type CoursesHandler struct {
	courses *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService) *CoursesHandler {
	return &CoursesHandler{courses: courseService}
}

// Create handles POST /courses (instructor or admin).
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}

	course, err := h.courses.Create(c.Context(), actor, service.CourseCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": courseResponse(course)})
}

// Get handles GET /courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courseResponse(course)})
}

// List handles GET /courses with filtering, searching, sorting, pagination.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	filter := repository.CourseListFilter{
		Category:   c.Query("category"),
		Instructor: c.Query("instructor"),
		Search:     c.Query("search"),
		Skip:       int64(parseIntQuery(c.Query("skip"), 0)),
		Limit:      int64(parseIntQuery(c.Query("limit"), 10)),
		SortField:  c.Query("sort_by"),
		SortDesc:   c.Query("sort_order", "desc") == "desc",
	}

	courses, total, err := h.courses.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, courseResponse(&courses[i]))
	}
	return c.JSON(fiber.Map{"data": dto.PaginatedCourses{Total: total, Data: items}})
}

// Update handles PATCH /courses/:id (owning instructor only).
func (h *CoursesHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	course, err := h.courses.Update(c.Context(), actor, c.Params("id"), domain.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courseResponse(course)})
}

// Delete handles DELETE /courses/:id (owning instructor or admin).
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	if err := h.courses.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func courseResponse(course *domain.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID.Hex(),
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		Instructor:  course.Instructor,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}
