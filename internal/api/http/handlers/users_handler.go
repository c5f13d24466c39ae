package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/api/dto"
	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
	"github.com/spec-kit/lms-service/internal/service"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// UsersHandler exposes admin user management plus self-service profile
// endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /users (admin only).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return apperrors.NewValidationError("date_of_birth must be YYYY-MM-DD", nil)
	}

	user, err := h.users.CreateUser(c.Context(), actor, service.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Gender:      req.Gender,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// List handles GET /users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	filter := repository.UserListFilter{
		Skip:  int64(parseIntQuery(c.Query("skip"), 0)),
		Limit: int64(parseIntQuery(c.Query("limit"), 10)),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.Role(roleStr)
		if !role.Valid() {
			return apperrors.NewValidationError("invalid role filter", map[string]any{"role": roleStr})
		}
		filter.Role = &role
	}

	users, total, err := h.users.ListUsers(c.Context(), actor, filter)
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": dto.PaginatedUsers{Total: total, Data: items}})
}

// Get handles GET /users/:id (admin only).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	user, err := h.users.GetUser(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete handles DELETE /users/:id (admin only, never the caller themself).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	if err := h.users.DeleteUser(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// Profile handles GET /users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateProfile handles PATCH /users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.ProfilePatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Gender:      req.Gender,
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return apperrors.NewValidationError("date_of_birth must be YYYY-MM-DD", nil)
		}
		patch.DateOfBirth = dob
	}

	updated, err := h.users.UpdateProfile(c.Context(), user, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(updated)})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID.Hex(),
		Email:       user.Email,
		Role:        user.Role,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DateOfBirth: user.DateOfBirth,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		Gender:      user.Gender,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func parseDate(val string) (*time.Time, error) {
	if val == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
