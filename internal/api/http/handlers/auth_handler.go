package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/api/dto"
	"github.com/spec-kit/lms-service/internal/service"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// AuthHandler exposes signup and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return apperrors.NewValidationError("email, password, first_name, last_name required", nil)
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return apperrors.NewValidationError("date_of_birth must be YYYY-MM-DD", nil)
	}

	user, err := h.auth.Signup(c.Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
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

// Login handles POST /auth/login. The payload is form-encoded in the OAuth2
// password style; the response shape is the bearer-token convention.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
