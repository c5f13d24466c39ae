package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

const principalKey = "auth_principal"

// Every authentication failure collapses to this one message so a caller
// cannot distinguish a bad signature from an unknown account.
const credentialsMessage = "could not validate credentials"

// AuthMiddleware validates bearer tokens and loads the authenticated user.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized(credentialsMessage)
	}

	subject, err := m.tokens.Verify(authHeader)
	if err != nil {
		return apperrors.NewUnauthorized(credentialsMessage)
	}

	user, err := m.users.GetByEmail(c.Context(), subject)
	if err != nil {
		return apperrors.NewUnauthorized(credentialsMessage)
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// CurrentUser retrieves the authenticated user stored by Handle.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
