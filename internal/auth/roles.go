package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lms-service/internal/domain"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
// Must run after AuthMiddleware.Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized(credentialsMessage)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden("operation not permitted for the current user role")
		}
		return c.Next()
	}
}

// RequireOwnerOrAdmin passes when the user is an admin or owns the resource
// identified by ownerEmail.
func RequireOwnerOrAdmin(user *domain.User, ownerEmail string) error {
	if user == nil {
		return apperrors.NewUnauthorized(credentialsMessage)
	}
	if user.Role == domain.RoleAdmin || user.Email == ownerEmail {
		return nil
	}
	return apperrors.NewForbidden("not the resource owner")
}
