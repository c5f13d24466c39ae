package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lms-service/internal/domain"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

func rolesTestApp(user *domain.User, allowed ...domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})
	app.Get("/guarded",
		func(c *fiber.Ctx) error {
			if user != nil {
				c.Locals(principalKey, user)
			}
			return c.Next()
		},
		RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})
	return app
}

func TestRequireRoleAllowsMember(t *testing.T) {
	user := &domain.User{Email: "i@x.com", Role: domain.RoleInstructor}
	app := rolesTestApp(user, domain.RoleInstructor, domain.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsOutsider(t *testing.T) {
	user := &domain.User{Email: "s@x.com", Role: domain.RoleStudent}
	app := rolesTestApp(user, domain.RoleInstructor, domain.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	app := rolesTestApp(nil, domain.RoleStudent)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := &domain.User{Email: "i@x.com", Role: domain.RoleInstructor}
	other := &domain.User{Email: "j@x.com", Role: domain.RoleInstructor}
	admin := &domain.User{Email: "a@x.com", Role: domain.RoleAdmin}

	assert.NoError(t, RequireOwnerOrAdmin(owner, "i@x.com"))
	assert.NoError(t, RequireOwnerOrAdmin(admin, "i@x.com"))

	err := RequireOwnerOrAdmin(other, "i@x.com")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
}
