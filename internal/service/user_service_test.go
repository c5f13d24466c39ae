package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

func testUser(role domain.Role, email string) *domain.User {
	return &domain.User{ID: primitive.NewObjectID(), Email: email, Role: role}
}

func requireDomainErr(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, status, domainErr.HTTPStatus)
	return domainErr
}

func TestCreateUserRoles(t *testing.T) {
	users := &memUserRepo{}
	svc := NewUserService(testConfig(), users)
	admin := testUser(domain.RoleAdmin, "admin@x.com")

	created, err := svc.CreateUser(context.Background(), admin, CreateUserInput{
		Email: "teach@x.com", Password: "pw", Role: domain.RoleInstructor,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleInstructor, created.Role)

	created, err = svc.CreateUser(context.Background(), admin, CreateUserInput{
		Email: "plain@x.com", Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, created.Role)

	_, err = svc.CreateUser(context.Background(), admin, CreateUserInput{
		Email: "bad@x.com", Password: "pw", Role: domain.Role("superuser"),
	})
	domainErr := requireDomainErr(t, err, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	users := &memUserRepo{}
	svc := NewUserService(testConfig(), users)

	for _, actor := range []*domain.User{
		testUser(domain.RoleStudent, "s@x.com"),
		testUser(domain.RoleInstructor, "i@x.com"),
		nil,
	} {
		_, err := svc.CreateUser(context.Background(), actor, CreateUserInput{Email: "x@x.com", Password: "pw"})
		requireDomainErr(t, err, http.StatusForbidden)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := &memUserRepo{}
	svc := NewUserService(testConfig(), users)
	admin := testUser(domain.RoleAdmin, "admin@x.com")

	_, err := svc.CreateUser(context.Background(), admin, CreateUserInput{Email: "dup@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), admin, CreateUserInput{Email: "dup@x.com", Password: "pw"})
	domainErr := requireDomainErr(t, err, http.StatusBadRequest)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestDeleteUser(t *testing.T) {
	users := &memUserRepo{}
	svc := NewUserService(testConfig(), users)

	admin := testUser(domain.RoleAdmin, "admin@x.com")
	require.NoError(t, users.Create(context.Background(), admin))
	victim := testUser(domain.RoleStudent, "victim@x.com")
	require.NoError(t, users.Create(context.Background(), victim))

	// self-deletion is blocked even for admins
	err := svc.DeleteUser(context.Background(), admin, admin.ID.Hex())
	requireDomainErr(t, err, http.StatusForbidden)

	require.NoError(t, svc.DeleteUser(context.Background(), admin, victim.ID.Hex()))

	err = svc.DeleteUser(context.Background(), admin, victim.ID.Hex())
	requireDomainErr(t, err, http.StatusNotFound)
}

func TestListUsersPagination(t *testing.T) {
	users := &memUserRepo{}
	svc := NewUserService(testConfig(), users)
	admin := testUser(domain.RoleAdmin, "admin@x.com")

	for i := 0; i < 25; i++ {
		require.NoError(t, users.Create(context.Background(),
			testUser(domain.RoleStudent, fmt.Sprintf("user%02d@x.com", i))))
	}

	page, total, err := svc.ListUsers(context.Background(), admin, repository.UserListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page, 10)

	page, total, err = svc.ListUsers(context.Background(), admin, repository.UserListFilter{Skip: 20, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page, 5)

	_, _, err = svc.ListUsers(context.Background(), testUser(domain.RoleStudent, "s@x.com"), repository.UserListFilter{})
	requireDomainErr(t, err, http.StatusForbidden)
}

func TestUpdateProfileKeepsRoleAndEmail(t *testing.T) {
	users := &memUserRepo{}
	svc := NewUserService(testConfig(), users)

	user := testUser(domain.RoleInstructor, "me@x.com")
	require.NoError(t, users.Create(context.Background(), user))

	first := "Ada"
	phone := "+31-555-0100"
	updated, err := svc.UpdateProfile(context.Background(), user, ProfilePatch{FirstName: &first, PhoneNumber: &phone})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "+31-555-0100", updated.PhoneNumber)
	assert.Equal(t, domain.RoleInstructor, updated.Role)
	assert.Equal(t, "me@x.com", updated.Email)

	stored, err := users.GetByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)
}
