package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/config"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// CreateUserInput carries admin-created account fields. Unlike signup, the
// admin path may assign any role.
type CreateUserInput struct {
	Email       string
	Password    string
	Role        domain.Role
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	PhoneNumber string
	Address     string
	Gender      string
}

// ProfilePatch carries optional self-service profile fields. Role and email
// are deliberately absent: neither is mutable through this path.
type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	PhoneNumber *string
	Address     *string
	Gender      *string
}

// UserService manages user accounts beyond the signup/login flow.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

func requireAdmin(actor *domain.User) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// CreateUser lets an admin create an account with any role.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(input.Role)})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Gender:       input.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns a page of users plus the total match count.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User, filter repository.UserListFilter) ([]domain.User, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return users, total, nil
}

// GetUser returns a user by id for admin inspection.
func (s *UserService) GetUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.ID.Hex() == id {
		return apperrors.NewForbidden("admins cannot delete their own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// UpdateProfile applies a partial self-service update. The role stays
// whatever it was; only admins can change roles, through CreateUser.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, patch ProfilePatch) (*domain.User, error) {
	if user == nil {
		return nil, apperrors.NewUnauthorized("could not validate credentials")
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = patch.DateOfBirth
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.Gender != nil {
		user.Gender = *patch.Gender
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
