package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/config"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/events"
	"github.com/spec-kit/lms-service/internal/repository"
	apperrors "github.com/spec-kit/lms-service/pkg/util"
)

// SignupInput carries self-registration fields. Any role supplied by the
// caller is ignored; signup always produces a student.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	PhoneNumber string
	Address     string
	Gender      string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new student account.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
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
		Role:         domain.RoleStudent,
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

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventUserRegistered)
		event.UserID = user.ID.Hex()
		event.ActorRole = user.Role
		event.Payload = events.UserRegisteredPayload{Email: user.Email, Role: user.Role}
		_ = s.dispatcher.Publish(ctx, event)
	}
	return user, nil
}

// Login authenticates a user and issues a bearer token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.Email)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
