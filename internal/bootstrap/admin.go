package bootstrap

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/lms-service/internal/auth"
	"github.com/spec-kit/lms-service/internal/config"
	"github.com/spec-kit/lms-service/internal/domain"
	"github.com/spec-kit/lms-service/internal/repository"
)

// EnsureAdmin creates the initial admin account at startup when ADMIN_EMAIL
// and ADMIN_PASSWORD are configured. Idempotent: an existing account with
// that email is left untouched.
func EnsureAdmin(ctx context.Context, cfg config.Config, users repository.UserRepository, logger *zap.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Info("admin bootstrap skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	if _, err := users.GetByEmail(ctx, cfg.Admin.Email); err == nil {
		logger.Info("admin account already exists", zap.String("email", cfg.Admin.Email))
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FirstName:    "Admin",
		LastName:     "User",
		Gender:       "other",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost the race to another instance, account exists either way
			return nil
		}
		return err
	}

	logger.Info("admin account created", zap.String("email", cfg.Admin.Email))
	return nil
}
