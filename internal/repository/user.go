package repository

import (
	"context"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// StoreCode writes the code/expiry pair for the given purpose in a
	// single update. A later write overwrites an earlier one (last write
	// wins, no version check).
	StoreCode(ctx context.Context, userID string, purpose domain.Purpose, code string, expiresAt time.Time) error

	// MarkEmailVerified sets is_email_verified and clears the verification
	// code/expiry pair in the same update.
	MarkEmailVerified(ctx context.Context, userID string) error

	// ResetPassword replaces the password hash and clears the reset
	// code/expiry pair in the same update.
	ResetPassword(ctx context.Context, userID, passwordHash string) error

	UpdateFullName(ctx context.Context, userID, fullName string) (*domain.User, error)
}
