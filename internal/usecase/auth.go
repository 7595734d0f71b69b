package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/password"
	"github.com/eduai-labs/eduai-backend/internal/repository"
	"github.com/eduai-labs/eduai-backend/internal/token"
)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher password.Hasher
	tokens *token.Issuer
}

func NewAuthUsecase(users repository.UserRepository, hasher password.Hasher, tokens *token.Issuer) *AuthUsecase {
	return &AuthUsecase{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account with an unverified email and returns a signed
// token immediately. Verification is decoupled from the ability to log in.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, plainPassword, fullName string) (*domain.User, string, error) {
	hash, err := u.hasher.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}

	user, err := u.users.Create(ctx, &domain.User{
		Email:           normalizeEmail(emailAddr),
		FullName:        fullName,
		PasswordHash:    &hash,
		IsEmailVerified: false,
	})
	if err != nil {
		return nil, "", err
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}

// Login validates credentials and returns a signed token. Unknown email,
// wrong password, and a password-less (OAuth-only) account all collapse into
// ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plainPassword string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.PasswordHash == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(*user.PasswordHash, plainPassword); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}
