package usecase

import (
	"context"
	"strings"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfileInput is the explicit allow-list of updatable fields. Only
// fields present (non-nil) are applied; anything else in the request body is
// ignored.
type UpdateProfileInput struct {
	FullName *string
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	if in.FullName == nil {
		return nil, domain.ErrMissingFields
	}
	fullName := strings.TrimSpace(*in.FullName)
	if fullName == "" {
		return nil, domain.ErrMissingFields
	}
	return u.users.UpdateFullName(ctx, userID, fullName)
}
