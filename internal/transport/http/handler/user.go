package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in usecase.UpdateProfileInput) (*domain.User, error)
}

type UserHandler struct {
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

// profileResponse excludes the password hash and the outstanding challenge
// fields.
type profileResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// GET /users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toProfileResponse(user)})
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
}

// PATCH /users/profile
// Only fields on the explicit allow-list are applied; unknown body keys are
// ignored.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), c.GetString("userID"), usecase.UpdateProfileInput{
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": errNoUpdatableFields})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    toProfileResponse(user),
	})
}
