package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser and verifyUsecaser are the subsets of the usecases the
// handler needs. Defined here (point of use) so tests can inject fakes.
type authUsecaser interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type verifyUsecaser interface {
	IssueCode(ctx context.Context, email string, purpose domain.Purpose) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) (*usecase.ResetResult, error)
}

type AuthHandler struct {
	auth   authUsecaser
	verify verifyUsecaser
	logger *slog.Logger
}

func NewAuthHandler(auth authUsecaser, verify verifyUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		verify: verify,
		logger: logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": errUserExists})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user.Email,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"token":   token,
		"user":    user.Email,
	})
}

type issueCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/verify-email
func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	h.issueCode(c, domain.PurposeEmailVerification, "Verification code sent successfully")
}

// POST /auth/reset-password
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	h.issueCode(c, domain.PurposePasswordReset, "Reset code sent successfully")
}

func (h *AuthHandler) issueCode(c *gin.Context, purpose domain.Purpose, okMessage string) {
	var req issueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.verify.IssueCode(c.Request.Context(), req.Email, purpose)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": okMessage})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, gin.H{"error": errAlreadyVerified})
	case errors.Is(err, domain.ErrMailNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errMailNotConfigured})
	case errors.Is(err, domain.ErrMailDelivery):
		h.logger.ErrorContext(c.Request.Context(), "send code email", "purpose", purpose, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMailDelivery})
	default:
		h.logger.ErrorContext(c.Request.Context(), "issue code", "purpose", purpose, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"  binding:"required"`
}

// PATCH /auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.verify.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCode})
	case errors.Is(err, domain.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errCodeExpired})
	default:
		h.logger.ErrorContext(c.Request.Context(), "verify email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

type resetPasswordRequest struct {
	Email       string `json:"email"       binding:"required,email"`
	Code        string `json:"code"        binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// PATCH /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.verify.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "Password reset successfully",
			"token":   result.Token,
			"user":    result.User.Email,
		})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCode})
	case errors.Is(err, domain.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errCodeExpired})
	case errors.Is(err, domain.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, code, and new password are required"})
	default:
		h.logger.ErrorContext(c.Request.Context(), "reset password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
