package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")

	ErrAlreadyVerified = errors.New("email is already verified")
	ErrInvalidCode     = errors.New("code is invalid")
	ErrCodeExpired     = errors.New("code has expired")

	ErrMailNotConfigured = errors.New("email service is not configured")
	ErrMailDelivery      = errors.New("failed to send email")
	ErrAINotConfigured   = errors.New("AI service is not configured")
)

// Purpose identifies which one-time-code flow a code belongs to. Both flows
// share the same mechanics (6-digit code, 10-minute expiry, single use) but
// live on independent field pairs and have different terminal side effects.
type Purpose string

const (
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

type User struct {
	ID       string
	Email    string
	FullName string

	// PasswordHash is nil for accounts created through OAuth.
	PasswordHash *string

	IsEmailVerified bool

	// A code and its expiry are set and cleared together, never one
	// without the other. Nil code means no challenge is outstanding.
	VerificationCode        *string
	VerificationCodeExpires *time.Time
	ResetPasswordToken      *string
	ResetPasswordExpires    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Challenge returns the stored code/expiry pair for the given purpose.
func (u *User) Challenge(p Purpose) (*string, *time.Time) {
	if p == PurposePasswordReset {
		return u.ResetPasswordToken, u.ResetPasswordExpires
	}
	return u.VerificationCode, u.VerificationCodeExpires
}
