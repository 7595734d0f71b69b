package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/email"
	"github.com/eduai-labs/eduai-backend/internal/metrics"
	"github.com/eduai-labs/eduai-backend/internal/password"
	"github.com/eduai-labs/eduai-backend/internal/repository"
	"github.com/eduai-labs/eduai-backend/internal/token"
)

const defaultCodeTTL = 10 * time.Minute

// VerificationUsecase implements the one-time-code flows: email ownership
// proof and password-reset authorization. Both share the same mechanics
// (6-digit code, 10-minute window, single use) but mutate different field
// pairs and end in different side effects.
type VerificationUsecase struct {
	users   repository.UserRepository
	email   email.Sender
	hasher  password.Hasher
	tokens  *token.Issuer
	appName string
	codeTTL time.Duration
}

func NewVerificationUsecase(users repository.UserRepository, emailSender email.Sender, hasher password.Hasher, tokens *token.Issuer, appName string) *VerificationUsecase {
	return &VerificationUsecase{
		users:   users,
		email:   emailSender,
		hasher:  hasher,
		tokens:  tokens,
		appName: appName,
		codeTTL: defaultCodeTTL,
	}
}

// IssueCode generates a fresh 6-digit code for the given purpose, persists
// the code/expiry pair, and emails the code. The pair is persisted before the
// send is attempted: a delivery failure does not roll it back, so an
// issued-but-undelivered code is still valid for validation.
func (u *VerificationUsecase) IssueCode(ctx context.Context, emailAddr string, purpose domain.Purpose) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		return err
	}

	if purpose == domain.PurposeEmailVerification && user.IsEmailVerified {
		return domain.ErrAlreadyVerified
	}

	if u.email == nil {
		return domain.ErrMailNotConfigured
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	expiresAt := time.Now().Add(u.codeTTL)

	if err := u.users.StoreCode(ctx, user.ID, purpose, code, expiresAt); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	metrics.CodesIssuedTotal.WithLabelValues(string(purpose)).Inc()

	subject := "Verify your email address"
	action := "verify your email address"
	if purpose == domain.PurposePasswordReset {
		subject = "Reset your password"
		action = "reset your password"
	}
	body := fmt.Sprintf(`<h1>%s</h1>
<p>Hello %s,</p>
<p>Please use the following code to %s:</p>
<h2><strong>%s</strong></h2>
<p>This code is valid for 10 minutes.</p>
<p>If you did not request this, please ignore this email.</p>
<p>Thank you,</p>
<p>The %s Team</p>`,
		subject, user.FullName, action, code, u.appName)

	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		// The code stays valid in storage. The caller is only told that
		// delivery failed.
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()

	return nil
}

// VerifyEmail validates a code issued for email verification and, on
// success, marks the email verified and clears the code/expiry pair.
func (u *VerificationUsecase) VerifyEmail(ctx context.Context, emailAddr, code string) error {
	user, err := u.validate(ctx, emailAddr, domain.PurposeEmailVerification, code)
	if err != nil {
		return err
	}

	if err := u.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

// ResetResult is returned on a successful password reset. The token logs
// the user straight in.
type ResetResult struct {
	Token string
	User  *domain.User
}

// ResetPassword validates a code issued for password reset, replaces the
// password hash, clears the code/expiry pair, and issues a bearer token.
func (u *VerificationUsecase) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) (*ResetResult, error) {
	if newPassword == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := u.validate(ctx, emailAddr, domain.PurposePasswordReset, code)
	if err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	if err := u.users.ResetPassword(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ResetResult{Token: signed, User: user}, nil
}

// validate runs the shared precondition chain. Order matters: user
// existence, challenge outstanding, exact code match, then expiry. A missing
// challenge and a wrong guess both come back as ErrInvalidCode so a caller
// cannot probe whether a challenge exists.
func (u *VerificationUsecase) validate(ctx context.Context, emailAddr string, purpose domain.Purpose, supplied string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		return nil, err
	}

	stored, expiresAt := user.Challenge(purpose)
	if stored == nil {
		metrics.CodeValidationsTotal.WithLabelValues(string(purpose), "invalid").Inc()
		return nil, domain.ErrInvalidCode
	}
	// Exact string comparison: "000123" never matches "123".
	if *stored != supplied {
		metrics.CodeValidationsTotal.WithLabelValues(string(purpose), "invalid").Inc()
		return nil, domain.ErrInvalidCode
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		metrics.CodeValidationsTotal.WithLabelValues(string(purpose), "expired").Inc()
		return nil, domain.ErrCodeExpired
	}

	metrics.CodeValidationsTotal.WithLabelValues(string(purpose), "ok").Inc()
	return user, nil
}

// generateCode returns a uniformly random 6-digit code in [100000, 999999],
// so the string is always exactly six digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
