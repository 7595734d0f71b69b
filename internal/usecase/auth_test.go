package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/password"
	"github.com/eduai-labs/eduai-backend/internal/token"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
)

const authTestJWTKey = "auth-test-secret-at-least-32chars"

func newAuth(repo *memRepo) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(repo, password.NewBcryptHasher(), token.NewIssuer([]byte(authTestJWTKey), time.Hour))
}

func TestRegister_CreatesUnverifiedUserAndReturnsToken(t *testing.T) {
	repo := newMemRepo()

	user, signed, err := newAuth(repo).Register(context.Background(), "A@X.com", "secret-pw", "Ada Example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "a@x.com" {
		t.Errorf("email = %q, want lowercased %q", user.Email, "a@x.com")
	}
	if user.IsEmailVerified {
		t.Error("new user must start unverified")
	}
	if user.PasswordHash == nil || *user.PasswordHash == "secret-pw" {
		t.Error("password was not hashed")
	}

	// Registration issues a usable token before verification (given behavior).
	got, err := token.NewIssuer([]byte(authTestJWTKey), time.Hour).Verify(signed)
	if err != nil || got != user.ID {
		t.Errorf("token does not verify to user ID: got %q, err %v", got, err)
	}
}

func TestRegister_DuplicateEmail_ReturnsUserExists(t *testing.T) {
	repo := newMemRepo()
	auth := newAuth(repo)

	if _, _, err := auth.Register(context.Background(), "a@x.com", "secret-pw", "Ada"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := auth.Register(context.Background(), "a@x.com", "other-pw", "Ada Again")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}
}

func TestLogin_CorrectPassword_ReturnsToken(t *testing.T) {
	repo := newMemRepo()
	auth := newAuth(repo)
	if _, _, err := auth.Register(context.Background(), "a@x.com", "secret-pw", "Ada"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, signed, err := auth.Login(context.Background(), "a@x.com", "secret-pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" || user.Email != "a@x.com" {
		t.Errorf("unexpected login result: token=%q user=%q", signed, user.Email)
	}
}

func TestLogin_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	repo := newMemRepo()
	auth := newAuth(repo)
	if _, _, err := auth.Register(context.Background(), "a@x.com", "secret-pw", "Ada"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := auth.Login(context.Background(), "a@x.com", "wrong-pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail_ReturnsInvalidCredentials(t *testing.T) {
	_, _, err := newAuth(newMemRepo()).Login(context.Background(), "nobody@x.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_OAuthOnlyAccount_ReturnsInvalidCredentials(t *testing.T) {
	repo := newMemRepo(&domain.User{ID: "user-1", Email: "oauth@x.com", FullName: "OAuth Only"})

	_, _, err := newAuth(repo).Login(context.Background(), "oauth@x.com", "anything")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}
