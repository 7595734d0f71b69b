package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/transport/http/handler"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeUserUsecase struct {
	profile       func(ctx context.Context, userID string) (*domain.User, error)
	updateProfile func(ctx context.Context, userID string, in usecase.UpdateProfileInput) (*domain.User, error)
}

func (f *fakeUserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return f.profile(ctx, userID)
}

func (f *fakeUserUsecase) UpdateProfile(ctx context.Context, userID string, in usecase.UpdateProfileInput) (*domain.User, error) {
	return f.updateProfile(ctx, userID, in)
}

// newUserEngine fakes the auth middleware by injecting userID directly.
func newUserEngine(users *fakeUserUsecase) *gin.Engine {
	h := handler.NewUserHandler(users, slog.Default())
	r := gin.New()
	setUser := func(c *gin.Context) { c.Set("userID", "user-1"); c.Next() }
	r.GET("/users/profile", setUser, h.Profile)
	r.PATCH("/users/profile", setUser, h.UpdateProfile)
	return r
}

func TestProfile_ExcludesSensitiveFields(t *testing.T) {
	hash := "$2a$10$secret"
	code := "123456"
	expires := time.Now().Add(time.Minute)
	users := &fakeUserUsecase{
		profile: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q, want user-1", userID)
			}
			return &domain.User{
				ID: "user-1", Email: "a@x.com", FullName: "Ada Example",
				PasswordHash:            &hash,
				VerificationCode:        &code,
				VerificationCodeExpires: &expires,
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	newUserEngine(users).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, hash) {
		t.Error("response leaks the password hash")
	}
	if strings.Contains(body, code) {
		t.Error("response leaks the outstanding verification code")
	}
	if !strings.Contains(body, "a@x.com") {
		t.Error("response missing the email")
	}
}

func TestUpdateProfile_UnknownKeysIgnored_FullNameApplied(t *testing.T) {
	var gotInput usecase.UpdateProfileInput
	users := &fakeUserUsecase{
		updateProfile: func(_ context.Context, _ string, in usecase.UpdateProfileInput) (*domain.User, error) {
			gotInput = in
			return &domain.User{ID: "user-1", Email: "a@x.com", FullName: *in.FullName}, nil
		},
	}

	w := doJSON(t, newUserEngine(users), http.MethodPatch, "/users/profile",
		`{"fullName":"New Name","isEmailVerified":true,"role":"admin"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotInput.FullName == nil || *gotInput.FullName != "New Name" {
		t.Errorf("fullName input = %v, want New Name", gotInput.FullName)
	}
}

func TestUpdateProfile_NoAllowedFields_Returns400(t *testing.T) {
	users := &fakeUserUsecase{
		updateProfile: func(_ context.Context, _ string, _ usecase.UpdateProfileInput) (*domain.User, error) {
			return nil, domain.ErrMissingFields
		},
	}

	w := doJSON(t, newUserEngine(users), http.MethodPatch, "/users/profile",
		`{"isEmailVerified":true}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
