package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
)

func TestUpdateProfile_FullName(t *testing.T) {
	repo := newMemRepo(&domain.User{ID: "user-1", Email: "a@x.com", FullName: "Old Name"})
	name := "New Name"

	user, err := usecase.NewUserUsecase(repo).UpdateProfile(context.Background(), "user-1", usecase.UpdateProfileInput{FullName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FullName != "New Name" {
		t.Errorf("fullName = %q, want %q", user.FullName, "New Name")
	}
}

func TestUpdateProfile_NoFields_ReturnsMissingFields(t *testing.T) {
	repo := newMemRepo(&domain.User{ID: "user-1", Email: "a@x.com"})

	_, err := usecase.NewUserUsecase(repo).UpdateProfile(context.Background(), "user-1", usecase.UpdateProfileInput{})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Errorf("want ErrMissingFields, got %v", err)
	}
}

func TestUpdateProfile_BlankFullName_ReturnsMissingFields(t *testing.T) {
	repo := newMemRepo(&domain.User{ID: "user-1", Email: "a@x.com"})
	blank := "   "

	_, err := usecase.NewUserUsecase(repo).UpdateProfile(context.Background(), "user-1", usecase.UpdateProfileInput{FullName: &blank})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Errorf("want ErrMissingFields, got %v", err)
	}
}

func TestProfile_UnknownUser_ReturnsNotFound(t *testing.T) {
	_, err := usecase.NewUserUsecase(newMemRepo()).Profile(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}
