package tests

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bikerent/internal/auth"
	"bikerent/internal/service"
)

// ──────────────────────────────────────────────
// AUTHENTICATION
// ──────────────────────────────────────────────

func TestAuthenticate_Succeeds(t *testing.T) {
	t.Parallel()

	svc, userRepo, hasher := newUserFixture()
	userRepo.AddUser(newTestUser("jose@mail.com", "1234"))

	user, err := svc.Authenticate(context.Background(), "jose@mail.com", "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "jose@mail.com" {
		t.Errorf("expected authenticated user jose@mail.com, got %s", user.Email)
	}
	if hasher.CompareCallCount != 1 {
		t.Errorf("expected 1 compare call, got %d", hasher.CompareCallCount)
	}
}

func TestAuthenticate_UnknownEmailFails(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newUserFixture()
	userRepo.AddUser(newTestUser("jose@mail.com", "1234"))

	_, err := svc.Authenticate(context.Background(), "nonexisting@mail.com", "password")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticate_WrongPasswordFails(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newUserFixture()
	userRepo.AddUser(newTestUser("jose@mail.com", "1234"))

	_, err := svc.Authenticate(context.Background(), "jose@mail.com", "incorrectpassword")
	if !errors.Is(err, service.ErrUserPassword) {
		t.Errorf("expected ErrUserPassword, got %v", err)
	}
}

func TestAuthenticate_WithBcryptHasher(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	svc := service.NewUserService(userRepo, hasher)

	ctx := context.Background()
	if _, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Jose", Email: "jose@mail.com", Password: "1234"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := userRepo.GetUser("jose@mail.com")
	if stored.PasswordHash == "1234" {
		t.Error("plaintext password stored")
	}

	if _, err := svc.Authenticate(ctx, "jose@mail.com", "1234"); err != nil {
		t.Errorf("expected successful authentication, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, "jose@mail.com", "4321"); !errors.Is(err, service.ErrUserPassword) {
		t.Errorf("expected ErrUserPassword, got %v", err)
	}
}
