package tests

import (
	"context"
	"errors"
	"testing"

	"bikerent/internal/service"
)

// ──────────────────────────────────────────────
// USER REGISTRATION AND REMOVAL
// ──────────────────────────────────────────────

func newUserFixture() (*service.UserService, *MockUserRepository, *FakeHasher) {
	userRepo := NewMockUserRepository()
	hasher := NewFakeHasher()
	return service.NewUserService(userRepo, hasher), userRepo, hasher
}

func TestRegisterUser_StoresHashNeverPlaintext(t *testing.T) {
	t.Parallel()

	svc, userRepo, hasher := newUserFixture()

	user, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Name:     "Jose",
		Email:    "jose@mail.com",
		Password: "1234",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated user id")
	}
	if hasher.HashCallCount != 1 {
		t.Errorf("expected 1 hash call, got %d", hasher.HashCallCount)
	}

	stored := userRepo.GetUser("jose@mail.com")
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "1234" {
		t.Error("plaintext password stored")
	}
	if stored.PasswordHash != "hashed:1234" {
		t.Errorf("expected derived digest, got %q", stored.PasswordHash)
	}
}

func TestRegisterUser_DuplicateEmailFailsWithoutMutation(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newUserFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Jose", Email: "jose@mail.com", Password: "1234"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Duplicate", Email: "jose@mail.com", Password: "5678"})
	if !errors.Is(err, service.ErrUserDuplicate) {
		t.Errorf("expected ErrUserDuplicate, got %v", err)
	}

	// First registration intact and still resolvable.
	if userRepo.CountUsers() != 1 {
		t.Errorf("expected 1 user, got %d", userRepo.CountUsers())
	}
	found, err := svc.Find(ctx, "jose@mail.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "Jose" || found.PasswordHash != "hashed:1234" {
		t.Error("original user data changed by failed duplicate registration")
	}
}

func TestRemoveUser_UnknownEmailFails(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserFixture()

	err := svc.Remove(context.Background(), "nonexisting@mail.com")
	if !errors.Is(err, service.ErrUserNotExistent) {
		t.Errorf("expected ErrUserNotExistent, got %v", err)
	}
}

func TestRemoveUser_NearMissEmailFails(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newUserFixture()
	userRepo.AddUser(newTestUser("joseh@mail.com", "1234"))

	// A typo in the email reports "does not exist" instead of silently
	// removing nothing.
	err := svc.Remove(context.Background(), "joeh@mail.com")
	if !errors.Is(err, service.ErrUserNotExistent) {
		t.Errorf("expected ErrUserNotExistent, got %v", err)
	}
	if userRepo.CountUsers() != 1 {
		t.Errorf("expected user to remain, got %d users", userRepo.CountUsers())
	}
}

func TestRemoveUser_ThenFindFails(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newUserFixture()
	userRepo.AddUser(newTestUser("jose@mail.com", "1234"))

	ctx := context.Background()
	if err := svc.Remove(ctx, "jose@mail.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Find(ctx, "jose@mail.com")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUser_UnknownEmailFails(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserFixture()

	_, err := svc.Find(context.Background(), "fake@mail.com")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRegisterUser_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Jose", Password: "1234"}); !errors.Is(err, service.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register(ctx, service.RegisterUserRequest{Name: "Jose", Email: "jose@mail.com"}); !errors.Is(err, service.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}
