package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bikerent/internal/auth"
	"bikerent/internal/domain"
	"bikerent/internal/repository"
)

// UserService handles account operations: registration, removal, lookup and
// authentication.
type UserService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// RegisterUserRequest contains the parameters for registering a user.
type RegisterUserRequest struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account. The duplicate-email check and the insert
// run in sequence; concurrent registration races are not guarded against
// (single-writer assumption). On a duplicate nothing is mutated.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, ErrInvalidEmail
	}
	if req.Password == "" {
		return nil, ErrInvalidPassword
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserDuplicate
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Remove deletes the account with the given email. The lookup is an exact
// match: a near-miss email reports "does not exist" rather than silently
// removing nothing.
func (s *UserService) Remove(ctx context.Context, email string) error {
	if email == "" {
		return ErrInvalidEmail
	}

	err := s.userRepo.Delete(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotExistent
	}
	return err
}

// Find retrieves a user by email.
func (s *UserService) Find(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetAll retrieves all registered users.
func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Authenticate verifies the password against the stored digest and returns
// the authenticated user. Read-only.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.Find(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrUserPassword
	}

	return user, nil
}
