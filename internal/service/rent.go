package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bikerent/internal/domain"
	"bikerent/internal/redis"
	"bikerent/internal/repository"
)

// rentLockTTL bounds how long a bike stays locked if a rent request dies
// between acquiring the lock and releasing it.
const rentLockTTL = 10 * time.Second

// RentService owns the rental lifecycle and the rent ledger. The ledger is
// append-only: completed rents are immutable history and records are never
// removed. Mutations assume a single orchestrator instance serializing calls.
type RentService struct {
	bikeRepo   repository.BikeRepository
	userRepo   repository.UserRepository
	rentRepo   repository.RentRepository
	lockStore  redis.LockStoreInterface
	cacheStore *redis.CacheStore

	rents []*domain.Rent

	// now is the clock used for start/end timestamps. Overridable so billing
	// tests are deterministic.
	now func() time.Time
}

// NewRentService creates a new RentService. lockStore and cacheStore may be
// nil; the service then skips the double-submission guard and the
// availability cache.
func NewRentService(
	bikeRepo repository.BikeRepository,
	userRepo repository.UserRepository,
	rentRepo repository.RentRepository,
	lockStore redis.LockStoreInterface,
	cacheStore *redis.CacheStore,
) *RentService {
	return &RentService{
		bikeRepo:   bikeRepo,
		userRepo:   userRepo,
		rentRepo:   rentRepo,
		lockStore:  lockStore,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

// SetClock replaces the current-time source. Intended for tests.
func (s *RentService) SetClock(now func() time.Time) {
	s.now = now
}

// RentBikeRequest contains the parameters for renting a bike.
type RentBikeRequest struct {
	BikeID    string
	UserEmail string
}

// Rent transitions a bike from AVAILABLE to RENTED and opens a rent.
func (s *RentService) Rent(ctx context.Context, req RentBikeRequest) (*domain.Rent, error) {
	if req.BikeID == "" {
		return nil, ErrInvalidBikeID
	}
	if req.UserEmail == "" {
		return nil, ErrInvalidEmail
	}

	bike, err := s.bikeRepo.GetByID(ctx, req.BikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, err
	}

	if !bike.Available {
		return nil, ErrBikeUnavailable
	}

	user, err := s.userRepo.GetByEmail(ctx, req.UserEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Guard against double submission of the same bike. Availability remains
	// the domain invariant; the lock only narrows the request-level window.
	if s.lockStore != nil {
		ok, err := s.lockStore.AcquireRentLock(ctx, bike.ID, rentLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrBikeUnavailable
		}
		defer func() {
			_ = s.lockStore.ReleaseRentLock(ctx, bike.ID)
		}()
	}

	rent := &domain.Rent{
		ID:        uuid.New().String(),
		Bike:      bike,
		User:      user,
		StartTime: s.now(),
	}

	// Durable copy first: a failed insert leaves the bike available and the
	// ledger untouched.
	if err := s.rentRepo.Create(ctx, rent); err != nil {
		return nil, err
	}

	bike.Available = false
	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		return nil, err
	}

	s.rents = append(s.rents, rent)

	if s.cacheStore != nil {
		_ = s.cacheStore.RemoveAvailableBike(ctx, bike.ID)
		_ = s.cacheStore.InvalidateBike(ctx, bike.ID)
	}

	return rent, nil
}

// ReturnBikeRequest contains the parameters for returning a bike.
type ReturnBikeRequest struct {
	BikeID    string
	UserEmail string
}

// Return closes the open rent for the given bike and user, bills it, and
// makes the bike available again. The amount is elapsed fractional hours
// times the bike's hourly rate, with no rounding: a 2-hour rental at rate
// 100.0 yields exactly 200.0.
func (s *RentService) Return(ctx context.Context, req ReturnBikeRequest) (float64, error) {
	if req.BikeID == "" {
		return 0, ErrInvalidBikeID
	}
	if req.UserEmail == "" {
		return 0, ErrInvalidEmail
	}

	rent := s.findOpenRent(req.BikeID, req.UserEmail)
	if rent == nil {
		return 0, ErrNoActiveRent
	}

	endTime := s.now()
	elapsedHours := endTime.Sub(rent.StartTime).Hours()
	amount := elapsedHours * rent.Bike.Rate

	// Durable copy first: if the update fails the ledger entry stays open, so
	// the return can be retried.
	closed := *rent
	closed.EndTime = endTime
	closed.Amount = amount
	if err := s.rentRepo.Update(ctx, &closed); err != nil {
		return 0, err
	}

	rent.EndTime = endTime
	rent.Amount = amount

	bike, err := s.bikeRepo.GetByID(ctx, req.BikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrBikeNotFound
		}
		return 0, err
	}

	bike.Available = true
	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		return 0, err
	}
	rent.Bike.Available = true

	if s.cacheStore != nil {
		_ = s.cacheStore.AddAvailableBike(ctx, bike.ID)
		_ = s.cacheStore.InvalidateBike(ctx, bike.ID)
	}

	return amount, nil
}

// Rents returns a snapshot of the rent ledger, oldest first.
func (s *RentService) Rents() []*domain.Rent {
	out := make([]*domain.Rent, len(s.rents))
	copy(out, s.rents)
	return out
}

// findOpenRent locates the open rent matching bike and user. At most one
// open rent can exist per bike.
func (s *RentService) findOpenRent(bikeID, userEmail string) *domain.Rent {
	for _, rent := range s.rents {
		if rent.Open() && rent.Bike.ID == bikeID && rent.User.Email == userEmail {
			return rent
		}
	}
	return nil
}
