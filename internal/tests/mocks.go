package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bikerent/internal/domain"
	"bikerent/internal/redis"
	"bikerent/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BIKE REPOSITORY
// ──────────────────────────────────────────────

// MockBikeRepository is a mock implementation of BikeRepository.
type MockBikeRepository struct {
	mu    sync.RWMutex
	bikes map[string]*domain.Bike

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockBikeRepository creates a new mock bike repository.
func NewMockBikeRepository() *MockBikeRepository {
	return &MockBikeRepository{
		bikes: make(map[string]*domain.Bike),
	}
}

// AddBike adds a bike to the mock repository.
func (m *MockBikeRepository) AddBike(bike *domain.Bike) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bikes[bike.ID] = bike
}

func (m *MockBikeRepository) Create(ctx context.Context, bike *domain.Bike) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bikes[bike.ID] = bike
	return nil
}

func (m *MockBikeRepository) GetByID(ctx context.Context, id string) (*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bike, ok := m.bikes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *bike
	return &copy, nil
}

func (m *MockBikeRepository) GetAll(ctx context.Context) ([]*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Bike, 0, len(m.bikes))
	for _, b := range m.bikes {
		copy := *b
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockBikeRepository) Update(ctx context.Context, bike *domain.Bike) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bikes[bike.ID]; !ok {
		return repository.ErrNotFound
	}
	m.bikes[bike.ID] = bike
	return nil
}

func (m *MockBikeRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bikes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bikes, id)
	return nil
}

// GetBike returns the bike by ID (for test assertions).
func (m *MockBikeRepository) GetBike(id string) *domain.Bike {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bikes[id]
}

// CountBikes returns the number of bikes.
func (m *MockBikeRepository) CountBikes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bikes)
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by email

	// Counters for verification
	CreateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	DeleteError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, email string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, email)
	return nil
}

// GetUser returns the user by email (for test assertions).
func (m *MockUserRepository) GetUser(email string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[email]
}

// CountUsers returns the number of users.
func (m *MockUserRepository) CountUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// ──────────────────────────────────────────────
// MOCK RENT REPOSITORY
// ──────────────────────────────────────────────

// MockRentRepository is a mock implementation of RentRepository.
type MockRentRepository struct {
	mu    sync.RWMutex
	rents map[string]*domain.Rent

	// Counters
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockRentRepository creates a new mock rent repository.
func NewMockRentRepository() *MockRentRepository {
	return &MockRentRepository{
		rents: make(map[string]*domain.Rent),
	}
}

func (m *MockRentRepository) Create(ctx context.Context, rent *domain.Rent) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rents[rent.ID] = rent
	return nil
}

func (m *MockRentRepository) GetByID(ctx context.Context, id string) (*domain.Rent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rent, ok := m.rents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rent
	return &copy, nil
}

func (m *MockRentRepository) GetAll(ctx context.Context) ([]*domain.Rent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rent, 0, len(m.rents))
	for _, r := range m.rents {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRentRepository) Update(ctx context.Context, rent *domain.Rent) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rents[rent.ID]; !ok {
		return repository.ErrNotFound
	}
	m.rents[rent.ID] = rent
	return nil
}

// CountRents returns the number of persisted rents.
func (m *MockRentRepository) CountRents() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rents)
}

// GetRentByBikeID returns the first rent for a bike (for test assertions).
func (m *MockRentRepository) GetRentByBikeID(bikeID string) *domain.Rent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rents {
		if r.Bike.ID == bikeID {
			return r
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations []redis.BikeLocation

	// Counters
	UpdateLocationCallCount int32
	RemoveLocationCallCount int32

	// Error injection
	UpdateLocationError  error
	FindNearbyBikesError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make([]redis.BikeLocation, 0),
	}
}

// AddBikeLocation adds a bike location to the mock store.
func (m *MockLocationStore) AddBikeLocation(loc redis.BikeLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = append(m.locations, loc)
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, bikeID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Update existing or add new.
	for i, loc := range m.locations {
		if loc.BikeID == bikeID {
			m.locations[i].Lat = lat
			m.locations[i].Lng = lng
			return nil
		}
	}
	m.locations = append(m.locations, redis.BikeLocation{
		BikeID: bikeID,
		Lat:    lat,
		Lng:    lng,
	})
	return nil
}

func (m *MockLocationStore) FindNearbyBikes(ctx context.Context, lat, lng, radiusKm float64) ([]redis.BikeLocation, error) {
	if m.FindNearbyBikesError != nil {
		return nil, m.FindNearbyBikesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Return all locations (mock doesn't do real geo filtering).
	result := make([]redis.BikeLocation, len(m.locations))
	copy(result, m.locations)
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, bikeID string) error {
	atomic.AddInt32(&m.RemoveLocationCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.BikeID == bikeID {
			m.locations = append(m.locations[:i], m.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

// HasLocation checks if a bike location exists.
func (m *MockLocationStore) HasLocation(bikeID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, loc := range m.locations {
		if loc.BikeID == bikeID {
			return true
		}
	}
	return false
}

// GetLocation returns the stored location for a bike, if any.
func (m *MockLocationStore) GetLocation(bikeID string) (redis.BikeLocation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, loc := range m.locations {
		if loc.BikeID == bikeID {
			return loc, true
		}
	}
	return redis.BikeLocation{}, false
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireRentLock(ctx context.Context, bikeID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:bike:" + bikeID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseRentLock(ctx context.Context, bikeID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:bike:"+bikeID)
	return nil
}

// IsLocked checks if a bike is locked (for test assertions).
func (m *MockLockStore) IsLocked(bikeID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:bike:"+bikeID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// FAKE PASSWORD HASHER
// ──────────────────────────────────────────────

// FakeHasher is a deterministic PasswordHasher for tests.
type FakeHasher struct {
	// Error injection
	HashError error

	// Counters
	HashCallCount    int32
	CompareCallCount int32
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{}
}

func (h *FakeHasher) Hash(password string) (string, error) {
	atomic.AddInt32(&h.HashCallCount, 1)
	if h.HashError != nil {
		return "", h.HashError
	}
	return "hashed:" + password, nil
}

func (h *FakeHasher) Compare(hash, password string) error {
	atomic.AddInt32(&h.CompareCallCount, 1)
	if hash != "hashed:"+password {
		return errors.New("fake hasher: digest mismatch")
	}
	return nil
}

// ──────────────────────────────────────────────
// FAKE CLOCK
// ──────────────────────────────────────────────

// FakeClock is a manually advanced current-time source for deterministic
// billing tests.
type FakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

// NewFakeClock creates a FakeClock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{cur: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

// Now returns the clock's current instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)

// newTestBike builds a bike the way most tests need one.
func newTestBike(id string, rate float64) *domain.Bike {
	return &domain.Bike{
		ID:          id,
		Name:        fmt.Sprintf("bike-%s", id),
		Type:        "mountain bike",
		BodySize:    26,
		MaxLoad:     150,
		Rate:        rate,
		Description: "test bike",
		Rating:      5,
		Available:   true,
	}
}

// newTestUser builds a registered user with a fake-hashed password.
func newTestUser(email, password string) *domain.User {
	return &domain.User{
		ID:           "user-" + email,
		Name:         "Jose",
		Email:        email,
		PasswordHash: "hashed:" + password,
		CreatedAt:    time.Now(),
	}
}
