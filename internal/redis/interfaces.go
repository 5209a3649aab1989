package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for bike location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, bikeID string, lat, lng float64) error
	FindNearbyBikes(ctx context.Context, lat, lng, radiusKm float64) ([]BikeLocation, error)
	RemoveLocation(ctx context.Context, bikeID string) error
}

// LockStoreInterface defines the interface for rent locking.
type LockStoreInterface interface {
	AcquireRentLock(ctx context.Context, bikeID string, ttl time.Duration) (bool, error)
	ReleaseRentLock(ctx context.Context, bikeID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
)
