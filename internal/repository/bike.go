package repository

import (
	"context"

	"bikerent/internal/domain"
)

// BikeRepository defines the persistence operations for bikes.
type BikeRepository interface {
	// Create persists a new bike.
	Create(ctx context.Context, bike *domain.Bike) error

	// GetByID retrieves a bike by ID.
	GetByID(ctx context.Context, id string) (*domain.Bike, error)

	// GetAll retrieves all bikes.
	GetAll(ctx context.Context) ([]*domain.Bike, error)

	// Update updates an existing bike.
	Update(ctx context.Context, bike *domain.Bike) error

	// Delete removes a bike by ID.
	Delete(ctx context.Context, id string) error
}
