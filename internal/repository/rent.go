package repository

import (
	"context"

	"bikerent/internal/domain"
)

// RentRepository defines the persistence operations for rents. The in-memory
// ledger owned by the rent service is authoritative for rental decisions; this
// port keeps the durable copy in sync.
type RentRepository interface {
	// Create persists a new rent.
	Create(ctx context.Context, rent *domain.Rent) error

	// GetByID retrieves a rent by ID.
	GetByID(ctx context.Context, id string) (*domain.Rent, error)

	// GetAll retrieves all rents.
	GetAll(ctx context.Context) ([]*domain.Rent, error)

	// Update updates an existing rent.
	Update(ctx context.Context, rent *domain.Rent) error
}
