package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"bikerent/internal/domain"
	"bikerent/internal/repository"
)

// BikeRepository is a PostgreSQL implementation of repository.BikeRepository.
type BikeRepository struct {
	q Querier
}

// NewBikeRepository creates a new PostgreSQL bike repository.
func NewBikeRepository(db *sql.DB) *BikeRepository {
	return &BikeRepository{q: db}
}

// NewBikeRepositoryWithTx creates a bike repository using a transaction.
func NewBikeRepositoryWithTx(tx *sql.Tx) *BikeRepository {
	return &BikeRepository{q: tx}
}

// Create persists a new bike.
func (r *BikeRepository) Create(ctx context.Context, bike *domain.Bike) error {
	query := `
		INSERT INTO bikes (id, name, type, body_size, max_load, rate, description, rating, image_urls, available, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		bike.ID,
		bike.Name,
		bike.Type,
		bike.BodySize,
		bike.MaxLoad,
		bike.Rate,
		bike.Description,
		bike.Rating,
		pq.Array(bike.ImageURLs),
		bike.Available,
		bike.Location.Latitude,
		bike.Location.Longitude,
	)

	return err
}

// GetByID retrieves a bike by ID.
func (r *BikeRepository) GetByID(ctx context.Context, id string) (*domain.Bike, error) {
	query := `
		SELECT id, name, type, body_size, max_load, rate, description, rating, image_urls, available, latitude, longitude
		FROM bikes WHERE id = $1
	`

	row := r.q.QueryRowContext(ctx, query, id)

	bike, err := scanBike(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bike, nil
}

// GetAll retrieves all bikes.
func (r *BikeRepository) GetAll(ctx context.Context) ([]*domain.Bike, error) {
	query := `
		SELECT id, name, type, body_size, max_load, rate, description, rating, image_urls, available, latitude, longitude
		FROM bikes ORDER BY name
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bikes []*domain.Bike
	for rows.Next() {
		bike, err := scanBike(rows)
		if err != nil {
			return nil, err
		}
		bikes = append(bikes, bike)
	}
	return bikes, rows.Err()
}

// Update updates an existing bike.
func (r *BikeRepository) Update(ctx context.Context, bike *domain.Bike) error {
	query := `
		UPDATE bikes
		SET name = $2, type = $3, body_size = $4, max_load = $5, rate = $6, description = $7, rating = $8, image_urls = $9, available = $10, latitude = $11, longitude = $12
		WHERE id = $1
	`

	res, err := r.q.ExecContext(ctx, query,
		bike.ID,
		bike.Name,
		bike.Type,
		bike.BodySize,
		bike.MaxLoad,
		bike.Rate,
		bike.Description,
		bike.Rating,
		pq.Array(bike.ImageURLs),
		bike.Available,
		bike.Location.Latitude,
		bike.Location.Longitude,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a bike by ID.
func (r *BikeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM bikes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanBike.
type scanner interface {
	Scan(dest ...any) error
}

func scanBike(s scanner) (*domain.Bike, error) {
	var bike domain.Bike
	var imageURLs pq.StringArray

	err := s.Scan(
		&bike.ID,
		&bike.Name,
		&bike.Type,
		&bike.BodySize,
		&bike.MaxLoad,
		&bike.Rate,
		&bike.Description,
		&bike.Rating,
		&imageURLs,
		&bike.Available,
		&bike.Location.Latitude,
		&bike.Location.Longitude,
	)
	if err != nil {
		return nil, err
	}

	bike.ImageURLs = imageURLs
	return &bike, nil
}
