package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"bikerent/internal/domain"
	"bikerent/internal/repository"
)

// RentRepository is a PostgreSQL implementation of repository.RentRepository.
type RentRepository struct {
	q Querier
}

// NewRentRepository creates a new PostgreSQL rent repository.
func NewRentRepository(db *sql.DB) *RentRepository {
	return &RentRepository{q: db}
}

// NewRentRepositoryWithTx creates a rent repository using a transaction.
func NewRentRepositoryWithTx(tx *sql.Tx) *RentRepository {
	return &RentRepository{q: tx}
}

// Create persists a new rent.
func (r *RentRepository) Create(ctx context.Context, rent *domain.Rent) error {
	query := `
		INSERT INTO rents (id, bike_id, user_id, start_time, end_time, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		rent.ID,
		rent.Bike.ID,
		rent.User.ID,
		rent.StartTime,
		nullTime(rent.EndTime),
		nullAmount(rent),
	)

	return err
}

// Update updates an existing rent.
func (r *RentRepository) Update(ctx context.Context, rent *domain.Rent) error {
	query := `UPDATE rents SET end_time = $2, amount = $3 WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query, rent.ID, nullTime(rent.EndTime), nullAmount(rent))
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

const rentSelect = `
	SELECT r.id, r.start_time, r.end_time, r.amount,
	       b.id, b.name, b.type, b.body_size, b.max_load, b.rate, b.description, b.rating, b.image_urls, b.available, b.latitude, b.longitude,
	       u.id, u.name, u.email, u.password_hash, u.created_at
	FROM rents r
	JOIN bikes b ON b.id = r.bike_id
	JOIN users u ON u.id = r.user_id
`

// GetByID retrieves a rent by ID with its bike and user hydrated.
func (r *RentRepository) GetByID(ctx context.Context, id string) (*domain.Rent, error) {
	row := r.q.QueryRowContext(ctx, rentSelect+` WHERE r.id = $1`, id)

	rent, err := scanRent(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rent, nil
}

// GetAll retrieves all rents ordered by start time.
func (r *RentRepository) GetAll(ctx context.Context) ([]*domain.Rent, error) {
	rows, err := r.q.QueryContext(ctx, rentSelect+` ORDER BY r.start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rents []*domain.Rent
	for rows.Next() {
		rent, err := scanRent(rows)
		if err != nil {
			return nil, err
		}
		rents = append(rents, rent)
	}
	return rents, rows.Err()
}

func scanRent(s scanner) (*domain.Rent, error) {
	var rent domain.Rent
	var bike domain.Bike
	var user domain.User
	var endTime sql.NullTime
	var amount sql.NullFloat64
	var imageURLs pq.StringArray

	err := s.Scan(
		&rent.ID,
		&rent.StartTime,
		&endTime,
		&amount,
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
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	bike.ImageURLs = imageURLs
	rent.Bike = &bike
	rent.User = &user
	if endTime.Valid {
		rent.EndTime = endTime.Time
	}
	if amount.Valid {
		rent.Amount = amount.Float64
	}
	return &rent, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullAmount(rent *domain.Rent) sql.NullFloat64 {
	if rent.Open() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: rent.Amount, Valid: true}
}
