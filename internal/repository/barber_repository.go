package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shearbook/shearbook/internal/domain"
)

// BarberRepository defines persistence operations for barbers.
type BarberRepository interface {
	List(ctx context.Context) ([]domain.Barber, error)
	ListByLocation(ctx context.Context, locationID int64) ([]domain.Barber, error)
	FindByID(ctx context.Context, id int64) (*domain.Barber, error)
	FindByName(ctx context.Context, name string) (*domain.Barber, error)
}

type barberRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewBarberRepository creates a new SQL-backed barber repository.
func NewBarberRepository(db *sql.DB, log *slog.Logger) BarberRepository {
	return &barberRepository{
		db:  db,
		log: log,
	}
}

// List returns all barbers in catalog (id) order.
func (r *barberRepository) List(ctx context.Context) ([]domain.Barber, error) {
	const query = `
		SELECT id, name, photo, languages, rating, location_id
		FROM barbers
		ORDER BY id
	`

	return r.scanMany(ctx, query)
}

// ListByLocation returns the barbers working at the given location.
func (r *barberRepository) ListByLocation(ctx context.Context, locationID int64) ([]domain.Barber, error) {
	const query = `
		SELECT id, name, photo, languages, rating, location_id
		FROM barbers
		WHERE location_id = $1
		ORDER BY id
	`

	return r.scanMany(ctx, query, locationID)
}

// FindByID retrieves a barber by identifier.
func (r *barberRepository) FindByID(ctx context.Context, id int64) (*domain.Barber, error) {
	const query = `
		SELECT id, name, photo, languages, rating, location_id
		FROM barbers
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

// FindByName retrieves a barber by exact name, case-insensitively.
func (r *barberRepository) FindByName(ctx context.Context, name string) (*domain.Barber, error) {
	const query = `
		SELECT id, name, photo, languages, rating, location_id
		FROM barbers
		WHERE LOWER(name) = LOWER($1)
	`

	return r.scanOne(ctx, query, name)
}

func (r *barberRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Barber, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to list barbers", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select barbers: %w", err)
	}
	defer rows.Close()

	var barbers []domain.Barber
	for rows.Next() {
		var barber domain.Barber
		if err := rows.Scan(
			&barber.ID,
			&barber.Name,
			&barber.Photo,
			&barber.Languages,
			&barber.Rating,
			&barber.LocationID,
		); err != nil {
			return nil, fmt.Errorf("scan barber: %w", err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate barbers: %w", err)
	}

	return barbers, nil
}

func (r *barberRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Barber, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	var barber domain.Barber
	if err := row.Scan(
		&barber.ID,
		&barber.Name,
		&barber.Photo,
		&barber.Languages,
		&barber.Rating,
		&barber.LocationID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		if r.log != nil {
			r.log.Error("failed to fetch barber", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select barber: %w", err)
	}

	return &barber, nil
}
