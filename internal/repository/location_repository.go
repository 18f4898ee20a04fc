// Package repository contains SQL-backed persistence for the booking domain.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shearbook/shearbook/internal/domain"
)

// ErrNotFound indicates that a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// LocationRepository defines persistence operations for locations.
type LocationRepository interface {
	List(ctx context.Context) ([]domain.Location, error)
	First(ctx context.Context) (*domain.Location, error)
	FindByID(ctx context.Context, id int64) (*domain.Location, error)
}

type locationRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewLocationRepository creates a new SQL-backed location repository.
func NewLocationRepository(db *sql.DB, log *slog.Logger) LocationRepository {
	return &locationRepository{
		db:  db,
		log: log,
	}
}

// List returns all locations in id order.
func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	const query = `
		SELECT id, name, address, phone
		FROM locations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to list locations", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.Address, &location.Phone); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	return locations, nil
}

// First returns the lowest-id location, the fallback when no barber resolved.
func (r *locationRepository) First(ctx context.Context) (*domain.Location, error) {
	const query = `
		SELECT id, name, address, phone
		FROM locations
		ORDER BY id
		LIMIT 1
	`

	return r.scanOne(ctx, query)
}

// FindByID retrieves a location by its identifier.
func (r *locationRepository) FindByID(ctx context.Context, id int64) (*domain.Location, error) {
	const query = `
		SELECT id, name, address, phone
		FROM locations
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *locationRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Location, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	var location domain.Location
	if err := row.Scan(&location.ID, &location.Name, &location.Address, &location.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		if r.log != nil {
			r.log.Error("failed to fetch location", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select location: %w", err)
	}

	return &location, nil
}
