package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/shearbook/shearbook/internal/domain"
)

// ServiceRepository defines persistence operations for services.
type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
}

type serviceRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewServiceRepository creates a new SQL-backed service repository.
func NewServiceRepository(db *sql.DB, log *slog.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log,
	}
}

// List returns all services in catalog (id) order.
func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	const query = `
		SELECT id, name, duration_minutes, price_min, price_max
		FROM services
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to list services", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select services: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// FindByIDs returns the services matching the given ids.
func (r *serviceRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, name, duration_minutes, price_min, price_max
		FROM services
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to fetch services by ids", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select services by ids: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

func scanServices(rows *sql.Rows) ([]domain.Service, error) {
	var services []domain.Service
	for rows.Next() {
		var (
			service  domain.Service
			priceMax sql.NullFloat64
		)
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.PriceMin,
			&priceMax,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		if priceMax.Valid {
			value := priceMax.Float64
			service.PriceMax = &value
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}
