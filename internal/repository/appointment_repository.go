package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shearbook/shearbook/internal/domain"
)

// AppointmentFilter narrows appointment listings. Zero values are ignored.
type AppointmentFilter struct {
	Date       *time.Time
	LocationID *int64
	BarberID   *int64
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewAppointmentRepository creates a new SQL-backed appointment repository.
func NewAppointmentRepository(db *sql.DB, log *slog.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log,
	}
}

// Create persists a new appointment and fills in its generated id.
func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
		INSERT INTO appointments (location_id, barber_id, client_name, client_email, date, start_time, services, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now().UTC()
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		appointment.LocationID,
		appointment.BarberID,
		appointment.ClientName,
		appointment.ClientEmail,
		appointment.Date,
		appointment.StartTime,
		appointment.Services,
		appointment.CreatedAt,
	).Scan(&appointment.ID); err != nil {
		if r.log != nil {
			r.log.Error("failed to create appointment",
				slog.String("client_name", appointment.ClientName),
				slog.Any("error", err),
			)
		}
		return fmt.Errorf("insert appointment: %w", err)
	}

	return nil
}

// List returns appointments matching the filter, ordered by date and time.
func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, location_id, barber_id, client_name, client_email, date, start_time, services, created_at
		FROM appointments
	`)

	var (
		clauses []string
		args    []any
	)
	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.LocationID != nil {
		args = append(args, *filter.LocationID)
		clauses = append(clauses, fmt.Sprintf("location_id = $%d", len(args)))
	}
	if filter.BarberID != nil {
		args = append(args, *filter.BarberID)
		clauses = append(clauses, fmt.Sprintf("barber_id = $%d", len(args)))
	}

	if len(clauses) > 0 {
		query.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY date, start_time")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to list appointments", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select appointments: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var (
			appointment domain.Appointment
			barberID    sql.NullInt64
		)
		if err := rows.Scan(
			&appointment.ID,
			&appointment.LocationID,
			&barberID,
			&appointment.ClientName,
			&appointment.ClientEmail,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.Services,
			&appointment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		if barberID.Valid {
			value := barberID.Int64
			appointment.BarberID = &value
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}
