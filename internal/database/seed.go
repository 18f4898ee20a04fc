package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the catalog tables with the default shop data when they
// are empty. It never overwrites existing rows, so it is safe to run on
// every startup.
func Seed(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&count); err != nil {
		return fmt.Errorf("count locations: %w", err)
	}
	if count > 0 {
		log.Debug("catalog already seeded", slog.Int("locations", count))
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Error("seed rollback error", "error", rbErr)
		}
	}()

	var downtownID, uptownID int64

	const insertLocation = `
		INSERT INTO locations (name, address, phone)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := tx.QueryRowContext(ctx, insertLocation,
		"Downtown Barbershop", "123 Main Street, Downtown", "(555) 123-4567",
	).Scan(&downtownID); err != nil {
		return fmt.Errorf("seed downtown location: %w", err)
	}

	if err := tx.QueryRowContext(ctx, insertLocation,
		"Uptown Barbershop", "456 High Street, Uptown", "(555) 987-6543",
	).Scan(&uptownID); err != nil {
		return fmt.Errorf("seed uptown location: %w", err)
	}

	const insertBarber = `
		INSERT INTO barbers (name, photo, languages, rating, location_id)
		VALUES ($1, $2, $3, $4, $5)`

	barbers := []struct {
		name       string
		photo      string
		languages  string
		rating     float64
		locationID int64
	}{
		{"John Smith", "https://randomuser.me/api/portraits/men/32.jpg", "English, Spanish", 4.8, downtownID},
		{"Michael Johnson", "https://randomuser.me/api/portraits/men/41.jpg", "English", 4.6, downtownID},
		{"Robert Williams", "https://randomuser.me/api/portraits/men/55.jpg", "English, French", 4.9, uptownID},
		{"James Brown", "https://randomuser.me/api/portraits/men/62.jpg", "English, Portuguese", 4.7, uptownID},
	}

	for _, b := range barbers {
		if _, err := tx.ExecContext(ctx, insertBarber,
			b.name, b.photo, b.languages, b.rating, b.locationID,
		); err != nil {
			return fmt.Errorf("seed barber %q: %w", b.name, err)
		}
	}

	const insertService = `
		INSERT INTO services (name, duration_minutes, price_min, price_max)
		VALUES ($1, $2, $3, $4)`

	services := []struct {
		name     string
		duration int
		priceMin float64
		priceMax sql.NullFloat64
	}{
		{"Haircut", 45, 35.00, sql.NullFloat64{}},
		{"Hair & Beard Combo", 60, 50.00, sql.NullFloat64{}},
		{"Beard Trim", 20, 20.00, sql.NullFloat64{}},
		{"Hot Towel Shave", 30, 30.00, sql.NullFloat64{}},
		{"Kid's Haircut (Under 12)", 30, 25.00, sql.NullFloat64{}},
		{"Premium Style", 60, 65.00, sql.NullFloat64{Float64: 85.00, Valid: true}},
	}

	for _, s := range services {
		if _, err := tx.ExecContext(ctx, insertService,
			s.name, s.duration, s.priceMin, s.priceMax,
		); err != nil {
			return fmt.Errorf("seed service %q: %w", s.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	log.Info("catalog seeded",
		slog.Int("locations", 2),
		slog.Int("barbers", len(barbers)),
		slog.Int("services", len(services)),
	)

	return nil
}
