package domain

import (
	"strconv"
	"strings"
	"time"
)

// Location represents a barbershop location.
type Location struct {
	ID      int64
	Name    string
	Address string
	Phone   string
}

// Barber represents a specialist working at a location.
type Barber struct {
	ID         int64
	Name       string
	Photo      string
	Languages  string
	Rating     float64
	LocationID int64
}

// Service represents a service offered by the barbershop.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	PriceMin        float64
	PriceMax        *float64
}

// Appointment represents a customer booking. A nil BarberID means
// "any available barber".
type Appointment struct {
	ID          int64
	LocationID  int64
	BarberID    *int64
	ClientName  string
	ClientEmail string
	Date        time.Time
	StartTime   string
	Services    string
	CreatedAt   time.Time
}

// ServiceIDs parses the comma-separated Services column into ids.
func (a *Appointment) ServiceIDs() []int64 {
	if a == nil || a.Services == "" {
		return nil
	}

	parts := strings.Split(a.Services, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}
