package assistant

import (
	"context"
	"time"

	"github.com/shearbook/shearbook/internal/domain"
)

// BookingRequest carries the resolved booking facts to the external store.
// A nil BarberID means "any available barber".
type BookingRequest struct {
	LocationID  int64
	BarberID    *int64
	ClientName  string
	ClientEmail string
	Date        time.Time
	StartTime   string
	ServiceIDs  []int64
}

// Gateway is the assistant's interface to the record storage collaborator.
// Catalog lookups feed entity extraction; CreateAppointment persists a
// finalized booking.
type Gateway interface {
	ListBarbers(ctx context.Context) ([]domain.Barber, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
	BarberByID(ctx context.Context, id int64) (*domain.Barber, error)
	BarberByName(ctx context.Context, name string) (*domain.Barber, error)
	FirstLocation(ctx context.Context) (*domain.Location, error)
	CreateAppointment(ctx context.Context, req BookingRequest) (*domain.Appointment, error)
}
