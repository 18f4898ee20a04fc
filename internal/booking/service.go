// Package booking implements the record storage gateway consumed by the
// assistant and the form booking flow.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shearbook/shearbook/internal/assistant"
	"github.com/shearbook/shearbook/internal/domain"
	"github.com/shearbook/shearbook/internal/jobs"
	"github.com/shearbook/shearbook/internal/repository"
	"github.com/shearbook/shearbook/pkg/metrics"
)

// ChannelAssistant labels bookings created through the conversational flow.
const ChannelAssistant = "assistant"

// ChannelWeb labels bookings created through the form flow.
const ChannelWeb = "web"

// Service exposes catalog lookups and appointment creation over the SQL
// repositories. It satisfies assistant.Gateway.
type Service struct {
	locations    repository.LocationRepository
	barbers      repository.BarberRepository
	services     repository.ServiceRepository
	appointments repository.AppointmentRepository

	cache   *CatalogCache
	queue   jobs.Manager
	log     *slog.Logger
	channel string
}

var _ assistant.Gateway = (*Service)(nil)

// NewService constructs the booking service. cache and queue may be nil when
// Redis is not configured; lookups then go straight to the database and no
// emails are queued.
func NewService(
	locations repository.LocationRepository,
	barbers repository.BarberRepository,
	services repository.ServiceRepository,
	appointments repository.AppointmentRepository,
	cache *CatalogCache,
	queue jobs.Manager,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		locations:    locations,
		barbers:      barbers,
		services:     services,
		appointments: appointments,
		cache:        cache,
		queue:        queue,
		log:          log,
		channel:      ChannelAssistant,
	}
}

// ListBarbers returns the barber catalog in catalog order, consulting the
// cache first.
func (s *Service) ListBarbers(ctx context.Context) ([]domain.Barber, error) {
	if cached, err := s.cache.Barbers(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("barber cache read failed, falling back to database", slog.Any("error", err))
	}

	barbers, err := s.barbers.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetBarbers(ctx, barbers); err != nil {
		s.log.Warn("barber cache write failed", slog.Any("error", err))
	}

	return barbers, nil
}

// ListServices returns the service catalog in catalog order, consulting the
// cache first.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	if cached, err := s.cache.Services(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("service cache read failed, falling back to database", slog.Any("error", err))
	}

	services, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetServices(ctx, services); err != nil {
		s.log.Warn("service cache write failed", slog.Any("error", err))
	}

	return services, nil
}

// BarberByID fetches one barber by id.
func (s *Service) BarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	return s.barbers.FindByID(ctx, id)
}

// BarberByName fetches one barber by exact name.
func (s *Service) BarberByName(ctx context.Context, name string) (*domain.Barber, error) {
	return s.barbers.FindByName(ctx, name)
}

// FirstLocation returns the default location used for any-barber bookings.
func (s *Service) FirstLocation(ctx context.Context) (*domain.Location, error) {
	return s.locations.First(ctx)
}

// CreateAppointment persists the booking and queues a confirmation email.
// A failed enqueue never fails the booking.
func (s *Service) CreateAppointment(ctx context.Context, req assistant.BookingRequest) (*domain.Appointment, error) {
	appointment := &domain.Appointment{
		LocationID:  req.LocationID,
		BarberID:    req.BarberID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Services:    joinServiceIDs(req.ServiceIDs),
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		metrics.RecordBooking(s.channel, "error")
		return nil, err
	}

	metrics.RecordBooking(s.channel, "ok")
	s.log.Info("appointment created",
		slog.Int64("appointment_id", appointment.ID),
		slog.Int64("location_id", appointment.LocationID),
		slog.String("start_time", appointment.StartTime),
	)

	s.enqueueConfirmationEmail(ctx, appointment)

	return appointment, nil
}

// WithChannel returns a copy of the service that labels bookings with the
// given channel in metrics.
func (s *Service) WithChannel(channel string) *Service {
	clone := *s
	clone.channel = channel
	return &clone
}

func (s *Service) enqueueConfirmationEmail(ctx context.Context, appointment *domain.Appointment) {
	if s.queue == nil {
		return
	}

	payload, err := s.buildEmailPayload(ctx, appointment)
	if err != nil {
		s.log.Error("failed to assemble confirmation email payload",
			slog.Int64("appointment_id", appointment.ID),
			slog.Any("error", err),
		)
		return
	}

	task, err := jobs.NewConfirmationEmailTask(payload)
	if err != nil {
		s.log.Error("failed to build confirmation email task", slog.Any("error", err))
		return
	}

	if _, err := s.queue.Enqueue(ctx, task); err != nil {
		s.log.Error("failed to enqueue confirmation email",
			slog.Int64("appointment_id", appointment.ID),
			slog.Any("error", err),
		)
	}
}

func (s *Service) buildEmailPayload(ctx context.Context, appointment *domain.Appointment) (jobs.ConfirmationEmailPayload, error) {
	location, err := s.locations.FindByID(ctx, appointment.LocationID)
	if err != nil {
		return jobs.ConfirmationEmailPayload{}, fmt.Errorf("resolve location: %w", err)
	}

	var barberName string
	if appointment.BarberID != nil {
		barber, err := s.barbers.FindByID(ctx, *appointment.BarberID)
		if err != nil {
			return jobs.ConfirmationEmailPayload{}, fmt.Errorf("resolve barber: %w", err)
		}
		barberName = barber.Name
	}

	services, err := s.services.FindByIDs(ctx, appointment.ServiceIDs())
	if err != nil {
		return jobs.ConfirmationEmailPayload{}, fmt.Errorf("resolve services: %w", err)
	}

	names := make([]string, 0, len(services))
	for _, service := range services {
		names = append(names, service.Name)
	}

	return jobs.ConfirmationEmailPayload{
		AppointmentID:   appointment.ID,
		ClientName:      appointment.ClientName,
		ClientEmail:     appointment.ClientEmail,
		Date:            appointment.Date.Format("January 02, 2006"),
		StartTime:       appointment.StartTime,
		LocationName:    location.Name,
		LocationAddress: location.Address,
		BarberName:      barberName,
		ServiceNames:    names,
	}, nil
}

func joinServiceIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
