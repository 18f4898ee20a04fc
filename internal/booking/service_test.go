package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/assistant"
	"github.com/shearbook/shearbook/internal/domain"
	"github.com/shearbook/shearbook/internal/jobs"
	"github.com/shearbook/shearbook/internal/repository"
)

var errRepoFailure = errors.New("repository failure")

type mockLocationRepo struct{ mock.Mock }

func (m *mockLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	locations, _ := args.Get(0).([]domain.Location)
	return locations, args.Error(1)
}

func (m *mockLocationRepo) First(ctx context.Context) (*domain.Location, error) {
	args := m.Called(ctx)
	location, _ := args.Get(0).(*domain.Location)
	return location, args.Error(1)
}

func (m *mockLocationRepo) FindByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	location, _ := args.Get(0).(*domain.Location)
	return location, args.Error(1)
}

type mockBarberRepo struct{ mock.Mock }

func (m *mockBarberRepo) List(ctx context.Context) ([]domain.Barber, error) {
	args := m.Called(ctx)
	barbers, _ := args.Get(0).([]domain.Barber)
	return barbers, args.Error(1)
}

func (m *mockBarberRepo) ListByLocation(ctx context.Context, locationID int64) ([]domain.Barber, error) {
	args := m.Called(ctx, locationID)
	barbers, _ := args.Get(0).([]domain.Barber)
	return barbers, args.Error(1)
}

func (m *mockBarberRepo) FindByID(ctx context.Context, id int64) (*domain.Barber, error) {
	args := m.Called(ctx, id)
	barber, _ := args.Get(0).(*domain.Barber)
	return barber, args.Error(1)
}

func (m *mockBarberRepo) FindByName(ctx context.Context, name string) (*domain.Barber, error) {
	args := m.Called(ctx, name)
	barber, _ := args.Get(0).(*domain.Barber)
	return barber, args.Error(1)
}

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	services, _ := args.Get(0).([]domain.Service)
	return services, args.Error(1)
}

func (m *mockServiceRepo) FindByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	services, _ := args.Get(0).([]domain.Service)
	return services, args.Error(1)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) error {
	args := m.Called(ctx, appointment)
	if args.Error(0) == nil {
		appointment.ID = 42
	}
	return args.Error(0)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, filter)
	appointments, _ := args.Get(0).([]domain.Appointment)
	return appointments, args.Error(1)
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func (m *mockQueue) Close() error {
	return m.Called().Error(0)
}

type repos struct {
	locations    *mockLocationRepo
	barbers      *mockBarberRepo
	services     *mockServiceRepo
	appointments *mockAppointmentRepo
}

func newTestService(cache *CatalogCache, queue jobs.Manager) (*Service, *repos) {
	r := &repos{
		locations:    &mockLocationRepo{},
		barbers:      &mockBarberRepo{},
		services:     &mockServiceRepo{},
		appointments: &mockAppointmentRepo{},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(r.locations, r.barbers, r.services, r.appointments, cache, queue, log), r
}

func testBarbers() []domain.Barber {
	return []domain.Barber{
		{ID: 1, Name: "John Smith", LocationID: 1},
		{ID: 2, Name: "Michael Johnson", LocationID: 1},
	}
}

func TestService_ListBarbers_NilCacheFallsThrough(t *testing.T) {
	svc, r := newTestService(nil, nil)
	r.barbers.On("List", mock.Anything).Return(testBarbers(), nil).Once()

	barbers, err := svc.ListBarbers(context.Background())
	require.NoError(t, err)
	assert.Len(t, barbers, 2)
	r.barbers.AssertExpectations(t)
}

func TestService_ListBarbers_CachePopulatedOnMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCatalogCache(client, time.Minute)
	svc, r := newTestService(cache, nil)

	// first call misses the cache and hits the database once
	r.barbers.On("List", mock.Anything).Return(testBarbers(), nil).Once()

	ctx := context.Background()
	first, err := svc.ListBarbers(ctx)
	require.NoError(t, err)

	// second call is served from the cache, List is not called again
	second, err := svc.ListBarbers(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	r.barbers.AssertExpectations(t)
}

func TestService_CreateAppointment(t *testing.T) {
	svc, r := newTestService(nil, nil)

	r.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.LocationID == 1 &&
			a.ClientName == "Sarah Connor" &&
			a.Services == "1,3" &&
			a.BarberID == nil
	})).Return(nil).Once()

	appointment, err := svc.CreateAppointment(context.Background(), assistant.BookingRequest{
		LocationID:  1,
		ClientName:  "Sarah Connor",
		ClientEmail: "sarah@example.com",
		Date:        time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		StartTime:   "15:00",
		ServiceIDs:  []int64{1, 3},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), appointment.ID)
	r.appointments.AssertExpectations(t)
}

func TestService_CreateAppointment_RepoFailure(t *testing.T) {
	svc, r := newTestService(nil, nil)

	r.appointments.On("Create", mock.Anything, mock.Anything).Return(errRepoFailure).Once()

	_, err := svc.CreateAppointment(context.Background(), assistant.BookingRequest{
		LocationID: 1,
		ClientName: "Sarah Connor",
		Date:       time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		StartTime:  "15:00",
		ServiceIDs: []int64{1},
	})

	assert.ErrorIs(t, err, errRepoFailure)
}

func TestService_CreateAppointment_EnqueuesEmail(t *testing.T) {
	queue := &mockQueue{}
	svc, r := newTestService(nil, queue)

	barberID := int64(1)

	r.appointments.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	r.locations.On("FindByID", mock.Anything, int64(1)).
		Return(&domain.Location{ID: 1, Name: "Downtown Barbershop", Address: "123 Main Street"}, nil).Once()
	r.barbers.On("FindByID", mock.Anything, barberID).
		Return(&domain.Barber{ID: 1, Name: "John Smith"}, nil).Once()
	r.services.On("FindByIDs", mock.Anything, []int64{1}).
		Return([]domain.Service{{ID: 1, Name: "Haircut"}}, nil).Once()
	queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == jobs.TaskTypeConfirmationEmail
	})).Return(&asynq.TaskInfo{}, nil).Once()

	_, err := svc.CreateAppointment(context.Background(), assistant.BookingRequest{
		LocationID:  1,
		BarberID:    &barberID,
		ClientName:  "Sarah Connor",
		ClientEmail: "sarah@example.com",
		Date:        time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		StartTime:   "15:00",
		ServiceIDs:  []int64{1},
	})

	require.NoError(t, err)
	queue.AssertExpectations(t)
}

func TestService_CreateAppointment_EnqueueFailureDoesNotFailBooking(t *testing.T) {
	queue := &mockQueue{}
	svc, r := newTestService(nil, queue)

	r.appointments.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	r.locations.On("FindByID", mock.Anything, int64(1)).
		Return(&domain.Location{ID: 1, Name: "Downtown Barbershop"}, nil).Once()
	r.services.On("FindByIDs", mock.Anything, []int64{1}).
		Return([]domain.Service{{ID: 1, Name: "Haircut"}}, nil).Once()
	queue.On("Enqueue", mock.Anything, mock.Anything).
		Return(nil, errors.New("queue unavailable")).Once()

	appointment, err := svc.CreateAppointment(context.Background(), assistant.BookingRequest{
		LocationID:  1,
		ClientName:  "Sarah Connor",
		ClientEmail: "sarah@example.com",
		Date:        time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		StartTime:   "15:00",
		ServiceIDs:  []int64{1},
	})

	require.NoError(t, err)
	assert.NotNil(t, appointment)
}

func TestService_WithChannel(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	web := svc.WithChannel(ChannelWeb)
	assert.Equal(t, ChannelWeb, web.channel)
	assert.Equal(t, ChannelAssistant, svc.channel, "original service is unchanged")
}

func TestJoinServiceIDs(t *testing.T) {
	assert.Equal(t, "1,2,3", joinServiceIDs([]int64{1, 2, 3}))
	assert.Equal(t, "", joinServiceIDs(nil))
}
