package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shearbook/shearbook/internal/domain"
)

// DefaultServiceID is used when the user never named a service.
const DefaultServiceID int64 = 1

// PlaceholderClientEmail marks bookings made through the assistant channel,
// which does not capture contact details.
const PlaceholderClientEmail = "ai_assistant_booking@example.com"

var stageRecorder = func(from, to string) {}

// RegisterStageRecorder allows external packages to observe stage transitions.
func RegisterStageRecorder(recorder func(from, to string)) {
	if recorder == nil {
		stageRecorder = func(string, string) {}
		return
	}

	stageRecorder = recorder
}

// Manager is the dialogue state machine. Given the conversation state and a
// new message it decides the next stage, produces the reply, and triggers
// booking creation on confirmation.
type Manager struct {
	gateway   Gateway
	extractor *Extractor
	log       *slog.Logger
	now       func() time.Time
	shopPhone string
}

// NewManager constructs a dialogue manager. shopPhone is quoted to the user
// when booking persistence fails.
func NewManager(gateway Gateway, log *slog.Logger, shopPhone string) *Manager {
	if log == nil {
		log = slog.Default()
	}
	if shopPhone == "" {
		shopPhone = "(555) 123-4567"
	}

	return &Manager{
		gateway:   gateway,
		extractor: NewExtractor(),
		log:       log,
		now:       time.Now,
		shopPhone: shopPhone,
	}
}

// WithClock injects a clock, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	m.extractor = NewExtractorAt(now)
	return m
}

// Step processes one user turn and returns the assistant's reply, mutating
// conv in place. It never returns an error to the caller: gateway failures
// surface as user-visible replies.
func (m *Manager) Step(ctx context.Context, conv *Conversation, message string) string {
	if conv.ConfirmationPending {
		return m.handleConfirmation(ctx, conv, message)
	}

	catalog := m.loadCatalog(ctx)
	extracted := m.extractor.Extract(message, catalog)
	prevStage := conv.Stage

	// A time reply while we are asking for one commits the time and moves
	// straight to the name question. Without this, the generic rules would
	// re-derive a stale stage from the fact set.
	if prevStage == StageNeedTime && extracted.Time != "" {
		conv.Facts.Time = extracted.Time
		m.setStage(conv, StageNeedName)
		return askNameReply
	}

	conv.Facts.Merge(extracted)

	t := &turn{
		Lower:     strings.ToLower(message),
		Extracted: extracted,
		Facts:     &conv.Facts,
		PrevStage: prevStage,
		Barbers:   catalog.Barbers,
		Now:       m.now(),
	}

	for i := range dialogueRules {
		rule := &dialogueRules[i]
		if !rule.when(t) {
			continue
		}

		if rule.stage != StageNone {
			m.setStage(conv, rule.stage)
		}
		reply := rule.reply(t)
		if rule.stage == StageConfirmation {
			conv.ConfirmationPending = true
		}

		return reply
	}

	// unreachable: the default rule always matches
	return defaultReply
}

func (m *Manager) handleConfirmation(ctx context.Context, conv *Conversation, message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, affirmativeKeywords):
		conv.ConfirmationPending = false
		clientName := conv.Facts.ClientName

		if err := m.createBooking(ctx, conv); err != nil {
			// Facts are kept so the user can retry without starting over.
			m.log.Error("failed to create booking from conversation",
				slog.String("session_id", conv.SessionID),
				slog.Any("error", err),
			)
			return bookingFailedReply(m.shopPhone)
		}

		conv.ResetBooking()
		return bookingCreatedReply(clientName)

	case containsAny(lower, negativeKeywords):
		conv.ConfirmationPending = false
		return changeReply

	default:
		return unclearConfirmationReply
	}
}

func (m *Manager) createBooking(ctx context.Context, conv *Conversation) error {
	facts := conv.Facts

	barberID := facts.BarberID
	if facts.AnyBarber {
		barberID = nil
	}

	var locationID int64
	if barberID != nil {
		barber, err := m.gateway.BarberByID(ctx, *barberID)
		if err != nil {
			return err
		}
		locationID = barber.LocationID
	} else {
		location, err := m.gateway.FirstLocation(ctx)
		if err != nil {
			return err
		}
		locationID = location.ID
	}

	serviceID := DefaultServiceID
	if facts.ServiceID != nil {
		serviceID = *facts.ServiceID
	}

	date, err := time.Parse("2006-01-02", facts.Date)
	if err != nil {
		return err
	}

	_, err = m.gateway.CreateAppointment(ctx, BookingRequest{
		LocationID:  locationID,
		BarberID:    barberID,
		ClientName:  facts.ClientName,
		ClientEmail: PlaceholderClientEmail,
		Date:        date,
		StartTime:   facts.Time,
		ServiceIDs:  []int64{serviceID},
	})

	return err
}

// loadCatalog snapshots the barber and service catalogs. Lookup failures are
// logged and treated as an empty catalog; extraction simply finds nothing.
func (m *Manager) loadCatalog(ctx context.Context) Catalog {
	barbers, err := m.gateway.ListBarbers(ctx)
	if err != nil {
		m.log.Error("failed to list barbers for extraction", slog.Any("error", err))
	}

	services, err := m.gateway.ListServices(ctx)
	if err != nil {
		m.log.Error("failed to list services for extraction", slog.Any("error", err))
	}

	return Catalog{Barbers: barbers, Services: services}
}

func (m *Manager) setStage(conv *Conversation, stage Stage) {
	if conv.Stage == stage {
		return
	}

	stageRecorder(string(conv.Stage), string(stage))
	conv.Stage = stage
}

// barberNames is a small helper shared by reply builders and tests.
func barberNames(barbers []domain.Barber) []string {
	names := make([]string, 0, len(barbers))
	for _, barber := range barbers {
		names = append(names, barber.Name)
	}
	return names
}
