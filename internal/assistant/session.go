// Package assistant implements the conversational booking assistant: a
// per-session dialogue manager that extracts booking facts from free-form
// text and drives a multi-step confirmation flow.
package assistant

import "time"

// Stage represents the dialogue manager's current expectation about which
// booking fact it is waiting for next.
type Stage string

const (
	// StageNone indicates that no booking attempt is in progress.
	StageNone Stage = ""
	// StageInitialBooking indicates that the user expressed booking intent
	// but provided no facts yet.
	StageInitialBooking Stage = "initial_booking"
	// StageNeedBarber indicates that the assistant is waiting for a barber choice.
	StageNeedBarber Stage = "need_barber"
	// StageNeedDate indicates that the assistant is waiting for a date.
	StageNeedDate Stage = "need_date"
	// StageNeedTime indicates that the assistant is waiting for a time.
	StageNeedTime Stage = "need_time"
	// StageNeedName indicates that the assistant is waiting for the client's name.
	StageNeedName Stage = "need_name"
	// StageConfirmation indicates that a booking summary awaits a yes/no answer.
	StageConfirmation Stage = "confirmation"
)

// Message roles as stored in the conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in the conversation history.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Facts is the partial set of structured booking facts accumulated during a
// booking attempt. Zero values mean "not yet known".
type Facts struct {
	BarberName  string `json:"barber_name,omitempty"`
	BarberID    *int64 `json:"barber_id,omitempty"`
	AnyBarber   bool   `json:"any_barber,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	ServiceID   *int64 `json:"service_id,omitempty"`

	// AvailableTimes holds the candidate slots last suggested to the user.
	// Advisory only.
	AvailableTimes []string `json:"available_times,omitempty"`
}

// Empty reports whether no booking fact has been accumulated yet.
func (f Facts) Empty() bool {
	return f.BarberName == "" && f.BarberID == nil && !f.AnyBarber &&
		f.Date == "" && f.Time == "" && f.ClientName == "" &&
		f.ServiceName == "" && f.ServiceID == nil && len(f.AvailableTimes) == 0
}

// BarberResolved reports whether a barber has been chosen, either a specific
// one or the "any available barber" option.
func (f Facts) BarberResolved() bool {
	return f.BarberName != ""
}

// Complete reports whether all four required facts are present. Service is
// optional and defaults at booking-creation time.
func (f Facts) Complete() bool {
	return f.BarberResolved() && f.Date != "" && f.Time != "" && f.ClientName != ""
}

// Merge copies every fact present in extracted into f. Facts are added
// monotonically; extraction never erases a previously known value.
func (f *Facts) Merge(extracted Facts) {
	if extracted.BarberName != "" {
		f.BarberName = extracted.BarberName
	}
	if extracted.BarberID != nil {
		f.BarberID = extracted.BarberID
	}
	if extracted.AnyBarber {
		f.AnyBarber = true
		f.BarberID = nil
	}
	if extracted.Date != "" {
		f.Date = extracted.Date
	}
	if extracted.Time != "" {
		f.Time = extracted.Time
	}
	if extracted.ClientName != "" {
		f.ClientName = extracted.ClientName
	}
	if extracted.ServiceName != "" {
		f.ServiceName = extracted.ServiceName
	}
	if extracted.ServiceID != nil {
		f.ServiceID = extracted.ServiceID
	}
	if len(extracted.AvailableTimes) > 0 {
		f.AvailableTimes = extracted.AvailableTimes
	}
}

// Conversation captures the full state of one chat session.
type Conversation struct {
	SessionID string    `json:"session_id"`
	History   []Message `json:"history"`
	Facts     Facts     `json:"facts"`
	Stage     Stage     `json:"stage"`

	// ConfirmationPending routes the next turn to the confirmation handler
	// instead of the normal stage logic. Set only once Facts is complete.
	ConfirmationPending bool      `json:"confirmation_pending"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ResetBooking clears transient booking fields so a new booking can begin in
// the same session. History is preserved.
func (c *Conversation) ResetBooking() {
	c.Facts = Facts{}
	c.Stage = StageNone
	c.ConfirmationPending = false
}
