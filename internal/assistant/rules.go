package assistant

import (
	"strings"
	"time"

	"github.com/shearbook/shearbook/internal/domain"
)

var helpKeywords = []string{"help", "hello", "hi", "hey", "how do", "what can", "greetings"}

var bookingKeywords = []string{"book", "appointment", "schedule", "reserve", "haircut"}

var affirmativeKeywords = []string{
	"yes", "correct", "right", "good", "confirm", "confirmed",
	"ok", "okay", "sure", "yep", "yeah",
}

var negativeKeywords = []string{"no", "wrong", "incorrect", "not right", "mistake", "error", "cancel"}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// turn bundles everything one transition decision can look at.
type turn struct {
	Lower     string // lowercased user message
	Extracted Facts  // facts pulled from this message only
	Facts     *Facts // accumulated facts after merging
	PrevStage Stage
	Barbers   []domain.Barber
	Now       time.Time
}

// transitionRule is one row of the dialogue table. Rules are evaluated
// top-to-bottom; the first matching row decides the next stage and reply.
// Stage StageNone leaves the current stage untouched.
type transitionRule struct {
	name  string
	when  func(t *turn) bool
	stage Stage
	reply func(t *turn) string
}

// dialogueRules is the ordered transition table. Row order encodes
// precedence, so reordering rows changes behavior.
var dialogueRules = []transitionRule{
	{
		name:  "help",
		when:  func(t *turn) bool { return containsAny(t.Lower, helpKeywords) },
		stage: StageNone,
		reply: func(t *turn) string { return helpReply },
	},
	{
		name:  "booking_intent",
		when:  func(t *turn) bool { return containsAny(t.Lower, bookingKeywords) && t.Facts.Empty() },
		stage: StageInitialBooking,
		reply: func(t *turn) string { return initialBookingReply },
	},
	{
		name: "need_name",
		when: func(t *turn) bool {
			return t.Facts.BarberResolved() && t.Facts.Date != "" && t.Facts.Time != "" && t.Facts.ClientName == ""
		},
		stage: StageNeedName,
		reply: func(t *turn) string { return askNameReply },
	},
	{
		name:  "confirm",
		when:  func(t *turn) bool { return t.Facts.Complete() },
		stage: StageConfirmation,
		reply: func(t *turn) string { return confirmationReply(*t.Facts) },
	},
	{
		name: "need_time",
		when: func(t *turn) bool {
			return t.Facts.BarberResolved() && t.Facts.Date != "" && t.Facts.Time == ""
		},
		stage: StageNeedTime,
		reply: func(t *turn) string {
			t.Facts.AvailableTimes = suggestedSlots
			return suggestTimesReply(t.Facts.BarberName, t.Facts.Date)
		},
	},
	{
		name:  "need_date",
		when:  func(t *turn) bool { return t.Facts.BarberResolved() && t.Facts.Date == "" },
		stage: StageNeedDate,
		reply: func(t *turn) string { return askDateReply(t.Now) },
	},
	{
		name:  "need_barber",
		when:  func(t *turn) bool { return t.Facts.Date != "" && !t.Facts.BarberResolved() },
		stage: StageNeedBarber,
		reply: func(t *turn) string { return askBarberReply(t.Barbers) },
	},
	{
		name: "clarify_date",
		when: func(t *turn) bool {
			return !t.Facts.Empty() && t.PrevStage == StageNeedDate && t.Extracted.Date == ""
		},
		stage: StageNone,
		reply: func(t *turn) string { return needDateClarification },
	},
	{
		name: "clarify_barber",
		when: func(t *turn) bool {
			return !t.Facts.Empty() && t.PrevStage == StageNeedBarber && !t.Extracted.BarberResolved()
		},
		stage: StageNone,
		reply: func(t *turn) string { return needBarberClarification(t.Barbers) },
	},
	{
		name: "clarify_time",
		when: func(t *turn) bool {
			return !t.Facts.Empty() && t.PrevStage == StageNeedTime && t.Extracted.Time == ""
		},
		stage: StageNone,
		reply: func(t *turn) string { return needTimeClarification },
	},
	{
		name: "clarify_name",
		when: func(t *turn) bool {
			return !t.Facts.Empty() && t.PrevStage == StageNeedName && t.Extracted.ClientName == ""
		},
		stage: StageNone,
		reply: func(t *turn) string { return needNameClarification },
	},
	{
		name:  "missing_info",
		when:  func(t *turn) bool { return !t.Facts.Empty() },
		stage: StageNone,
		reply: func(t *turn) string { return missingInfoReply(*t.Facts) },
	},
	{
		name:  "default",
		when:  func(t *turn) bool { return true },
		stage: StageNone,
		reply: func(t *turn) string { return defaultReply },
	},
}
