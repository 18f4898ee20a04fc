package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shearbook/shearbook/internal/domain"
)

// AnyBarberName is stored as the barber fact when the user has no preference.
const AnyBarberName = "Any Available Barber"

// Catalog is a read-only snapshot of the barber and service catalogs used
// for name matching. Order is significant: the first match wins.
type Catalog struct {
	Barbers  []domain.Barber
	Services []domain.Service
}

// anyBarberPhrases mean "no preference". Checked before the catalog scan.
var anyBarberPhrases = []string{
	"any barber",
	"anyone",
	"any specialist",
	"doesn't matter",
	"doesnt matter",
	"don't care",
	"dont care",
	"any available",
	"whoever",
	"anybody",
}

// dateKeywords are checked in this order before weekday names.
var dateKeywords = []struct {
	keyword string
	days    int
}{
	{"today", 0},
	{"tomorrow", 1},
	{"day after tomorrow", 2},
	{"next week", 7},
}

// weekdayNames map a weekday mention to its Monday-based index.
var weekdayNames = []struct {
	name string
	day  int
}{
	{"monday", 0},
	{"tuesday", 1},
	{"wednesday", 2},
	{"thursday", 3},
	{"friday", 4},
	{"saturday", 5},
	{"sunday", 6},
}

// timePhrases resolve vague times of day to concrete slots.
var timePhrases = []struct {
	phrase string
	value  string
}{
	{"morning", "10:00"},
	{"afternoon", "14:00"},
	{"evening", "18:00"},
}

// timePatterns are applied in order: 12-hour clock with am/pm first, then a
// bare H:MM reading in 24-hour form.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)`),
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),
}

// loneTimeTokens matches a message that is nothing but a time value, so a
// bare numeric reply to the time question is not misread as a name.
var loneTimeTokens = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}:\d{2}$`),
	regexp.MustCompile(`^\d{1,2}$`),
}

// nameIndicators introduce an explicit client name.
var nameIndicators = []string{
	"name is",
	"this is",
	"i am",
	"i'm",
	"call me",
	"my name",
}

// Extractor turns free-form text into partial booking facts. It is a pure
// function of the message, the catalog snapshot, and the current date; it
// never mutates conversation state.
type Extractor struct {
	now func() time.Time
}

// NewExtractor returns an Extractor using the system clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorAt returns an Extractor with an injected clock.
func NewExtractorAt(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Extract scans the message for booking facts. Categories are extracted
// independently; within each, the first matching pattern wins. A time match
// suppresses name extraction for the same message.
func (e *Extractor) Extract(message string, catalog Catalog) Facts {
	var facts Facts
	lower := strings.ToLower(message)

	e.extractBarber(lower, catalog.Barbers, &facts)
	e.extractDate(lower, &facts)
	timeFound := e.extractTime(message, lower, &facts)
	e.extractService(lower, catalog.Services, &facts)
	if !timeFound {
		e.extractName(message, lower, &facts)
	}

	return facts
}

func (e *Extractor) extractBarber(lower string, barbers []domain.Barber, facts *Facts) {
	for _, phrase := range anyBarberPhrases {
		if strings.Contains(lower, phrase) {
			facts.BarberName = AnyBarberName
			facts.AnyBarber = true
			return
		}
	}

	for _, barber := range barbers {
		if strings.Contains(lower, strings.ToLower(barber.Name)) {
			id := barber.ID
			facts.BarberName = barber.Name
			facts.BarberID = &id
			return
		}
	}
}

func (e *Extractor) extractDate(lower string, facts *Facts) {
	now := e.now()

	for _, kw := range dateKeywords {
		if strings.Contains(lower, kw.keyword) {
			facts.Date = now.AddDate(0, 0, kw.days).Format("2006-01-02")
			return
		}
	}

	today := mondayIndex(now.Weekday())
	for _, wd := range weekdayNames {
		if strings.Contains(lower, wd.name) {
			daysUntil := (wd.day - today + 7) % 7
			if daysUntil == 0 {
				// same weekday always means next week, never today
				daysUntil = 7
			}
			facts.Date = now.AddDate(0, 0, daysUntil).Format("2006-01-02")
			return
		}
	}
}

func (e *Extractor) extractTime(message, lower string, facts *Facts) bool {
	for _, tp := range timePhrases {
		if strings.Contains(lower, tp.phrase) {
			facts.Time = tp.value
			return true
		}
	}

	if m := timePatterns[0].FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := m[2]
		if minute == "" {
			minute = "00"
		}
		switch m[3] {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		facts.Time = fmt.Sprintf("%02d:%s", hour, minute)
		return true
	}

	if m := timePatterns[1].FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		facts.Time = fmt.Sprintf("%02d:%s", hour, m[2])
		return true
	}

	if fields := strings.Fields(message); len(fields) == 1 {
		token := strings.TrimSpace(message)
		for _, pattern := range loneTimeTokens {
			if !pattern.MatchString(token) {
				continue
			}

			parts := strings.SplitN(token, ":", 2)
			hour, _ := strconv.Atoi(parts[0])
			minute := 0
			if len(parts) > 1 {
				minute, _ = strconv.Atoi(parts[1])
			}

			if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
				facts.Time = fmt.Sprintf("%02d:%02d", hour, minute)
				return true
			}
		}
	}

	return false
}

func (e *Extractor) extractService(lower string, services []domain.Service, facts *Facts) {
	for _, service := range services {
		if strings.Contains(lower, strings.ToLower(service.Name)) {
			id := service.ID
			facts.ServiceName = service.Name
			facts.ServiceID = &id
			return
		}
	}
}

func (e *Extractor) extractName(message, lower string, facts *Facts) {
	for _, indicator := range nameIndicators {
		idx := strings.Index(lower, indicator)
		if idx < 0 {
			continue
		}

		rest := strings.Fields(lower[idx+len(indicator):])
		if len(rest) > 3 {
			rest = rest[:3]
		}
		candidate := strings.Join(rest, " ")
		if len(candidate) > 2 {
			facts.ClientName = titleCase(candidate)
			return
		}
	}

	// A short bare reply is most likely a direct answer to the name
	// question.
	if len(strings.Fields(message)) <= 3 && len(message) >= 2 {
		cleaned := strings.TrimSpace(stripPunctuation(message))
		if cleaned != "" {
			facts.ClientName = titleCase(cleaned)
		}
	}
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, field := range fields {
		runes := []rune(strings.ToLower(field))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}
