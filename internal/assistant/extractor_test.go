package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/domain"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return fixedNow }

func testCatalog() Catalog {
	return Catalog{
		Barbers: []domain.Barber{
			{ID: 1, Name: "John Smith", LocationID: 1},
			{ID: 2, Name: "Michael Johnson", LocationID: 1},
			{ID: 3, Name: "Robert Williams", LocationID: 2},
			{ID: 4, Name: "James Brown", LocationID: 2},
		},
		Services: []domain.Service{
			{ID: 1, Name: "Haircut"},
			{ID: 2, Name: "Beard Trim"},
		},
	}
}

func TestExtractor_Barber(t *testing.T) {
	e := NewExtractorAt(testClock)

	t.Run("any barber phrases set the flag without an id", func(t *testing.T) {
		for _, msg := range []string{
			"any barber works for me",
			"i don't care who",
			"whoever is free",
			"doesn't matter",
		} {
			facts := e.Extract(msg, testCatalog())
			assert.True(t, facts.AnyBarber, msg)
			assert.Equal(t, AnyBarberName, facts.BarberName, msg)
			assert.Nil(t, facts.BarberID, msg)
		}
	})

	t.Run("full name matches case-insensitively", func(t *testing.T) {
		facts := e.Extract("I'd like JOHN SMITH please", testCatalog())
		assert.Equal(t, "John Smith", facts.BarberName)
		require.NotNil(t, facts.BarberID)
		assert.Equal(t, int64(1), *facts.BarberID)
		assert.False(t, facts.AnyBarber)
	})

	t.Run("name without the space does not match", func(t *testing.T) {
		facts := e.Extract("book me with johnsmith", testCatalog())
		assert.Empty(t, facts.BarberName)
		assert.Nil(t, facts.BarberID)
	})

	t.Run("any barber wins over a named barber", func(t *testing.T) {
		facts := e.Extract("any barber, maybe john smith", testCatalog())
		assert.True(t, facts.AnyBarber)
		assert.Equal(t, AnyBarberName, facts.BarberName)
		assert.Nil(t, facts.BarberID)
	})
}

func TestExtractor_Date(t *testing.T) {
	e := NewExtractorAt(testClock)

	testCases := []struct {
		name     string
		message  string
		expected string
	}{
		{"today", "can i come in today", "2025-07-02"},
		{"tomorrow", "tomorrow would be great", "2025-07-03"},
		// "tomorrow" is checked before "day after tomorrow" and wins
		{"day after tomorrow", "the day after tomorrow", "2025-07-03"},
		{"next week", "sometime next week", "2025-07-09"},
		{"upcoming weekday", "friday please", "2025-07-04"},
		{"weekday wraps the week", "monday morning", "2025-07-07"},
		{"same weekday means next week", "next wednesday", "2025-07-09"},
		{"no date", "a trim would be nice", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			facts := e.Extract(tc.message, testCatalog())
			assert.Equal(t, tc.expected, facts.Date)
		})
	}
}

func TestExtractor_Time(t *testing.T) {
	e := NewExtractorAt(testClock)

	testCases := []struct {
		name     string
		message  string
		expected string
	}{
		{"12 hour pm", "around 3pm", "15:00"},
		{"12 hour with minutes", "10:30am if possible", "10:30"},
		{"midnight", "12am", "00:00"},
		{"noon", "12pm works", "12:00"},
		{"24 hour", "at 15:30", "15:30"},
		{"morning phrase", "in the morning", "10:00"},
		{"afternoon phrase", "afternoon is better", "14:00"},
		{"evening phrase", "evening at 5", "18:00"},
		{"lone hour token", "15", "15:00"},
		{"lone clock token", "9:45", "09:45"},
		{"lone token out of range", "25", ""},
		{"no time", "with james brown", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			facts := e.Extract(tc.message, testCatalog())
			assert.Equal(t, tc.expected, facts.Time)
		})
	}
}

func TestExtractor_Name(t *testing.T) {
	e := NewExtractorAt(testClock)

	t.Run("indicator introduces the name", func(t *testing.T) {
		facts := e.Extract("my name is sarah connor", testCatalog())
		assert.Equal(t, "Sarah Connor", facts.ClientName)
	})

	t.Run("short bare reply is taken as the name", func(t *testing.T) {
		facts := e.Extract("Sarah!", testCatalog())
		assert.Equal(t, "Sarah", facts.ClientName)
	})

	t.Run("a time match suppresses name extraction", func(t *testing.T) {
		facts := e.Extract("i am free at 3pm", testCatalog())
		assert.Equal(t, "15:00", facts.Time)
		assert.Empty(t, facts.ClientName)
	})

	t.Run("lone numeric reply is a time, not a name", func(t *testing.T) {
		facts := e.Extract("11", testCatalog())
		assert.Equal(t, "11:00", facts.Time)
		assert.Empty(t, facts.ClientName)
	})
}

func TestExtractor_Service(t *testing.T) {
	e := NewExtractorAt(testClock)

	facts := e.Extract("i need a beard trim", testCatalog())
	assert.Equal(t, "Beard Trim", facts.ServiceName)
	require.NotNil(t, facts.ServiceID)
	assert.Equal(t, int64(2), *facts.ServiceID)
}

func TestExtractor_Idempotent(t *testing.T) {
	e := NewExtractorAt(testClock)
	message := "book john smith for a haircut friday at 3pm"

	first := e.Extract(message, testCatalog())
	second := e.Extract(message, testCatalog())

	assert.Equal(t, first, second)
}

func TestExtractor_CombinedMessage(t *testing.T) {
	e := NewExtractorAt(testClock)

	facts := e.Extract("I need a haircut with John Smith tomorrow afternoon", testCatalog())

	assert.Equal(t, "John Smith", facts.BarberName)
	require.NotNil(t, facts.BarberID)
	assert.Equal(t, int64(1), *facts.BarberID)
	assert.Equal(t, "2025-07-03", facts.Date)
	assert.Equal(t, "14:00", facts.Time)
	assert.Equal(t, "Haircut", facts.ServiceName)
	assert.Empty(t, facts.ClientName)
}
