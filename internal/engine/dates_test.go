package engine_test

import (
	"testing"
	"time"

	"github.com/ekobrazil/birthday-panel/internal/engine"
	"github.com/stretchr/testify/assert"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestDateReferences_WeekdayPolicy(t *testing.T) {
	// The week of 2025-01-06: Monday Jan 6 through Sunday Jan 12.
	tests := []struct {
		name     string
		now      time.Time
		expected []string
	}{
		{"Monday_TodayAndTuesday", date(2025, time.January, 6), []string{"06/01", "07/01"}},
		{"Tuesday_NextDay", date(2025, time.January, 7), []string{"08/01"}},
		{"Wednesday_NextDay", date(2025, time.January, 8), []string{"09/01"}},
		{"Thursday_NextDay", date(2025, time.January, 9), []string{"10/01"}},
		{"Friday_Weekend", date(2025, time.January, 10), []string{"11/01", "12/01"}},
		{"Saturday_NextMonday", date(2025, time.January, 11), []string{"13/01"}},
		{"Sunday_NextMonday", date(2025, time.January, 12), []string{"13/01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.DateReferences(tt.now))
		})
	}
}

func TestDateReferences_MonthRollover(t *testing.T) {
	// Friday, January 31st 2025: the weekend spills into February.
	refs := engine.DateReferences(date(2025, time.January, 31))
	assert.Equal(t, []string{"01/02", "02/02"}, refs)
}

func TestDateReferences_YearRollover(t *testing.T) {
	// Tuesday, December 31st 2024: next day lands on January 1st.
	refs := engine.DateReferences(date(2024, time.December, 31))
	assert.Equal(t, []string{"01/01"}, refs)
}

func TestDateReferences_NewYearFriday(t *testing.T) {
	// Friday, January 1st 2021.
	refs := engine.DateReferences(date(2021, time.January, 1))
	assert.Equal(t, []string{"02/01", "03/01"}, refs)
}

func TestTodayDayMonth(t *testing.T) {
	clock := MockClock{CurrentTime: date(2025, time.October, 5)}
	assert.Equal(t, "05/10", engine.TodayDayMonth(clock))
}

func TestClassifyBirthday(t *testing.T) {
	friday := date(2025, time.January, 10)
	monday := date(2025, time.January, 6)
	wednesday := date(2025, time.January, 8)

	tests := []struct {
		name     string
		birthday string
		now      time.Time
		expected engine.BirthdayKind
	}{
		{"Today", "10/01", friday, engine.KindToday},
		{"FridayPlusOne_IsSaturday", "11/01", friday, engine.KindSaturday},
		{"FridayPlusTwo_IsSunday", "12/01", friday, engine.KindSunday},
		{"MondayPlusOne_IsTuesday", "07/01", monday, engine.KindTuesday},
		{"MidweekPlusOne_IsTomorrow", "09/01", wednesday, engine.KindTomorrow},
		{"Unrelated_IsOther", "25/12", friday, engine.KindOther},
		{"PlusTwoMidweek_IsOther", "10/01", wednesday, engine.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.ClassifyBirthday(tt.birthday, tt.now))
		})
	}
}
