package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ekobrazil/birthday-panel/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_ThreeYearSpan(t *testing.T) {
	contacts := []engine.Contact{
		{Name: "Ana Silva", Phone: "5511999999999", Birthday: "05/10"},
	}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	data, err := engine.BuildCalendar(contacts, now, nil)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "SUMMARY:Aniversário: Ana Silva")
	assert.Equal(t, 3, strings.Count(ics, "BEGIN:VEVENT"), "one event per year of the span")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20241005")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20251005")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20261005")
}

func TestBuildCalendar_CustomSummary(t *testing.T) {
	contacts := []engine.Contact{{Name: "Ana", Phone: "551", Birthday: "05/10"}}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	data, err := engine.BuildCalendar(contacts, now, func(name string) string {
		return "Birthday: " + name
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Birthday: Ana")
}

func TestBuildCalendar_DeterministicUIDs(t *testing.T) {
	contacts := []engine.Contact{{Name: "Ana", Phone: "551", Birthday: "05/10"}}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	first, err := engine.BuildCalendar(contacts, now, nil)
	require.NoError(t, err)
	second, err := engine.BuildCalendar(contacts, now, nil)
	require.NoError(t, err)

	uid := func(ics string) string {
		for _, line := range strings.Split(ics, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}

	require.NotEmpty(t, uid(string(first)))
	assert.Equal(t, uid(string(first)), uid(string(second)), "regenerating must not churn UIDs")
}

func TestBuildCalendar_EmptyRosterYieldsStub(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	data, err := engine.BuildCalendar(nil, now, nil)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}

func TestBuildCalendar_SkipsUnparsableBirthdays(t *testing.T) {
	contacts := []engine.Contact{
		{Name: "Ana", Phone: "551", Birthday: "05/10"},
		{Name: "Bad", Phone: "552", Birthday: "ab/cd"},
	}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	data, err := engine.BuildCalendar(contacts, now, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "BEGIN:VEVENT"), "only the valid contact produces events")
}
