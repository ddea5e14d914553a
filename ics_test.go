package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wall-clock parsing uses the process zone; pin it so date assertions do not
// drift with the machine running the tests.
func TestMain(m *testing.M) {
	time.Local = time.UTC
	os.Exit(m.Run())
}

func strPtr(s string) *string { return &s }

func TestParseICSSingleTimedEvent(t *testing.T) {
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:abc-123@example.com",
		"DTSTART:20250115T090000Z",
		"DTEND:20250115T100000Z",
		"SUMMARY:Gym",
		"DESCRIPTION:Leg day",
		"LOCATION:Downtown gym",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	events, err := parseICS(data)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "Gym", e.Title)
	assert.Equal(t, "Leg day", e.Description)
	assert.Equal(t, "Downtown gym", e.Location)
	assert.Equal(t, "abc-123@example.com", e.ExternalID)
	assert.False(t, e.AllDay)
	assert.Equal(t, time.Date(2025, time.January, 15, 9, 0, 0, 0, time.Local), e.Start)
	assert.Equal(t, time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local), e.End)
}

func TestParseICSAllDayEvent(t *testing.T) {
	data := "BEGIN:VCALENDAR\nBEGIN:VEVENT\nSUMMARY:Conference\nDTSTART;VALUE=DATE:20250601\nDTEND;VALUE=DATE:20250602\nEND:VEVENT\nEND:VCALENDAR"

	events, err := parseICS(data)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].AllDay)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local), events[0].Start)
	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local), events[0].End)
}

func TestParseICSDropsIncompleteEvents(t *testing.T) {
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"DTSTART:20250115T090000", // no SUMMARY
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:No start date",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"SUMMARY:Kept",
		"DTSTART:20250116T120000",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	events, err := parseICS(data)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Kept", events[0].Title)
}

func TestParseICSNestedBeginDiscardsDraft(t *testing.T) {
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"SUMMARY:Orphaned",
		"BEGIN:VEVENT",
		"SUMMARY:Fresh",
		"DTSTART:20250301T080000",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	events, err := parseICS(data)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Fresh", events[0].Title)
}

func TestParseICSPropertiesOutsideEventIgnored(t *testing.T) {
	data := "BEGIN:VCALENDAR\nSUMMARY:Not an event\nX-WR-CALNAME:Stuff\nEND:VCALENDAR"
	events, err := parseICS(data)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseICSNoCalendarIsError(t *testing.T) {
	_, err := parseICS("just some text")
	assert.ErrorIs(t, err, errICSParse)

	_, err = parseICS("")
	assert.ErrorIs(t, err, errICSParse)
}

func TestParseICSDescriptionNewlineUnescaped(t *testing.T) {
	data := "BEGIN:VCALENDAR\nBEGIN:VEVENT\nSUMMARY:Notes\nDTSTART:20250115T090000\nDESCRIPTION:line one\\nline two\nEND:VEVENT\nEND:VCALENDAR"
	events, err := parseICS(data)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "line one\nline two", events[0].Description)
}

func TestParseICSDateMalformed(t *testing.T) {
	assert.True(t, parseICSDate("").IsZero())
	assert.True(t, parseICSDate("2025").IsZero())
	assert.True(t, parseICSDate("not-a-date").IsZero())
}

func TestParseICSDateIgnoresSecondsAndZone(t *testing.T) {
	got := parseICSDate("20250115T093045Z")
	assert.Equal(t, time.Date(2025, time.January, 15, 9, 30, 0, 0, time.Local), got)
}

func TestGenerateICSStructure(t *testing.T) {
	start := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	events := []CalendarEvent{{
		ID:          12,
		Title:       "Gym",
		Description: strPtr("Leg day\nBring shoes"),
		Location:    strPtr("Downtown gym"),
		Category:    strPtr("fitness"),
		StartDate:   start,
		EndDate:     start.Add(time.Hour),
	}}

	out := generateICS(events)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR"))
	assert.Contains(t, out, "PRODID:-//Lifetrack//Calendar//EN")
	assert.Contains(t, out, "UID:lifetrack-12@lifetrack.app")
	assert.Contains(t, out, "DTSTART:20250115T090000Z")
	assert.Contains(t, out, "DTEND:20250115T100000Z")
	assert.Contains(t, out, "SUMMARY:Gym")
	assert.Contains(t, out, `DESCRIPTION:Leg day\nBring shoes`)
	assert.Contains(t, out, "LOCATION:Downtown gym")
	assert.Contains(t, out, "CATEGORIES:fitness")
}

func TestGenerateICSAllDayKeepsWallClockDate(t *testing.T) {
	events := []CalendarEvent{{
		ID:        3,
		Title:     "Holiday",
		AllDay:    true,
		StartDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local),
	}}

	out := generateICS(events)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250601")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250602")
}

func TestGenerateICSPrefersExternalUID(t *testing.T) {
	events := []CalendarEvent{{
		ID:         5,
		Title:      "Imported",
		ExternalID: strPtr("orig-uid@elsewhere"),
		StartDate:  time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.March, 1, 11, 0, 0, 0, time.UTC),
	}}

	out := generateICS(events)
	assert.Contains(t, out, "UID:orig-uid@elsewhere")
	assert.NotContains(t, out, "lifetrack-5@lifetrack.app")
}

func TestGenerateICSEmpty(t *testing.T) {
	out := generateICS(nil)
	assert.Equal(t, "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//Lifetrack//Calendar//EN\nCALSCALE:GREGORIAN\nMETHOD:PUBLISH\nEND:VCALENDAR", out)
}

// Exporting and re-importing must preserve title, timing and the all-day
// flag for every event.
func TestICSRoundTrip(t *testing.T) {
	original := []CalendarEvent{
		{
			ID:        1,
			Title:     "Gym",
			StartDate: time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Title:     "Conference",
			AllDay:    true,
			StartDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
			EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local),
		},
	}

	parsed, err := parseICS(generateICS(original))
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i, e := range original {
		assert.Equal(t, e.Title, parsed[i].Title, "event %d title", i)
		assert.Equal(t, e.AllDay, parsed[i].AllDay, "event %d allDay", i)
		assert.True(t, e.StartDate.Equal(parsed[i].Start), "event %d start: %v vs %v", i, e.StartDate, parsed[i].Start)
		assert.True(t, e.EndDate.Equal(parsed[i].End), "event %d end: %v vs %v", i, e.EndDate, parsed[i].End)
	}
}
