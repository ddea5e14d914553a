package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errICSParse = errors.New("Failed to parse ICS file")

// icsEvent is a draft parsed out of one VEVENT block. Only drafts with both
// a title and a start date are worth persisting.
type icsEvent struct {
	Title       string
	Description string
	Location    string
	ExternalID  string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// parseICS scans iCalendar text line by line, accumulating a current event
// between BEGIN:VEVENT and its matching END:VEVENT. Unknown properties are
// skipped; events missing a title or start date are silently dropped. Input
// with no VCALENDAR structure at all is a parse failure.
func parseICS(data string) ([]icsEvent, error) {
	if !strings.Contains(data, "BEGIN:VCALENDAR") {
		return nil, errICSParse
	}

	var events []icsEvent
	var current *icsEvent

	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "BEGIN:VEVENT":
			// a stray nested BEGIN discards the in-flight draft
			current = &icsEvent{}
		case line == "END:VEVENT":
			if current != nil && current.Title != "" && !current.Start.IsZero() {
				events = append(events, *current)
			}
			current = nil
		case current == nil:
			// outside any VEVENT block
		case strings.HasPrefix(line, "SUMMARY:"):
			current.Title = line[len("SUMMARY:"):]
		case strings.HasPrefix(line, "DESCRIPTION:"):
			current.Description = strings.ReplaceAll(line[len("DESCRIPTION:"):], `\n`, "\n")
		case strings.HasPrefix(line, "LOCATION:"):
			current.Location = line[len("LOCATION:"):]
		case strings.HasPrefix(line, "UID:"):
			current.ExternalID = line[len("UID:"):]
		case strings.HasPrefix(line, "DTSTART"):
			value := icsPropertyValue(line)
			current.Start = parseICSDate(value)
			current.AllDay = len(value) == 8
		case strings.HasPrefix(line, "DTEND"):
			current.End = parseICSDate(icsPropertyValue(line))
		}
	}

	return events, nil
}

// icsPropertyValue strips the property name and any parameters, e.g.
// "DTSTART;VALUE=DATE:20250601" -> "20250601".
func icsPropertyValue(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return line[i+1:]
	}
	return ""
}

// parseICSDate reads an iCalendar date by fixed character offsets. An
// 8-character value is a bare date (all-day, midnight); longer values are
// YYYYMMDDTHHMMSS with seconds and any trailing zone suffix ignored.
// Wall-clock values are interpreted in local time even when a Z suffix
// claims UTC.
func parseICSDate(s string) time.Time {
	field := func(start, end int) int {
		if len(s) < end {
			return 0
		}
		n, _ := strconv.Atoi(s[start:end])
		return n
	}

	year, month, day := field(0, 4), field(4, 6), field(6, 8)
	if year == 0 || month == 0 || day == 0 {
		return time.Time{}
	}
	if len(s) == 8 {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	}
	return time.Date(year, time.Month(month), day, field(9, 11), field(11, 13), 0, 0, time.Local)
}

// generateICS serializes events into a VCALENDAR document. All-day events
// keep their stored wall-clock date; timed events are emitted as UTC
// instants. UIDs fall back to an identifier derived from the row id so
// repeated exports of the same event stay stable.
func generateICS(events []CalendarEvent) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("VERSION:2.0\n")
	b.WriteString("PRODID:-//Lifetrack//Calendar//EN\n")
	b.WriteString("CALSCALE:GREGORIAN\n")
	b.WriteString("METHOD:PUBLISH\n")

	for _, e := range events {
		uid := fmt.Sprintf("lifetrack-%d@lifetrack.app", e.ID)
		if e.ExternalID != nil && *e.ExternalID != "" {
			uid = *e.ExternalID
		}

		b.WriteString("BEGIN:VEVENT\n")
		fmt.Fprintf(&b, "UID:%s\n", uid)
		fmt.Fprintf(&b, "DTSTART%s:%s\n", icsDateParam(e.AllDay), formatICSDate(e.StartDate, e.AllDay))
		fmt.Fprintf(&b, "DTEND%s:%s\n", icsDateParam(e.AllDay), formatICSDate(e.EndDate, e.AllDay))
		fmt.Fprintf(&b, "SUMMARY:%s\n", e.Title)
		if e.Description != nil && *e.Description != "" {
			fmt.Fprintf(&b, "DESCRIPTION:%s\n", strings.ReplaceAll(*e.Description, "\n", `\n`))
		}
		if e.Location != nil && *e.Location != "" {
			fmt.Fprintf(&b, "LOCATION:%s\n", *e.Location)
		}
		if e.Category != nil && *e.Category != "" {
			fmt.Fprintf(&b, "CATEGORIES:%s\n", *e.Category)
		}
		b.WriteString("END:VEVENT\n")
	}

	b.WriteString("END:VCALENDAR")
	return b.String()
}

func icsDateParam(allDay bool) string {
	if allDay {
		return ";VALUE=DATE"
	}
	return ""
}

func formatICSDate(t time.Time, allDay bool) string {
	if allDay {
		return t.Format("20060102")
	}
	return t.UTC().Format("20060102T150405Z")
}
