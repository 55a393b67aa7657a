package planner

import (
	"time"

	"github.com/dockly/family-planner/internal/model"
)

const dateLayout = "2006-01-02"

// Normalize converts one raw event record into the canonical CalendarEvent.
// It is pure and total: it never fails, and any missing or malformed field
// degrades to a documented default. A single bad calendar record must not
// blank the whole calendar view.
func Normalize(raw RawEvent) model.CalendarEvent {
	start, sourceAllDay := normalizeStart(raw)
	end := normalizeEnd(raw, start)

	title := raw.Title
	if title == "" {
		title = model.UntitledEvent
	}

	owner := raw.AccountEmail
	if raw.Provider != nil && raw.Provider.CreatorEmail != "" {
		owner = raw.Provider.CreatorEmail
	}

	allDay := sourceAllDay
	if !allDay && !start.IsZero() && !end.IsZero() {
		allDay = start.Format(dateLayout) != end.Format(dateLayout)
	}

	return model.CalendarEvent{
		ID:          raw.ID,
		Title:       title,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		OwnerEmail:  owner,
		SourceEmail: raw.AccountEmail,
		Provider:    raw.Source,
		Color:       raw.Color,
		Location:    raw.Location,
		Description: raw.Description,
	}
}

// NormalizeAll normalizes a whole fetched batch.
func NormalizeAll(raw []RawEvent) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(raw))
	for _, r := range raw {
		events = append(events, Normalize(r))
	}
	return events
}

// normalizeStart derives the start instant. The second return value
// reports whether the source explicitly marked the event all-day.
func normalizeStart(raw RawEvent) (time.Time, bool) {
	if raw.Provider != nil {
		if t, ok := parseInstant(raw.Provider.Start.DateTime); ok {
			return t, false
		}
		if d, ok := parseDate(raw.Provider.Start.Date); ok {
			return d, true
		}
	}
	if raw.Manual != nil {
		if d, ok := parseDate(raw.Manual.Date); ok {
			return combineDateTime(d, raw.Manual.Time), false
		}
	}
	return time.Time{}, false
}

// normalizeEnd derives the end instant. Provider all-day events encode
// their end date as the day after the last day, so one calendar day is
// subtracted before use. If no end is derivable the event defaults to
// one hour after its start.
func normalizeEnd(raw RawEvent, start time.Time) time.Time {
	if raw.Provider != nil {
		if t, ok := parseInstant(raw.Provider.End.DateTime); ok {
			return t
		}
		if d, ok := parseDate(raw.Provider.End.Date); ok {
			return d.AddDate(0, 0, -1)
		}
	}
	// Manual events carry no explicit end.
	if !start.IsZero() {
		return start.Add(time.Hour)
	}
	return time.Time{}
}

// parseInstant parses an RFC3339 timestamp, tolerating a missing zone.
func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDate parses a bare YYYY-MM-DD date at start of day.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// combineDateTime applies an HH:MM time-of-day to a date, defaulting to
// midnight when the time is missing or malformed.
func combineDateTime(date time.Time, timeOfDay string) time.Time {
	if timeOfDay == "" {
		return date
	}
	t, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return date
	}
	return date.Add(
		time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute,
	)
}
