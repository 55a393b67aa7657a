package planner

import "github.com/dockly/family-planner/internal/model"

// EventDateTime mirrors the provider wire shape for one event boundary:
// either a full instant (DateTime, RFC3339) or a bare date (Date,
// YYYY-MM-DD) marking an all-day event. At most one field is set.
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// ProviderFields holds the start/end shape used by calendar providers
// (Google Calendar and ICS feeds normalize into the same shape).
type ProviderFields struct {
	Start        EventDateTime
	End          EventDateTime
	CreatorEmail string
}

// ManualFields holds the shape of a manually created planner event:
// a date and an optional time-of-day, both strings.
type ManualFields struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM, 24-hour; empty means midnight
}

// RawEvent is the tagged union of event shapes arriving from any source.
// Exactly one of Provider or Manual is set; shape dispatch happens once
// here instead of leaking into every consumer.
type RawEvent struct {
	ID       string
	Title    string
	Source   model.Provider
	Provider *ProviderFields
	Manual   *ManualFields

	// AccountEmail is the connected account this event was fetched for.
	AccountEmail string

	// AccountColor is the account's default display color, used when the
	// event itself carries none.
	Color string

	Location    string
	Description string
}
