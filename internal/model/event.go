package model

import "time"

// Provider identifies the origin system of a calendar event.
type Provider string

const (
	// ProviderDockly marks events created and stored by this application.
	ProviderDockly Provider = "dockly"

	// ProviderGoogle marks events imported from Google Calendar.
	ProviderGoogle Provider = "google"

	// ProviderICS marks events imported from a subscribed ICS feed.
	ProviderICS Provider = "ics"
)

// CalendarEvent is the canonical, post-normalization event shape shared by
// every provider. All provider-specific date handling happens before a
// CalendarEvent is constructed.
type CalendarEvent struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title" db:"title"`

	// Start and End are the normalized instants. For events whose source
	// carried no parseable start, Start is the zero time and the UI shows
	// the fallback range instead.
	Start time.Time `json:"start" db:"start_at"`
	End   time.Time `json:"end" db:"end_at"`

	// AllDay is true when the normalized start and end fall on different
	// calendar days, or when the source marked the event all-day.
	AllDay bool `json:"all_day" db:"all_day"`

	// OwnerEmail is the person shown as the event's owner. For imported
	// events it prefers the creator reported by the provider, so it can
	// differ from the account the event was fetched through.
	OwnerEmail string `json:"owner_email" db:"owner_email"`

	// SourceEmail is the connected account the event came through. It is
	// the key for account visibility filtering and for swapping an
	// account's cached events on each poll.
	SourceEmail string `json:"source_email" db:"source_email"`

	Provider Provider `json:"provider" db:"provider"`

	// Color is the display color, defaulted per account when the source
	// supplies none.
	Color string `json:"color" db:"color"`

	// FamilyGroupID scopes dockly-native events to a family group.
	// Imported events inherit the group of the account that fetched them.
	FamilyGroupID string `json:"family_group_id" db:"family_group_id"`

	Location    string    `json:"location,omitempty" db:"location"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UntitledEvent is the display title substituted when a source event
// carries no title.
const UntitledEvent = "Untitled Event"

// HasStart reports whether a start instant could be derived from the source.
func (e CalendarEvent) HasStart() bool {
	return !e.Start.IsZero()
}

// TimeRangeLabel returns the display time range for the event. Events
// whose source carried no parseable start show the fallback range.
func (e CalendarEvent) TimeRangeLabel() string {
	if !e.HasStart() {
		return "12:00 AM - 11:59 PM"
	}
	if e.AllDay {
		return "All day"
	}
	return e.Start.Format("3:04 PM") + " - " + e.End.Format("3:04 PM")
}
