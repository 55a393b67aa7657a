package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
	"github.com/dockly/family-planner/internal/source"
)

// Adapter exposes a subscribed ICS feed (Apple Calendar, school portals,
// sports clubs) as a read-only Source. Each VEVENT boundary is converted
// into the same date-or-datetime shape providers use, so the normalizer
// treats all remote calendars uniformly.
type Adapter struct {
	feedURL    string
	email      string
	color      string
	httpClient *http.Client
}

// NewAdapter creates a Source for one ICS feed subscription.
func NewAdapter(feedURL, email, color string) *Adapter {
	return &Adapter{
		feedURL: feedURL,
		email:   email,
		color:   color,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (a *Adapter) Provider() model.Provider {
	return model.ProviderICS
}

func (a *Adapter) AccountEmail() string {
	return a.email
}

// ValidateConnection fetches the feed once and reports how many events
// it currently carries.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	raw, err := a.fetch(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("feed reachable, %d events", len(raw)), nil
}

// FetchEvents downloads and parses the feed, keeping only events that
// start inside the window. ICS feeds cannot be queried by range, so the
// windowing happens client-side.
func (a *Adapter) FetchEvents(
	ctx context.Context,
	window source.Window,
) ([]planner.RawEvent, error) {
	raw, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}

	inWindow := make([]planner.RawEvent, 0, len(raw))
	for _, r := range raw {
		start, ok := eventStart(r)
		if ok && (start.Before(window.From) || !start.Before(window.To)) {
			continue
		}
		inWindow = append(inWindow, r)
	}
	return inWindow, nil
}

func (a *Adapter) fetch(ctx context.Context) ([]planner.RawEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", a.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &source.AuthError{
			Provider: model.ProviderICS,
			Account:  a.email,
			Message:  fmt.Sprintf("feed returned %s", resp.Status),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned %s", a.feedURL, resp.Status)
	}

	return a.decode(resp.Body)
}

// decode drains every calendar object in the stream. Some providers
// concatenate multiple VCALENDAR blocks into one feed.
func (a *Adapter) decode(r io.Reader) ([]planner.RawEvent, error) {
	var raw []planner.RawEvent
	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			return raw, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing feed %s: %w", a.feedURL, err)
		}
		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			if status := comp.Props.Get(ical.PropStatus); status != nil &&
				status.Value == "CANCELLED" {
				continue
			}
			raw = append(raw, a.mapComponent(comp))
		}
	}
}

func (a *Adapter) mapComponent(comp *ical.Component) planner.RawEvent {
	r := planner.RawEvent{
		Source:       model.ProviderICS,
		AccountEmail: a.email,
		Color:        a.color,
		Provider: &planner.ProviderFields{
			Start: boundary(comp.Props.Get(ical.PropDateTimeStart)),
			End:   boundary(comp.Props.Get(ical.PropDateTimeEnd)),
		},
	}

	if uid := comp.Props.Get(ical.PropUID); uid != nil {
		r.ID = uid.Value
	}
	if summary := comp.Props.Get(ical.PropSummary); summary != nil {
		r.Title = summary.Value
	}
	if loc := comp.Props.Get(ical.PropLocation); loc != nil {
		r.Location = loc.Value
	}
	if desc := comp.Props.Get(ical.PropDescription); desc != nil {
		r.Description = desc.Value
	}
	if organizer := comp.Props.Get(ical.PropOrganizer); organizer != nil {
		r.Provider.CreatorEmail = mailtoAddress(organizer.Value)
	}
	return r
}

// boundary converts one DTSTART/DTEND property into the date-or-datetime
// shape. A VALUE=DATE parameter marks an all-day boundary.
func boundary(prop *ical.Prop) planner.EventDateTime {
	if prop == nil {
		return planner.EventDateTime{}
	}

	t, err := prop.DateTime(nil)
	if err != nil {
		return planner.EventDateTime{}
	}

	if prop.Params.Get(ical.ParamValue) == "DATE" {
		return planner.EventDateTime{Date: t.Format("2006-01-02")}
	}
	return planner.EventDateTime{DateTime: t.UTC().Format(time.RFC3339)}
}

// mailtoAddress strips the mailto: scheme an ORGANIZER value carries.
func mailtoAddress(v string) string {
	const scheme = "mailto:"
	if len(v) >= len(scheme) && v[:len(scheme)] == scheme {
		return v[len(scheme):]
	}
	return v
}

// eventStart resolves the start instant of a raw record for windowing.
func eventStart(r planner.RawEvent) (time.Time, bool) {
	if r.Provider == nil {
		return time.Time{}, false
	}
	if r.Provider.Start.DateTime != "" {
		t, err := time.Parse(time.RFC3339, r.Provider.Start.DateTime)
		return t, err == nil
	}
	if r.Provider.Start.Date != "" {
		t, err := time.Parse("2006-01-02", r.Provider.Start.Date)
		return t, err == nil
	}
	return time.Time{}, false
}
