package google

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
	"github.com/dockly/family-planner/internal/source"
)

// calendarAPI is the subset of the Calendar client the adapter needs.
// Tests substitute a mock here.
type calendarAPI interface {
	PrimaryCalendar(ctx context.Context) (*calendar.Calendar, error)
	ListEvents(
		ctx context.Context,
		calendarID string,
		window source.Window,
	) ([]*calendar.Event, error)
}

// Adapter exposes one Google account's primary calendar as a Source.
type Adapter struct {
	api   calendarAPI
	email string
	color string
}

// NewAdapter creates a Source for the given account over an existing
// Calendar client.
func NewAdapter(client *Client, email, color string) *Adapter {
	return &Adapter{api: client, email: email, color: color}
}

func (a *Adapter) Provider() model.Provider {
	return model.ProviderGoogle
}

func (a *Adapter) AccountEmail() string {
	return a.email
}

// ValidateConnection verifies the account can reach its primary calendar.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	cal, err := a.api.PrimaryCalendar(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("connected to %q", cal.Summary), nil
}

// FetchEvents retrieves the window's events from the primary calendar
// and maps them to raw records. Cancelled instances are dropped here;
// everything else passes through untouched for the normalizer to judge.
func (a *Adapter) FetchEvents(
	ctx context.Context,
	window source.Window,
) ([]planner.RawEvent, error) {
	items, err := a.api.ListEvents(ctx, "primary", window)
	if err != nil {
		return nil, fmt.Errorf("fetching google events for %s: %w", a.email, err)
	}

	raw := make([]planner.RawEvent, 0, len(items))
	for _, item := range items {
		if item.Status == "cancelled" {
			continue
		}
		raw = append(raw, a.mapEvent(item))
	}
	return raw, nil
}

func (a *Adapter) mapEvent(item *calendar.Event) planner.RawEvent {
	fields := &planner.ProviderFields{}
	if item.Start != nil {
		fields.Start = planner.EventDateTime{
			DateTime: item.Start.DateTime,
			Date:     item.Start.Date,
		}
	}
	if item.End != nil {
		fields.End = planner.EventDateTime{
			DateTime: item.End.DateTime,
			Date:     item.End.Date,
		}
	}
	if item.Creator != nil {
		fields.CreatorEmail = item.Creator.Email
	}

	return planner.RawEvent{
		ID:           item.Id,
		Title:        item.Summary,
		Source:       model.ProviderGoogle,
		Provider:     fields,
		AccountEmail: a.email,
		Color:        a.color,
		Location:     item.Location,
		Description:  item.Description,
	}
}
