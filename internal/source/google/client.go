package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/source"
)

// Client is a thin wrapper around the Google Calendar API service. It
// handles pagination and translates 401 responses into AuthError so the
// caller can prompt for re-authentication instead of failing silently.
type Client struct {
	service *calendar.Service
	account string
}

// NewClient creates a Google Calendar client from an authenticated HTTP
// client. The account email is only used to label errors.
func NewClient(ctx context.Context, httpClient *http.Client, account string) (*Client, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return &Client{service: service, account: account}, nil
}

// PrimaryCalendar returns the metadata of the account's primary calendar.
func (c *Client) PrimaryCalendar(ctx context.Context) (*calendar.Calendar, error) {
	cal, err := c.service.Calendars.Get("primary").Context(ctx).Do()
	if err != nil {
		return nil, c.wrapError("getting primary calendar", err)
	}
	return cal, nil
}

// ListEvents retrieves all events in the window from the given calendar.
// Recurring events are expanded into single instances, and all pages are
// drained before returning.
func (c *Client) ListEvents(
	ctx context.Context,
	calendarID string,
	window source.Window,
) ([]*calendar.Event, error) {
	var events []*calendar.Event
	pageToken := ""
	for {
		call := c.service.Events.List(calendarID).
			TimeMin(window.From.Format(time.RFC3339)).
			TimeMax(window.To.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, c.wrapError("listing events", err)
		}

		events = append(events, page.Items...)
		if page.NextPageToken == "" {
			return events, nil
		}
		pageToken = page.NextPageToken
	}
}

// wrapError converts API errors into package errors, surfacing expired
// credentials as AuthError.
func (c *Client) wrapError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) &&
		(apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return &source.AuthError{
			Provider: model.ProviderGoogle,
			Account:  c.account,
			Message:  apiErr.Message,
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
