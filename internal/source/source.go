package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
)

// AuthError indicates that authentication has failed or expired for a
// calendar source. It is returned by source clients when the remote end
// rejects the credentials.
type AuthError struct {
	Provider model.Provider
	Account  string
	Message  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s, %s): %s", e.Provider, e.Account, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Window is the time range a fetch covers.
type Window struct {
	From time.Time
	To   time.Time
}

// WindowAround returns a fetch window centered on now, spanning the given
// number of days in each direction.
func WindowAround(now time.Time, days int) Window {
	return Window{
		From: now.AddDate(0, 0, -days),
		To:   now.AddDate(0, 0, days),
	}
}

// Source defines the contract that every calendar integration must
// implement. Implementations return raw event records; normalization
// into canonical events happens downstream, never here.
type Source interface {
	// Provider returns the provider identifier.
	Provider() model.Provider

	// AccountEmail returns the connected account this source fetches for.
	AccountEmail() string

	// ValidateConnection verifies credentials and connectivity.
	// Returns a human-readable status message on success.
	ValidateConnection(ctx context.Context) (string, error)

	// FetchEvents retrieves the raw events inside the window.
	FetchEvents(ctx context.Context, window Window) ([]planner.RawEvent, error)
}
