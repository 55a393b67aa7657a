package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
)

// Snapshot is the combined planner payload for one family group, loaded
// wholesale on every refresh. Events are already normalized and
// deduplicated; the account filter is applied per read, not stored here.
type Snapshot struct {
	Goals    []model.Goal
	Todos    []model.Todo
	Events   []model.CalendarEvent
	Accounts []model.ConnectedAccount
	Members  []model.FamilyMember
	Notes    []model.Note

	FetchedAt time.Time
}

// Session holds the planner state for one family group: the latest
// snapshot, the account visibility filter, and the derived color map.
// It is the single owner of the group selection; switching groups goes
// through SwitchGroup so the filter reset can never be skipped.
type Session struct {
	store        store.Store
	groupID      string
	filter       *AccountFilter
	snapshot     Snapshot
	primaryColor string
}

// NewSession creates a planner session scoped to the given family group.
// The primary color is forced onto dockly accounts in the color map.
func NewSession(s store.Store, groupID string, primaryColor string) *Session {
	return &Session{
		store:        s,
		groupID:      groupID,
		filter:       NewAccountFilter(),
		primaryColor: primaryColor,
	}
}

// GroupID returns the active family group.
func (s *Session) GroupID() string {
	return s.groupID
}

// Filter exposes the account visibility filter.
func (s *Session) Filter() *AccountFilter {
	return s.filter
}

// Snapshot returns the latest loaded planner data.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot
}

// Refresh reloads the combined planner payload for the active group and
// runs the reconciliation pipeline over the event set. The snapshot is
// replaced wholesale; partial states are never observable.
func (s *Session) Refresh(ctx context.Context) error {
	goals, err := s.store.GetGoals(ctx, s.groupID)
	if err != nil {
		return fmt.Errorf("loading goals: %w", err)
	}
	todos, err := s.store.GetTodos(ctx, store.TodoFilter{FamilyGroupID: &s.groupID})
	if err != nil {
		return fmt.Errorf("loading todos: %w", err)
	}
	events, err := s.store.GetEvents(ctx, store.EventFilter{FamilyGroupID: &s.groupID})
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	accounts, err := s.store.GetAccounts(ctx, s.groupID)
	if err != nil {
		return fmt.Errorf("loading accounts: %w", err)
	}
	members, err := s.store.GetFamilyMembers(ctx, s.groupID)
	if err != nil {
		return fmt.Errorf("loading family members: %w", err)
	}
	notes, err := s.store.GetNotes(ctx, s.groupID)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	s.snapshot = Snapshot{
		Goals:     goals,
		Todos:     todos,
		Events:    Dedupe(events),
		Accounts:  accounts,
		Members:   members,
		Notes:     notes,
		FetchedAt: time.Now(),
	}
	return nil
}

// SwitchGroup changes the active family group and reloads the snapshot.
// The account filter is reset to AllSelected before anything else: a
// selection carried over from the previous group may reference accounts
// that do not exist in the new one, which would silently hide every
// event with no visible error.
func (s *Session) SwitchGroup(ctx context.Context, groupID string) error {
	s.groupID = groupID
	s.filter.SelectAll()
	return s.Refresh(ctx)
}

// VisibleEvents derives the currently visible event set from the latest
// snapshot and the account filter selection.
func (s *Session) VisibleEvents() []model.CalendarEvent {
	return s.filter.Visible(s.snapshot.Events)
}

// PersonColors derives the display color map, keyed by account user name.
// Dockly accounts are forced to the primary color regardless of the
// server-supplied value.
func (s *Session) PersonColors() map[string]model.PersonColor {
	colors := make(map[string]model.PersonColor, len(s.snapshot.Accounts))
	for _, a := range s.snapshot.Accounts {
		color := a.Color
		if a.Provider == model.ProviderDockly {
			color = s.primaryColor
		}
		colors[a.UserName] = model.PersonColor{Color: color, Email: a.Email}
	}
	return colors
}
