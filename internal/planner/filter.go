package planner

import (
	"sort"

	"github.com/dockly/family-planner/internal/model"
)

// AccountFilter narrows the visible event set to a selection of connected
// accounts. It is a two-state machine: AllSelected (the default) or a
// partial selection of account identifiers (email-provider). A family
// group change always forces it back to AllSelected; the reset is an
// explicit side effect of the group-change action, never inferred by
// diffing account lists.
type AccountFilter struct {
	// selected is nil when all accounts are selected.
	selected map[string]struct{}
}

// NewAccountFilter returns a filter in the AllSelected state.
func NewAccountFilter() *AccountFilter {
	return &AccountFilter{}
}

// Select narrows the filter to the given account identifiers. Selecting
// an empty set is equivalent to selecting all accounts.
func (f *AccountFilter) Select(ids []string) {
	if len(ids) == 0 {
		f.selected = nil
		return
	}
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	f.selected = selected
}

// SelectAll returns the filter to the AllSelected state. Re-selecting all
// after any partial selection restores the full set without a re-fetch.
func (f *AccountFilter) SelectAll() {
	f.selected = nil
}

// AllSelected reports whether every account is currently visible.
func (f *AccountFilter) AllSelected() bool {
	return len(f.selected) == 0
}

// Selected returns the sorted partial selection, or nil when all
// accounts are selected.
func (f *AccountFilter) Selected() []string {
	if f.selected == nil {
		return nil
	}
	ids := make([]string, 0, len(f.selected))
	for id := range f.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Visible returns the subset of events whose source account is selected.
// The key is the account the event came through, not the displayed owner,
// which may be a creator outside the family. AllSelected is the identity.
// No network calls happen here; the filter operates purely over
// already-fetched state.
func (f *AccountFilter) Visible(events []model.CalendarEvent) []model.CalendarEvent {
	if f.AllSelected() {
		return events
	}
	visible := make([]model.CalendarEvent, 0, len(events))
	for _, e := range events {
		id := e.SourceEmail + "-" + string(e.Provider)
		if _, ok := f.selected[id]; ok {
			visible = append(visible, e)
		}
	}
	return visible
}
