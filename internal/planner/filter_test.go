package planner

import (
	"reflect"
	"testing"
	"time"

	"github.com/dockly/family-planner/internal/model"
)

func ownedEvent(id, email string, provider model.Provider) model.CalendarEvent {
	return model.CalendarEvent{
		ID:          id,
		Title:       id,
		OwnerEmail:  email,
		SourceEmail: email,
		Provider:    provider,
		Start:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAccountFilterDefaultsToAll(t *testing.T) {
	f := NewAccountFilter()
	if !f.AllSelected() {
		t.Error("new filter is not in the all-selected state")
	}
	if got := f.Selected(); got != nil {
		t.Errorf("Selected() = %v, want nil", got)
	}
}

func TestAccountFilterAllSelectedIsIdentity(t *testing.T) {
	events := []model.CalendarEvent{
		ownedEvent("a", "mom@example.com", model.ProviderGoogle),
		ownedEvent("b", "dad@example.com", model.ProviderDockly),
	}

	f := NewAccountFilter()
	got := f.Visible(events)
	if !reflect.DeepEqual(got, events) {
		t.Errorf("Visible() = %v, want the full input", eventIDs(got))
	}
}

func TestAccountFilterPartialSelection(t *testing.T) {
	events := []model.CalendarEvent{
		ownedEvent("a", "mom@example.com", model.ProviderGoogle),
		ownedEvent("b", "dad@example.com", model.ProviderDockly),
		ownedEvent("c", "mom@example.com", model.ProviderDockly),
	}

	f := NewAccountFilter()
	f.Select([]string{"mom@example.com-google"})

	got := f.Visible(events)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Visible() = %v, want only a", eventIDs(got))
	}
}

func TestAccountFilterKeysOnSourceAccount(t *testing.T) {
	// An invite created by someone outside the family still belongs to
	// the account it was fetched through. Selecting that account must
	// show it, and selecting anything else must not.
	invite := model.CalendarEvent{
		ID:          "invite",
		Title:       "Parent-teacher conference",
		OwnerEmail:  "teacher@school.org",
		SourceEmail: "dad@gmail.com",
		Provider:    model.ProviderGoogle,
		Start:       time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
	}
	events := []model.CalendarEvent{
		invite,
		ownedEvent("b", "mom@example.com", model.ProviderDockly),
	}

	f := NewAccountFilter()
	f.Select([]string{"dad@gmail.com-google"})
	got := f.Visible(events)
	if len(got) != 1 || got[0].ID != "invite" {
		t.Errorf("Visible() = %v, want the fetched invite", eventIDs(got))
	}

	f.Select([]string{"teacher@school.org-google"})
	if got := f.Visible(events); len(got) != 0 {
		t.Errorf("Visible() = %v, want none for a non-connected creator", eventIDs(got))
	}
}

func TestAccountFilterSelectionIsProviderScoped(t *testing.T) {
	// The same email connected through two providers is two accounts;
	// selecting one must not reveal the other's events.
	events := []model.CalendarEvent{
		ownedEvent("a", "mom@example.com", model.ProviderGoogle),
		ownedEvent("b", "mom@example.com", model.ProviderICS),
	}

	f := NewAccountFilter()
	f.Select([]string{"mom@example.com-ics"})

	got := f.Visible(events)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Visible() = %v, want only b", eventIDs(got))
	}
}

func TestAccountFilterEmptySelectionMeansAll(t *testing.T) {
	f := NewAccountFilter()
	f.Select([]string{"mom@example.com-google"})
	f.Select(nil)
	if !f.AllSelected() {
		t.Error("selecting an empty set should restore the all-selected state")
	}
}

func TestAccountFilterSelectAllRestoresFullSet(t *testing.T) {
	events := []model.CalendarEvent{
		ownedEvent("a", "mom@example.com", model.ProviderGoogle),
		ownedEvent("b", "dad@example.com", model.ProviderDockly),
	}

	f := NewAccountFilter()
	f.Select([]string{"dad@example.com-dockly"})
	if got := f.Visible(events); len(got) != 1 {
		t.Fatalf("partial selection shows %d events, want 1", len(got))
	}

	f.SelectAll()
	if got := f.Visible(events); len(got) != len(events) {
		t.Errorf("after SelectAll, Visible() = %v, want all", eventIDs(got))
	}
}

func TestAccountFilterSelectedIsSorted(t *testing.T) {
	f := NewAccountFilter()
	f.Select([]string{"z@example.com-ics", "a@example.com-google", "m@example.com-dockly"})
	want := []string{"a@example.com-google", "m@example.com-dockly", "z@example.com-ics"}
	if got := f.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected() = %v, want %v", got, want)
	}
}
