package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/tests/testutil"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 9, d, hour, 0, 0, 0, time.UTC)
}

func TestCreateEventDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.CreateEvent(ctx, model.CalendarEvent{
		Title:      "Dentist",
		Start:      day(10, 9),
		End:        day(10, 10),
		OwnerEmail: "mom@example.com",
	})
	if err != nil {
		t.Fatalf("creating event: %v", err)
	}

	events, err := s.GetEvents(ctx, store.EventFilter{})
	if err != nil {
		t.Fatalf("getting events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	got := events[0]
	if got.ID == "" {
		t.Error("expected a generated ID")
	}
	if got.Provider != model.ProviderDockly {
		t.Errorf("Provider = %q, want %q", got.Provider, model.ProviderDockly)
	}
	if got.SourceEmail != "mom@example.com" {
		t.Errorf("SourceEmail = %q, want the owner's account", got.SourceEmail)
	}
	if !got.Start.Equal(day(10, 9)) {
		t.Errorf("Start = %v, want %v", got.Start, day(10, 9))
	}
}

func TestGetEventsWindowFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seed := []model.CalendarEvent{
		{ID: "before", Title: "Old", Start: day(1, 9), End: day(1, 10)},
		{ID: "inside", Title: "Current", Start: day(10, 9), End: day(10, 10)},
		{ID: "spanning", Title: "Trip", Start: day(4, 0), End: day(12, 0)},
		{ID: "after", Title: "Future", Start: day(20, 9), End: day(20, 10)},
		{ID: "undated", Title: "Sometime"},
	}
	for _, e := range seed {
		if err := s.CreateEvent(ctx, e); err != nil {
			t.Fatalf("creating event %s: %v", e.ID, err)
		}
	}

	from := day(5, 0)
	to := day(15, 0)
	events, err := s.GetEvents(ctx, store.EventFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("getting events: %v", err)
	}

	want := map[string]bool{"inside": true, "spanning": true, "undated": true}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for _, e := range events {
		if !want[e.ID] {
			t.Errorf("unexpected event %q in window", e.ID)
		}
	}
}

func TestGetEventsProviderAndGroupFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	err = s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", []model.CalendarEvent{
		{
			ID: "google-1", Title: "Standup", Start: day(10, 9), End: day(10, 10),
			OwnerEmail: "dad@gmail.com", Provider: model.ProviderGoogle,
			FamilyGroupID: groupID,
		},
	})
	if err != nil {
		t.Fatalf("replacing provider events: %v", err)
	}
	err = s.CreateEvent(ctx, model.CalendarEvent{
		ID: "native-1", Title: "Dinner", Start: day(10, 18), End: day(10, 19),
		FamilyGroupID: groupID,
	})
	if err != nil {
		t.Fatalf("creating event: %v", err)
	}

	provider := model.ProviderGoogle
	events, err := s.GetEvents(ctx, store.EventFilter{
		FamilyGroupID: &groupID,
		Provider:      &provider,
	})
	if err != nil {
		t.Fatalf("getting events: %v", err)
	}
	if len(events) != 1 || events[0].ID != "google-1" {
		t.Fatalf("got %v, want only google-1", events)
	}
}

func TestReplaceProviderEventsSwapsBatch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := []model.CalendarEvent{
		{ID: "a", Title: "A", Start: day(10, 9), End: day(10, 10), OwnerEmail: "dad@gmail.com", SourceEmail: "dad@gmail.com", Provider: model.ProviderGoogle},
		{ID: "b", Title: "B", Start: day(11, 9), End: day(11, 10), OwnerEmail: "dad@gmail.com", SourceEmail: "dad@gmail.com", Provider: model.ProviderGoogle},
		// An invite owned by a creator outside the family still belongs
		// to the account it was fetched through.
		{ID: "invite", Title: "Conference", Start: day(11, 15), End: day(11, 16), OwnerEmail: "teacher@school.org", SourceEmail: "dad@gmail.com", Provider: model.ProviderGoogle},
	}
	if err := s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	// Native events and other accounts must survive the swap.
	if err := s.CreateEvent(ctx, model.CalendarEvent{ID: "native", Title: "Dinner", Start: day(10, 18), End: day(10, 19)}); err != nil {
		t.Fatalf("creating native event: %v", err)
	}

	second := []model.CalendarEvent{
		{ID: "c", Title: "C", Start: day(12, 9), End: day(12, 10), OwnerEmail: "dad@gmail.com", SourceEmail: "dad@gmail.com", Provider: model.ProviderGoogle},
	}
	if err := s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	events, err := s.GetEvents(ctx, store.EventFilter{})
	if err != nil {
		t.Fatalf("getting events: %v", err)
	}

	// The creator-owned invite was dropped from the second batch, so it
	// was deleted remotely and must not survive the swap.
	got := make(map[string]bool, len(events))
	for _, e := range events {
		got[e.ID] = true
	}
	if len(got) != 2 || !got["c"] || !got["native"] {
		t.Errorf("after swap got %v, want only c and native", got)
	}
}

func TestReplaceProviderEventsDefaultsSourceAccount(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	batch := []model.CalendarEvent{
		{ID: "x", Title: "X", Start: day(10, 9), End: day(10, 10), OwnerEmail: "teacher@school.org", Provider: model.ProviderGoogle},
	}
	if err := s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", batch); err != nil {
		t.Fatalf("replacing events: %v", err)
	}

	got, err := s.GetEventByID(ctx, "x")
	if err != nil {
		t.Fatalf("getting event: %v", err)
	}
	if got.SourceEmail != "dad@gmail.com" {
		t.Errorf("SourceEmail = %q, want the replaced account", got.SourceEmail)
	}

	if err := s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", nil); err != nil {
		t.Fatalf("replacing with empty batch: %v", err)
	}
	events, err := s.GetEvents(ctx, store.EventFilter{})
	if err != nil {
		t.Fatalf("getting events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("after empty swap %d events remain, want 0", len(events))
	}
}

func TestDeleteAccountPurgesFetchedEvents(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}
	err = s.UpsertAccounts(ctx, []model.ConnectedAccount{
		{Email: "dad@gmail.com", Provider: model.ProviderGoogle, FamilyGroupID: groupID},
	})
	if err != nil {
		t.Fatalf("seeding account: %v", err)
	}

	batch := []model.CalendarEvent{
		{ID: "own", Title: "Standup", Start: day(10, 9), End: day(10, 10), OwnerEmail: "dad@gmail.com", Provider: model.ProviderGoogle, FamilyGroupID: groupID},
		{ID: "invite", Title: "Conference", Start: day(11, 15), End: day(11, 16), OwnerEmail: "teacher@school.org", Provider: model.ProviderGoogle, FamilyGroupID: groupID},
	}
	if err := s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", batch); err != nil {
		t.Fatalf("replacing events: %v", err)
	}

	if err := s.DeleteAccount(ctx, "dad@gmail.com", model.ProviderGoogle); err != nil {
		t.Fatalf("deleting account: %v", err)
	}

	events, err := s.GetEvents(ctx, store.EventFilter{})
	if err != nil {
		t.Fatalf("getting events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("%d events survived the account deletion, want 0", len(events))
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpdateEvent(context.Background(), model.CalendarEvent{ID: "missing", Title: "Ghost"})
	if err == nil {
		t.Fatal("expected error for missing event")
	}
}
