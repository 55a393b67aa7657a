package planner

import (
	"context"
	"testing"
	"time"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/tests/testutil"
)

const primaryColor = "#0091ff"

func seedGroup(t *testing.T, s store.Store, name string) string {
	t.Helper()
	id, err := s.CreateFamilyGroup(context.Background(), model.FamilyGroup{Name: name})
	if err != nil {
		t.Fatalf("creating family group: %v", err)
	}
	return id
}

func seedSessionFixture(t *testing.T, s store.Store) string {
	t.Helper()
	ctx := context.Background()
	groupID := seedGroup(t, s, "Smith family")

	accounts := []model.ConnectedAccount{
		{
			UserName:      "Mom",
			Email:         "mom@example.com",
			Provider:      model.ProviderDockly,
			DisplayName:   "Mom",
			Color:         "#ff0000",
			FamilyGroupID: groupID,
		},
		{
			UserName:      "Dad",
			Email:         "dad@gmail.com",
			Provider:      model.ProviderGoogle,
			DisplayName:   "Dad",
			Color:         "#00aa55",
			FamilyGroupID: groupID,
		},
	}
	if err := s.UpsertAccounts(ctx, accounts); err != nil {
		t.Fatalf("seeding accounts: %v", err)
	}

	day := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
	if err := s.CreateEvent(ctx, model.CalendarEvent{
		ID:            "native-bbq",
		Title:         "BBQ",
		Start:         day,
		End:           day.Add(2 * time.Hour),
		OwnerEmail:    "mom@example.com",
		Provider:      model.ProviderDockly,
		FamilyGroupID: groupID,
	}); err != nil {
		t.Fatalf("seeding native event: %v", err)
	}

	imported := []model.CalendarEvent{
		{
			ID:            "google-bbq",
			Title:         "bbq",
			Start:         day,
			End:           day.Add(2 * time.Hour),
			OwnerEmail:    "dad@gmail.com",
			SourceEmail:   "dad@gmail.com",
			Provider:      model.ProviderGoogle,
			FamilyGroupID: groupID,
		},
		{
			ID:            "google-soccer",
			Title:         "Soccer",
			Start:         day.AddDate(0, 0, 1),
			End:           day.AddDate(0, 0, 1).Add(time.Hour),
			OwnerEmail:    "dad@gmail.com",
			SourceEmail:   "dad@gmail.com",
			Provider:      model.ProviderGoogle,
			FamilyGroupID: groupID,
		},
	}
	err := s.ReplaceProviderEvents(ctx, model.ProviderGoogle, "dad@gmail.com", imported)
	if err != nil {
		t.Fatalf("seeding imported events: %v", err)
	}

	return groupID
}

func TestSessionRefreshReconcilesEvents(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedSessionFixture(t, s)

	sess := NewSession(s, groupID, primaryColor)
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	events := sess.Snapshot().Events
	if len(events) != 2 {
		t.Fatalf("snapshot holds %v, want the native BBQ and the soccer game",
			eventIDs(events))
	}
	for _, e := range events {
		if e.ID == "google-bbq" {
			t.Error("imported duplicate survived reconciliation")
		}
	}
}

func TestSessionVisibleEventsFollowsFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedSessionFixture(t, s)

	sess := NewSession(s, groupID, primaryColor)
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if got := sess.VisibleEvents(); len(got) != 2 {
		t.Fatalf("all-selected shows %v, want 2 events", eventIDs(got))
	}

	sess.Filter().Select([]string{"dad@gmail.com-google"})
	got := sess.VisibleEvents()
	if len(got) != 1 || got[0].ID != "google-soccer" {
		t.Errorf("partial selection shows %v, want only google-soccer", eventIDs(got))
	}

	sess.Filter().SelectAll()
	if got := sess.VisibleEvents(); len(got) != 2 {
		t.Errorf("after re-selecting all, shows %v, want 2 events", eventIDs(got))
	}
}

func TestSessionSwitchGroupResetsFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedSessionFixture(t, s)
	otherGroup := seedGroup(t, s, "Grandparents")

	sess := NewSession(s, groupID, primaryColor)
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	sess.Filter().Select([]string{"mom@example.com-dockly"})
	if sess.Filter().AllSelected() {
		t.Fatal("partial selection did not take")
	}

	if err := sess.SwitchGroup(context.Background(), otherGroup); err != nil {
		t.Fatalf("SwitchGroup: %v", err)
	}

	if !sess.Filter().AllSelected() {
		t.Error("filter selection leaked across a group change")
	}
	if sess.GroupID() != otherGroup {
		t.Errorf("GroupID() = %q, want %q", sess.GroupID(), otherGroup)
	}
	if got := sess.Snapshot().Events; len(got) != 0 {
		t.Errorf("snapshot for the new group holds %v, want none", eventIDs(got))
	}
}

func TestSessionPersonColors(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedSessionFixture(t, s)

	sess := NewSession(s, groupID, primaryColor)
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	colors := sess.PersonColors()
	mom, ok := colors["Mom"]
	if !ok {
		t.Fatal("no color entry for Mom")
	}
	if mom.Color != primaryColor {
		t.Errorf("dockly account color = %q, want the primary color %q",
			mom.Color, primaryColor)
	}
	if mom.Email != "mom@example.com" {
		t.Errorf("Email = %q, want mom@example.com", mom.Email)
	}

	dad, ok := colors["Dad"]
	if !ok {
		t.Fatal("no color entry for Dad")
	}
	if dad.Color != "#00aa55" {
		t.Errorf("imported account color = %q, want its own %q", dad.Color, "#00aa55")
	}
}
