package sync

import (
	"context"
	"testing"
	"time"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
	"github.com/dockly/family-planner/internal/source"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/tests/testutil"
)

// fakeSource is a canned Source implementation for testing.
type fakeSource struct {
	email  string
	events []planner.RawEvent
	err    error
}

func (f *fakeSource) Provider() model.Provider {
	return model.ProviderICS
}

func (f *fakeSource) AccountEmail() string {
	return f.email
}

func (f *fakeSource) ValidateConnection(ctx context.Context) (string, error) {
	return "ok", f.err
}

func (f *fakeSource) FetchEvents(
	ctx context.Context,
	window source.Window,
) ([]planner.RawEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func seedPollerGroup(t *testing.T, s store.Store) string {
	t.Helper()
	id, err := s.CreateFamilyGroup(context.Background(), model.FamilyGroup{Name: "Test"})
	if err != nil {
		t.Fatalf("creating family group: %v", err)
	}
	return id
}

func TestFetchAndStoreReplacesCachedEvents(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedPollerGroup(t, s)

	src := &fakeSource{
		email: "school@example.com",
		events: []planner.RawEvent{
			{
				ID:     "feed-1",
				Title:  "Swim practice",
				Source: model.ProviderICS,
				Provider: &planner.ProviderFields{
					Start: planner.EventDateTime{DateTime: "2026-09-10T16:00:00Z"},
					End:   planner.EventDateTime{DateTime: "2026-09-10T17:00:00Z"},
				},
				AccountEmail: "school@example.com",
			},
		},
	}

	p := New(s, 35)
	p.RegisterSource(src, model.AccountConfig{
		Email:         "school@example.com",
		Provider:      model.ProviderICS,
		FamilyGroupID: groupID,
	})

	entry := p.sources[0]
	p.fetchAndStore(entry, entry.accountID())

	stored, err := s.GetEvents(context.Background(), store.EventFilter{
		FamilyGroupID: &groupID,
	})
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d events, want 1", len(stored))
	}
	if stored[0].Title != "Swim practice" || stored[0].Provider != model.ProviderICS {
		t.Errorf("stored event = %+v", stored[0])
	}
	if stored[0].FamilyGroupID != groupID {
		t.Errorf("FamilyGroupID = %q, want the registered group", stored[0].FamilyGroupID)
	}

	select {
	case msg := <-p.resultCh:
		if msg.Error != nil || msg.EventCount != 1 {
			t.Errorf("result = %+v", msg)
		}
	default:
		t.Error("no result message was sent")
	}

	// A later fetch with an empty payload clears the account's cache.
	src.events = nil
	p.fetchAndStore(entry, entry.accountID())

	stored, err = s.GetEvents(context.Background(), store.EventFilter{
		FamilyGroupID: &groupID,
	})
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("stored %d events after empty fetch, want 0", len(stored))
	}
}

func TestFetchAndStoreReportsAuthError(t *testing.T) {
	s := testutil.NewTestStore(t)

	src := &fakeSource{
		email: "school@example.com",
		err: &source.AuthError{
			Provider: model.ProviderICS,
			Account:  "school@example.com",
			Message:  "forbidden",
		},
	}

	p := New(s, 35)
	p.RegisterSource(src, model.AccountConfig{
		Email:    "school@example.com",
		Provider: model.ProviderICS,
	})

	entry := p.sources[0]
	p.fetchAndStore(entry, entry.accountID())

	select {
	case msg := <-p.resultCh:
		if msg.AuthError == nil {
			t.Errorf("result = %+v, want an AuthError message", msg)
		}
	default:
		t.Fatal("no result message was sent")
	}

	statuses := p.GetStatuses()
	if len(statuses) != 1 || statuses[0].State != SyncError {
		t.Errorf("statuses = %+v, want a single errored entry", statuses)
	}
	if !statuses[0].LastSync.IsZero() {
		t.Error("LastSync advanced on a failed fetch")
	}
}

func TestRefreshAccountTargetsOneEntry(t *testing.T) {
	s := testutil.NewTestStore(t)

	p := New(s, 35)
	p.RegisterSource(&fakeSource{email: "school@example.com"}, model.AccountConfig{
		Email:    "school@example.com",
		Provider: model.ProviderICS,
	})
	p.RegisterSource(&fakeSource{email: "scouts@example.com"}, model.AccountConfig{
		Email:    "scouts@example.com",
		Provider: model.ProviderICS,
	})

	p.RefreshAccount("scouts@example.com-ics")

	// Only the targeted account's loop may see the signal; another
	// account's goroutine must not be able to consume it.
	select {
	case <-p.sources[0].trigger:
		t.Error("refresh signal delivered to the wrong account")
	default:
	}
	select {
	case <-p.sources[1].trigger:
	default:
		t.Error("targeted account never received the refresh signal")
	}
}

func TestRefreshAllSignalsEveryEntry(t *testing.T) {
	s := testutil.NewTestStore(t)

	p := New(s, 35)
	p.RegisterSource(&fakeSource{email: "school@example.com"}, model.AccountConfig{
		Email:    "school@example.com",
		Provider: model.ProviderICS,
	})
	p.RegisterSource(&fakeSource{email: "scouts@example.com"}, model.AccountConfig{
		Email:    "scouts@example.com",
		Provider: model.ProviderICS,
	})

	// Repeated refreshes collapse into one pending signal per account.
	p.RefreshAll()
	p.RefreshAll()

	for i, entry := range p.sources {
		select {
		case <-entry.trigger:
		default:
			t.Errorf("entry %d never received the refresh signal", i)
		}
		select {
		case <-entry.trigger:
			t.Errorf("entry %d buffered more than one pending refresh", i)
		default:
		}
	}
}

func TestStatusAdvancesOnSuccess(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedPollerGroup(t, s)

	src := &fakeSource{email: "school@example.com"}
	p := New(s, 35)
	p.RegisterSource(src, model.AccountConfig{
		Email:         "school@example.com",
		Provider:      model.ProviderICS,
		FamilyGroupID: groupID,
	})

	before := time.Now()
	entry := p.sources[0]
	p.fetchAndStore(entry, entry.accountID())

	statuses := p.GetStatuses()
	if len(statuses) != 1 {
		t.Fatalf("statuses = %+v", statuses)
	}
	if statuses[0].State != SyncIdle || statuses[0].LastSync.Before(before) {
		t.Errorf("status = %+v, want idle with a fresh LastSync", statuses[0])
	}
}
