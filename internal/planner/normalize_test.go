package planner

import (
	"testing"
	"time"

	"github.com/dockly/family-planner/internal/model"
)

func TestNormalizeTimedProviderEvent(t *testing.T) {
	got := Normalize(RawEvent{
		ID:     "ev-1",
		Title:  "Dentist",
		Source: model.ProviderGoogle,
		Provider: &ProviderFields{
			Start:        EventDateTime{DateTime: "2026-03-10T09:30:00Z"},
			End:          EventDateTime{DateTime: "2026-03-10T10:00:00Z"},
			CreatorEmail: "mom@example.com",
		},
		AccountEmail: "family@example.com",
	})

	if got.Title != "Dentist" {
		t.Errorf("Title = %q, want %q", got.Title, "Dentist")
	}
	if want := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC); !got.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got.Start, want)
	}
	if want := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC); !got.End.Equal(want) {
		t.Errorf("End = %v, want %v", got.End, want)
	}
	if got.AllDay {
		t.Error("AllDay = true, want false for a timed event")
	}
	if got.OwnerEmail != "mom@example.com" {
		t.Errorf("OwnerEmail = %q, want creator email", got.OwnerEmail)
	}
	if got.SourceEmail != "family@example.com" {
		t.Errorf("SourceEmail = %q, want the fetching account", got.SourceEmail)
	}
}

func TestNormalizeAllDayEndCorrection(t *testing.T) {
	// Providers encode all-day ends as the day after the last day. A
	// single-day event on the 15th arrives as start=15, end=16 and must
	// come out with both boundaries on the 15th.
	got := Normalize(RawEvent{
		ID:     "ev-2",
		Title:  "School closed",
		Source: model.ProviderGoogle,
		Provider: &ProviderFields{
			Start: EventDateTime{Date: "2026-04-15"},
			End:   EventDateTime{Date: "2026-04-16"},
		},
		AccountEmail: "dad@example.com",
	})

	if want := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC); !got.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got.Start, want)
	}
	if want := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC); !got.End.Equal(want) {
		t.Errorf("End = %v, want %v", got.End, want)
	}
	if !got.AllDay {
		t.Error("AllDay = false, want true for a date-only event")
	}
}

func TestNormalizeMultiDayAllDay(t *testing.T) {
	got := Normalize(RawEvent{
		Title:  "Spring break",
		Source: model.ProviderGoogle,
		Provider: &ProviderFields{
			Start: EventDateTime{Date: "2026-04-13"},
			End:   EventDateTime{Date: "2026-04-18"},
		},
	})

	if want := time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC); !got.End.Equal(want) {
		t.Errorf("End = %v, want last covered day %v", got.End, want)
	}
	if !got.AllDay {
		t.Error("AllDay = false, want true")
	}
}

func TestNormalizeManualEvent(t *testing.T) {
	tests := []struct {
		name      string
		manual    ManualFields
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "date and time",
			manual:    ManualFields{Date: "2026-05-01", Time: "18:30"},
			wantStart: time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC),
		},
		{
			name:      "date only defaults to midnight",
			manual:    ManualFields{Date: "2026-05-01"},
			wantStart: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 5, 1, 1, 0, 0, 0, time.UTC),
		},
		{
			name:      "malformed time falls back to midnight",
			manual:    ManualFields{Date: "2026-05-01", Time: "six pm"},
			wantStart: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 5, 1, 1, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.manual
			got := Normalize(RawEvent{
				Title:  "Family dinner",
				Source: model.ProviderDockly,
				Manual: &m,
			})
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", got.End, tt.wantEnd)
			}
			if got.AllDay {
				t.Error("AllDay = true, want false for a manual event")
			}
		})
	}
}

func TestNormalizeDegradedInputs(t *testing.T) {
	// Normalization is total: malformed or missing fields degrade to
	// documented defaults instead of failing the whole batch.
	tests := []struct {
		name string
		raw  RawEvent
	}{
		{name: "empty record", raw: RawEvent{Source: model.ProviderGoogle}},
		{
			name: "garbage timestamps",
			raw: RawEvent{
				Source: model.ProviderGoogle,
				Provider: &ProviderFields{
					Start: EventDateTime{DateTime: "not-a-time"},
					End:   EventDateTime{Date: "also wrong"},
				},
			},
		},
		{
			name: "manual with bad date",
			raw: RawEvent{
				Source: model.ProviderDockly,
				Manual: &ManualFields{Date: "01/05/2026"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got.Title != model.UntitledEvent {
				t.Errorf("Title = %q, want %q", got.Title, model.UntitledEvent)
			}
			if !got.Start.IsZero() {
				t.Errorf("Start = %v, want zero", got.Start)
			}
			if !got.End.IsZero() {
				t.Errorf("End = %v, want zero", got.End)
			}
		})
	}
}

func TestNormalizeOwnerFallsBackToAccount(t *testing.T) {
	got := Normalize(RawEvent{
		Title:  "Swim practice",
		Source: model.ProviderICS,
		Provider: &ProviderFields{
			Start: EventDateTime{DateTime: "2026-06-01T16:00:00Z"},
			End:   EventDateTime{DateTime: "2026-06-01T17:00:00Z"},
		},
		AccountEmail: "shared@example.com",
	})
	if got.OwnerEmail != "shared@example.com" {
		t.Errorf("OwnerEmail = %q, want account email fallback", got.OwnerEmail)
	}
	if got.SourceEmail != "shared@example.com" {
		t.Errorf("SourceEmail = %q, want the fetching account", got.SourceEmail)
	}
}

func TestNormalizeInstantWithoutZone(t *testing.T) {
	got := Normalize(RawEvent{
		Title:  "Piano",
		Source: model.ProviderICS,
		Provider: &ProviderFields{
			Start: EventDateTime{DateTime: "2026-06-02T15:00:00"},
			End:   EventDateTime{DateTime: "2026-06-02T15:45:00"},
		},
	})
	if want := time.Date(2026, 6, 2, 15, 0, 0, 0, time.UTC); !got.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got.Start, want)
	}
}

func TestNormalizeMissingEndDefaultsToOneHour(t *testing.T) {
	got := Normalize(RawEvent{
		Title:  "Pickup",
		Source: model.ProviderGoogle,
		Provider: &ProviderFields{
			Start: EventDateTime{DateTime: "2026-06-03T08:00:00Z"},
		},
	})
	if want := got.Start.Add(time.Hour); !got.End.Equal(want) {
		t.Errorf("End = %v, want start+1h %v", got.End, want)
	}
}

func TestTimeRangeLabelFallback(t *testing.T) {
	e := Normalize(RawEvent{Source: model.ProviderGoogle})
	if got, want := e.TimeRangeLabel(), "12:00 AM - 11:59 PM"; got != want {
		t.Errorf("TimeRangeLabel() = %q, want %q", got, want)
	}
}

func TestNormalizeAll(t *testing.T) {
	raw := []RawEvent{
		{Title: "A", Source: model.ProviderGoogle},
		{Title: "B", Source: model.ProviderICS},
	}
	got := NormalizeAll(raw)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
}
