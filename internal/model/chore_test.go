package model

import (
	"testing"
	"time"
)

func TestChoreIsOverdue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name  string
		chore Chore
		want  bool
	}{
		{
			name:  "past due pending",
			chore: Chore{Status: ChoreStatusPending, DueDate: &past},
			want:  true,
		},
		{
			name:  "future due pending",
			chore: Chore{Status: ChoreStatusPending, DueDate: &future},
			want:  false,
		},
		{
			name:  "past due but completed",
			chore: Chore{Status: ChoreStatusCompleted, DueDate: &past},
			want:  false,
		},
		{
			name:  "no due date",
			chore: Chore{Status: ChoreStatusPending},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chore.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
