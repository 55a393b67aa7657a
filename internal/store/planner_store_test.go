package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/tests/testutil"
)

func TestSetGoalCompleted(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	err = s.CreateGoal(ctx, model.Goal{
		ID:            "g1",
		Text:          "Swim three times",
		FamilyGroupID: groupID,
	})
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}

	if err := s.SetGoalCompleted(ctx, "g1", true); err != nil {
		t.Fatalf("completing goal: %v", err)
	}

	goals, err := s.GetGoals(ctx, groupID)
	if err != nil {
		t.Fatalf("getting goals: %v", err)
	}
	if len(goals) != 1 || !goals[0].Completed {
		t.Fatalf("got %v, want one completed goal", goals)
	}

	if err := s.SetGoalCompleted(ctx, "missing", true); err == nil {
		t.Fatal("expected error for missing goal")
	}
}

func TestTodoPriorityDefaultsAndOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	todos := []model.Todo{
		{ID: "low", Text: "Sort photos", Priority: model.PriorityLow, FamilyGroupID: groupID},
		{ID: "default", Text: "Call plumber", Priority: 0, FamilyGroupID: groupID},
		{ID: "high", Text: "Pay bills", Priority: model.PriorityHigh, FamilyGroupID: groupID},
		{ID: "bogus", Text: "Fix gate", Priority: 9, FamilyGroupID: groupID},
	}
	for _, todo := range todos {
		if err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("creating todo %s: %v", todo.ID, err)
		}
	}

	got, err := s.GetTodos(ctx, store.TodoFilter{FamilyGroupID: &groupID})
	if err != nil {
		t.Fatalf("getting todos: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d todos, want 4", len(got))
	}

	// Out-of-range priorities clamp to medium; high sorts first, low last.
	if got[0].ID != "high" {
		t.Errorf("first todo = %q, want high", got[0].ID)
	}
	if got[len(got)-1].ID != "low" {
		t.Errorf("last todo = %q, want low", got[len(got)-1].ID)
	}
	for _, todo := range got {
		if (todo.ID == "default" || todo.ID == "bogus") && todo.Priority != model.PriorityMedium {
			t.Errorf("todo %s priority = %d, want medium", todo.ID, todo.Priority)
		}
	}
}

func TestGetTodosDateWindows(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	today := time.Now()
	inThreeDays := today.AddDate(0, 0, 3)
	nextMonth := today.AddDate(0, 1, 0)

	todos := []model.Todo{
		{ID: "today", Text: "Groceries", Date: &today, FamilyGroupID: groupID},
		{ID: "soon", Text: "Library books", Date: &inThreeDays, FamilyGroupID: groupID},
		{ID: "later", Text: "Renew passport", Date: &nextMonth, FamilyGroupID: groupID},
		{ID: "undated", Text: "Someday", FamilyGroupID: groupID},
	}
	for _, todo := range todos {
		if err := s.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("creating todo %s: %v", todo.ID, err)
		}
	}

	tests := []struct {
		window string
		want   map[string]bool
	}{
		{window: "today", want: map[string]bool{"today": true}},
		{window: "week", want: map[string]bool{"today": true, "soon": true}},
	}

	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			window := tt.window
			got, err := s.GetTodos(ctx, store.TodoFilter{
				FamilyGroupID: &groupID,
				Date:          &window,
			})
			if err != nil {
				t.Fatalf("getting todos: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d todos, want %d", len(got), len(tt.want))
			}
			for _, todo := range got {
				if !tt.want[todo.ID] {
					t.Errorf("unexpected todo %q in %s window", todo.ID, tt.window)
				}
			}
		})
	}
}

func TestDeleteGoalDetachesTodos(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	if err := s.CreateGoal(ctx, model.Goal{ID: "g1", Text: "Read more", FamilyGroupID: groupID}); err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	goalID := "g1"
	if err := s.CreateTodo(ctx, model.Todo{ID: "t1", Text: "Pick a book", GoalID: &goalID, FamilyGroupID: groupID}); err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	if err := s.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("deleting goal: %v", err)
	}

	got, err := s.GetTodos(ctx, store.TodoFilter{FamilyGroupID: &groupID})
	if err != nil {
		t.Fatalf("getting todos: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d todos, want the todo to survive goal deletion", len(got))
	}
	if got[0].GoalID != nil {
		t.Errorf("GoalID = %v, want nil after goal deletion", *got[0].GoalID)
	}
}
