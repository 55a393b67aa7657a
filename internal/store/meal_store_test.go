package store_test

import (
	"context"
	"testing"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/tests/testutil"
)

func TestUpsertMealReplacesSlot(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	meal := model.Meal{
		Date:          "2026-09-07",
		MealType:      model.MealTypeDinner,
		Name:          "Tacos",
		FamilyGroupID: groupID,
	}
	if err := s.UpsertMeal(ctx, meal); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	meal.Name = "Lasagna"
	if err := s.UpsertMeal(ctx, meal); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	meals, err := s.GetMeals(ctx, groupID, "2026-09-07", "2026-09-07")
	if err != nil {
		t.Fatalf("getting meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("got %d meals, want the slot replaced in place", len(meals))
	}
	if meals[0].Name != "Lasagna" {
		t.Errorf("Name = %q, want Lasagna", meals[0].Name)
	}
}

func TestGetMealsDateRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	meals := []model.Meal{
		{Date: "2026-09-06", MealType: model.MealTypeDinner, Name: "Soup", FamilyGroupID: groupID},
		{Date: "2026-09-07", MealType: model.MealTypeBreakfast, Name: "Pancakes", FamilyGroupID: groupID},
		{Date: "2026-09-07", MealType: model.MealTypeDinner, Name: "Tacos", FamilyGroupID: groupID},
		{Date: "2026-09-14", MealType: model.MealTypeDinner, Name: "Pizza", FamilyGroupID: groupID},
	}
	for _, m := range meals {
		if err := s.UpsertMeal(ctx, m); err != nil {
			t.Fatalf("upserting meal on %s: %v", m.Date, err)
		}
	}

	got, err := s.GetMeals(ctx, groupID, "2026-09-07", "2026-09-13")
	if err != nil {
		t.Fatalf("getting meals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d meals, want 2 inside the week", len(got))
	}
	for _, m := range got {
		if m.Date != "2026-09-07" {
			t.Errorf("unexpected meal on %s in range", m.Date)
		}
	}
}

func TestUpsertMealRejectsEmptyName(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpsertMeal(context.Background(), model.Meal{
		Date:     "2026-09-07",
		MealType: model.MealTypeLunch,
		Name:     " ",
	})
	if err == nil {
		t.Fatal("expected error for empty meal name")
	}
}
