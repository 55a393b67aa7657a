package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dockly/family-planner/internal/model"
)

// UpsertMeal inserts or replaces the meal planned for a date/type slot.
// A day holds at most one entry per meal type per group.
func (s *SQLiteStore) UpsertMeal(ctx context.Context, meal model.Meal) error {
	if strings.TrimSpace(meal.Name) == "" {
		return fmt.Errorf("meal name must not be empty")
	}
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meals (id, date, meal_type, name, notes, family_group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date, meal_type, family_group_id) DO UPDATE SET
			name = excluded.name,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		meal.ID, meal.Date, meal.MealType, meal.Name, meal.Notes,
		meal.FamilyGroupID, meal.CreatedAt, meal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting meal: %w", err)
	}
	return nil
}

// DeleteMeal removes a meal by ID.
func (s *SQLiteStore) DeleteMeal(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM meals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting meal %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("meal %s not found", id)
	}
	return nil
}

// GetMeals retrieves the meals planned for a family group within the
// inclusive date range [from, to] (YYYY-MM-DD strings).
func (s *SQLiteStore) GetMeals(
	ctx context.Context,
	groupID string,
	from, to string,
) ([]model.Meal, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM meals
		WHERE family_group_id = ? AND date >= ? AND date <= ?
		ORDER BY date, meal_type`,
		groupID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("querying meals: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var m model.Meal
		err := rows.Scan(
			&m.ID, &m.Date, &m.MealType, &m.Name, &m.Notes,
			&m.FamilyGroupID, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning meal row: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}
