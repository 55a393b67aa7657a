package model

import "time"

// Meal type values.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
)

// Meal is one planned meal slot on the family meal calendar. A day holds at
// most one entry per meal type.
type Meal struct {
	ID            string    `json:"id" db:"id"`
	Date          string    `json:"date" db:"date"` // YYYY-MM-DD
	MealType      string    `json:"meal_type" db:"meal_type"`
	Name          string    `json:"name" db:"name"`
	Notes         string    `json:"notes" db:"notes"`
	FamilyGroupID string    `json:"family_group_id" db:"family_group_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
