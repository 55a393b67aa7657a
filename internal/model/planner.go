package model

import "time"

// Priority levels for weekly todos (lower number = higher priority).
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Goal is a weekly goal shown on the planner board.
type Goal struct {
	ID            string     `json:"id" db:"id"`
	Text          string     `json:"goal" db:"text"`
	Completed     bool       `json:"completed" db:"completed"`
	Date          *time.Time `json:"date,omitempty" db:"date"`
	TimeOfDay     string     `json:"time,omitempty" db:"time_of_day"`
	FamilyGroupID string     `json:"family_group_id" db:"family_group_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Todo is a lightweight planner todo, optionally linked to a weekly goal.
type Todo struct {
	ID            string     `json:"id" db:"id"`
	Text          string     `json:"text" db:"text"`
	Completed     bool       `json:"completed" db:"completed"`
	Priority      int        `json:"priority" db:"priority"`
	Date          *time.Time `json:"date,omitempty" db:"date"`
	TimeOfDay     string     `json:"time,omitempty" db:"time_of_day"`
	GoalID        *string    `json:"goal_id,omitempty" db:"goal_id"`
	FamilyGroupID string     `json:"family_group_id" db:"family_group_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
