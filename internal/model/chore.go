package model

import "time"

// Chore status values.
const (
	ChoreStatusPending   = "pending"
	ChoreStatusCompleted = "completed"
	ChoreStatusOverdue   = "overdue"
)

// Chore recurrence values.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Chore is a recurring or one-off household chore assigned to a family member.
type Chore struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	AssigneeID    *string    `json:"assignee_id,omitempty" db:"assignee_id"`
	Recurrence    string     `json:"recurrence" db:"recurrence"`
	Status        string     `json:"status" db:"status"`
	DueDate       *time.Time `json:"due_date,omitempty" db:"due_date"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	FamilyGroupID string     `json:"family_group_id" db:"family_group_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// IsOverdue reports whether the chore's due date has passed without completion.
func (c Chore) IsOverdue(now time.Time) bool {
	return c.Status != ChoreStatusCompleted &&
		c.DueDate != nil && c.DueDate.Before(now)
}
