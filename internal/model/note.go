package model

import "time"

// Note is a free-form family note.
type Note struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body" db:"body"`
	FamilyGroupID string    `json:"family_group_id" db:"family_group_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Tags is populated by queries that join with note_tags.
	Tags []string `json:"tags,omitempty" db:"-"`
}
