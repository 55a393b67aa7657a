package model

import "time"

// FamilyGroup is a named collection of family members. Selecting a group
// re-scopes every planner query to that group.
type FamilyGroup struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// MemberCount is derived from the members table on read.
	MemberCount int `json:"member_count" db:"-"`
}

// Member roles within a family group.
const (
	RoleParent = "parent"
	RoleChild  = "child"
	RolePet    = "pet"
)

// FamilyMember is a person (or pet) belonging to a family group.
type FamilyMember struct {
	ID            string    `json:"id" db:"id"`
	FamilyGroupID string    `json:"family_group_id" db:"family_group_id"`
	Name          string    `json:"name" db:"name"`
	Role          string    `json:"role" db:"role"`
	Email         string    `json:"email,omitempty" db:"email"`
	Color         string    `json:"color" db:"color"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
