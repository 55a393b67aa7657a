package model

import (
	"math"
	"time"
)

// Project visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Project is a family project grouping related tasks. Progress is always
// derived from the task list, never stored independently.
type Project struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Visibility  string     `json:"visibility" db:"visibility"`
	SortOrder   int        `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// FamilyGroups lists the group IDs this project is shared with.
	FamilyGroups []string `json:"family_groups,omitempty" db:"-"`

	// Tasks is populated by queries that load the project's task list.
	Tasks []Task `json:"tasks,omitempty" db:"-"`
}

// Progress returns the completion percentage, rounded to the nearest
// integer: completed/total*100, or 0 when the project has no tasks.
func (p Project) Progress() int {
	if len(p.Tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range p.Tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(p.Tasks)) * 100))
}

// Task is a single actionable item within a project.
type Task struct {
	ID        string     `json:"id" db:"id"`
	ProjectID string     `json:"project_id" db:"project_id"`
	Title     string     `json:"title" db:"title"`
	Assignee  string     `json:"assignee" db:"assignee"`
	Completed bool       `json:"completed" db:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty" db:"due_date"`
	SortOrder int        `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
