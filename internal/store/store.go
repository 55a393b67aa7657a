package store

import (
	"context"
	"time"

	"github.com/dockly/family-planner/internal/model"
)

// EventFilter controls filtering for native calendar event queries.
type EventFilter struct {
	FamilyGroupID *string
	Provider      *model.Provider
	OwnerEmail    *string
	From          *time.Time
	To            *time.Time
}

// TodoFilter controls filtering for planner todo queries.
type TodoFilter struct {
	FamilyGroupID *string
	Completed     *bool
	Priority      *int
	GoalID        *string
	Date          *string // "today", "week", or nil (all)
}

// ChoreFilter controls filtering for chore queries.
type ChoreFilter struct {
	FamilyGroupID *string
	Status        *string
	AssigneeID    *string
}

// Store defines the persistence interface for family groups, accounts,
// native calendar events, and the organizer entities.
type Store interface {
	// === Family groups and members ===

	CreateFamilyGroup(ctx context.Context, group model.FamilyGroup) (string, error)
	GetFamilyGroups(ctx context.Context) ([]model.FamilyGroup, error)
	GetFamilyGroupByID(ctx context.Context, id string) (*model.FamilyGroup, error)
	DeleteFamilyGroup(ctx context.Context, id string) error

	AddFamilyMember(ctx context.Context, member model.FamilyMember) error
	GetFamilyMembers(ctx context.Context, groupID string) ([]model.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, id string) error

	// === Connected accounts ===

	UpsertAccounts(ctx context.Context, accounts []model.ConnectedAccount) error
	GetAccounts(ctx context.Context, groupID string) ([]model.ConnectedAccount, error)
	DeleteAccount(ctx context.Context, email string, provider model.Provider) error

	// === Native calendar events ===

	CreateEvent(ctx context.Context, event model.CalendarEvent) error
	UpdateEvent(ctx context.Context, event model.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
	GetEventByID(ctx context.Context, id string) (*model.CalendarEvent, error)
	GetEvents(ctx context.Context, filter EventFilter) ([]model.CalendarEvent, error)

	// ReplaceProviderEvents atomically replaces the cached events for one
	// provider account with a freshly fetched batch, keyed on the account
	// the events came through.
	ReplaceProviderEvents(
		ctx context.Context,
		provider model.Provider,
		accountEmail string,
		events []model.CalendarEvent,
	) error

	// === Projects and tasks ===

	CreateProject(ctx context.Context, project model.Project) error
	UpdateProject(ctx context.Context, project model.Project) error
	DeleteProject(ctx context.Context, id string) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetProjects(ctx context.Context, groupID string) ([]model.Project, error)
	SetProjectGroups(ctx context.Context, projectID string, groupIDs []string) error

	CreateTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	SetTaskCompleted(ctx context.Context, id string, completed bool) error
	GetTasksForProject(ctx context.Context, projectID string) ([]model.Task, error)

	// === Weekly goals and todos ===

	CreateGoal(ctx context.Context, goal model.Goal) error
	UpdateGoal(ctx context.Context, goal model.Goal) error
	DeleteGoal(ctx context.Context, id string) error
	GetGoals(ctx context.Context, groupID string) ([]model.Goal, error)
	SetGoalCompleted(ctx context.Context, id string, completed bool) error

	CreateTodo(ctx context.Context, todo model.Todo) error
	UpdateTodo(ctx context.Context, todo model.Todo) error
	DeleteTodo(ctx context.Context, id string) error
	GetTodos(ctx context.Context, filter TodoFilter) ([]model.Todo, error)
	SetTodoCompleted(ctx context.Context, id string, completed bool) error

	// === Notes ===

	CreateNote(ctx context.Context, note model.Note) error
	UpdateNote(ctx context.Context, note model.Note) error
	DeleteNote(ctx context.Context, id string) error
	GetNotes(ctx context.Context, groupID string) ([]model.Note, error)

	// === Chores ===

	CreateChore(ctx context.Context, chore model.Chore) error
	UpdateChore(ctx context.Context, chore model.Chore) error
	DeleteChore(ctx context.Context, id string) error
	GetChores(ctx context.Context, filter ChoreFilter) ([]model.Chore, error)
	CompleteChore(ctx context.Context, id string) error

	// === Meals ===

	UpsertMeal(ctx context.Context, meal model.Meal) error
	DeleteMeal(ctx context.Context, id string) error
	GetMeals(ctx context.Context, groupID string, from, to string) ([]model.Meal, error)
}
