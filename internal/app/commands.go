package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
)

// toggleResultMsg reports the outcome of a goal or todo completion write.
type toggleResultMsg struct {
	err error
}

// taskResultMsg reports the outcome of a project task completion write.
type taskResultMsg struct {
	err error
}

// choreResultMsg reports the outcome of a chore completion.
type choreResultMsg struct {
	err error
}

// noteResultMsg reports the outcome of a note deletion.
type noteResultMsg struct {
	err error
}

// eventCreatedResultMsg reports the outcome of saving a manual event.
type eventCreatedResultMsg struct {
	err error
}

// todoCreatedResultMsg reports the outcome of saving a new todo.
type todoCreatedResultMsg struct {
	err error
}

// groupSwitchedMsg reports the outcome of a family group switch.
type groupSwitchedMsg struct {
	groupID string
	err     error
}

const writeTimeout = 5 * time.Second

// toggleGoal persists a goal completion flip. The board already flipped
// its local copy; a failure triggers a reload from the store.
func (m Model) toggleGoal(id string, completed bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.SetGoalCompleted(ctx, id, completed); err != nil {
			return toggleResultMsg{err: fmt.Errorf("toggle goal: %w", err)}
		}
		return toggleResultMsg{}
	}
}

// toggleTodo persists a todo completion flip.
func (m Model) toggleTodo(id string, completed bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.SetTodoCompleted(ctx, id, completed); err != nil {
			return toggleResultMsg{err: fmt.Errorf("toggle todo: %w", err)}
		}
		return toggleResultMsg{}
	}
}

// toggleTask persists a project task completion flip. The project board
// reloads afterwards so derived progress stays consistent.
func (m Model) toggleTask(id string, completed bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.SetTaskCompleted(ctx, id, completed); err != nil {
			return taskResultMsg{err: fmt.Errorf("toggle task: %w", err)}
		}
		return taskResultMsg{}
	}
}

// completeChore marks a chore done and rolls recurring chores forward.
func (m Model) completeChore(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.CompleteChore(ctx, id); err != nil {
			return choreResultMsg{err: fmt.Errorf("complete chore: %w", err)}
		}
		return choreResultMsg{}
	}
}

// deleteNote removes a note from the store.
func (m Model) deleteNote(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.DeleteNote(ctx, id); err != nil {
			return noteResultMsg{err: fmt.Errorf("delete note: %w", err)}
		}
		return noteResultMsg{}
	}
}

// createTodo saves a form-submitted todo into the current family group.
func (m Model) createTodo(todo model.Todo) tea.Cmd {
	s := m.store
	todo.FamilyGroupID = m.session.GroupID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := s.CreateTodo(ctx, todo); err != nil {
			return todoCreatedResultMsg{err: fmt.Errorf("create todo: %w", err)}
		}
		return todoCreatedResultMsg{}
	}
}

// createManualEvent normalizes a form submission and saves it as a
// native event in the current family group.
func (m Model) createManualEvent(raw planner.RawEvent) tea.Cmd {
	s := m.store
	groupID := m.session.GroupID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		event := planner.Normalize(raw)
		event.FamilyGroupID = groupID
		if err := s.CreateEvent(ctx, event); err != nil {
			return eventCreatedResultMsg{err: fmt.Errorf("create event: %w", err)}
		}
		return eventCreatedResultMsg{}
	}
}
