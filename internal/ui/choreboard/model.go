package choreboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/internal/theme"
)

// ChoresLoadedMsg is sent when chores have been loaded from the store.
type ChoresLoadedMsg struct {
	Chores []model.Chore
}

// CompleteChoreMsg asks the app to mark a chore done. Recurring chores
// roll forward to their next due date instead of finishing.
type CompleteChoreMsg struct {
	ID string
}

// Model is the chore list for the active family group.
type Model struct {
	store   store.Store
	keys    *keys.KeyMap
	groupID string
	chores  []model.Chore
	cursor  int

	width  int
	height int
}

// New creates a new chore board model.
func New(s store.Store, k *keys.KeyMap, groupID string, width, height int) Model {
	return Model{
		store:   s,
		keys:    k,
		groupID: groupID,
		width:   width,
		height:  height,
	}
}

// SetGroup switches the board to another family group and reloads.
func (m *Model) SetGroup(groupID string) tea.Cmd {
	m.groupID = groupID
	return m.LoadChores()
}

// Init returns a command that loads the chores.
func (m Model) Init() tea.Cmd {
	return m.LoadChores()
}

// LoadChores returns a tea.Cmd that queries the store.
func (m Model) LoadChores() tea.Cmd {
	s := m.store
	groupID := m.groupID
	return func() tea.Msg {
		chores, err := s.GetChores(context.Background(), store.ChoreFilter{
			FamilyGroupID: &groupID,
		})
		if err != nil {
			return ChoresLoadedMsg{Chores: nil}
		}
		return ChoresLoadedMsg{Chores: chores}
	}
}

// Update handles messages for the chore board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChoresLoadedMsg:
		m.chores = msg.Chores
		if m.cursor >= len(m.chores) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.chores)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.chores) == 0 {
				return m, nil
			}
			id := m.chores[m.cursor].ID
			return m, func() tea.Msg { return CompleteChoreMsg{ID: id} }
		}
	}

	return m, nil
}

// View renders the chore list.
func (m Model) View() string {
	lines := []string{theme.HeaderStyle.Render("Chores")}

	if len(m.chores) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  no chores assigned"))
	}

	now := time.Now()
	for i, c := range m.chores {
		status := c.Status
		if c.IsOverdue(now) {
			status = model.ChoreStatusOverdue
		}

		line := fmt.Sprintf("%s %s %s",
			theme.ChoreStatusStyle(status).Render(status),
			c.Name,
			theme.HelpStyle.Render(m.dueLabel(c)),
		)
		if c.Status == model.ChoreStatusCompleted {
			line = theme.CompletedStyle.Render(line)
		}

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) dueLabel(c model.Chore) string {
	if c.DueDate == nil {
		return ""
	}
	label := "due " + c.DueDate.Format("Mon Jan 2")
	if c.Recurrence != model.RecurrenceNone {
		label += ", " + c.Recurrence
	}
	return "(" + label + ")"
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
