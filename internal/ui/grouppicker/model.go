package grouppicker

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/internal/theme"
)

// GroupsLoadedMsg is sent when family groups have been loaded.
type GroupsLoadedMsg struct {
	Groups []model.FamilyGroup
}

// GroupChosenMsg carries the family group the user switched to.
type GroupChosenMsg struct {
	GroupID string
}

// CloseMsg is dispatched when the picker is dismissed.
type CloseMsg struct{}

// Model is the family group switcher overlay.
type Model struct {
	store   store.Store
	keys    *keys.KeyMap
	groups  []model.FamilyGroup
	current string
	cursor  int

	width  int
	height int
}

// New creates a group picker.
func New(s store.Store, k *keys.KeyMap, current string, width, height int) Model {
	return Model{
		store:   s,
		keys:    k,
		current: current,
		width:   width,
		height:  height,
	}
}

// SetCurrent records the active group so it can be marked in the list.
func (m *Model) SetCurrent(groupID string) {
	m.current = groupID
}

// Init loads the available groups.
func (m Model) Init() tea.Cmd {
	return m.LoadGroups()
}

// LoadGroups returns a tea.Cmd that queries the store for all groups.
func (m Model) LoadGroups() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		groups, err := s.GetFamilyGroups(context.Background())
		if err != nil {
			return GroupsLoadedMsg{Groups: nil}
		}
		return GroupsLoadedMsg{Groups: groups}
	}
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GroupsLoadedMsg:
		m.groups = msg.Groups
		m.cursor = 0
		for i, g := range m.groups {
			if g.ID == m.current {
				m.cursor = i
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.groups)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.groups) == 0 {
				return m, nil
			}
			chosen := m.groups[m.cursor].ID
			return m, func() tea.Msg { return GroupChosenMsg{GroupID: chosen} }
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	return m, nil
}

// View renders the picker overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	lines := []string{titleStyle.Render("Switch Family")}

	if len(m.groups) == 0 {
		lines = append(lines, theme.HelpStyle.Render("no family groups"))
	}

	for i, g := range m.groups {
		line := g.Name
		if g.MemberCount > 0 {
			line += theme.HelpStyle.Render(fmt.Sprintf(" (%d members)", g.MemberCount))
		}
		if g.ID == m.current {
			line += theme.HelpStyle.Render(" · current")
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
