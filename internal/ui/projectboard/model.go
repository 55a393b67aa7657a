package projectboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/internal/theme"
)

// ProjectsLoadedMsg is sent when projects have been loaded from the store.
type ProjectsLoadedMsg struct {
	Projects []model.Project
}

// ToggleTaskMsg asks the app to flip a task's completion.
type ToggleTaskMsg struct {
	ProjectID string
	TaskID    string
	Completed bool
}

// Model is the project board: a list of shared projects, with a detail
// panel showing the selected project's task checklist.
type Model struct {
	list    list.Model
	store   store.Store
	keys    *keys.KeyMap
	groupID string

	detail     *model.Project
	taskCursor int

	width  int
	height int
}

// New creates a new project board model.
func New(s store.Store, k *keys.KeyMap, groupID string, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Projects"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
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
	m.detail = nil
	return m.LoadProjects()
}

// Init returns a command that loads the initial set of projects.
func (m Model) Init() tea.Cmd {
	return m.LoadProjects()
}

// Update handles messages for the project board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProjectsLoadedMsg:
		items := make([]list.Item, len(msg.Projects))
		for i, p := range msg.Projects {
			items[i] = ProjectItem{Project: p}
		}
		cmd := m.list.SetItems(items)

		// Keep the open detail panel in sync with the reload.
		if m.detail != nil {
			for i := range msg.Projects {
				if msg.Projects[i].ID == m.detail.ID {
					p := msg.Projects[i]
					m.detail = &p
					break
				}
			}
			m.clampTaskCursor()
		}
		return m, cmd

	case tea.KeyMsg:
		if m.detail != nil {
			return m.handleDetailKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		item, ok := m.list.SelectedItem().(ProjectItem)
		if !ok {
			return m, nil
		}
		p := item.Project
		m.detail = &p
		m.taskCursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail = nil
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.taskCursor < len(m.detail.Tasks)-1 {
			m.taskCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if len(m.detail.Tasks) == 0 {
			return m, nil
		}
		t := m.detail.Tasks[m.taskCursor]
		projectID := m.detail.ID
		return m, func() tea.Msg {
			return ToggleTaskMsg{
				ProjectID: projectID,
				TaskID:    t.ID,
				Completed: !t.Completed,
			}
		}
	}

	return m, nil
}

// View renders the project board.
func (m Model) View() string {
	if m.detail != nil {
		return m.renderDetail()
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No projects yet.\n\nPress n to create one.")
	}

	return m.list.View()
}

func (m Model) renderDetail() string {
	p := m.detail

	percent := p.Progress()
	header := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Bold(true).Render(p.Title),
		theme.ProgressStyle(percent).Render(fmt.Sprintf("%d%% complete", percent)),
	)

	lines := []string{header, ""}
	if len(p.Tasks) == 0 {
		lines = append(lines, theme.HelpStyle.Render("no tasks yet"))
	}
	for i, t := range p.Tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := check + " " + t.Title
		if t.Assignee != "" {
			line += theme.HelpStyle.Render(" → " + t.Assignee)
		}
		if t.Completed {
			line = theme.CompletedStyle.Render(line)
		}
		if i == m.taskCursor {
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

func (m *Model) clampTaskCursor() {
	if m.detail == nil || len(m.detail.Tasks) == 0 {
		m.taskCursor = 0
		return
	}
	if m.taskCursor >= len(m.detail.Tasks) {
		m.taskCursor = len(m.detail.Tasks) - 1
	}
}

// LoadProjects returns a tea.Cmd that queries the store for the active
// group's projects.
func (m Model) LoadProjects() tea.Cmd {
	s := m.store
	groupID := m.groupID
	return func() tea.Msg {
		projects, err := s.GetProjects(context.Background(), groupID)
		if err != nil {
			return ProjectsLoadedMsg{Projects: nil}
		}
		return ProjectsLoadedMsg{Projects: projects}
	}
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
