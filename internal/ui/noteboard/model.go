package noteboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/theme"
)

// DeleteNoteMsg asks the app to delete a note.
type DeleteNoteMsg struct {
	ID string
}

// Model is the shared family notes list with a preview panel.
type Model struct {
	keys   *keys.KeyMap
	notes  []model.Note
	cursor int

	width  int
	height int
}

// New creates an empty note board.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetNotes replaces the board contents after a session refresh.
func (m *Model) SetNotes(notes []model.Note) {
	m.notes = notes
	if m.cursor >= len(notes) {
		m.cursor = 0
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the note board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.DeleteItem):
		if len(m.notes) == 0 {
			return m, nil
		}
		id := m.notes[m.cursor].ID
		return m, func() tea.Msg { return DeleteNoteMsg{ID: id} }
	}

	return m, nil
}

// View renders the note list beside a preview of the selected note.
func (m Model) View() string {
	listLines := []string{theme.HeaderStyle.Render("Notes")}

	if len(m.notes) == 0 {
		listLines = append(listLines, theme.HelpStyle.Render("  no notes yet"))
	}

	for i, n := range m.notes {
		line := n.Title
		if len(n.Tags) > 0 {
			line += theme.HelpStyle.Render(" #" + strings.Join(n.Tags, " #"))
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		listLines = append(listLines, line)
	}

	listPanel := lipgloss.NewStyle().
		Width(m.width / 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, listLines...))

	preview := ""
	if len(m.notes) > 0 {
		n := m.notes[m.cursor]
		preview = theme.DetailPanelStyle.
			Width(m.width - m.width/3 - 6).
			Render(lipgloss.JoinVertical(
				lipgloss.Left,
				lipgloss.NewStyle().Bold(true).Render(n.Title),
				theme.HelpStyle.Render(n.UpdatedAt.Format("Jan 2, 2006")),
				"",
				n.Body,
			))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, listPanel, preview)
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
