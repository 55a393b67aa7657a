package accountpicker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/theme"
)

// FilterAppliedMsg carries the confirmed account selection. A nil slice
// means every account is selected.
type FilterAppliedMsg struct {
	AccountIDs []string
}

// CloseMsg is dispatched when the picker is dismissed without applying.
type CloseMsg struct{}

// Model is the account visibility picker: a checklist of connected
// accounts that drives which calendars are shown.
type Model struct {
	keys     *keys.KeyMap
	accounts []model.ConnectedAccount
	colors   map[string]model.PersonColor

	checked map[string]bool
	cursor  int

	width  int
	height int
}

// New creates an empty account picker.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:    k,
		checked: make(map[string]bool),
		width:   width,
		height:  height,
	}
}

// SetAccounts loads the picker with the group's accounts and the current
// selection. selected nil means all accounts are checked.
func (m *Model) SetAccounts(
	accounts []model.ConnectedAccount,
	colors map[string]model.PersonColor,
	selected []string,
) {
	m.accounts = accounts
	m.colors = colors
	m.cursor = 0

	m.checked = make(map[string]bool, len(accounts))
	if selected == nil {
		for _, a := range accounts {
			m.checked[a.FilterID()] = true
		}
		return
	}
	for _, id := range selected {
		m.checked[id] = true
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.accounts)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.accounts) == 0 {
			return m, nil
		}
		id := m.accounts[m.cursor].FilterID()
		m.checked[id] = !m.checked[id]
		return m, nil

	case key.Matches(keyMsg, m.keys.Accounts):
		// Check everything, back to the everyone-visible default.
		for _, a := range m.accounts {
			m.checked[a.FilterID()] = true
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		return m, m.apply()

	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }
	}

	return m, nil
}

// apply emits the selection. Checking every account (or none) collapses
// to the all-selected state so an empty filter can never hide the whole
// calendar.
func (m Model) apply() tea.Cmd {
	var ids []string
	for _, a := range m.accounts {
		if m.checked[a.FilterID()] {
			ids = append(ids, a.FilterID())
		}
	}
	if len(ids) == len(m.accounts) || len(ids) == 0 {
		ids = nil
	}
	return func() tea.Msg { return FilterAppliedMsg{AccountIDs: ids} }
}

// View renders the picker overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	lines := []string{titleStyle.Render("Visible Calendars")}

	if len(m.accounts) == 0 {
		lines = append(lines, theme.HelpStyle.Render("no connected accounts"))
	}

	for i, a := range m.accounts {
		check := "[ ]"
		if m.checked[a.FilterID()] {
			check = "[x]"
		}

		dot := theme.PersonStyle(m.accountColor(a)).Render("●")
		label := a.DisplayName
		if label == "" {
			label = a.Email
		}
		line := fmt.Sprintf("%s %s %s %s",
			check, dot, label,
			theme.HelpStyle.Render("("+string(a.Provider)+")"),
		)

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "",
		theme.HelpStyle.Render("space toggle · a all · enter apply · esc close"))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// accountColor resolves the display color for an account row.
func (m Model) accountColor(a model.ConnectedAccount) string {
	if pc, ok := m.colors[a.UserName]; ok {
		return pc.Color
	}
	return a.Color
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
