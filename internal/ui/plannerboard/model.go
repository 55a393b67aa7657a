package plannerboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/theme"
	"github.com/dockly/family-planner/internal/ui"
)

// ToggleGoalMsg asks the app to flip a weekly goal's completion.
type ToggleGoalMsg struct {
	ID        string
	Completed bool
}

// ToggleTodoMsg asks the app to flip a todo's completion.
type ToggleTodoMsg struct {
	ID        string
	Completed bool
}

// column indices on the planner board.
const (
	colGoals = iota
	colTodos
	colEvents
	columnCount
)

// Model is the weekly planner board: goals, todos, and the reconciled
// calendar side by side.
type Model struct {
	keys   *keys.KeyMap
	layout ui.Layout

	goals  []model.Goal
	todos  []model.Todo
	events []model.CalendarEvent
	colors map[string]model.PersonColor

	// emailColors is derived from colors for owner lookups.
	emailColors map[string]string

	column  int
	cursors [columnCount]int
}

// New creates an empty planner board.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		layout: ui.NewLayout(width, height),
	}
}

// SetData replaces the board contents after a session refresh. Events
// arrive already deduplicated and filtered.
func (m *Model) SetData(
	goals []model.Goal,
	todos []model.Todo,
	events []model.CalendarEvent,
	colors map[string]model.PersonColor,
) {
	m.goals = goals
	m.todos = todos

	m.events = make([]model.CalendarEvent, len(events))
	copy(m.events, events)
	sort.SliceStable(m.events, func(i, j int) bool {
		return m.events[i].Start.Before(m.events[j].Start)
	})

	m.colors = colors
	m.emailColors = make(map[string]string, len(colors))
	for _, pc := range colors {
		m.emailColors[pc.Email] = pc.Color
	}

	m.clampCursors()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the planner board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case keyMsg.String() == "l" || keyMsg.String() == "right" || keyMsg.String() == "tab":
		m.column = (m.column + 1) % columnCount
		return m, nil

	case keyMsg.String() == "h" || keyMsg.String() == "left":
		m.column = (m.column + columnCount - 1) % columnCount
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		return m, m.toggleCurrent()
	}

	return m, nil
}

// toggleCurrent flips the focused goal or todo in place and emits the
// message that persists the flip. Events are read-only on the board.
func (m *Model) toggleCurrent() tea.Cmd {
	switch m.column {
	case colGoals:
		if len(m.goals) == 0 {
			return nil
		}
		g := &m.goals[m.cursors[colGoals]]
		g.Completed = !g.Completed
		id, completed := g.ID, g.Completed
		return func() tea.Msg {
			return ToggleGoalMsg{ID: id, Completed: completed}
		}
	case colTodos:
		if len(m.todos) == 0 {
			return nil
		}
		t := &m.todos[m.cursors[colTodos]]
		t.Completed = !t.Completed
		id, completed := t.ID, t.Completed
		return func() tea.Msg {
			return ToggleTodoMsg{ID: id, Completed: completed}
		}
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	size := m.columnSize(m.column)
	if size == 0 {
		return
	}
	c := m.cursors[m.column] + delta
	if c < 0 {
		c = 0
	}
	if c >= size {
		c = size - 1
	}
	m.cursors[m.column] = c
}

func (m *Model) clampCursors() {
	for col := 0; col < columnCount; col++ {
		size := m.columnSize(col)
		if size == 0 {
			m.cursors[col] = 0
		} else if m.cursors[col] >= size {
			m.cursors[col] = size - 1
		}
	}
}

func (m Model) columnSize(col int) int {
	switch col {
	case colGoals:
		return len(m.goals)
	case colTodos:
		return len(m.todos)
	default:
		return len(m.events)
	}
}

// View renders the three-column planner board.
func (m Model) View() string {
	return m.layout.RenderColumns(
		m.renderGoals(),
		m.renderTodos(),
		m.renderEvents(),
	)
}

func (m Model) renderGoals() string {
	lines := []string{m.columnTitle("Weekly Goals", m.column == colGoals)}
	if len(m.goals) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  no goals this week"))
	}
	for i, g := range m.goals {
		line := checkbox(g.Completed) + " " + g.Text
		if g.TimeOfDay != "" {
			line += theme.HelpStyle.Render(" @" + g.TimeOfDay)
		}
		lines = append(lines, m.renderRow(line, g.Completed, m.column == colGoals, i, colGoals))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTodos() string {
	lines := []string{m.columnTitle("Todos", m.column == colTodos)}
	if len(m.todos) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  all caught up"))
	}
	for i, t := range m.todos {
		prio := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))
		line := checkbox(t.Completed) + " " + prio + " " + t.Text
		lines = append(lines, m.renderRow(line, t.Completed, m.column == colTodos, i, colTodos))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderEvents() string {
	lines := []string{m.columnTitle("Calendar", m.column == colEvents)}
	if len(m.events) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  nothing scheduled"))
	}

	lastDay := ""
	for i, e := range m.events {
		day := m.eventDayLabel(e)
		if day != lastDay {
			lines = append(lines, theme.HelpStyle.Render(day))
			lastDay = day
		}

		owner := theme.PersonStyle(m.ownerColor(e)).Render("●")
		var when string
		if e.AllDay {
			when = theme.AllDayBadgeStyle.Render("all day")
		} else {
			when = e.TimeRangeLabel()
		}

		line := fmt.Sprintf("%s %s  %s", owner, when, e.Title)
		lines = append(lines, m.renderRow(line, false, m.column == colEvents, i, colEvents))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) eventDayLabel(e model.CalendarEvent) string {
	if !e.HasStart() {
		return "Undated"
	}
	return e.Start.Format("Mon Jan 2")
}

// ownerColor resolves the event's display color: the event's own color
// first, then the owning account's.
func (m Model) ownerColor(e model.CalendarEvent) string {
	if e.Color != "" {
		return e.Color
	}
	return m.emailColors[e.OwnerEmail]
}

func (m Model) renderRow(line string, completed, focused bool, index, col int) string {
	if completed {
		line = theme.CompletedStyle.Render(line)
	}
	if focused && index == m.cursors[col] {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (m Model) columnTitle(title string, focused bool) string {
	if focused {
		return theme.HeaderStyle.Render(title)
	}
	return lipgloss.NewStyle().Bold(true).Render(" " + title)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func priorityLabel(priority int) string {
	switch priority {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!!"
	default:
		return "!"
	}
}

// WeekOf returns the Monday that starts the week containing t, for the
// board header.
func WeekOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.layout = ui.NewLayout(width, height)
}
