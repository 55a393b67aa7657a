package mealplan

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/internal/theme"
)

// MealsLoadedMsg is sent when the week's meals have been loaded.
type MealsLoadedMsg struct {
	Meals []model.Meal
}

// mealTypes fixes the row order of the grid.
var mealTypes = []string{
	model.MealTypeBreakfast,
	model.MealTypeLunch,
	model.MealTypeDinner,
}

// Model is the weekly meal plan grid: seven day columns, one row per
// meal type.
type Model struct {
	store     store.Store
	keys      *keys.KeyMap
	groupID   string
	weekStart time.Time

	// meals indexed by date then meal type.
	meals map[string]map[string]model.Meal

	width  int
	height int
}

// New creates a meal plan model anchored on the week containing now.
func New(s store.Store, k *keys.KeyMap, groupID string, now time.Time, width, height int) Model {
	return Model{
		store:     s,
		keys:      k,
		groupID:   groupID,
		weekStart: startOfWeek(now),
		meals:     make(map[string]map[string]model.Meal),
		width:     width,
		height:    height,
	}
}

// SetGroup switches the plan to another family group and reloads.
func (m *Model) SetGroup(groupID string) tea.Cmd {
	m.groupID = groupID
	return m.LoadMeals()
}

// Init returns a command that loads the current week.
func (m Model) Init() tea.Cmd {
	return m.LoadMeals()
}

// LoadMeals returns a tea.Cmd that queries the store for the visible week.
func (m Model) LoadMeals() tea.Cmd {
	s := m.store
	groupID := m.groupID
	from := m.weekStart.Format("2006-01-02")
	to := m.weekStart.AddDate(0, 0, 6).Format("2006-01-02")
	return func() tea.Msg {
		meals, err := s.GetMeals(context.Background(), groupID, from, to)
		if err != nil {
			return MealsLoadedMsg{Meals: nil}
		}
		return MealsLoadedMsg{Meals: meals}
	}
}

// Update handles messages for the meal plan.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MealsLoadedMsg:
		m.meals = make(map[string]map[string]model.Meal)
		for _, meal := range msg.Meals {
			if m.meals[meal.Date] == nil {
				m.meals[meal.Date] = make(map[string]model.Meal)
			}
			m.meals[meal.Date][meal.MealType] = meal
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case keyMatchesString(msg, "l", "right"):
			m.weekStart = m.weekStart.AddDate(0, 0, 7)
			return m, m.LoadMeals()
		case keyMatchesString(msg, "h", "left"):
			m.weekStart = m.weekStart.AddDate(0, 0, -7)
			return m, m.LoadMeals()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.LoadMeals()
		}
	}

	return m, nil
}

// View renders the weekly grid.
func (m Model) View() string {
	title := theme.HeaderStyle.Render(
		"Meals · week of " + m.weekStart.Format("Jan 2"),
	)

	colWidth := (m.width - 12) / 7
	if colWidth < 8 {
		colWidth = 8
	}
	cell := lipgloss.NewStyle().Width(colWidth).Padding(0, 1)
	rowLabel := lipgloss.NewStyle().Width(12).Bold(true)

	headerCells := []string{rowLabel.Render("")}
	for d := 0; d < 7; d++ {
		day := m.weekStart.AddDate(0, 0, d)
		headerCells = append(headerCells,
			cell.Bold(true).Render(day.Format("Mon 2")))
	}
	rows := []string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, headerCells...),
	}

	for _, mt := range mealTypes {
		cells := []string{rowLabel.Render(mt)}
		for d := 0; d < 7; d++ {
			date := m.weekStart.AddDate(0, 0, d).Format("2006-01-02")
			text := "-"
			if meal, ok := m.meals[date][mt]; ok {
				text = meal.Name
			}
			cells = append(cells, cell.Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "",
		theme.HelpStyle.Render("h/l previous/next week"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// WeekStart returns the Monday anchoring the visible week.
func (m Model) WeekStart() time.Time {
	return m.weekStart
}

// SetSize updates the grid dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

func keyMatchesString(msg tea.KeyMsg, values ...string) bool {
	s := msg.String()
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
