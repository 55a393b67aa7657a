package todoform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/theme"
)

// TodoCreatedMsg is dispatched when a new planner todo is submitted.
type TodoCreatedMsg struct {
	Todo model.Todo
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text      string
	priority  int
	date      string
	timeOfDay string
}

// Model is the Bubble Tea model for the planner todo form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new todo.
func (m *Model) StartCreate() tea.Cmd {
	m.fb.text = ""
	m.fb.priority = model.PriorityMedium
	m.fb.date = ""
	m.fb.timeOfDay = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Todo") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Todo").
				Placeholder("What needs doing?").
				Value(&m.fb.text).
				Validate(validateRequired),
			huh.NewSelect[int]().
				Title("Priority").
				Options(
					huh.NewOption("High", model.PriorityHigh),
					huh.NewOption("Medium", model.PriorityMedium),
					huh.NewOption("Low", model.PriorityLow),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM (optional)").
				Value(&m.fb.timeOfDay).
				Validate(validateOptionalTime),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	todo := model.Todo{
		Text:      strings.TrimSpace(m.fb.text),
		Priority:  m.fb.priority,
		TimeOfDay: strings.TrimSpace(m.fb.timeOfDay),
	}
	if d := strings.TrimSpace(m.fb.date); d != "" {
		if parsed, err := time.Parse("2006-01-02", d); err == nil {
			todo.Date = &parsed
		}
	}
	return func() tea.Msg { return TodoCreatedMsg{Todo: todo} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("todo text is required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}
