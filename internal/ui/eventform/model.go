package eventform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
	"github.com/dockly/family-planner/internal/theme"
)

// EventCreatedMsg is dispatched when a new manual event is submitted.
// The payload is a raw record; the app normalizes it before storing.
type EventCreatedMsg struct {
	Raw planner.RawEvent
}

// EventFormCancelMsg is dispatched when the user cancels the form.
type EventFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	date        string
	timeOfDay   string
	location    string
	description string
}

// Model is the Bubble Tea model for the manual event form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	email  string
	width  int
	height int
}

// New creates a new event form model. The email is the dockly account
// the created events belong to.
func New(email string, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		email:  email,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new event, defaulting the date
// to today.
func (m *Model) StartCreate(now time.Time) tea.Cmd {
	m.fb.title = ""
	m.fb.date = now.Format("2006-01-02")
	m.fb.timeOfDay = ""
	m.fb.location = ""
	m.fb.description = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the event form.
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
		return m, func() tea.Msg { return EventFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the event form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Event") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What's happening?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM (optional)").
				Value(&m.fb.timeOfDay).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("Location").
				Placeholder("Optional").
				Value(&m.fb.location),
			huh.NewText().
				Title("Notes").
				Placeholder("Optional details...").
				Value(&m.fb.description),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	raw := planner.RawEvent{
		Title:  m.fb.title,
		Source: model.ProviderDockly,
		Manual: &planner.ManualFields{
			Date: m.fb.date,
			Time: strings.TrimSpace(m.fb.timeOfDay),
		},
		AccountEmail: m.email,
		Location:     m.fb.location,
		Description:  m.fb.description,
	}
	return func() tea.Msg { return EventCreatedMsg{Raw: raw} }
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
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
