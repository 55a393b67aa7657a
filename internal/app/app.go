package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockly/family-planner/internal/keys"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
	"github.com/dockly/family-planner/internal/store"
	appsync "github.com/dockly/family-planner/internal/sync"
	"github.com/dockly/family-planner/internal/ui"
	"github.com/dockly/family-planner/internal/ui/accountpicker"
	"github.com/dockly/family-planner/internal/ui/choreboard"
	"github.com/dockly/family-planner/internal/ui/eventform"
	"github.com/dockly/family-planner/internal/ui/grouppicker"
	helpview "github.com/dockly/family-planner/internal/ui/help"
	"github.com/dockly/family-planner/internal/ui/mealplan"
	"github.com/dockly/family-planner/internal/ui/noteboard"
	"github.com/dockly/family-planner/internal/ui/plannerboard"
	"github.com/dockly/family-planner/internal/ui/projectboard"
	"github.com/dockly/family-planner/internal/ui/todoform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewPlanner ViewState = iota
	ViewProjects
	ViewChores
	ViewMeals
	ViewNotes
	ViewHelp
	ViewAccounts
	ViewGroups
	ViewEventCreate
	ViewTodoCreate
)

// sessionRefreshedMsg is sent after the planner session reloads.
type sessionRefreshedMsg struct {
	err error
}

// Model is the root Bubble Tea model that manages view routing, layout,
// the planner session, and background calendar polling.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	cfg          *model.AppConfig
	keys         *keys.KeyMap
	session      *planner.Session
	poller       *appsync.Poller

	plannerView  plannerboard.Model
	projectView  projectboard.Model
	choreView    choreboard.Model
	mealView     mealplan.Model
	noteView     noteboard.Model
	helpView     helpview.Model
	accountView  accountpicker.Model
	groupView    grouppicker.Model
	eventForm    eventform.Model
	todoForm     todoform.Model

	ready         bool
	statusMessage string
}

// New creates the root application model. The session's group comes from
// the persisted config selection.
func New(s store.Store, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()
	groupID := cfg.CurrentFamilyGroupID
	session := planner.NewSession(s, groupID, cfg.Display.PrimaryColor)
	poller := appsync.New(s, cfg.Display.WindowDays)

	return Model{
		currentView: ViewPlanner,
		store:       s,
		cfg:         cfg,
		keys:        k,
		session:     session,
		poller:      poller,
		plannerView: plannerboard.New(k, 80, 24),
		projectView: projectboard.New(s, k, groupID, 80, 24),
		choreView:   choreboard.New(s, k, groupID, 80, 24),
		mealView:    mealplan.New(s, k, groupID, time.Now(), 80, 24),
		noteView:    noteboard.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		accountView: accountpicker.New(k, 80, 24),
		groupView:   grouppicker.New(s, k, groupID, 80, 24),
		eventForm:   eventform.New(docklyAccountEmail(cfg), 80, 24),
		todoForm:    todoform.New(80, 24),
	}
}

// docklyAccountEmail picks the email manual events are attributed to:
// the first configured account, falling back to a local placeholder.
func docklyAccountEmail(cfg *model.AppConfig) string {
	for _, a := range cfg.Accounts {
		if a.Provider == model.ProviderDockly {
			return a.Email
		}
	}
	if len(cfg.Accounts) > 0 {
		return cfg.Accounts[0].Email
	}
	return "family@local"
}

// Init loads the first snapshot, registers the configured calendar
// sources, and starts polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshSession(),
		m.projectView.Init(),
		m.choreView.Init(),
		m.mealView.Init(),
		m.registerSources(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.plannerView.SetSize(w, h)
		m.projectView.SetSize(w, h)
		m.choreView.SetSize(w, h)
		m.mealView.SetSize(w, h)
		m.noteView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.accountView.SetSize(w, h)
		m.groupView.SetSize(w, h)
		m.eventForm.SetSize(w, h)
		m.todoForm.SetSize(w, h)
		return m.updateActiveView(msg)

	case sourcesRegisteredMsg:
		if msg.err != nil {
			m.statusMessage = msg.err.Error()
		}
		return m, m.poller.Start()

	case appsync.SyncResultMsg:
		if msg.AuthError != nil {
			m.statusMessage = msg.AuthError.Message
		} else if msg.Error != nil {
			m.statusMessage = fmt.Sprintf("sync failed: %v", msg.Error)
		} else {
			m.statusMessage = ""
		}
		return m, tea.Batch(
			m.refreshSession(),
			m.poller.WaitForNextResult(),
		)

	case sessionRefreshedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("load failed: %v", msg.err)
			return m, nil
		}
		m.pushSnapshot()
		return m, nil

	case plannerboard.ToggleGoalMsg:
		return m, m.toggleGoal(msg.ID, msg.Completed)

	case plannerboard.ToggleTodoMsg:
		return m, m.toggleTodo(msg.ID, msg.Completed)

	case projectboard.ToggleTaskMsg:
		return m, m.toggleTask(msg.TaskID, msg.Completed)

	case choreboard.CompleteChoreMsg:
		return m, m.completeChore(msg.ID)

	case noteboard.DeleteNoteMsg:
		return m, m.deleteNote(msg.ID)

	case toggleResultMsg:
		if msg.err != nil {
			// The optimistic flip did not stick; reload the truth.
			m.statusMessage = fmt.Sprintf("update failed: %v", msg.err)
			return m, m.refreshSession()
		}
		return m, nil

	case choreResultMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("update failed: %v", msg.err)
		}
		return m, m.choreView.LoadChores()

	case taskResultMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("update failed: %v", msg.err)
		}
		return m, m.projectView.LoadProjects()

	case noteResultMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("delete failed: %v", msg.err)
		}
		return m, m.refreshSession()

	case eventform.EventCreatedMsg:
		m.currentView = ViewPlanner
		return m, m.createManualEvent(msg.Raw)

	case eventform.EventFormCancelMsg:
		m.currentView = ViewPlanner
		return m, nil

	case todoform.TodoCreatedMsg:
		m.currentView = ViewPlanner
		return m, m.createTodo(msg.Todo)

	case todoform.TodoFormCancelMsg:
		m.currentView = ViewPlanner
		return m, nil

	case todoCreatedResultMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("create failed: %v", msg.err)
		}
		return m, m.refreshSession()

	case eventCreatedResultMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("create failed: %v", msg.err)
		}
		return m, m.refreshSession()

	case accountpicker.FilterAppliedMsg:
		m.currentView = m.previousView
		if msg.AccountIDs == nil {
			m.session.Filter().SelectAll()
		} else {
			m.session.Filter().Select(msg.AccountIDs)
		}
		m.pushSnapshot()
		return m, nil

	case accountpicker.CloseMsg, grouppicker.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	// Loaded messages route to their boards directly so background loads
	// land even while another view is active.
	case projectboard.ProjectsLoadedMsg:
		var cmd tea.Cmd
		m.projectView, cmd = m.projectView.Update(msg)
		return m, cmd

	case choreboard.ChoresLoadedMsg:
		var cmd tea.Cmd
		m.choreView, cmd = m.choreView.Update(msg)
		return m, cmd

	case mealplan.MealsLoadedMsg:
		var cmd tea.Cmd
		m.mealView, cmd = m.mealView.Update(msg)
		return m, cmd

	case grouppicker.GroupsLoadedMsg:
		var cmd tea.Cmd
		m.groupView, cmd = m.groupView.Update(msg)
		return m, cmd

	case grouppicker.GroupChosenMsg:
		m.currentView = ViewPlanner
		return m, m.switchGroup(msg.GroupID)

	case groupSwitchedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("switch failed: %v", msg.err)
			return m, nil
		}
		m.groupView.SetCurrent(msg.groupID)
		m.pushSnapshot()
		return m, tea.Batch(
			m.projectView.SetGroup(msg.groupID),
			m.choreView.SetGroup(msg.groupID),
			m.mealView.SetGroup(msg.groupID),
		)

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the active view.
// Keys are not intercepted while a form is capturing input.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.poller.Stop()
		return true, m, tea.Quit
	}

	if m.currentView == ViewEventCreate || m.currentView == ViewTodoCreate {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.onBoard() {
			m.poller.Stop()
			return true, m, tea.Quit
		}

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return true, m, nil

	case "1":
		m.currentView = ViewPlanner
		return true, m, nil
	case "2":
		m.currentView = ViewProjects
		return true, m, m.projectView.LoadProjects()
	case "3":
		m.currentView = ViewChores
		return true, m, m.choreView.LoadChores()
	case "4":
		m.currentView = ViewMeals
		return true, m, m.mealView.LoadMeals()
	case "5":
		m.currentView = ViewNotes
		return true, m, nil

	case "r":
		if m.onBoard() {
			return true, m, tea.Batch(m.poller.RefreshAll(), m.refreshSession())
		}

	case "a":
		if m.onBoard() {
			m.previousView = m.currentView
			m.currentView = ViewAccounts
			snap := m.session.Snapshot()
			m.accountView.SetAccounts(
				snap.Accounts,
				m.session.PersonColors(),
				m.session.Filter().Selected(),
			)
			return true, m, nil
		}

	case "g":
		if m.onBoard() {
			m.previousView = m.currentView
			m.currentView = ViewGroups
			return true, m, m.groupView.LoadGroups()
		}

	case "n":
		if m.currentView == ViewPlanner {
			m.previousView = m.currentView
			m.currentView = ViewEventCreate
			return true, m, m.eventForm.StartCreate(time.Now())
		}

	case "t":
		if m.currentView == ViewPlanner {
			m.previousView = m.currentView
			m.currentView = ViewTodoCreate
			return true, m, m.todoForm.StartCreate()
		}
	}

	return false, m, nil
}

// onBoard reports whether one of the main board views is active, as
// opposed to an overlay or form.
func (m Model) onBoard() bool {
	switch m.currentView {
	case ViewPlanner, ViewProjects, ViewChores, ViewMeals, ViewNotes:
		return true
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewPlanner:
		m.plannerView, cmd = m.plannerView.Update(msg)
	case ViewProjects:
		m.projectView, cmd = m.projectView.Update(msg)
	case ViewChores:
		m.choreView, cmd = m.choreView.Update(msg)
	case ViewMeals:
		m.mealView, cmd = m.mealView.Update(msg)
	case ViewNotes:
		m.noteView, cmd = m.noteView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewAccounts:
		m.accountView, cmd = m.accountView.Update(msg)
	case ViewGroups:
		m.groupView, cmd = m.groupView.Update(msg)
	case ViewEventCreate:
		m.eventForm, cmd = m.eventForm.Update(msg)
	case ViewTodoCreate:
		m.todoForm, cmd = m.todoForm.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) headerTitle() string {
	title := "Dockly"
	snap := m.session.Snapshot()
	if len(snap.Members) > 0 {
		title = fmt.Sprintf("Dockly · %d members", len(snap.Members))
	}
	if !m.session.Filter().AllSelected() {
		title += " [filtered]"
	}
	return title
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPlanner:
		return m.plannerView.View()
	case ViewProjects:
		return m.projectView.View()
	case ViewChores:
		return m.choreView.View()
	case ViewMeals:
		return m.mealView.View()
	case ViewNotes:
		return m.noteView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewAccounts:
		return m.accountView.View()
	case ViewGroups:
		return m.groupView.View()
	case ViewEventCreate:
		return m.eventForm.View()
	case ViewTodoCreate:
		return m.todoForm.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the combined sync state.
func (m Model) syncStatus() string {
	statuses := m.poller.GetStatuses()
	if len(statuses) == 0 {
		return "no calendars"
	}

	running := 0
	errCount := 0
	for _, s := range statuses {
		switch s.State {
		case appsync.SyncRunning:
			running++
		case appsync.SyncError:
			errCount++
		}
	}

	if running > 0 {
		return fmt.Sprintf("syncing (%d)", running)
	}
	if errCount > 0 {
		return fmt.Sprintf("%d unreachable", errCount)
	}
	return "idle"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" && m.onBoard() {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewAccounts:
		return "space toggle | a all | enter apply | esc back"
	case ViewGroups:
		return "enter switch | esc back"
	case ViewEventCreate, ViewTodoCreate:
		return "enter submit | esc cancel"
	case ViewProjects:
		return "enter open | space toggle task | esc back | 1-5 views"
	case ViewChores:
		return "space complete | 1-5 views | q quit"
	case ViewMeals:
		return "h/l week | 1-5 views | q quit"
	case ViewNotes:
		return "d delete | 1-5 views | q quit"
	default:
		return "q quit | ? help | n new event | t new todo | a calendars | g family | r refresh"
	}
}

// refreshSession reloads the combined snapshot off the UI thread.
func (m Model) refreshSession() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return sessionRefreshedMsg{err: session.Refresh(context.Background())}
	}
}

// switchGroup changes the active family group, persists the selection,
// and resets the account filter.
func (m Model) switchGroup(groupID string) tea.Cmd {
	session := m.session
	cfg := m.cfg
	return func() tea.Msg {
		if err := session.SwitchGroup(context.Background(), groupID); err != nil {
			return groupSwitchedMsg{groupID: groupID, err: err}
		}
		cfg.CurrentFamilyGroupID = groupID
		if err := model.SaveConfig(model.DefaultConfigPath(), cfg); err != nil {
			return groupSwitchedMsg{groupID: groupID, err: err}
		}
		return groupSwitchedMsg{groupID: groupID}
	}
}

// pushSnapshot distributes the session's latest data to the views that
// render from it.
func (m *Model) pushSnapshot() {
	snap := m.session.Snapshot()
	m.plannerView.SetData(
		snap.Goals,
		snap.Todos,
		m.session.VisibleEvents(),
		m.session.PersonColors(),
	)
	m.noteView.SetNotes(snap.Notes)
}
