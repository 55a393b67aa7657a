package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// View tabs
	ViewPlanner  key.Binding
	ViewProjects key.Binding
	ViewChores   key.Binding
	ViewMeals    key.Binding
	ViewNotes    key.Binding

	// Planner actions
	Toggle     key.Binding
	NewItem    key.Binding
	NewTodo    key.Binding
	DeleteItem key.Binding

	// Account visibility
	Accounts key.Binding

	// Family group switch
	Groups key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ViewPlanner: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "planner"),
		),
		ViewProjects: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "projects"),
		),
		ViewChores: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "chores"),
		),
		ViewMeals: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "meals"),
		),
		ViewNotes: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "notes"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		NewItem: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new event"),
		),
		NewTodo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new todo"),
		),
		DeleteItem: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Accounts: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accounts"),
		),
		Groups: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "switch family"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Toggle,
		k.Back, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.ViewPlanner, k.ViewProjects, k.ViewChores, k.ViewMeals, k.ViewNotes},
		{k.Toggle, k.NewItem, k.NewTodo, k.DeleteItem, k.Refresh},
		{k.Accounts, k.Groups, k.Help},
	}
}
