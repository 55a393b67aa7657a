package projectboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/theme"
)

// ProjectItem wraps a model.Project so it can be used in a bubbles/list.
type ProjectItem struct {
	Project model.Project
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProjectItem) FilterValue() string { return i.Project.Title }

// Title returns the project name for the list.
func (i ProjectItem) Title() string { return i.Project.Title }

// Description returns a short summary line for the list.
func (i ProjectItem) Description() string {
	total := len(i.Project.Tasks)
	done := 0
	for _, t := range i.Project.Tasks {
		if t.Completed {
			done++
		}
	}
	parts := []string{
		fmt.Sprintf("%d/%d tasks", done, total),
		i.Project.Visibility,
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering project rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single project line with its completion percentage.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProjectItem)
	if !ok {
		return
	}

	percent := pi.Project.Progress()
	progress := theme.ProgressStyle(percent).Render(fmt.Sprintf("%3d%%", percent))
	line := fmt.Sprintf("%s  %s  %s",
		progress,
		pi.Project.Title,
		theme.HelpStyle.Render(pi.Description()),
	)

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}
