package store_test

import (
	"context"
	"testing"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/store"
	"github.com/dockly/family-planner/tests/testutil"
)

func seedProjectFixture(t *testing.T, s store.Store) string {
	t.Helper()
	ctx := context.Background()

	groupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Smiths"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	otherGroupID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Others"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	projects := []model.Project{
		{ID: "garden", Title: "Garden makeover", FamilyGroups: []string{groupID}},
		{ID: "wedding", Title: "Wedding", Visibility: model.VisibilityPublic},
		{ID: "secret", Title: "Surprise party", FamilyGroups: []string{otherGroupID}},
	}
	for _, p := range projects {
		if err := s.CreateProject(ctx, p); err != nil {
			t.Fatalf("creating project %s: %v", p.ID, err)
		}
	}

	tasks := []model.Task{
		{ID: "t1", ProjectID: "garden", Title: "Buy soil", Completed: true},
		{ID: "t2", ProjectID: "garden", Title: "Plant bulbs"},
		{ID: "t3", ProjectID: "garden", Title: "Build fence", Assignee: "Dad"},
	}
	for _, task := range tasks {
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("creating task %s: %v", task.ID, err)
		}
	}

	return groupID
}

func TestGetProjectsVisibility(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedProjectFixture(t, s)

	projects, err := s.GetProjects(context.Background(), groupID)
	if err != nil {
		t.Fatalf("getting projects: %v", err)
	}

	got := make(map[string]bool, len(projects))
	for _, p := range projects {
		got[p.ID] = true
	}
	// Linked plus public, never another group's private project.
	if len(got) != 2 || !got["garden"] || !got["wedding"] {
		t.Fatalf("got %v, want garden and wedding", got)
	}
}

func TestProjectProgressDerivedFromTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedProjectFixture(t, s)
	ctx := context.Background()

	garden := fetchProject(t, s, groupID, "garden")
	if len(garden.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(garden.Tasks))
	}
	if got := garden.Progress(); got != 33 {
		t.Errorf("Progress() = %d, want 33", got)
	}

	if err := s.SetTaskCompleted(ctx, "t2", true); err != nil {
		t.Fatalf("completing task: %v", err)
	}

	garden = fetchProject(t, s, groupID, "garden")
	if got := garden.Progress(); got != 67 {
		t.Errorf("Progress() after completion = %d, want 67", got)
	}
}

func TestSetTaskCompletedNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.SetTaskCompleted(context.Background(), "missing", true)
	if err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestSetProjectGroupsReplacesLinks(t *testing.T) {
	s := testutil.NewTestStore(t)
	groupID := seedProjectFixture(t, s)
	ctx := context.Background()

	otherID, err := s.CreateFamilyGroup(ctx, model.FamilyGroup{Name: "Grandparents"})
	if err != nil {
		t.Fatalf("creating group: %v", err)
	}

	if err := s.SetProjectGroups(ctx, "garden", []string{otherID}); err != nil {
		t.Fatalf("setting project groups: %v", err)
	}

	projects, err := s.GetProjects(ctx, groupID)
	if err != nil {
		t.Fatalf("getting projects: %v", err)
	}
	for _, p := range projects {
		if p.ID == "garden" {
			t.Fatal("garden should no longer be visible to the original group")
		}
	}

	moved := fetchProject(t, s, otherID, "garden")
	if moved.ID != "garden" {
		t.Fatal("garden should be visible to the new group")
	}
}

func fetchProject(t *testing.T, s store.Store, groupID, id string) model.Project {
	t.Helper()
	projects, err := s.GetProjects(context.Background(), groupID)
	if err != nil {
		t.Fatalf("getting projects: %v", err)
	}
	for _, p := range projects {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("project %s not visible to group %s", id, groupID)
	return model.Project{}
}
