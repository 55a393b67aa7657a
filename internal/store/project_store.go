package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dockly/family-planner/internal/model"
)

// CreateProject inserts a new project and its group links.
func (s *SQLiteStore) CreateProject(
	ctx context.Context,
	project model.Project,
) error {
	if strings.TrimSpace(project.Title) == "" {
		return fmt.Errorf("project title must not be empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Visibility == "" {
		project.Visibility = model.VisibilityPrivate
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	if project.SortOrder == 0 {
		var maxOrder int
		_ = s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM projects")
		project.SortOrder = maxOrder + 1
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, due_date, visibility, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Title, project.Description, project.DueDate,
		project.Visibility, project.SortOrder, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	for _, groupID := range project.FamilyGroups {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO project_groups (project_id, family_group_id) VALUES (?, ?)",
			project.ID, groupID,
		)
		if err != nil {
			return fmt.Errorf("linking project to group %s: %w", groupID, err)
		}
	}

	return tx.Commit()
}

// UpdateProject updates an existing project. Group links are managed
// separately via SetProjectGroups.
func (s *SQLiteStore) UpdateProject(
	ctx context.Context,
	project model.Project,
) error {
	if strings.TrimSpace(project.Title) == "" {
		return fmt.Errorf("project title must not be empty")
	}
	project.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			title = ?, description = ?, due_date = ?,
			visibility = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		project.Title, project.Description, project.DueDate,
		project.Visibility, project.SortOrder, project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s not found", project.ID)
	}
	return nil
}

// DeleteProject removes a project. Tasks and group links cascade.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// GetProjectByID retrieves a single project with its tasks and group links.
func (s *SQLiteStore) GetProjectByID(
	ctx context.Context,
	id string,
) (*model.Project, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM projects WHERE id = ?", id)

	project, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}

	if err := s.loadProjectRelations(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjects retrieves the projects visible to a family group: projects
// linked to the group, plus public projects. Task lists are loaded so that
// progress can be derived.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	groupID string,
) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT DISTINCT p.* FROM projects p
		LEFT JOIN project_groups pg ON pg.project_id = p.id
		WHERE pg.family_group_id = ? OR p.visibility = 'public'
		ORDER BY p.sort_order`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		if err := s.loadProjectRelations(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// SetProjectGroups replaces the set of family groups a project is shared with.
func (s *SQLiteStore) SetProjectGroups(
	ctx context.Context,
	projectID string,
	groupIDs []string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM project_groups WHERE project_id = ?", projectID)
	if err != nil {
		return fmt.Errorf("clearing project groups: %w", err)
	}

	for _, groupID := range groupIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO project_groups (project_id, family_group_id) VALUES (?, ?)",
			projectID, groupID,
		)
		if err != nil {
			return fmt.Errorf("linking project to group %s: %w", groupID, err)
		}
	}

	return tx.Commit()
}

// loadProjectRelations populates a project's task list and group links.
func (s *SQLiteStore) loadProjectRelations(
	ctx context.Context,
	project *model.Project,
) error {
	tasks, err := s.GetTasksForProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("loading tasks for project %s: %w", project.ID, err)
	}
	project.Tasks = tasks

	var groups []string
	err = s.db.SelectContext(ctx, &groups,
		"SELECT family_group_id FROM project_groups WHERE project_id = ?",
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("loading groups for project %s: %w", project.ID, err)
	}
	project.FamilyGroups = groups
	return nil
}

// CreateTask inserts a new task. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if task.SortOrder == 0 {
		var maxOrder int
		_ = s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM tasks WHERE project_id = ?",
			task.ProjectID)
		task.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, title, assignee, completed, due_date, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.ProjectID, task.Title, task.Assignee,
		boolToInt(task.Completed), task.DueDate, task.SortOrder,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// UpdateTask updates an existing task by ID.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	task.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, assignee = ?, completed = ?,
			due_date = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, task.Assignee, boolToInt(task.Completed),
		task.DueDate, task.SortOrder, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s not found", task.ID)
	}
	return nil
}

// DeleteTask removes a task by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// SetTaskCompleted sets the completion state of a task.
func (s *SQLiteStore) SetTaskCompleted(
	ctx context.Context,
	id string,
	completed bool,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?",
		boolToInt(completed), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting task %s completion: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// GetTasksForProject returns all tasks for a project, ordered by sort_order.
func (s *SQLiteStore) GetTasksForProject(
	ctx context.Context,
	projectID string,
) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks WHERE project_id = ? ORDER BY sort_order",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var (
			task         model.Task
			completedInt int
			dueDate      *time.Time
		)
		err := rows.Scan(
			&task.ID, &task.ProjectID, &task.Title, &task.Assignee,
			&completedInt, &dueDate, &task.SortOrder,
			&task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task.Completed = completedInt != 0
		task.DueDate = dueDate
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// scanProject scans a project row without its relations.
func scanProject(row interface{ Scan(dest ...interface{}) error }) (model.Project, error) {
	var (
		project model.Project
		dueDate *time.Time
	)

	err := row.Scan(
		&project.ID, &project.Title, &project.Description, &dueDate,
		&project.Visibility, &project.SortOrder,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("scanning project row: %w", err)
	}
	project.DueDate = dueDate
	return project, nil
}
