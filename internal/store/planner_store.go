package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dockly/family-planner/internal/model"
)

// CreateGoal inserts a new weekly goal. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateGoal(ctx context.Context, goal model.Goal) error {
	if strings.TrimSpace(goal.Text) == "" {
		return fmt.Errorf("goal text must not be empty")
	}
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, text, completed, date, time_of_day, family_group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Text, boolToInt(goal.Completed), goal.Date,
		goal.TimeOfDay, goal.FamilyGroupID, goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}
	return nil
}

// UpdateGoal updates an existing goal by ID.
func (s *SQLiteStore) UpdateGoal(ctx context.Context, goal model.Goal) error {
	if strings.TrimSpace(goal.Text) == "" {
		return fmt.Errorf("goal text must not be empty")
	}
	goal.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE goals SET
			text = ?, completed = ?, date = ?, time_of_day = ?, updated_at = ?
		WHERE id = ?`,
		goal.Text, boolToInt(goal.Completed), goal.Date,
		goal.TimeOfDay, goal.UpdatedAt, goal.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal %s: %w", goal.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("goal %s not found", goal.ID)
	}
	return nil
}

// DeleteGoal removes a goal. Linked todos get goal_id set to NULL.
func (s *SQLiteStore) DeleteGoal(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	return nil
}

// GetGoals retrieves all goals for a family group, ordered by creation time.
func (s *SQLiteStore) GetGoals(
	ctx context.Context,
	groupID string,
) ([]model.Goal, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM goals WHERE family_group_id = ? ORDER BY created_at",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var (
			g            model.Goal
			completedInt int
			date         *time.Time
		)
		err := rows.Scan(
			&g.ID, &g.Text, &completedInt, &date, &g.TimeOfDay,
			&g.FamilyGroupID, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}
		g.Completed = completedInt != 0
		g.Date = date
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SetGoalCompleted sets the completion state of a goal.
func (s *SQLiteStore) SetGoalCompleted(
	ctx context.Context,
	id string,
	completed bool,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE goals SET completed = ?, updated_at = ? WHERE id = ?",
		boolToInt(completed), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting goal %s completion: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("goal %s not found", id)
	}
	return nil
}

// CreateTodo inserts a new planner todo. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) error {
	if strings.TrimSpace(todo.Text) == "" {
		return fmt.Errorf("todo text must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if todo.Priority < model.PriorityHigh || todo.Priority > model.PriorityLow {
		todo.Priority = model.PriorityMedium
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, text, completed, priority, date, time_of_day, goal_id, family_group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Text, boolToInt(todo.Completed), todo.Priority,
		todo.Date, todo.TimeOfDay, todo.GoalID, todo.FamilyGroupID,
		todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// UpdateTodo updates an existing todo by ID.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) error {
	if strings.TrimSpace(todo.Text) == "" {
		return fmt.Errorf("todo text must not be empty")
	}
	todo.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			text = ?, completed = ?, priority = ?, date = ?,
			time_of_day = ?, goal_id = ?, updated_at = ?
		WHERE id = ?`,
		todo.Text, boolToInt(todo.Completed), todo.Priority, todo.Date,
		todo.TimeOfDay, todo.GoalID, todo.UpdatedAt, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s not found", todo.ID)
	}
	return nil
}

// DeleteTodo removes a todo by ID.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s not found", id)
	}
	return nil
}

// GetTodos retrieves todos matching the filter, ordered by priority then date.
func (s *SQLiteStore) GetTodos(
	ctx context.Context,
	filter TodoFilter,
) ([]model.Todo, error) {
	var conditions []string
	var args []interface{}

	if filter.FamilyGroupID != nil {
		conditions = append(conditions, "family_group_id = ?")
		args = append(args, *filter.FamilyGroupID)
	}
	if filter.Completed != nil {
		conditions = append(conditions, "completed = ?")
		args = append(args, boolToInt(*filter.Completed))
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.GoalID != nil {
		conditions = append(conditions, "goal_id = ?")
		args = append(args, *filter.GoalID)
	}
	if filter.Date != nil {
		now := time.Now()
		switch *filter.Date {
		case "today":
			today := now.Format("2006-01-02")
			tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
			conditions = append(conditions, "date >= ? AND date < ?")
			args = append(args, today, tomorrow)
		case "week":
			today := now.Format("2006-01-02")
			weekFromNow := now.AddDate(0, 0, 7).Format("2006-01-02")
			conditions = append(conditions, "date >= ? AND date < ?")
			args = append(args, today, weekFromNow)
		}
	}

	query := "SELECT * FROM todos"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY priority, date, created_at"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var (
			t            model.Todo
			completedInt int
			date         *time.Time
			goalID       *string
		)
		err := rows.Scan(
			&t.ID, &t.Text, &completedInt, &t.Priority, &date,
			&t.TimeOfDay, &goalID, &t.FamilyGroupID,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		t.Completed = completedInt != 0
		t.Date = date
		t.GoalID = goalID
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// SetTodoCompleted sets the completion state of a todo.
func (s *SQLiteStore) SetTodoCompleted(
	ctx context.Context,
	id string,
	completed bool,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET completed = ?, updated_at = ? WHERE id = ?",
		boolToInt(completed), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting todo %s completion: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s not found", id)
	}
	return nil
}
