package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dockly/family-planner/internal/model"
)

// CreateChore inserts a new chore. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateChore(ctx context.Context, chore model.Chore) error {
	if strings.TrimSpace(chore.Name) == "" {
		return fmt.Errorf("chore name must not be empty")
	}
	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	if chore.Recurrence == "" {
		chore.Recurrence = model.RecurrenceNone
	}
	if chore.Status == "" {
		chore.Status = model.ChoreStatusPending
	}
	now := time.Now().UTC()
	chore.CreatedAt = now
	chore.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chores (
			id, name, description, assignee_id, recurrence, status,
			due_date, completed_at, family_group_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chore.ID, chore.Name, chore.Description, chore.AssigneeID,
		chore.Recurrence, chore.Status, chore.DueDate, chore.CompletedAt,
		chore.FamilyGroupID, chore.CreatedAt, chore.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating chore: %w", err)
	}
	return nil
}

// UpdateChore updates an existing chore by ID.
func (s *SQLiteStore) UpdateChore(ctx context.Context, chore model.Chore) error {
	if strings.TrimSpace(chore.Name) == "" {
		return fmt.Errorf("chore name must not be empty")
	}
	chore.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE chores SET
			name = ?, description = ?, assignee_id = ?, recurrence = ?,
			status = ?, due_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		chore.Name, chore.Description, chore.AssigneeID, chore.Recurrence,
		chore.Status, chore.DueDate, chore.CompletedAt, chore.UpdatedAt,
		chore.ID,
	)
	if err != nil {
		return fmt.Errorf("updating chore %s: %w", chore.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chore %s not found", chore.ID)
	}
	return nil
}

// DeleteChore removes a chore by ID.
func (s *SQLiteStore) DeleteChore(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM chores WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting chore %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chore %s not found", id)
	}
	return nil
}

// GetChores retrieves chores matching the filter, ordered by due date.
func (s *SQLiteStore) GetChores(
	ctx context.Context,
	filter ChoreFilter,
) ([]model.Chore, error) {
	var conditions []string
	var args []interface{}

	if filter.FamilyGroupID != nil {
		conditions = append(conditions, "family_group_id = ?")
		args = append(args, *filter.FamilyGroupID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, "assignee_id = ?")
		args = append(args, *filter.AssigneeID)
	}

	query := "SELECT * FROM chores"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY due_date, created_at"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		var (
			c           model.Chore
			assigneeID  *string
			dueDate     *time.Time
			completedAt *time.Time
		)
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &assigneeID, &c.Recurrence,
			&c.Status, &dueDate, &completedAt, &c.FamilyGroupID,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning chore row: %w", err)
		}
		c.AssigneeID = assigneeID
		c.DueDate = dueDate
		c.CompletedAt = completedAt
		chores = append(chores, c)
	}
	return chores, rows.Err()
}

// CompleteChore marks a chore completed. Recurring chores roll forward to
// their next due date and return to pending instead.
func (s *SQLiteStore) CompleteChore(ctx context.Context, id string) error {
	row := s.db.QueryRowxContext(ctx, "SELECT recurrence, due_date FROM chores WHERE id = ?", id)

	var (
		recurrence string
		dueDate    *time.Time
	)
	if err := row.Scan(&recurrence, &dueDate); err != nil {
		return fmt.Errorf("getting chore %s: %w", id, err)
	}

	now := time.Now().UTC()

	if recurrence == model.RecurrenceNone {
		_, err := s.db.ExecContext(ctx,
			"UPDATE chores SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?",
			model.ChoreStatusCompleted, now, now, id,
		)
		if err != nil {
			return fmt.Errorf("completing chore %s: %w", id, err)
		}
		return nil
	}

	next := nextDueDate(dueDate, recurrence, now)
	_, err := s.db.ExecContext(ctx,
		"UPDATE chores SET status = ?, completed_at = ?, due_date = ?, updated_at = ? WHERE id = ?",
		model.ChoreStatusPending, now, next, now, id,
	)
	if err != nil {
		return fmt.Errorf("rolling chore %s forward: %w", id, err)
	}
	return nil
}

// nextDueDate advances a due date by one recurrence interval. A chore with
// no due date recurs from the completion time.
func nextDueDate(dueDate *time.Time, recurrence string, now time.Time) time.Time {
	base := now
	if dueDate != nil {
		base = *dueDate
	}
	switch recurrence {
	case model.RecurrenceDaily:
		return base.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		return base.AddDate(0, 0, 7)
	case model.RecurrenceMonthly:
		return base.AddDate(0, 1, 0)
	default:
		return base
	}
}
