package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dockly/family-planner/internal/model"
)

// CreateEvent inserts a new native calendar event. Generates a UUID if ID
// is empty and defaults the provider to dockly.
func (s *SQLiteStore) CreateEvent(
	ctx context.Context,
	event model.CalendarEvent,
) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Provider == "" {
		event.Provider = model.ProviderDockly
	}
	// Native events come through the account that owns them.
	if event.SourceEmail == "" {
		event.SourceEmail = event.OwnerEmail
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (
			id, title, start_at, end_at, all_day,
			owner_email, source_email, provider, color, family_group_id,
			location, description, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, nullableTime(event.Start), nullableTime(event.End),
		boolToInt(event.AllDay), event.OwnerEmail, event.SourceEmail,
		string(event.Provider), event.Color, event.FamilyGroupID,
		event.Location, event.Description, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// UpdateEvent updates an existing event by ID.
func (s *SQLiteStore) UpdateEvent(
	ctx context.Context,
	event model.CalendarEvent,
) error {
	event.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE events SET
			title = ?, start_at = ?, end_at = ?, all_day = ?,
			owner_email = ?, source_email = ?, color = ?, family_group_id = ?,
			location = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		event.Title, nullableTime(event.Start), nullableTime(event.End),
		boolToInt(event.AllDay), event.OwnerEmail, event.SourceEmail,
		event.Color, event.FamilyGroupID, event.Location, event.Description,
		event.UpdatedAt, event.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event %s: %w", event.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s not found", event.ID)
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

// GetEventByID retrieves a single event by ID.
func (s *SQLiteStore) GetEventByID(
	ctx context.Context,
	id string,
) (*model.CalendarEvent, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM events WHERE id = ?", id)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}
	return &event, nil
}

// GetEvents retrieves events matching the filter, ordered by start time.
// Events whose start could not be derived sort first.
func (s *SQLiteStore) GetEvents(
	ctx context.Context,
	filter EventFilter,
) ([]model.CalendarEvent, error) {
	var conditions []string
	var args []interface{}

	if filter.FamilyGroupID != nil {
		conditions = append(conditions, "family_group_id = ?")
		args = append(args, *filter.FamilyGroupID)
	}
	if filter.Provider != nil {
		conditions = append(conditions, "provider = ?")
		args = append(args, string(*filter.Provider))
	}
	if filter.OwnerEmail != nil {
		conditions = append(conditions, "owner_email = ?")
		args = append(args, *filter.OwnerEmail)
	}
	if filter.From != nil {
		conditions = append(conditions, "(end_at IS NULL OR end_at >= ?)")
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		conditions = append(conditions, "(start_at IS NULL OR start_at < ?)")
		args = append(args, filter.To.UTC())
	}

	query := "SELECT * FROM events"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_at"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// ReplaceProviderEvents atomically replaces all cached events for one
// provider account with a freshly fetched batch. The swap is keyed on the
// account the events came through, not the displayed owner, so remotely
// deleted events are cleared even when a creator outside the family owns
// them.
func (s *SQLiteStore) ReplaceProviderEvents(
	ctx context.Context,
	provider model.Provider,
	accountEmail string,
	events []model.CalendarEvent,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM events WHERE provider = ? AND source_email = ?",
		string(provider), accountEmail,
	)
	if err != nil {
		return fmt.Errorf("clearing cached events for %s-%s: %w", accountEmail, provider, err)
	}

	const query = `
		INSERT OR REPLACE INTO events (
			id, title, start_at, end_at, all_day,
			owner_email, source_email, provider, color, family_group_id,
			location, description, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing event insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.SourceEmail == "" {
			e.SourceEmail = accountEmail
		}
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Title, nullableTime(e.Start), nullableTime(e.End),
			boolToInt(e.AllDay), e.OwnerEmail, e.SourceEmail,
			string(e.Provider), e.Color, e.FamilyGroupID,
			e.Location, e.Description, now, now,
		)
		if err != nil {
			return fmt.Errorf("caching event %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// scanEvent scans an event row from either sqlx.Rows or sqlx.Row.
func scanEvent(row sqlx.ColScanner) (model.CalendarEvent, error) {
	var (
		event      model.CalendarEvent
		start, end *time.Time
		allDayInt  int
		provider   string
	)

	// source_email was added by a later migration, so it scans last.
	err := row.Scan(
		&event.ID, &event.Title, &start, &end, &allDayInt,
		&event.OwnerEmail, &provider, &event.Color, &event.FamilyGroupID,
		&event.Location, &event.Description, &event.CreatedAt, &event.UpdatedAt,
		&event.SourceEmail,
	)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("scanning event row: %w", err)
	}

	if start != nil {
		event.Start = *start
	}
	if end != nil {
		event.End = *end
	}
	event.AllDay = allDayInt != 0
	event.Provider = model.Provider(provider)

	return event, nil
}

// nullableTime converts a zero time to NULL for storage.
func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
