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

// CreateNote inserts a new note with its tags.
func (s *SQLiteStore) CreateNote(ctx context.Context, note model.Note) error {
	if strings.TrimSpace(note.Title) == "" {
		return fmt.Errorf("note title must not be empty")
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, title, body, family_group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Body, note.FamilyGroupID,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}

	if err := insertNoteTags(ctx, tx, note.ID, note.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateNote updates an existing note and replaces its tags.
func (s *SQLiteStore) UpdateNote(ctx context.Context, note model.Note) error {
	if strings.TrimSpace(note.Title) == "" {
		return fmt.Errorf("note title must not be empty")
	}
	note.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE id = ?`,
		note.Title, note.Body, note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", note.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note %s not found", note.ID)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", note.ID)
	if err != nil {
		return fmt.Errorf("clearing tags for note %s: %w", note.ID, err)
	}
	if err := insertNoteTags(ctx, tx, note.ID, note.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteNote removes a note by ID. Tags cascade.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note %s not found", id)
	}
	return nil
}

// GetNotes retrieves all notes for a family group with their tags,
// newest first.
func (s *SQLiteStore) GetNotes(
	ctx context.Context,
	groupID string,
) ([]model.Note, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM notes WHERE family_group_id = ? ORDER BY updated_at DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		err := rows.Scan(
			&n.ID, &n.Title, &n.Body, &n.FamilyGroupID,
			&n.CreatedAt, &n.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range notes {
		var tags []string
		err := s.db.SelectContext(ctx, &tags,
			"SELECT tag FROM note_tags WHERE note_id = ? ORDER BY tag",
			notes[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("loading tags for note %s: %w", notes[i].ID, err)
		}
		notes[i].Tags = tags
	}
	return notes, nil
}

// insertNoteTags inserts the tag set for a note inside a transaction.
func insertNoteTags(
	ctx context.Context,
	tx *sqlx.Tx,
	noteID string,
	tags []string,
) error {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)",
			noteID, tag,
		)
		if err != nil {
			return fmt.Errorf("tagging note %s: %w", noteID, err)
		}
	}
	return nil
}
