package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dockly/family-planner/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// CreateFamilyGroup inserts a new family group and returns its ID.
func (s *SQLiteStore) CreateFamilyGroup(
	ctx context.Context,
	group model.FamilyGroup,
) (string, error) {
	if strings.TrimSpace(group.Name) == "" {
		return "", fmt.Errorf("family group name must not be empty")
	}
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	group.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO families (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("creating family group: %w", err)
	}
	return group.ID, nil
}

// GetFamilyGroups retrieves all family groups with their member counts.
func (s *SQLiteStore) GetFamilyGroups(
	ctx context.Context,
) ([]model.FamilyGroup, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT f.id, f.name, f.created_at,
		       (SELECT COUNT(*) FROM family_members m WHERE m.family_group_id = f.id)
		FROM families f
		ORDER BY f.created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying family groups: %w", err)
	}
	defer rows.Close()

	var groups []model.FamilyGroup
	for rows.Next() {
		var g model.FamilyGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.MemberCount); err != nil {
			return nil, fmt.Errorf("scanning family group row: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetFamilyGroupByID retrieves a single family group by ID.
func (s *SQLiteStore) GetFamilyGroupByID(
	ctx context.Context,
	id string,
) (*model.FamilyGroup, error) {
	var g model.FamilyGroup
	err := s.db.QueryRowxContext(ctx, `
		SELECT f.id, f.name, f.created_at,
		       (SELECT COUNT(*) FROM family_members m WHERE m.family_group_id = f.id)
		FROM families f WHERE f.id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.MemberCount)
	if err != nil {
		return nil, fmt.Errorf("getting family group %s: %w", id, err)
	}
	return &g, nil
}

// DeleteFamilyGroup removes a family group. Members, accounts, and
// group-scoped entities cascade.
func (s *SQLiteStore) DeleteFamilyGroup(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM families WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting family group %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("family group %s not found", id)
	}
	return nil
}

// AddFamilyMember inserts a new family member. Generates a UUID if ID is empty.
func (s *SQLiteStore) AddFamilyMember(
	ctx context.Context,
	member model.FamilyMember,
) error {
	if strings.TrimSpace(member.Name) == "" {
		return fmt.Errorf("member name must not be empty")
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.Role == "" {
		member.Role = model.RoleParent
	}
	member.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO family_members (id, family_group_id, name, role, email, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.FamilyGroupID, member.Name, member.Role,
		member.Email, member.Color, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("adding family member: %w", err)
	}
	return nil
}

// GetFamilyMembers retrieves all members of a family group.
func (s *SQLiteStore) GetFamilyMembers(
	ctx context.Context,
	groupID string,
) ([]model.FamilyMember, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM family_members WHERE family_group_id = ? ORDER BY created_at",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying family members: %w", err)
	}
	defer rows.Close()

	var members []model.FamilyMember
	for rows.Next() {
		var m model.FamilyMember
		err := rows.Scan(
			&m.ID, &m.FamilyGroupID, &m.Name, &m.Role,
			&m.Email, &m.Color, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning family member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// DeleteFamilyMember removes a family member by ID.
func (s *SQLiteStore) DeleteFamilyMember(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM family_members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting family member %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("family member %s not found", id)
	}
	return nil
}

// UpsertAccounts inserts or replaces a batch of connected accounts.
func (s *SQLiteStore) UpsertAccounts(
	ctx context.Context,
	accounts []model.ConnectedAccount,
) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO accounts (
			email, provider, user_name, display_name, color, family_group_id
		) VALUES (?, ?, ?, ?, ?, ?)`

	for _, a := range accounts {
		_, err := tx.ExecContext(ctx, query,
			a.Email, string(a.Provider), a.UserName,
			a.DisplayName, a.Color, a.FamilyGroupID,
		)
		if err != nil {
			return fmt.Errorf("upserting account %s: %w", a.FilterID(), err)
		}
	}

	return tx.Commit()
}

// GetAccounts retrieves the connected accounts belonging to a family group.
func (s *SQLiteStore) GetAccounts(
	ctx context.Context,
	groupID string,
) ([]model.ConnectedAccount, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM accounts WHERE family_group_id = ? ORDER BY email",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.ConnectedAccount
	for rows.Next() {
		var (
			a        model.ConnectedAccount
			provider string
		)
		err := rows.Scan(
			&a.Email, &provider, &a.UserName,
			&a.DisplayName, &a.Color, &a.FamilyGroupID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		a.Provider = model.Provider(provider)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// DeleteAccount removes a connected account and its cached provider events.
func (s *SQLiteStore) DeleteAccount(
	ctx context.Context,
	email string,
	provider model.Provider,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM accounts WHERE email = ? AND provider = ?",
		email, string(provider),
	)
	if err != nil {
		return fmt.Errorf("deleting account %s-%s: %w", email, provider, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("account %s-%s not found", email, provider)
	}

	// Cached events are keyed on the account they came through, which
	// can differ from the displayed owner.
	_, err = tx.ExecContext(ctx,
		"DELETE FROM events WHERE source_email = ? AND provider = ?",
		email, string(provider),
	)
	if err != nil {
		return fmt.Errorf("deleting cached events for %s-%s: %w", email, provider, err)
	}

	return tx.Commit()
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
