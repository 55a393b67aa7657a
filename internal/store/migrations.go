package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS families (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS family_members (
	id              TEXT PRIMARY KEY,
	family_group_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
	name            TEXT NOT NULL,
	role            TEXT NOT NULL DEFAULT 'parent' CHECK(role IN ('parent', 'child', 'pet')),
	email           TEXT NOT NULL DEFAULT '',
	color           TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_family_members_group ON family_members(family_group_id);

CREATE TABLE IF NOT EXISTS accounts (
	email           TEXT NOT NULL,
	provider        TEXT NOT NULL,
	user_name       TEXT NOT NULL DEFAULT '',
	display_name    TEXT NOT NULL DEFAULT '',
	color           TEXT NOT NULL DEFAULT '',
	family_group_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
	PRIMARY KEY (email, provider)
);

CREATE INDEX IF NOT EXISTS idx_accounts_group ON accounts(family_group_id);

CREATE TABLE IF NOT EXISTS events (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL DEFAULT '',
	start_at        DATETIME,
	end_at          DATETIME,
	all_day         INTEGER NOT NULL DEFAULT 0 CHECK(all_day IN (0, 1)),
	owner_email     TEXT NOT NULL DEFAULT '',
	provider        TEXT NOT NULL DEFAULT 'dockly',
	color           TEXT NOT NULL DEFAULT '',
	family_group_id TEXT NOT NULL DEFAULT '',
	location        TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_events_group ON events(family_group_id);
CREATE INDEX IF NOT EXISTS idx_events_provider_owner ON events(provider, owner_email);
CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date    DATETIME,
	visibility  TEXT NOT NULL DEFAULT 'private' CHECK(visibility IN ('public', 'private')),
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS project_groups (
	project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	family_group_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
	PRIMARY KEY (project_id, family_group_id)
);

CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	assignee   TEXT NOT NULL DEFAULT '',
	completed  INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	due_date   DATETIME,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS goals (
	id              TEXT PRIMARY KEY,
	text            TEXT NOT NULL,
	completed       INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	date            DATETIME,
	time_of_day     TEXT NOT NULL DEFAULT '',
	family_group_id TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_goals_group ON goals(family_group_id);

CREATE TABLE IF NOT EXISTS todos (
	id              TEXT PRIMARY KEY,
	text            TEXT NOT NULL,
	completed       INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	priority        INTEGER NOT NULL DEFAULT 2 CHECK(priority BETWEEN 1 AND 3),
	date            DATETIME,
	time_of_day     TEXT NOT NULL DEFAULT '',
	goal_id         TEXT REFERENCES goals(id) ON DELETE SET NULL,
	family_group_id TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_todos_group ON todos(family_group_id);
CREATE INDEX IF NOT EXISTS idx_todos_goal ON todos(goal_id);
CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
	{
		version: 4,
		sql: `
CREATE TABLE IF NOT EXISTS notes (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	body            TEXT NOT NULL DEFAULT '',
	family_group_id TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS note_tags (
	note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
	tag     TEXT NOT NULL,
	PRIMARY KEY (note_id, tag)
);

CREATE TABLE IF NOT EXISTS chores (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	assignee_id     TEXT REFERENCES family_members(id) ON DELETE SET NULL,
	recurrence      TEXT NOT NULL DEFAULT 'none' CHECK(recurrence IN ('none', 'daily', 'weekly', 'monthly')),
	status          TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'completed', 'overdue')),
	due_date        DATETIME,
	completed_at    DATETIME,
	family_group_id TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chores_group ON chores(family_group_id);
CREATE INDEX IF NOT EXISTS idx_chores_status ON chores(status);

CREATE TABLE IF NOT EXISTS meals (
	id              TEXT PRIMARY KEY,
	date            TEXT NOT NULL,
	meal_type       TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner')),
	name            TEXT NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	family_group_id TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (date, meal_type, family_group_id)
);

CREATE INDEX IF NOT EXISTS idx_meals_group_date ON meals(family_group_id, date);

INSERT INTO schema_version (version) VALUES (4);
`,
	},
	{
		version: 5,
		sql: `
ALTER TABLE events ADD COLUMN source_email TEXT NOT NULL DEFAULT '';

UPDATE events SET source_email = owner_email WHERE source_email = '';

DROP INDEX IF EXISTS idx_events_provider_owner;
CREATE INDEX IF NOT EXISTS idx_events_provider_source ON events(provider, source_email);

INSERT INTO schema_version (version) VALUES (5);
`,
	},
}
