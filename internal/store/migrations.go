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

CREATE TABLE IF NOT EXISTS users (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL DEFAULT '',
	role     TEXT NOT NULL DEFAULT 'user',
	avatar   TEXT NOT NULL DEFAULT '',
	mood     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS columns (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	color       TEXT NOT NULL DEFAULT '',
	sort_order  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tags (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	caption            TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL DEFAULT 'todo',
	column_id          TEXT NOT NULL DEFAULT '',
	assignee_id        TEXT NOT NULL DEFAULT '',
	creator_id         TEXT NOT NULL DEFAULT '',
	created_at         DATETIME NOT NULL,
	due_date           DATETIME NOT NULL,
	post_date          DATETIME,
	completed_at       DATETIME,
	origin             TEXT NOT NULL DEFAULT '',
	social_platform    TEXT NOT NULL DEFAULT '',
	tag_ids            TEXT NOT NULL DEFAULT '[]',
	emoji              TEXT NOT NULL DEFAULT '',
	image_url          TEXT NOT NULL DEFAULT '',
	attachments        TEXT NOT NULL DEFAULT '[]',
	link               TEXT NOT NULL DEFAULT '',
	comments           TEXT NOT NULL DEFAULT '[]',
	history            TEXT NOT NULL DEFAULT '[]',
	approval_requested INTEGER NOT NULL DEFAULT 0,
	approval_status    TEXT NOT NULL DEFAULT 'none',
	approval_feedback  TEXT NOT NULL DEFAULT '',
	subtasks           TEXT NOT NULL DEFAULT '[]',
	estimated_hours    REAL NOT NULL DEFAULT 0,
	time_spent         INTEGER NOT NULL DEFAULT 0,
	timer_running      INTEGER NOT NULL DEFAULT 0,
	last_timer_start   DATETIME
);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	message    TEXT NOT NULL,
	read       INTEGER NOT NULL DEFAULT 0,
	type       TEXT NOT NULL DEFAULT 'info',
	created_at DATETIME NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS campaigns (
	id              TEXT PRIMARY KEY,
	platform        TEXT NOT NULL DEFAULT '',
	name            TEXT NOT NULL,
	active          INTEGER NOT NULL DEFAULT 1,
	budget_month    REAL NOT NULL DEFAULT 0,
	budget_daily    REAL NOT NULL DEFAULT 0,
	spent           REAL NOT NULL DEFAULT 0,
	cpc             REAL NOT NULL DEFAULT 0,
	conversions     INTEGER NOT NULL DEFAULT 0,
	roi             REAL NOT NULL DEFAULT 0,
	creative_url    TEXT NOT NULL DEFAULT '',
	caption         TEXT NOT NULL DEFAULT '',
	objective       TEXT NOT NULL DEFAULT '',
	start_date      DATETIME NOT NULL,
	end_date        DATETIME,
	leads_target    INTEGER NOT NULL DEFAULT 0,
	sales_target    INTEGER NOT NULL DEFAULT 0,
	leads_result    INTEGER NOT NULL DEFAULT 0,
	sales_result    INTEGER NOT NULL DEFAULT 0,
	custom_values   TEXT NOT NULL DEFAULT '{}',
	planning_values TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS custom_columns (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	kind  TEXT NOT NULL DEFAULT 'operational'
);

CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	updated_at DATETIME NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS meetings (
	id    TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS app_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_column_id ON tasks(column_id);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee_id ON tasks(assignee_id);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
