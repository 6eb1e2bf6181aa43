package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs. This is the single
// source of truth for the database layout; all tests load it via
// GetSchemaSQL() so test schemas cannot drift from production.
const SchemaSQL = `
-- Projects (namespaces owning tasks)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	prefix TEXT NOT NULL UNIQUE,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tasks (units of work with lifecycle status and dependencies)
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id TEXT NOT NULL UNIQUE,
	project_id TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('task', 'bug', 'spike', 'epic')),
	name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('backlog', 'ready', 'in_progress', 'blocked', 'done')),
	priority INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 4),
	description TEXT,
	action TEXT NOT NULL,
	files_exclusive TEXT,
	files_readonly TEXT,
	files_forbidden TEXT,
	verify TEXT,
	done_criteria TEXT,
	depends_on TEXT,
	parent_id TEXT,
	execution_strategy TEXT,
	checkpoint_type TEXT,
	suggested_model TEXT CHECK(suggested_model IN ('haiku', 'sonnet', 'opus')),
	blocker_reason TEXT,
	blocker_needs TEXT,
	summary TEXT,
	commits TEXT,
	resolved_by_episode TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_project_type ON tasks(project_id, type);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority, created_at);
`

// List columns (files_*, verify, done_criteria, depends_on, commits) are
// stored as JSON arrays in TEXT columns; the sqlite adapter owns the
// encoding.

// InitSchema creates the database schema on the given connection.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
