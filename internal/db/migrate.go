package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		parent_id   TEXT REFERENCES projects(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_blocks (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_blocks_name ON time_blocks(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		project_id    TEXT REFERENCES projects(id) ON DELETE SET NULL,
		day           TEXT NOT NULL,
		description   TEXT NOT NULL,
		estimated_min INTEGER NOT NULL CHECK(estimated_min > 0),
		priority      INTEGER,
		quality       TEXT NOT NULL DEFAULT ''
		              CHECK(quality IN ('','A','B','C','D')),
		exact_time    TEXT NOT NULL DEFAULT '',
		window_name   TEXT NOT NULL DEFAULT '',
		window_start  TEXT NOT NULL DEFAULT '',
		window_end    TEXT NOT NULL DEFAULT '',
		completed     INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_day ON tasks(day, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	// completion timestamps
	`ALTER TABLE tasks ADD COLUMN completed_at TEXT`,
}
