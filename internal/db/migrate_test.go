package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"projects", "tasks", "time_blocks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_time_blocks_name", "idx_tasks_day", "idx_tasks_project"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsCompletedAt(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(tasks)`)
	require.NoError(t, err)
	defer rows.Close()

	var found bool
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk))
		if name == "completed_at" {
			found = true
		}
	}
	require.NoError(t, rows.Err())
	assert.True(t, found)
}

func TestTimeBlockNameUniqueIgnoringCase(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO time_blocks (id, name, start_time, end_time, created_at) VALUES ('1','Morning','06:00','12:00','x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO time_blocks (id, name, start_time, end_time, created_at) VALUES ('2','morning','07:00','11:00','x')`)
	assert.Error(t, err)
}

func TestTaskChecks(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tasks (id, day, description, estimated_min, created_at, updated_at)
		VALUES ('t1','2025-06-15','zero',0,'x','x')`)
	assert.Error(t, err, "estimated_min must be positive")

	_, err = db.Exec(`INSERT INTO tasks (id, day, description, estimated_min, quality, created_at, updated_at)
		VALUES ('t2','2025-06-15','bad quality',30,'E','x','x')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, project_id, day, description, estimated_min, created_at, updated_at)
		VALUES ('t3','missing','2025-06-15','orphan',30,'x','x')`)
	assert.Error(t, err, "foreign keys are enforced")
}
