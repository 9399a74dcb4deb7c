package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayline/internal/db"
	"github.com/alexanderramin/dayline/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

const taskColumns = `id, project_id, day, description, estimated_min, priority, quality,
	exact_time, window_name, window_start, window_end,
	completed, completed_at, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		nullableStringToValue(t.ProjectID),
		t.Day,
		t.Description,
		t.EstimatedMin,
		nullableIntToValue(t.Priority),
		string(t.Quality),
		t.ExactTime,
		t.WindowName,
		t.WindowStart,
		t.WindowEnd,
		boolToInt(t.Completed),
		nullableTimeToString(t.CompletedAt),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByDay(ctx context.Context, day string, includeCompleted bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE day = ?`
	if !includeCompleted {
		query += ` AND completed = 0`
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("listing tasks for %s: %w", day, err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, day = ?, description = ?, estimated_min = ?, priority = ?, quality = ?,
		exact_time = ?, window_name = ?, window_start = ?, window_end = ?,
		completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(t.ProjectID),
		t.Day,
		t.Description,
		t.EstimatedMin,
		nullableIntToValue(t.Priority),
		string(t.Quality),
		t.ExactTime,
		t.WindowName,
		t.WindowStart,
		t.WindowEnd,
		boolToInt(t.Completed),
		nullableTimeToString(t.CompletedAt),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectOneRow(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectOneRow(res, "task", id)
}

func scanTask(row scanner) (*domain.Task, error) {
	var t domain.Task
	var projectID, completedAtStr sql.NullString
	var priority sql.NullInt64
	var quality, createdAtStr, updatedAtStr string
	var completed int

	err := row.Scan(
		&t.ID, &projectID, &t.Day, &t.Description, &t.EstimatedMin, &priority, &quality,
		&t.ExactTime, &t.WindowName, &t.WindowStart, &t.WindowEnd,
		&completed, &completedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.ProjectID = nullableString(projectID)
	t.Priority = nullableInt(priority)
	t.Quality = domain.Quality(quality)
	t.Completed = intToBool(completed)
	t.CompletedAt = parseNullableTime(completedAtStr)

	var parseErr error
	if t.CreatedAt, parseErr = parseTime(createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if t.UpdatedAt, parseErr = parseTime(updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
