package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayline/internal/db"
	"github.com/alexanderramin/dayline/internal/domain"
)

// SQLiteTimeBlockRepo implements TimeBlockRepo using a SQLite database.
type SQLiteTimeBlockRepo struct {
	db db.DBTX
}

func NewSQLiteTimeBlockRepo(dbtx db.DBTX) *SQLiteTimeBlockRepo {
	return &SQLiteTimeBlockRepo{db: dbtx}
}

func (r *SQLiteTimeBlockRepo) Create(ctx context.Context, b *domain.TimeBlock) error {
	query := `INSERT INTO time_blocks (id, name, start_time, end_time, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.Start, b.End, formatTime(b.CreatedAt)); err != nil {
		return fmt.Errorf("inserting time block: %w", err)
	}
	return nil
}

func (r *SQLiteTimeBlockRepo) GetByName(ctx context.Context, name string) (*domain.TimeBlock, error) {
	query := `SELECT id, name, start_time, end_time, created_at FROM time_blocks WHERE name = ? COLLATE NOCASE`
	b, err := scanTimeBlock(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("time block %q: %w", name, ErrNotFound)
	}
	return b, err
}

func (r *SQLiteTimeBlockRepo) List(ctx context.Context) ([]*domain.TimeBlock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, start_time, end_time, created_at FROM time_blocks ORDER BY start_time, name`)
	if err != nil {
		return nil, fmt.Errorf("listing time blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*domain.TimeBlock
	for rows.Next() {
		b, err := scanTimeBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteTimeBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time block: %w", err)
	}
	return expectOneRow(res, "time block", id)
}

func scanTimeBlock(row scanner) (*domain.TimeBlock, error) {
	var b domain.TimeBlock
	var createdAtStr string
	if err := row.Scan(&b.ID, &b.Name, &b.Start, &b.End, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning time block: %w", err)
	}
	var err error
	if b.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &b, nil
}
