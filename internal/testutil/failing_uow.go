package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/dayline/internal/db"
)

// FailingUoW wraps the real SQLite unit of work and makes the Nth write
// (ExecContext) inside a transaction return Err. Reads are not counted.
// Writes records how many writes were attempted, the failing one included.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	Writes atomic.Int32
}

var _ db.UnitOfWork = (*FailingUoW)(nil)

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Writes.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
