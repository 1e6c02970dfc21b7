package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/planeasy/internal/db"
)

// FailOnNthExecUoW runs real transactions whose FailOn-th ExecContext,
// counting from 1, returns Err. Reads are never failed.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failOnNthExec struct {
	db.DBTX
	execs  int
	failOn int
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execs++
	if f.execs == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// BrokenDBTX wraps a DBTX and fails reads, writes or both. It stands in for
// a store whose disk is unavailable.
type BrokenDBTX struct {
	db.DBTX
	FailReads  bool
	FailWrites bool
	Err        error
}

func (b *BrokenDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if b.FailWrites {
		return nil, b.Err
	}
	return b.DBTX.ExecContext(ctx, query, args...)
}

func (b *BrokenDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if b.FailReads {
		return nil, b.Err
	}
	return b.DBTX.QueryContext(ctx, query, args...)
}

// QueryRowContext routes a failing read through a cancelled context, since a
// *sql.Row cannot be built with an arbitrary error.
func (b *BrokenDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if b.FailReads {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return b.DBTX.QueryRowContext(cancelled, query, args...)
	}
	return b.DBTX.QueryRowContext(ctx, query, args...)
}
