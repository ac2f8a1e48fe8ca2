// Package dbx provides the small database layer shared by the SQL
// repositories: the DBTX interface satisfied by *sql.DB and *sql.Tx, a
// transaction helper, and runners for statements built with goqu.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Statement is anything that renders to SQL with bound args; every goqu
// dataset qualifies.
type Statement interface {
	ToSQL() (string, []any, error)
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back on error or panic. Panics are rethrown after rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// Exec renders st and executes it on db.
func Exec(ctx context.Context, db DBTX, st Statement) (sql.Result, error) {
	query, args, err := st.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}
	return db.ExecContext(ctx, query, args...)
}

// Query renders st and runs it on db.
func Query(ctx context.Context, db DBTX, st Statement) (*sql.Rows, error) {
	query, args, err := st.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}
	return db.QueryContext(ctx, query, args...)
}

// QueryRow renders st and runs it on db expecting at most one row.
func QueryRow(ctx context.Context, db DBTX, st Statement) (*sql.Row, error) {
	query, args, err := st.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}
	return db.QueryRowContext(ctx, query, args...), nil
}
