package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the book store runs on. Both *sql.DB and
// *sql.Tx satisfy it, so the same store can serve plain requests and
// spreadsheet imports that batch their writes inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
