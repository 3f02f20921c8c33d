package store

import (
	"context"
	"database/sql"
)

// PageSize is the fixed number of records returned per page by the list
// operations. Clients select a page with a 1-based page query parameter;
// there is no way to change the page size per request.
const PageSize = 20

// DBTX abstracts the database access layer. Both *sql.DB and *sql.Tx
// satisfy it, so store implementations work unchanged inside and outside
// transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
