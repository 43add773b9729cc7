// internal/database/db.go
package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so queries run the same way
// inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// New creates a Queries instance bound to the given connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the prepared query set.
type Queries struct {
	db DBTX
}
