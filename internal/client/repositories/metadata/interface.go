// Package metadata is a small key/value table in the local store. Values are
// opaque blobs; a missing key reads as (nil, nil).
package metadata

import (
	"context"
	"database/sql"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// DBTX is the part of database/sql the repository needs. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
