// Package storage is the durable local store of the client: an SQLite file
// migrated with goose, exposing the metadata key/value table and the
// persisted member record.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/migrations"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

type Storage struct {
	db       *sql.DB
	Metadata metadata.Repository
}

// RunMigrations applies the embedded migrations; it is safe to call on an
// already migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// ensureDir creates the parent directory of a plain file DSN. In-memory and
// "file:" URI DSNs are left alone.
func ensureDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	if err := ensureDir(dsn); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Storage{db: db, Metadata: metadata.NewSQLiteRepository(db)}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Update runs fn against a transactional metadata repository. The
// transaction commits when fn returns nil and rolls back on error or panic;
// panics are rethrown.
func (s *Storage) Update(ctx context.Context, fn func(ctx context.Context, repo metadata.Repository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
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

	return fn(ctx, metadata.NewSQLiteRepository(tx))
}
