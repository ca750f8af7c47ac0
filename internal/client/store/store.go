// Package store manages the client's persistent local cache: a SQLite
// database holding the five entity collections (users, entries, groups,
// tags, members). The store is opened once at startup and wiped in full at
// logout; everything in between goes through the per-entity repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/rosebudapp/rosebud/internal/client/store/migrations"
	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"

	_ "modernc.org/sqlite"
)

// collections lists every table cleared by Wipe. entry_tags is the secondary
// index for entries-by-tag and is cleared together with entries.
var collections = []string{"users", "entries", "entry_tags", "groups", "tags", "members"}

// Store owns the local SQLite handle. Open is idempotent and safe for
// concurrent callers: all of them end up sharing the same initialized
// handle, and the schema is only migrated once.
type Store struct {
	dsn string

	mu sync.Mutex
	db *sql.DB
}

// New returns an unopened Store for the given SQLite DSN
// (a file path, or ":memory:" in tests).
func New(dsn string) *Store {
	return &Store{dsn: dsn}
}

// Open ensures the database exists at the current schema version and returns
// the shared handle. Repeated and concurrent calls return the already
// initialized handle; migrations only ever add collections and indexes, so
// reopening an existing store at the same version is a no-op. A failure
// leaves the store closed and is reported as common.ErrStoreUnavailable so
// callers can degrade to network-only reads.
func (s *Store) Open(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	s.db = db
	return s.db, nil
}

// DB returns the handle established by Open, or common.ErrStoreUnavailable
// if the store was never opened successfully.
func (s *Store) DB() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, common.ErrStoreUnavailable
	}
	return s.db, nil
}

// Wipe empties every collection in a single transaction. Used only at
// logout; either all collections are cleared or none are.
func (s *Store) Wipe(ctx context.Context) error {
	db, err := s.DB()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range collections {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// Close releases the underlying handle. A subsequent Open reinitializes it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// gooseUpContext is a seam for testing migration failures.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
