package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rosebudapp/rosebud/internal/client/models"
	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"
)

// SQLiteRepository implements Repository over the local store. The handle
// is resolved through a dbx.Conn on every call, so a store that failed to
// open surfaces its error per operation instead of at construction.
type SQLiteRepository struct {
	conn dbx.Conn
}

// NewSQLiteRepository returns a repository bound to an already open handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return NewStoreRepository(dbx.Bind(db))
}

// NewStoreRepository returns a repository that resolves the handle through
// conn at call time.
func NewStoreRepository(conn dbx.Conn) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

func (r *SQLiteRepository) getBy(ctx context.Context, query string, arg string) (*models.User, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx, query, arg)

	var u models.User
	err = row.Scan(&u.ID, &u.Username, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, `SELECT id, username, name, email FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, `SELECT id, username, name, email FROM users WHERE username = ?`, username)
}

func (r *SQLiteRepository) Add(ctx context.Context, user *models.User) error {
	if _, err := r.GetByID(ctx, user.ID); err == nil {
		return common.ErrDuplicateKey
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, username, name, email) VALUES (?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, user.ID, user.Username, user.Name, user.Email); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update upserts by id so reconciliation can always save a fetched user.
func (r *SQLiteRepository) Update(ctx context.Context, user *models.User) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, username, name, email)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			name = excluded.name,
			email = excluded.email
	`
	if _, err := db.ExecContext(ctx, query, user.ID, user.Username, user.Name, user.Email); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
