package groups

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

func (r *SQLiteRepository) getBy(ctx context.Context, query string, arg string) (*models.Group, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx, query, arg)

	var g models.Group
	err = row.Scan(&g.ID, &g.Name, &g.JoinCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select group: %w", err)
	}
	return &g, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	return r.getBy(ctx, `SELECT id, name, join_code FROM groups WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByJoinCode(ctx context.Context, code string) (*models.Group, error) {
	return r.getBy(ctx, `SELECT id, name, join_code FROM groups WHERE join_code = ?`, code)
}

// GetByName returns all cached groups with the given name; group names are
// not unique.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) ([]models.Group, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, name, join_code FROM groups WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to select groups: %w", err)
	}
	defer rows.Close()

	result := make([]models.Group, 0)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.JoinCode); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, group *models.Group) error {
	if _, err := r.GetByID(ctx, group.ID); err == nil {
		return common.ErrDuplicateKey
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `INSERT INTO groups (id, name, join_code) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, group.ID, group.Name, group.JoinCode); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, group *models.Group) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO groups (id, name, join_code)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			join_code = excluded.join_code
	`
	if _, err := db.ExecContext(ctx, query, group.ID, group.Name, group.JoinCode); err != nil {
		return fmt.Errorf("failed to upsert group: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
