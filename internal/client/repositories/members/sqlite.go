package members

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

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Membership, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		`SELECT id, user_id, group_id, is_admin FROM members WHERE id = ?`, id)

	var m models.Membership
	err = row.Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select membership: %w", err)
	}
	return &m, nil
}

func (r *SQLiteRepository) getAllBy(ctx context.Context, query string, arg string) ([]models.Membership, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to select memberships: %w", err)
	}
	defer rows.Close()

	result := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsAdmin); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Membership, error) {
	return r.getAllBy(ctx,
		`SELECT id, user_id, group_id, is_admin FROM members WHERE user_id = ?`, userID)
}

func (r *SQLiteRepository) GetAllByGroup(ctx context.Context, groupID string) ([]models.Membership, error) {
	return r.getAllBy(ctx,
		`SELECT id, user_id, group_id, is_admin FROM members WHERE group_id = ?`, groupID)
}

func (r *SQLiteRepository) AddIfNew(ctx context.Context, m *models.Membership) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	var one int
	err = db.QueryRowContext(ctx,
		`SELECT 1 FROM members WHERE user_id = ? AND group_id = ?`, m.UserID, m.GroupID).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	query := `INSERT INTO members (id, user_id, group_id, is_admin) VALUES (?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, m.ID, m.UserID, m.GroupID, m.IsAdmin); err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, m *models.Membership) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO members (id, user_id, group_id, is_admin)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			group_id = excluded.group_id,
			is_admin = excluded.is_admin
	`
	if _, err := db.ExecContext(ctx, query, m.ID, m.UserID, m.GroupID, m.IsAdmin); err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}
