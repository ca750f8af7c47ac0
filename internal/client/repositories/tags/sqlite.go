package tags

import (
	"context"
	"database/sql"
	"encoding/json"
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTag(row rowScanner) (*models.Tag, error) {
	var tag models.Tag
	var entries []byte
	if err := row.Scan(&tag.ID, &tag.UserID, &tag.TagName, &entries); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(entries, &tag.Entries); err != nil {
		return nil, fmt.Errorf("failed to decode entry list: %w", err)
	}
	return &tag, nil
}

func (r *SQLiteRepository) getBy(ctx context.Context, query string, args ...any) (*models.Tag, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	tag, err := scanTag(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select tag: %w", err)
	}
	return tag, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return r.getBy(ctx, `SELECT id, user_id, tag_name, entries FROM tags WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByName(ctx context.Context, userID, tagName string) (*models.Tag, error) {
	return r.getBy(ctx,
		`SELECT id, user_id, tag_name, entries FROM tags WHERE user_id = ? AND tag_name = ?`,
		userID, tagName)
}

func (r *SQLiteRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, tag_name, entries FROM tags WHERE user_id = ? ORDER BY tag_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	result := make([]models.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func encodeEntries(tag *models.Tag) ([]byte, error) {
	if tag.Entries == nil {
		tag.Entries = []string{}
	}
	entries, err := json.Marshal(tag.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry list: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, tag *models.Tag) error {
	if _, err := r.GetByID(ctx, tag.ID); err == nil {
		return common.ErrDuplicateKey
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	entries, err := encodeEntries(tag)
	if err != nil {
		return err
	}

	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `INSERT INTO tags (id, user_id, tag_name, entries) VALUES (?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, tag.ID, tag.UserID, tag.TagName, entries); err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, tag *models.Tag) error {
	entries, err := encodeEntries(tag)
	if err != nil {
		return err
	}

	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tags (id, user_id, tag_name, entries)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			tag_name = excluded.tag_name,
			entries = excluded.entries
	`
	if _, err := db.ExecContext(ctx, query, tag.ID, tag.UserID, tag.TagName, entries); err != nil {
		return fmt.Errorf("failed to upsert tag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
