// Package entries is the access object for the cached entries collection.
// Every mutation keeps the entry_tags index table in step with the entry row
// inside one transaction.
package entries

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

const entryColumns = `id, user_id, group_id, date, rose_text, bud_text, thorn_text, is_public, tags, reactions`

// SQLiteRepository implements Repository over the local store. The handle
// is resolved through a dbx.Conn on every call, so a store that failed to
// open surfaces its error per operation instead of at construction. Row and
// index mutations run together in a transaction on the resolved *sql.DB.
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

func scanEntry(row rowScanner) (*models.Entry, error) {
	var e models.Entry
	var tags, reactions []byte
	err := row.Scan(&e.ID, &e.UserID, &e.GroupID, &e.Date,
		&e.RoseText, &e.BudText, &e.ThornText, &e.IsPublic, &tags, &reactions)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &e.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if err := json.Unmarshal(reactions, &e.Reactions); err != nil {
		return nil, fmt.Errorf("failed to decode reactions: %w", err)
	}
	return &e, nil
}

func (r *SQLiteRepository) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	db, err := r.conn.DB()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ? ORDER BY date`, userID)
}

func (r *SQLiteRepository) GetAllByGroup(ctx context.Context, groupID string) ([]models.Entry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE group_id = ? ORDER BY date`, groupID)
}

func (r *SQLiteRepository) GetByTag(ctx context.Context, tagID string) ([]models.Entry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE id IN (SELECT entry_id FROM entry_tags WHERE tag_id = ?)
		ORDER BY date`, tagID)
}

// GetMostRecent scans the user-scoped result and takes the maximum date.
// Per-user entry counts are tens to low hundreds, so a linear max beats
// maintaining a descending index.
func (r *SQLiteRepository) GetMostRecent(ctx context.Context, userID string) (*models.Entry, error) {
	all, err := r.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, common.ErrNotFound
	}

	latest := all[0]
	for _, e := range all[1:] {
		if e.Date > latest.Date {
			latest = e
		}
	}
	return &latest, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, entry *models.Entry) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM entries WHERE id = ?`, entry.ID).Scan(&one)
		if err == nil {
			return common.ErrDuplicateKey
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check entry: %w", err)
		}
		return insertEntry(ctx, tx, entry)
	})
}

// AddIfNotPresent reads the user's cached entries, checks existence by id
// and only then adds. Used by group-entry sync to merge a fetched batch with
// possibly-overlapping cached state without fabricating duplicates.
func (r *SQLiteRepository) AddIfNotPresent(ctx context.Context, entry *models.Entry) error {
	all, err := r.GetAllByUser(ctx, entry.UserID)
	if err != nil {
		return err
	}
	for _, e := range all {
		if e.ID == entry.ID {
			return nil
		}
	}
	if err := r.Add(ctx, entry); errors.Is(err, common.ErrDuplicateKey) {
		// Someone got there first; the desired end state is already reached.
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

// Update upserts the entry and rebuilds its tag index rows in the same
// transaction, so the index always reflects exactly the stored row.
func (r *SQLiteRepository) Update(ctx context.Context, entry *models.Entry) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tags, reactions, err := encodeEntry(entry)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO entries (` + entryColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				group_id = excluded.group_id,
				date = excluded.date,
				rose_text = excluded.rose_text,
				bud_text = excluded.bud_text,
				thorn_text = excluded.thorn_text,
				is_public = excluded.is_public,
				tags = excluded.tags,
				reactions = excluded.reactions
		`
		if _, err := tx.ExecContext(ctx, query,
			entry.ID, entry.UserID, entry.GroupID, entry.Date,
			entry.RoseText, entry.BudText, entry.ThornText, entry.IsPublic, tags, reactions); err != nil {
			return fmt.Errorf("failed to upsert entry: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, entry.ID); err != nil {
			return fmt.Errorf("failed to clear tag index: %w", err)
		}
		return indexTags(ctx, tx, entry)
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn.DB()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear tag index: %w", err)
		}
		// Absent rows are not an error.
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		return nil
	})
}

func encodeEntry(entry *models.Entry) (tags, reactions []byte, err error) {
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if entry.Reactions == nil {
		entry.Reactions = []models.Reaction{}
	}
	tags, err = json.Marshal(entry.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	reactions, err = json.Marshal(entry.Reactions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode reactions: %w", err)
	}
	return tags, reactions, nil
}

func insertEntry(ctx context.Context, tx dbx.DBTX, entry *models.Entry) error {
	tags, reactions, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	query := `INSERT INTO entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.GroupID, entry.Date,
		entry.RoseText, entry.BudText, entry.ThornText, entry.IsPublic, tags, reactions); err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return indexTags(ctx, tx, entry)
}

func indexTags(ctx context.Context, tx dbx.DBTX, entry *models.Entry) error {
	for _, tagID := range entry.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`, entry.ID, tagID); err != nil {
			return fmt.Errorf("failed to index tag: %w", err)
		}
	}
	return nil
}
