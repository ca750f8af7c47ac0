package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/pgerr"
)

const entryColumns = `id, user_id, COALESCE(group_id::text, ''), date::text, rose_text, bud_text, thorn_text, is_public, tags, reactions`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanEntry(row interface{ Scan(...any) error }) (*models.Entry, error) {
	e := &models.Entry{}
	var tagsJSON, reactionsJSON []byte

	err := row.Scan(&e.ID, &e.UserID, &e.GroupID, &e.Date,
		&e.RoseText, &e.BudText, &e.ThornText, &e.IsPublic,
		&tagsJSON, &reactionsJSON)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &e.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if err := json.Unmarshal(reactionsJSON, &e.Reactions); err != nil {
		return nil, fmt.Errorf("decoding reactions: %w", err)
	}
	return e, nil
}

func encode(e *models.Entry) (tagsJSON, reactionsJSON []byte, err error) {
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Reactions == nil {
		e.Reactions = []models.Reaction{}
	}
	tagsJSON, err = json.Marshal(e.Tags)
	if err != nil {
		return nil, nil, err
	}
	reactionsJSON, err = json.Marshal(e.Reactions)
	if err != nil {
		return nil, nil, err
	}
	return tagsJSON, reactionsJSON, nil
}

// groupIDArg maps the empty string to NULL for the nullable group column.
func groupIDArg(groupID string) any {
	if groupID == "" {
		return nil
	}
	return groupID
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	tagsJSON, reactionsJSON, err := encode(entry)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO entries (id, user_id, group_id, date, rose_text, bud_text, thorn_text, is_public, tags, reactions)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, groupIDArg(entry.GroupID), entry.Date,
		entry.RoseText, entry.BudText, entry.ThornText, entry.IsPublic,
		tagsJSON, reactionsJSON)

	if err != nil {
		if pgerr.UniqueViolation(err, "idx_entries_user_date") {
			return nil, common.ErrEntryExistsForDate
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE group_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, groupID)
}

func (r *PostgresRepository) ListByTag(ctx context.Context, tagID string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		 WHERE id IN (SELECT entry_id FROM entry_tags WHERE tag_id = $1)
		 ORDER BY date DESC`
	return r.list(ctx, query, tagID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	tagsJSON, reactionsJSON, err := encode(entry)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE entries
		 SET group_id = $2, rose_text = $3, bud_text = $4, thorn_text = $5, is_public = $6, tags = $7, reactions = $8
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		entry.ID, groupIDArg(entry.GroupID),
		entry.RoseText, entry.BudText, entry.ThornText, entry.IsPublic,
		tagsJSON, reactionsJSON)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}

	return entry, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SetTags replaces the entry's rows in the entry_tags join table. Callers
// run it in the same transaction as the entry write.
func (r *PostgresRepository) SetTags(ctx context.Context, entryID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, tagID := range tagIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO entry_tags (entry_id, tag_id) VALUES ($1, $2)`, entryID, tagID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
