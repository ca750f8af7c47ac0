package tags

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

// tagColumns aggregates the ids of entries carrying the tag from the
// entry_tags join table into a JSON array.
const tagColumns = `t.id, t.user_id, t.tag_name,
	COALESCE(json_agg(et.entry_id) FILTER (WHERE et.entry_id IS NOT NULL), '[]')`

const tagJoin = `FROM tags t LEFT JOIN entry_tags et ON et.tag_id = t.id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTag(row interface{ Scan(...any) error }) (*models.Tag, error) {
	tag := &models.Tag{}
	var entriesJSON []byte

	if err := row.Scan(&tag.ID, &tag.UserID, &tag.TagName, &entriesJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(entriesJSON, &tag.Entries); err != nil {
		return nil, fmt.Errorf("decoding entry ids: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {

	query :=
		`INSERT INTO tags (id, user_id, tag_name)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.UserID, tag.TagName)
	if err != nil {
		if pgerr.UniqueViolation(err, "tags_user_id_tag_name_key") {
			return nil, common.ErrDuplicateKey
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if tag.Entries == nil {
		tag.Entries = []string{}
	}
	return tag, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := `SELECT ` + tagColumns + ` ` + tagJoin + ` WHERE t.id = $1 GROUP BY t.id`

	tag, err := scanTag(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	query := `SELECT ` + tagColumns + ` ` + tagJoin + ` WHERE t.user_id = $1 GROUP BY t.id ORDER BY t.tag_name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
