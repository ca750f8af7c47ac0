package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Membership) (*models.Membership, error) {

	query :=
		`INSERT INTO members (id, user_id, group_id, is_admin)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.GroupID, m.IsAdmin)
	if err != nil {
		if pgerr.UniqueViolation(err, "members_user_id_group_id_key") {
			return nil, common.ErrDuplicateKey
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) GetByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	query :=
		`SELECT id, user_id, group_id, is_admin FROM members
		 WHERE user_id = $1 AND group_id = $2
		 `

	m := &models.Membership{}
	err := r.db.QueryRowContext(ctx, query, userID, groupID).Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Membership, error) {
	query := `SELECT id, user_id, group_id, is_admin FROM members WHERE user_id = $1`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Membership, error) {
	query := `SELECT id, user_id, group_id, is_admin FROM members WHERE group_id = $1`
	return r.list(ctx, query, groupID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]models.Membership, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Membership{}
	for rows.Next() {
		m := models.Membership{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsAdmin); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
