package groups

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

func (r *PostgresRepository) Create(ctx context.Context, group *models.Group) (*models.Group, error) {

	query :=
		`INSERT INTO groups (id, name, join_code)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, group.ID, group.Name, group.JoinCode)
	if err != nil {
		if pgerr.UniqueViolation(err, "groups_join_code_key") {
			return nil, common.ErrDuplicateKey
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	query := `SELECT id, name, join_code FROM groups WHERE id = $1`
	return r.getBy(ctx, query, id)
}

func (r *PostgresRepository) GetByJoinCode(ctx context.Context, joinCode string) (*models.Group, error) {
	query := `SELECT id, name, join_code FROM groups WHERE join_code = $1`
	return r.getBy(ctx, query, joinCode)
}

func (r *PostgresRepository) getBy(ctx context.Context, query string, arg any) (*models.Group, error) {
	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&group.ID, &group.Name, &group.JoinCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return group, nil
}
