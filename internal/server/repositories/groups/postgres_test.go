package groups

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+groups`).
		WithArgs("g-1", "family", "CODE1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.Group{ID: "g-1", Name: "family", JoinCode: "CODE1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.JoinCode != "CODE1" {
		t.Fatalf("unexpected group: %+v", got)
	}
}

func TestCreate_JoinCodeCollision(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "groups_join_code_key"}
	mock.ExpectExec(`INSERT\s+INTO\s+groups`).
		WillReturnError(pgErr)

	_, err := repo.Create(context.Background(), &models.Group{ID: "g-1", Name: "family", JoinCode: "CODE1"})
	if !errors.Is(err, common.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestGetByJoinCode(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "join_code"}).AddRow("g-1", "family", "CODE1")
	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*join_code\s+FROM\s+groups\s+WHERE\s+join_code\s*=\s*\$1`).
		WithArgs("CODE1").
		WillReturnRows(rows)

	got, err := repo.GetByJoinCode(context.Background(), "CODE1")
	if err != nil {
		t.Fatalf("GetByJoinCode error: %v", err)
	}
	if got.ID != "g-1" {
		t.Fatalf("unexpected group: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*join_code\s+FROM\s+groups\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
