package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/repomanager"
)

type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

func (s *TagService) Create(ctx context.Context, userID, tagName string) (*models.Tag, error) {
	if tagName == "" {
		return nil, fmt.Errorf("%w: tag name is required", common.ErrValidation)
	}

	tag := &models.Tag{ID: uuid.NewString(), UserID: userID, TagName: tagName}
	return s.repomanager.Tags(s.db).Create(ctx, tag)
}

func (s *TagService) ListByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	return s.repomanager.Tags(s.db).ListByUser(ctx, userID)
}

// Delete removes a tag owned by userID. A missing tag is not an error.
func (s *TagService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Tags(s.db)

	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.UserID != userID {
		return common.ErrUnauthorized
	}

	return repo.Delete(ctx, id)
}
