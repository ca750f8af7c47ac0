package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/dbx"
	"github.com/rosebudapp/rosebud/internal/server/models"
	"github.com/rosebudapp/rosebud/internal/server/repositories/repomanager"
)

const dateLayout = "2006-01-02"

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager) *EntryService {
	return &EntryService{db: db, repomanager: m}
}

// Create stores a new entry for userID. The entry row and its tag index
// rows are written in one transaction.
func (s *EntryService) Create(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error) {

	if _, err := time.Parse(dateLayout, entry.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}

	entry.ID = uuid.NewString()
	entry.UserID = userID

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)
		if _, err := repo.Create(ctx, entry); err != nil {
			return err
		}
		return repo.SetTags(ctx, entry.ID, entry.Tags)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Update rewrites an existing entry owned by userID, keeping the tag index
// in step.
func (s *EntryService) Update(ctx context.Context, userID string, entry *models.Entry) (*models.Entry, error) {

	existing, err := s.repomanager.Entries(s.db).GetByID(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, common.ErrUnauthorized
	}

	entry.UserID = existing.UserID
	entry.Date = existing.Date

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)
		if _, err := repo.Update(ctx, entry); err != nil {
			return err
		}
		return repo.SetTags(ctx, entry.ID, entry.Tags)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Delete removes an entry owned by userID. A missing entry is not an error.
func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Entries(s.db)

	existing, err := repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return common.ErrUnauthorized
	}

	return repo.Delete(ctx, id)
}

func (s *EntryService) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	return s.repomanager.Entries(s.db).ListByUser(ctx, userID)
}

// ListByGroup returns a group's feed. The caller must be a member.
func (s *EntryService) ListByGroup(ctx context.Context, userID, groupID string) ([]models.Entry, error) {
	if _, err := s.repomanager.Members(s.db).GetByUserAndGroup(ctx, userID, groupID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	return s.repomanager.Entries(s.db).ListByGroup(ctx, groupID)
}

// ListByTag returns the caller's entries carrying a tag they own.
func (s *EntryService) ListByTag(ctx context.Context, userID, tagID string) ([]models.Entry, error) {
	tag, err := s.repomanager.Tags(s.db).GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag.UserID != userID {
		return nil, common.ErrUnauthorized
	}
	return s.repomanager.Entries(s.db).ListByTag(ctx, tagID)
}
