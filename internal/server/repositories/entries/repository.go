package entries

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	GetByID(ctx context.Context, id string) (*models.Entry, error)
	ListByUser(ctx context.Context, userID string) ([]models.Entry, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Entry, error)
	ListByTag(ctx context.Context, tagID string) ([]models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, id string) error
	SetTags(ctx context.Context, entryID string, tagIDs []string) error
}
