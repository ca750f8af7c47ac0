package tags

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

// Repository describes read/write operations over the cached tags
// collection.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	GetAllByUser(ctx context.Context, userID string) ([]models.Tag, error)
	GetByName(ctx context.Context, userID, tagName string) (*models.Tag, error)
	Add(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
}
