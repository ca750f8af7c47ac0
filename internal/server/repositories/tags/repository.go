package tags

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	ListByUser(ctx context.Context, userID string) ([]models.Tag, error)
	Delete(ctx context.Context, id string) error
}
