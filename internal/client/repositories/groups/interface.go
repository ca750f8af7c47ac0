package groups

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

// Repository describes read/write operations over the cached groups
// collection. Join codes and names are resolved through secondary indexes.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Group, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Group, error)
	GetByName(ctx context.Context, name string) ([]models.Group, error)
	Add(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error
}
