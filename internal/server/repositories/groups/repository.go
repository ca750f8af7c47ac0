package groups

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, group *models.Group) (*models.Group, error)
	GetByID(ctx context.Context, id string) (*models.Group, error)
	GetByJoinCode(ctx context.Context, joinCode string) (*models.Group, error)
}
