package users

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

// Repository describes read/write operations over the cached users
// collection.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
