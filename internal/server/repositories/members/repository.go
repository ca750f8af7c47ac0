package members

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Membership) (*models.Membership, error)
	GetByUserAndGroup(ctx context.Context, userID, groupID string) (*models.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]models.Membership, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Membership, error)
}
