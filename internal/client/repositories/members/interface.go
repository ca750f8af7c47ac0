package members

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

// Repository describes read/write operations over the cached memberships
// collection. Unlike entity records, memberships follow an "add-if-new"
// convention: reconciliation may synthesize local rows, so inserts are
// keyed on the (user, group) pair rather than failing on duplicates.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Membership, error)
	GetAllByUser(ctx context.Context, userID string) ([]models.Membership, error)
	GetAllByGroup(ctx context.Context, groupID string) ([]models.Membership, error)

	// AddIfNew inserts the membership unless one already exists for the
	// same (user_id, group_id); in that case the existing row wins and
	// no error is reported, since the desired end state is reached.
	AddIfNew(ctx context.Context, m *models.Membership) error

	Update(ctx context.Context, m *models.Membership) error
	Delete(ctx context.Context, id string) error
}
