package entries

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

// Repository is the sole interface other components use to read and write
// cached journal entries. Implementations hide the local store's
// transaction mechanics, including the entry_tags index table.
type Repository interface {
	// GetByID returns the cached entry or common.ErrNotFound on a miss.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// GetAllByUser returns all entries owned by userID via the user index.
	// The result is ordered by date and never nil.
	GetAllByUser(ctx context.Context, userID string) ([]models.Entry, error)

	// GetAllByGroup returns all entries scoped to groupID.
	GetAllByGroup(ctx context.Context, groupID string) ([]models.Entry, error)

	// GetByTag returns all entries carrying tagID via the tag index.
	GetByTag(ctx context.Context, tagID string) ([]models.Entry, error)

	// GetMostRecent returns the entry with the maximum date for userID,
	// or common.ErrNotFound when the user has no cached entries.
	GetMostRecent(ctx context.Context, userID string) (*models.Entry, error)

	// Add inserts a new entry; common.ErrDuplicateKey if the id exists.
	Add(ctx context.Context, entry *models.Entry) error

	// AddIfNotPresent inserts the entry only when its id is not already
	// cached. Used when merging a fetched batch with overlapping state.
	AddIfNotPresent(ctx context.Context, entry *models.Entry) error

	// Update upserts by id, so reconciliation can always save what it just
	// fetched without checking existence first.
	Update(ctx context.Context, entry *models.Entry) error

	// Delete removes the entry and its index rows; no-op when absent.
	Delete(ctx context.Context, id string) error
}
