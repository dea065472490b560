package contracts

import (
	"context"

	"labelguard/domain/labels"
)

// LabelRepository defines storage operations for sensitivity labels.
// Implementations must support concurrent reads and serialize writes.
type LabelRepository interface {
	// GetByID retrieves a label by id. Returns a LabelNotFound error when
	// the id is absent.
	GetByID(ctx context.Context, id string) (*labels.Label, error)

	// GetByName retrieves a label by name. Returns a LabelNotFound error
	// when the name is absent.
	GetByName(ctx context.Context, name string) (*labels.Label, error)

	// GetByPriority retrieves all active labels at the given tier.
	GetByPriority(ctx context.Context, tier labels.PriorityTier) ([]*labels.Label, error)

	// GetAll retrieves every stored label, active or not.
	GetAll(ctx context.Context) ([]*labels.Label, error)

	// Create persists a new label. Errors on duplicate id or duplicate
	// active name.
	Create(ctx context.Context, label *labels.Label) (*labels.Label, error)

	// Update persists changes to an existing label, refreshing UpdatedAt
	// and preserving CreatedAt. Returns a LabelNotFound error when the id
	// is absent.
	Update(ctx context.Context, label *labels.Label) (*labels.Label, error)

	// Delete removes a label by id (hard delete). Returns false when the
	// id was not present.
	Delete(ctx context.Context, id string) (bool, error)
}
