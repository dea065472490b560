package contracts

import (
	"context"

	"labelguard/domain/grounding"
)

// GroundingRepository defines storage operations for grounding data items.
type GroundingRepository interface {
	// GetByID retrieves a grounding item by id.
	GetByID(ctx context.Context, id string) (*grounding.GroundingData, error)

	// ListAll retrieves every stored grounding item.
	ListAll(ctx context.Context) ([]*grounding.GroundingData, error)

	// Save persists a grounding item, inserting or replacing by id.
	Save(ctx context.Context, data *grounding.GroundingData) error

	// Delete removes a grounding item by id.
	Delete(ctx context.Context, id string) (bool, error)
}
