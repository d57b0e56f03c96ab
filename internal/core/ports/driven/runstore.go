package driven

import (
	"context"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// RunStore persists download run history.
type RunStore interface {
	// Save inserts or replaces a run record.
	Save(ctx context.Context, run *domain.RunRecord) error

	// Get retrieves a run by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// List returns the most recent runs first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
