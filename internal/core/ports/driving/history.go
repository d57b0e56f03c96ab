package driving

import (
	"context"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// HistoryService exposes past download runs.
type HistoryService interface {
	// List returns the most recent runs first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get retrieves one run by ID.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)
}
