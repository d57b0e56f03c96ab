package driving

import (
	"context"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// BatchRunner fetches a set of locators under a batch policy.
type BatchRunner interface {
	// Run deduplicates locators and fetches each exactly once.
	// onProgress may be nil. The returned result always accounts for every
	// deduplicated locator. A non-nil error means the run was cut short by
	// ctx or the runner is not configured.
	Run(
		ctx context.Context,
		locators []string,
		policy domain.BatchPolicy,
		onProgress domain.ProgressFunc,
	) (*domain.BatchResult, error)

	// Status returns a snapshot of the current run.
	Status() BatchStatus
}

// BatchStatus is a point-in-time view of a running orchestrator.
type BatchStatus struct {
	// Running is true while a run is in progress.
	Running bool

	// Completed is the number of fetches that produced an outcome.
	Completed int

	// Total is the deduplicated locator count.
	Total int

	// Batch is the 1-based index of the batch in flight.
	Batch int

	// Batches is the number of batches in the run.
	Batches int
}
