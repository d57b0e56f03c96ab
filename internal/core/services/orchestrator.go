package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driving"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// Ensure BatchOrchestrator implements the interface.
var _ driving.BatchRunner = (*BatchOrchestrator)(nil)

// BatchOrchestrator schedules fetches under a BatchPolicy.
//
// Each batch is served by a worker pool consuming a work queue, with
// workers reporting onto a result channel. A single collector reads exactly
// one outcome per locator, so progress updates are serialised without the
// workers sharing any state.
type BatchOrchestrator struct {
	fetcher Fetcher
	sleep   func(ctx context.Context, d time.Duration) error

	// Status tracking
	mu     sync.RWMutex
	status driving.BatchStatus
}

// NewBatchOrchestrator creates an orchestrator around a fetcher.
func NewBatchOrchestrator(fetcher Fetcher) *BatchOrchestrator {
	return &BatchOrchestrator{
		fetcher: fetcher,
		sleep:   sleepContext,
	}
}

// Run deduplicates locators and fetches each one exactly once.
//
// Unthrottled runs dispatch every locator at once. Rate-limited runs fetch
// consecutive batches of MaxParallel, waiting for a batch to finish and then
// pausing InterBatchDelayMs before the next. Individual failures are
// recorded and never stop the run. When ctx is cancelled, no further batch
// starts, locators that never ran are recorded as cancelled failures and
// ctx.Err() is returned with the partial result.
func (o *BatchOrchestrator) Run(
	ctx context.Context,
	locators []string,
	policy domain.BatchPolicy,
	onProgress domain.ProgressFunc,
) (*domain.BatchResult, error) {
	if o.fetcher == nil {
		return nil, fmt.Errorf("batch orchestrator: fetcher %w", domain.ErrNotConfigured)
	}

	unique := domain.Dedupe(locators)
	policy = policy.Normalize()
	batches := policy.Partition(unique)

	result := &domain.BatchResult{
		Successes:  []domain.Success{},
		Failures:   []domain.Failure{},
		TotalCount: len(unique),
	}

	o.begin(len(unique), len(batches))
	defer o.finish()

	logger.Info("Starting %d downloads in %d batch(es), rate limited: %t",
		len(unique), len(batches), policy.RateLimited)

	completed := 0
	for i, batch := range batches {
		if i > 0 {
			logger.Debug("Waiting %s before batch %d", policy.InterBatchDelay(), i+1)
			if err := o.sleep(ctx, policy.InterBatchDelay()); err != nil {
				skip(result, batches[i:], err)
				return result, err
			}
		}
		if err := ctx.Err(); err != nil {
			skip(result, batches[i:], err)
			return result, err
		}

		o.setBatch(i + 1)
		logger.Debug("Batch %d/%d: %d locators", i+1, len(batches), len(batch))

		if err := o.runBatch(ctx, batch, func(outcome domain.FetchOutcome) {
			completed++
			if outcome.OK() {
				result.Successes = append(result.Successes, *outcome.Success)
			} else {
				result.Failures = append(result.Failures, *outcome.Failure)
			}
			o.setCompleted(completed)
			if onProgress != nil {
				onProgress(completed, result.TotalCount)
			}
		}); err != nil {
			return result, fmt.Errorf("run batch %d: %w", i+1, err)
		}
	}

	logger.Info("Finished: %d succeeded, %d failed", result.SuccessCount(), result.FailureCount())

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// runBatch fetches every locator in batch concurrently and calls collect
// once per outcome from the calling goroutine.
func (o *BatchOrchestrator) runBatch(ctx context.Context, batch []string, collect func(domain.FetchOutcome)) error {
	queue := make(chan string, len(batch))
	for _, locator := range batch {
		queue <- locator
	}
	close(queue)

	results := make(chan domain.FetchOutcome, len(batch))

	var g errgroup.Group
	for range batch {
		g.Go(func() error {
			for locator := range queue {
				results <- o.fetcher.Fetch(ctx, locator)
			}
			return nil
		})
	}

	for range batch {
		collect(<-results)
	}

	return g.Wait()
}

// Status returns a snapshot of the current run.
func (o *BatchOrchestrator) Status() driving.BatchStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

func (o *BatchOrchestrator) begin(total, batches int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = driving.BatchStatus{Running: true, Total: total, Batches: batches}
}

func (o *BatchOrchestrator) setBatch(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.Batch = n
}

func (o *BatchOrchestrator) setCompleted(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.Completed = n
}

func (o *BatchOrchestrator) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.Running = false
}

// skip records every locator in the remaining batches as cancelled.
func skip(result *domain.BatchResult, remaining [][]string, cause error) {
	for _, batch := range remaining {
		for _, locator := range batch {
			result.Failures = append(result.Failures, domain.Failure{
				Locator: locator,
				Cause:   &domain.FetchError{Locator: locator, Kind: domain.FetchErrorCancelled, Cause: cause},
			})
		}
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
