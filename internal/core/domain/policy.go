package domain

import "time"

// Batch policy limits. Values outside these ranges are clamped, never rejected.
const (
	MinMaxParallel           = 1
	MaxMaxParallel           = 20
	MinInterBatchDelayMs     = 0
	MaxInterBatchDelayMs     = 99999
	DefaultMaxParallel       = 5
	DefaultInterBatchDelayMs = 3000
)

// BatchPolicy controls how the orchestrator schedules fetches.
type BatchPolicy struct {
	// RateLimited selects batched scheduling. When false every locator
	// is dispatched at once.
	RateLimited bool

	// MaxParallel is the batch size in rate-limited mode.
	MaxParallel int

	// InterBatchDelayMs is the pause between consecutive batches.
	InterBatchDelayMs int
}

// DefaultBatchPolicy returns the policy used when nothing is stored.
func DefaultBatchPolicy() BatchPolicy {
	return BatchPolicy{
		RateLimited:       false,
		MaxParallel:       DefaultMaxParallel,
		InterBatchDelayMs: DefaultInterBatchDelayMs,
	}
}

// Normalize returns a copy of the policy with every field clamped into range.
func (p BatchPolicy) Normalize() BatchPolicy {
	p.MaxParallel = ClampMaxParallel(p.MaxParallel)
	p.InterBatchDelayMs = ClampInterBatchDelay(p.InterBatchDelayMs)
	return p
}

// InterBatchDelay returns the inter-batch pause as a duration.
func (p BatchPolicy) InterBatchDelay() time.Duration {
	return time.Duration(p.InterBatchDelayMs) * time.Millisecond
}

// Partition splits locators into the dispatch groups the policy implies.
// Unthrottled mode yields a single group holding everything; rate-limited
// mode yields consecutive groups of MaxParallel (the last may be smaller).
func (p BatchPolicy) Partition(locators []string) [][]string {
	if len(locators) == 0 {
		return nil
	}
	if !p.RateLimited {
		return [][]string{locators}
	}

	size := ClampMaxParallel(p.MaxParallel)
	batches := make([][]string, 0, (len(locators)+size-1)/size)
	for start := 0; start < len(locators); start += size {
		end := min(start+size, len(locators))
		batches = append(batches, locators[start:end])
	}
	return batches
}

// ClampMaxParallel clamps n to [MinMaxParallel, MaxMaxParallel].
func ClampMaxParallel(n int) int {
	return clamp(n, MinMaxParallel, MaxMaxParallel)
}

// ClampInterBatchDelay clamps ms to [MinInterBatchDelayMs, MaxInterBatchDelayMs].
func ClampInterBatchDelay(ms int) int {
	return clamp(ms, MinInterBatchDelayMs, MaxInterBatchDelayMs)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
