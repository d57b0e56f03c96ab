package domain

// Success is a fetched payload and the name it will be archived under.
type Success struct {
	// Locator is the address the payload was fetched from.
	Locator string

	// Filename is the resolved archive entry name.
	Filename string

	// Payload is the full response body.
	Payload []byte

	// SizeBytes is len(Payload).
	SizeBytes int
}

// Failure records a locator that could not be fetched.
type Failure struct {
	// Locator is the address that failed.
	Locator string

	// Cause describes why. For fetches it is usually a *FetchError.
	Cause error
}

// Reason returns the cause as text, or "unknown" when none was recorded.
func (f Failure) Reason() string {
	if f.Cause == nil {
		return "unknown"
	}
	return f.Cause.Error()
}

// FetchOutcome is the result of one fetch. Exactly one of Success or
// Failure is non-nil.
type FetchOutcome struct {
	Success *Success
	Failure *Failure
}

// Succeeded builds a successful outcome.
func Succeeded(locator, filename string, payload []byte) FetchOutcome {
	return FetchOutcome{Success: &Success{
		Locator:   locator,
		Filename:  filename,
		Payload:   payload,
		SizeBytes: len(payload),
	}}
}

// Failed builds a failed outcome.
func Failed(locator string, cause error) FetchOutcome {
	return FetchOutcome{Failure: &Failure{Locator: locator, Cause: cause}}
}

// OK reports whether the outcome is a success.
func (o FetchOutcome) OK() bool {
	return o.Success != nil
}

// Locator returns the locator of whichever side is set.
func (o FetchOutcome) Locator() string {
	if o.Success != nil {
		return o.Success.Locator
	}
	if o.Failure != nil {
		return o.Failure.Locator
	}
	return ""
}

// ProgressFunc is notified once per completed fetch. Calls are serialised:
// completed increases by exactly one each call and never exceeds total.
type ProgressFunc func(completed, total int)

// BatchResult aggregates every outcome of one orchestrator run.
// len(Successes) + FailureCount() == TotalCount.
type BatchResult struct {
	// Successes are in completion order, not input order.
	Successes []Success

	// Failures are in completion order.
	Failures []Failure

	// TotalCount is the number of deduplicated locators.
	TotalCount int
}

// FailureCount returns the number of failed locators.
func (r *BatchResult) FailureCount() int {
	return len(r.Failures)
}

// SuccessCount returns the number of fetched payloads.
func (r *BatchResult) SuccessCount() int {
	return len(r.Successes)
}

// TotalBytes returns the combined payload size.
func (r *BatchResult) TotalBytes() int64 {
	var total int64
	for i := range r.Successes {
		total += int64(r.Successes[i].SizeBytes)
	}
	return total
}
