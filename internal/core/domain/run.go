package domain

import "time"

// RunRecord is the persisted summary of one download run.
type RunRecord struct {
	// ID is the unique identifier for the run (UUID v7).
	ID string

	// Label is the sanitised archive base name.
	Label string

	// Status is the terminal state.
	Status RunStatus

	// Policy is the batch policy the run used.
	Policy BatchPolicy

	// Total, Succeeded and Failed are locator counts after deduplication.
	Total     int
	Succeeded int
	Failed    int

	// ArchivePath is where the archive was saved, if any.
	ArchivePath string

	// ArchiveBytes is the archive size, if any.
	ArchiveBytes int64

	// Error holds the run-level error message, if any.
	Error string

	// Failures lists per-locator failures.
	Failures []FailureRecord

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run finished.
	EndedAt time.Time
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	if r.EndedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// FailureRecord is one failed locator within a run.
type FailureRecord struct {
	Locator string
	Reason  string
}

// NewRunRecord builds a record from a finished report.
func NewRunRecord(report *RunReport, policy BatchPolicy) RunRecord {
	record := RunRecord{
		ID:           report.RunID,
		Label:        report.Label,
		Status:       report.Status,
		Policy:       policy,
		ArchivePath:  report.ArchivePath,
		ArchiveBytes: int64(report.ArchiveBytes),
		StartedAt:    report.StartedAt,
		EndedAt:      report.EndedAt,
	}
	if report.Err != nil {
		record.Error = report.Err.Error()
	}
	if report.Result != nil {
		record.Total = report.Result.TotalCount
		record.Succeeded = report.Result.SuccessCount()
		record.Failed = report.Result.FailureCount()
		for _, f := range report.Result.Failures {
			record.Failures = append(record.Failures, FailureRecord{
				Locator: f.Locator,
				Reason:  f.Reason(),
			})
		}
	}
	return record
}
