package domain

import (
	"errors"
	"fmt"
	"time"
)

// RunStatus is the terminal state of one download run.
type RunStatus string

// Terminal run states.
const (
	// StatusNoLocators means nothing was found to download. Not an error.
	StatusNoLocators RunStatus = "no_locators"

	// StatusAllFailed means every fetch failed and no archive was built.
	StatusAllFailed RunStatus = "all_failed"

	// StatusPartial means some fetches failed; the rest were archived.
	StatusPartial RunStatus = "partial"

	// StatusComplete means every fetch succeeded and was archived.
	StatusComplete RunStatus = "complete"

	// StatusArchiveFailed means fetches succeeded but packaging failed.
	StatusArchiveFailed RunStatus = "archive_failed"

	// StatusCancelled means the caller cancelled the run.
	StatusCancelled RunStatus = "cancelled"
)

// IsValid returns true if the status is recognised.
func (s RunStatus) IsValid() bool {
	switch s {
	case StatusNoLocators, StatusAllFailed, StatusPartial, StatusComplete,
		StatusArchiveFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFailure returns true for states the caller should treat as an error.
func (s RunStatus) IsFailure() bool {
	return s == StatusAllFailed || s == StatusArchiveFailed || s == StatusCancelled
}

// String returns the string representation.
func (s RunStatus) String() string {
	return string(s)
}

// Description returns a human-readable description of the status.
func (s RunStatus) Description() string {
	switch s {
	case StatusNoLocators:
		return "Nothing to download"
	case StatusAllFailed:
		return "All downloads failed"
	case StatusPartial:
		return "Partially downloaded"
	case StatusComplete:
		return "Complete"
	case StatusArchiveFailed:
		return "Packaging failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return unknownDescription
	}
}

// RunReport summarises a finished download run for the caller.
type RunReport struct {
	// RunID identifies the run in history. Empty when nothing ran.
	RunID string

	// Label is the sanitised archive base name.
	Label string

	// Status is the terminal state.
	Status RunStatus

	// Result holds the orchestrator outcome. Nil when no fetch ran.
	Result *BatchResult

	// ArchivePath is where the output sink stored the archive.
	ArchivePath string

	// ArchiveBytes is the size of the assembled archive.
	ArchiveBytes int

	// Err is the error that ended the run, if any.
	Err error

	// StartedAt and EndedAt bound the run.
	StartedAt time.Time
	EndedAt   time.Time
}

// ArchiveName returns the file name the archive is offered under.
func (r *RunReport) ArchiveName() string {
	return ArchiveFilename(r.Label)
}

// counts returns success, failure and total counts, tolerating a nil result.
func (r *RunReport) counts() (succeeded, failed, total int) {
	if r.Result == nil {
		return 0, 0, 0
	}
	return r.Result.SuccessCount(), r.Result.FailureCount(), r.Result.TotalCount
}

// StatusLine renders the final status for display. It never requires the
// diagnostic log to tell success, partial success and failure apart.
func (r *RunReport) StatusLine() string {
	succeeded, failed, total := r.counts()

	switch r.Status {
	case StatusNoLocators:
		return "No downloadable items found."
	case StatusAllFailed:
		return "Failed to download any files."
	case StatusPartial:
		return fmt.Sprintf("✓ Downloaded %s (%d of %d files, %d failed)", r.ArchiveName(), succeeded, total, failed)
	case StatusComplete:
		return fmt.Sprintf("✓ Downloaded %s (%d files)", r.ArchiveName(), succeeded)
	case StatusArchiveFailed:
		cause := "unknown error"
		if r.Err != nil {
			cause = r.Err.Error()
			var archiveErr *ArchiveError
			if errors.As(r.Err, &archiveErr) && archiveErr.Cause != nil {
				cause = archiveErr.Cause.Error()
			}
		}
		return fmt.Sprintf("Downloaded %d files but failed to package them: %s", succeeded, cause)
	case StatusCancelled:
		return fmt.Sprintf("Cancelled after %d/%d files.", succeeded+failed-r.skipped(), total)
	default:
		return unknownDescription
	}
}

// skipped counts failures that were never attempted because of cancellation.
func (r *RunReport) skipped() int {
	if r.Result == nil {
		return 0
	}
	n := 0
	for _, f := range r.Result.Failures {
		var fetchErr *FetchError
		if errors.As(f.Cause, &fetchErr) && fetchErr.Kind == FetchErrorCancelled {
			n++
		}
	}
	return n
}

// ProgressText renders the per-completion progress line.
func ProgressText(completed, total int, rateLimited bool) string {
	text := fmt.Sprintf("Downloaded %d/%d files", completed, total)
	if rateLimited {
		text += " (rate limited)"
	}
	return text
}
