package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required collaborator was not wired.
	ErrNotConfigured = errors.New("not configured")

	// ErrNoLocators indicates nothing was left to fetch after deduplication.
	// This is a terminal state, not a failure.
	ErrNoLocators = errors.New("no downloadable items found")

	// ErrAllFetchesFailed indicates every locator in a run failed.
	ErrAllFetchesFailed = errors.New("failed to download any files")

	// ErrArchiveBuild indicates the archive could not be serialised or saved.
	ErrArchiveBuild = errors.New("archive build failed")
)

// FetchErrorKind classifies why a single fetch failed.
type FetchErrorKind string

// Fetch failure kinds.
const (
	// FetchErrorStatus is a response outside [200,300).
	FetchErrorStatus FetchErrorKind = "status"

	// FetchErrorTransport is a connection-level failure before a response.
	FetchErrorTransport FetchErrorKind = "transport"

	// FetchErrorRead is a failure while reading the response body.
	FetchErrorRead FetchErrorKind = "read"

	// FetchErrorCancelled means the caller cancelled the run.
	FetchErrorCancelled FetchErrorKind = "cancelled"
)

// FetchError describes one failed fetch.
type FetchError struct {
	Locator    string
	Kind       FetchErrorKind
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch {
	case e.Kind == FetchErrorStatus:
		return fmt.Sprintf("failed to download: %d", e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Cause)
	default:
		return string(e.Kind) + " error"
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ArchiveError is returned when packaging fails after some fetches succeeded.
// Successes keeps the count so callers can report "downloaded N files but
// failed to package them".
type ArchiveError struct {
	Successes int
	Cause     error
}

// Error implements the error interface.
func (e *ArchiveError) Error() string {
	return fmt.Sprintf("downloaded %d files but failed to package them: %v", e.Successes, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ArchiveError) Unwrap() error {
	return e.Cause
}

// Is matches ErrArchiveBuild.
func (e *ArchiveError) Is(target error) bool {
	return target == ErrArchiveBuild
}
