package driven

import (
	"context"
	"io"
)

// Response is the part of an HTTP response the fetch unit needs.
type Response struct {
	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// FinalURL is the address actually answered after redirects.
	// Empty when the transport cannot tell.
	FinalURL string

	// Header is the raw header block, one "Name: value" line per header.
	Header string

	// Body is the response payload. The caller must close it.
	Body io.ReadCloser
}

// Transport issues GET requests. Redirects are followed by the
// implementation. Implementations must honour ctx cancellation.
type Transport interface {
	// Get fetches locator. A non-nil error means no response was obtained;
	// non-2xx statuses are returned as a Response, not an error.
	Get(ctx context.Context, locator string) (*Response, error)
}
