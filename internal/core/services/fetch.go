package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// Fetcher retrieves one locator and classifies the result.
// Implementations never return errors: every problem becomes a Failure.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) domain.FetchOutcome
}

// Ensure FetchUnit implements the interface.
var _ Fetcher = (*FetchUnit)(nil)

// FetchUnit performs a single GET and resolves the payload's filename.
// No deadline is applied; only ctx cancellation stops a fetch.
type FetchUnit struct {
	transport driven.Transport
}

// NewFetchUnit creates a fetch unit over the given transport.
func NewFetchUnit(transport driven.Transport) *FetchUnit {
	return &FetchUnit{transport: transport}
}

// Fetch retrieves locator. Only 2xx responses are successes.
func (f *FetchUnit) Fetch(ctx context.Context, locator string) domain.FetchOutcome {
	if f.transport == nil {
		return f.fail(locator, domain.FetchErrorTransport, 0, fmt.Errorf("transport: %w", domain.ErrNotConfigured))
	}

	logger.Debug("Downloading: %s", locator)

	resp, err := f.transport.Get(ctx, locator)
	if err != nil {
		kind := domain.FetchErrorTransport
		if ctx.Err() != nil {
			kind = domain.FetchErrorCancelled
		}
		return f.fail(locator, kind, 0, err)
	}
	if resp == nil {
		return f.fail(locator, domain.FetchErrorTransport, 0, errors.New("empty response"))
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return f.fail(locator, domain.FetchErrorStatus, resp.StatusCode, nil)
	}

	var payload []byte
	if resp.Body != nil {
		payload, err = io.ReadAll(resp.Body)
		if err != nil {
			kind := domain.FetchErrorRead
			if ctx.Err() != nil {
				kind = domain.FetchErrorCancelled
			}
			return f.fail(locator, kind, resp.StatusCode, err)
		}
	}
	if payload == nil {
		payload = []byte{}
	}

	filename := ResolveFilename(resp.Header, resp.FinalURL, locator)
	logger.Debug("Downloaded: %s (%.2f MB)", filename, float64(len(payload))/1024/1024)

	return domain.Succeeded(locator, filename, payload)
}

func (f *FetchUnit) fail(locator string, kind domain.FetchErrorKind, status int, cause error) domain.FetchOutcome {
	err := &domain.FetchError{Locator: locator, Kind: kind, StatusCode: status, Cause: cause}
	logger.Warn("Failed to download %s: %v", locator, err)
	return domain.Failed(locator, err)
}
