package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

func TestFetchUnit_Success(t *testing.T) {
	transport := newFakeTransport().add("https://booth.pm/downloadables/1", fakeResponse{
		header:   "Content-Disposition: attachment; filename=\"model.zip\"",
		finalURL: "https://cdn/abc/ignored.zip?sig=1",
		body:     "payload",
	})
	unit := NewFetchUnit(transport)

	outcome := unit.Fetch(context.Background(), "https://booth.pm/downloadables/1")

	require.True(t, outcome.OK())
	assert.Equal(t, "model.zip", outcome.Success.Filename)
	assert.Equal(t, []byte("payload"), outcome.Success.Payload)
	assert.Equal(t, 7, outcome.Success.SizeBytes)
	assert.Equal(t, "https://booth.pm/downloadables/1", outcome.Success.Locator)
}

func TestFetchUnit_FilenameFromFinalURL(t *testing.T) {
	transport := newFakeTransport().add("https://x/1", fakeResponse{
		finalURL: "https://cdn/abc/texture.psd?sig=1",
		body:     "data",
	})

	outcome := NewFetchUnit(transport).Fetch(context.Background(), "https://x/1")

	require.True(t, outcome.OK())
	assert.Equal(t, "texture.psd", outcome.Success.Filename)
}

func TestFetchUnit_EmptyBody(t *testing.T) {
	transport := newFakeTransport().add("https://x/empty", fakeResponse{status: 204})

	outcome := NewFetchUnit(transport).Fetch(context.Background(), "https://x/empty")

	require.True(t, outcome.OK())
	assert.NotNil(t, outcome.Success.Payload)
	assert.Zero(t, outcome.Success.SizeBytes)
}

func TestFetchUnit_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{199, 300, 403, 404, 500} {
		transport := newFakeTransport().add("https://x/1", fakeResponse{status: status, body: "nope"})

		outcome := NewFetchUnit(transport).Fetch(context.Background(), "https://x/1")

		require.False(t, outcome.OK(), "status %d", status)
		var fetchErr *domain.FetchError
		require.ErrorAs(t, outcome.Failure.Cause, &fetchErr)
		assert.Equal(t, domain.FetchErrorStatus, fetchErr.Kind)
		assert.Equal(t, status, fetchErr.StatusCode)
		assert.Equal(t, "https://x/1", outcome.Failure.Locator)
	}
}

func TestFetchUnit_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	transport := newFakeTransport().add("https://x/1", fakeResponse{err: cause})

	outcome := NewFetchUnit(transport).Fetch(context.Background(), "https://x/1")

	require.False(t, outcome.OK())
	var fetchErr *domain.FetchError
	require.ErrorAs(t, outcome.Failure.Cause, &fetchErr)
	assert.Equal(t, domain.FetchErrorTransport, fetchErr.Kind)
	assert.ErrorIs(t, outcome.Failure.Cause, cause)
}

func TestFetchUnit_ReadError(t *testing.T) {
	transport := newFakeTransport().add("https://x/1", fakeResponse{readErr: errors.New("connection reset")})

	outcome := NewFetchUnit(transport).Fetch(context.Background(), "https://x/1")

	require.False(t, outcome.OK())
	var fetchErr *domain.FetchError
	require.ErrorAs(t, outcome.Failure.Cause, &fetchErr)
	assert.Equal(t, domain.FetchErrorRead, fetchErr.Kind)
}

func TestFetchUnit_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	transport := newFakeTransport().add("https://x/1", fakeResponse{body: "data"})

	outcome := NewFetchUnit(transport).Fetch(ctx, "https://x/1")

	require.False(t, outcome.OK())
	var fetchErr *domain.FetchError
	require.ErrorAs(t, outcome.Failure.Cause, &fetchErr)
	assert.Equal(t, domain.FetchErrorCancelled, fetchErr.Kind)
	assert.ErrorIs(t, outcome.Failure.Cause, context.Canceled)
}

func TestFetchUnit_NoTransport(t *testing.T) {
	outcome := NewFetchUnit(nil).Fetch(context.Background(), "https://x/1")

	require.False(t, outcome.OK())
	assert.ErrorIs(t, outcome.Failure.Cause, domain.ErrNotConfigured)
}
