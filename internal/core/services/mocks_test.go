package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/orderpack/internal/core/domain"
	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
)

// fakeTransport serves canned responses keyed by locator.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	status   int
	header   string
	finalURL string
	body     string
	err      error
	readErr  error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{responses: make(map[string]fakeResponse)}
}

func (t *fakeTransport) add(locator string, resp fakeResponse) *fakeTransport {
	t.responses[locator] = resp
	return t
}

func (t *fakeTransport) Get(ctx context.Context, locator string) (*driven.Response, error) {
	t.mu.Lock()
	t.calls = append(t.calls, locator)
	resp, ok := t.responses[locator]
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return &driven.Response{StatusCode: 404, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	}
	if resp.err != nil {
		return nil, resp.err
	}

	var body io.ReadCloser = io.NopCloser(bytes.NewBufferString(resp.body))
	if resp.readErr != nil {
		body = &failingBody{err: resp.readErr}
	}
	status := resp.status
	if status == 0 {
		status = 200
	}
	return &driven.Response{
		StatusCode: status,
		FinalURL:   resp.finalURL,
		Header:     resp.header,
		Body:       body,
	}, nil
}

func (t *fakeTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

type failingBody struct {
	err    error
	closed bool
}

func (b *failingBody) Read([]byte) (int, error) { return 0, b.err }
func (b *failingBody) Close() error             { b.closed = true; return nil }

// fetchFunc adapts a function to the Fetcher interface.
type fetchFunc func(ctx context.Context, locator string) domain.FetchOutcome

func (f fetchFunc) Fetch(ctx context.Context, locator string) domain.FetchOutcome {
	return f(ctx, locator)
}

// okFetcher succeeds for every locator, naming each payload after it.
func okFetcher() fetchFunc {
	return func(_ context.Context, locator string) domain.FetchOutcome {
		return domain.Succeeded(locator, locator+".bin", []byte(locator))
	}
}

// fakeWriter records entries instead of encoding them.
type fakeWriter struct {
	entries []domain.ArchiveEntry
	err     error
}

func (w *fakeWriter) Write(out io.Writer, entries []domain.ArchiveEntry) error {
	if w.err != nil {
		return w.err
	}
	w.entries = entries
	for _, e := range entries {
		fmt.Fprintf(out, "%s=%s;", e.Name, e.Data)
	}
	return nil
}

// fakeSink keeps the last saved archive in memory.
type fakeSink struct {
	filename string
	data     []byte
	err      error
	saves    int
}

func (s *fakeSink) Save(_ context.Context, filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saves++
	s.filename = filename
	s.data = data
	return "/out/" + filename, nil
}

// staticSource returns fixed locators or an error.
type staticSource struct {
	locators []string
	err      error
}

func (s staticSource) Locators(context.Context) ([]string, error) {
	return s.locators, s.err
}

// staticName returns a fixed label or an error.
type staticName struct {
	name string
	err  error
}

func (n staticName) Name(context.Context) (string, error) {
	return n.name, n.err
}

// failingRunStore rejects every save.
type failingRunStore struct{}

func (failingRunStore) Save(context.Context, *domain.RunRecord) error {
	return errors.New("database is locked")
}

func (failingRunStore) Get(context.Context, string) (*domain.RunRecord, error) {
	return nil, domain.ErrNotFound
}

func (failingRunStore) List(context.Context, int) ([]domain.RunRecord, error) {
	return nil, nil
}
