package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/orderpack/internal/core/ports/driven"
	"github.com/custodia-labs/orderpack/internal/logger"
)

// Ensure Transport implements the interface.
var _ driven.Transport = (*Transport)(nil)

// Config configures a Transport.
type Config struct {
	// UserAgent is sent with every request when set.
	UserAgent string

	// Cookie is sent as the Cookie header when set.
	Cookie string

	// Limiter throttles requests. Nil disables throttling.
	Limiter *RateLimiter

	// Client overrides the HTTP client. It must not set a Timeout when
	// large downloads are expected.
	Client *http.Client
}

// Transport issues GET requests, following redirects.
type Transport struct {
	client    *http.Client
	userAgent string
	cookie    string
	limiter   *RateLimiter
}

// New creates a transport.
func New(cfg Config) *Transport {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	return &Transport{
		client:    client,
		userAgent: cfg.UserAgent,
		cookie:    cfg.Cookie,
		limiter:   cfg.Limiter,
	}
}

// Get fetches locator. Non-2xx responses are returned, not treated as errors.
func (t *Transport) Get(ctx context.Context, locator string) (*driven.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.cookie != "" {
		req.Header.Set("Cookie", t.cookie)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests && t.limiter != nil {
		backoff := parseRetryAfter(resp.Header.Get("Retry-After"), t.limiter.now())
		logger.Warn("Rate limited by %s, backing off", req.URL.Host)
		t.limiter.RecordRateLimitError(backoff)
	}

	finalURL := locator
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &driven.Response{
		StatusCode: resp.StatusCode,
		FinalURL:   finalURL,
		Header:     rawHeader(resp.Header),
		Body:       resp.Body,
	}, nil
}

// rawHeader renders headers as "Name: value" lines.
func rawHeader(h http.Header) string {
	var buf bytes.Buffer
	_ = h.Write(&buf)
	return buf.String()
}
