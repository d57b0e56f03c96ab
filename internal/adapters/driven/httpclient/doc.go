// Package httpclient implements driven.Transport over net/http.
//
// Requests carry no client timeout: large downloads run until they finish or
// the caller cancels the context. An optional RateLimiter throttles request
// starts and backs off after 429 responses.
package httpclient
