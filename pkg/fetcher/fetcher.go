// Package fetcher defines the interface for plain HTTP page and asset
// retrieval. Listing pages and recipe images both go through a Fetcher so
// tests can substitute an httptest server or a fake.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves the resource at url. A non-2xx response is an error
	// wrapping ErrHTTPStatus.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content represents a fetched resource.
type Content struct {
	URL         string
	Body        []byte
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// HTML returns the body as a string.
func (c Content) HTML() string {
	return string(c.Body)
}

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, fetcher.ErrHTTPStatus).
var (
	// ErrHTTPStatus indicates the server answered with a non-success status.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrBodyTooLarge indicates the response body exceeded MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")
)
