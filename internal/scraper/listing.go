package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/jmylchreest/yumscrape/internal/logger"
	"github.com/jmylchreest/yumscrape/pkg/fetcher"
	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// dataContainerSelector holds the schema.org ItemList script.
const dataContainerSelector = "div.structured-data-info"

// listingHeaders are sent with listing requests unless the caller sets
// its own.
var listingHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml",
	"Accept-Language": "en-US,en;q=0.9",
}

// errNotRendered marks a listing page without its data container yet.
var errNotRendered = errors.New("structured data container not present")

// ListingURL builds the bulk listing URL for a category slug.
func ListingURL(base, slug string, maxResults int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	q := url.Values{}
	q.Set("allowedCuisine", "cuisine^cuisine-"+slug)
	q.Set("maxResult", strconv.Itoa(maxResults))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseListing extracts the embedded payload from a listing page. A page
// without the container (or without its script) yields errNotRendered; a
// present but undecodable payload yields ErrMalformedListing.
func ParseListing(html string) (recipe.Listing, error) {
	var listing recipe.Listing

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return listing, fmt.Errorf("parse listing page: %w", err)
	}

	script := doc.Find(dataContainerSelector).First().Find("script").First()
	if script.Length() == 0 {
		return listing, errNotRendered
	}

	payload := strings.TrimSpace(script.Text())
	if err := json.Unmarshal([]byte(payload), &listing); err != nil {
		return listing, fmt.Errorf("%w: %v", ErrMalformedListing, err)
	}
	return listing, nil
}

// ListingConfig controls listing retrieval and its retry policy.
type ListingConfig struct {
	BaseURL        string
	MaxAttempts    int           // Total attempts including the first
	InitialBackoff time.Duration // Wait before the second attempt; doubles after
	Fetch          fetcher.Options
}

// HTTPRecipeLister fetches listing pages over plain HTTP.
type HTTPRecipeLister struct {
	fetcher fetcher.Fetcher
	config  ListingConfig
}

// NewHTTPRecipeLister creates a RecipeLister backed by f.
func NewHTTPRecipeLister(f fetcher.Fetcher, cfg ListingConfig) *HTTPRecipeLister {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Fetch.Headers == nil {
		cfg.Fetch.Headers = listingHeaders
	}
	return &HTTPRecipeLister{fetcher: f, config: cfg}
}

// ListRecipes fetches the listing for slug, retrying with exponential
// backoff while the data container is missing or the server answers with
// a non-2xx status. Transport failures and malformed payloads are not
// retried.
func (l *HTTPRecipeLister) ListRecipes(ctx context.Context, slug string, maxResults int) ([]recipe.Record, error) {
	target, err := ListingURL(l.config.BaseURL, slug, maxResults)
	if err != nil {
		return nil, err
	}

	attempt := 0
	var listing recipe.Listing
	operation := func() error {
		attempt++
		content, err := l.fetcher.Fetch(ctx, target, l.config.Fetch)
		if errors.Is(err, fetcher.ErrHTTPStatus) {
			return err
		}
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch listing: %w", err))
		}

		parsed, err := ParseListing(content.HTML())
		if errors.Is(err, ErrMalformedListing) {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}
		listing = parsed
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.WarnContext(ctx, "listing not ready, retrying",
			"slug", slug,
			"attempt", attempt,
			"max_attempts", l.config.MaxAttempts,
			"wait", wait,
			"error", err)
	}

	if err := backoff.RetryNotify(operation, l.policy(ctx), notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, errNotRendered) || errors.Is(err, fetcher.ErrHTTPStatus) {
			return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrEmptyOrUnavailableListing, slug, attempt, err)
		}
		return nil, fmt.Errorf("listing %s: %w", slug, err)
	}

	logger.DebugContext(ctx, "listing decoded", "slug", slug, "records", len(listing.Items), "attempts", attempt)
	return listing.Items, nil
}

func (l *HTTPRecipeLister) policy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.config.InitialBackoff
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(l.config.MaxAttempts-1)), ctx)
}
