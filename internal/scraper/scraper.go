// Package scraper discovers cuisine categories and pulls the recipe
// records embedded in listing pages.
package scraper

import (
	"context"
	"errors"

	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// CategoryLister returns the cuisine categories in page order, with
// 1-based ids.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]recipe.Category, error)
}

// RecipeLister returns up to maxResults raw records for a category slug.
type RecipeLister interface {
	ListRecipes(ctx context.Context, slug string, maxResults int) ([]recipe.Record, error)
}

// Error types for distinguishing failure reasons.
var (
	// ErrNavigationTimeout indicates the category page never became
	// interactive within the configured timeout.
	ErrNavigationTimeout = errors.New("navigation timeout")
	// ErrNoCategories indicates the category page rendered without any
	// cuisine headings.
	ErrNoCategories = errors.New("no categories found")
	// ErrEmptyOrUnavailableListing indicates the listing data container
	// never appeared within the retry budget. An empty category and an
	// unavailable page look the same from here.
	ErrEmptyOrUnavailableListing = errors.New("listing empty or unavailable")
	// ErrMalformedListing indicates the data container was present but
	// its payload could not be decoded.
	ErrMalformedListing = errors.New("malformed listing payload")
)

// FixedCategories is a CategoryLister over a known list of names.
type FixedCategories []string

// ListCategories implements CategoryLister.
func (f FixedCategories) ListCategories(ctx context.Context) ([]recipe.Category, error) {
	if len(f) == 0 {
		return nil, ErrNoCategories
	}
	cats := make([]recipe.Category, 0, len(f))
	for i, name := range f {
		cats = append(cats, recipe.NewCategory(i+1, name))
	}
	return cats, nil
}
