package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

const (
	// filterToggleSelector opens the filter panel that holds the cuisines.
	filterToggleSelector = ".toggle-filters"
	cuisineGroupSelector = `div[class*="filter-group cuisines"]`
	cuisineTitleSelector = "h3.filter-item-title"
)

// ParseCategories reads the cuisine headings from a rendered category
// page. Ids follow document order starting at 1.
func ParseCategories(html string) ([]recipe.Category, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse category page: %w", err)
	}

	group := doc.Find(cuisineGroupSelector).First()
	if group.Length() == 0 {
		return nil, fmt.Errorf("%w: cuisine filter group missing", ErrNoCategories)
	}

	var cats []recipe.Category
	group.Find(cuisineTitleSelector).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		cats = append(cats, recipe.NewCategory(len(cats)+1, name))
	})

	if len(cats) == 0 {
		return nil, ErrNoCategories
	}
	return cats, nil
}
