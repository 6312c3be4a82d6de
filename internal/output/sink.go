package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmylchreest/yumscrape/internal/config"
	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// Sink appends the normalized rows of each recipe to the three linked
// tables. Every WriteRecipe call ends with a flush of all three tables, so
// a crash loses at most the recipe being written. Writes are not
// transactional across tables.
type Sink struct {
	cookingInfo *Table
	ingredients *Table
	nutrition   *Table
	recipes     int
}

// NewSink opens the append tables named by dest.
func NewSink(dest config.Destination) (*Sink, error) {
	info, err := OpenTable(dest.CookingInfo)
	if err != nil {
		return nil, err
	}
	ingredients, err := OpenTable(dest.Ingredients)
	if err != nil {
		_ = info.Close()
		return nil, err
	}
	nutrition, err := OpenTable(dest.Nutrition)
	if err != nil {
		_ = info.Close()
		_ = ingredients.Close()
		return nil, err
	}
	return &Sink{cookingInfo: info, ingredients: ingredients, nutrition: nutrition}, nil
}

// WriteRecipe appends the cooking info row, then the ingredient rows, then
// the nutrition rows, flushing each table after its rows.
func (s *Sink) WriteRecipe(x recipe.Extracted) error {
	if err := s.cookingInfo.Append(x.Info.Row()); err != nil {
		return err
	}
	if err := s.cookingInfo.Flush(); err != nil {
		return err
	}

	for _, ing := range x.Ingredients {
		if err := s.ingredients.Append(ing.Row()); err != nil {
			return err
		}
	}
	if err := s.ingredients.Flush(); err != nil {
		return err
	}

	for _, n := range x.Nutrition {
		if err := s.nutrition.Append(n.Row()); err != nil {
			return err
		}
	}
	if err := s.nutrition.Flush(); err != nil {
		return err
	}

	s.recipes++
	return nil
}

// Stats reports how many recipes and rows this sink has written.
func (s *Sink) Stats() SinkStats {
	return SinkStats{
		Recipes:     s.recipes,
		Ingredients: s.ingredients.Rows(),
		Nutrition:   s.nutrition.Rows(),
	}
}

// SinkStats counts rows written during a run.
type SinkStats struct {
	Recipes     int `yaml:"recipes"`
	Ingredients int `yaml:"ingredients"`
	Nutrition   int `yaml:"nutrition"`
}

// Close flushes and closes all tables.
func (s *Sink) Close() error {
	return errors.Join(s.cookingInfo.Close(), s.ingredients.Close(), s.nutrition.Close())
}

// WriteCategories replaces the category master table with cats.
func WriteCategories(path string, cats []recipe.Category) error {
	t, err := CreateTable(path, recipe.CategoryHeader)
	if err != nil {
		return err
	}
	for _, c := range cats {
		if err := t.Append(recipe.CategoryRow(c)); err != nil {
			_ = t.Close()
			return err
		}
	}
	return t.Close()
}

// InitTables truncates the three append tables to their header row and
// creates the image directory. A scrape never writes these headers
// itself.
func InitTables(dest config.Destination) error {
	headers := []struct {
		path   string
		header []string
	}{
		{dest.CookingInfo, recipe.CookingInfoHeader},
		{dest.Ingredients, recipe.IngredientHeader},
		{dest.Nutrition, recipe.NutritionHeader},
	}
	for _, h := range headers {
		t, err := CreateTable(h.path, h.header)
		if err != nil {
			return err
		}
		if err := t.Close(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dest.ImageDir, 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	return nil
}
