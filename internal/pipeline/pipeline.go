// Package pipeline drives a full scrape: categories, listings, images and
// the CSV tables.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/jmylchreest/yumscrape/internal/config"
	"github.com/jmylchreest/yumscrape/internal/logger"
	"github.com/jmylchreest/yumscrape/internal/output"
	"github.com/jmylchreest/yumscrape/internal/scraper"
	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// Progress receives one event per saved recipe. It runs on the pipeline
// goroutine and must not block for long.
type Progress func(Event)

// Event describes a recipe that has just been persisted.
type Event struct {
	Category   recipe.Category
	CookingID  string
	Name       string
	Position   int
	Total      int // Records in the category listing
	ImageBytes int64
}

// recordArchive receives every raw record when raw dumps are enabled.
type recordArchive interface {
	Write(data any) error
	Close() error
}

func openArchive(path string) (recordArchive, error) {
	return output.OpenArchive(path)
}

// Pipeline runs the scrape sequentially: one category at a time, one
// recipe at a time, in listing order.
type Pipeline struct {
	categories scraper.CategoryLister
	recipes    scraper.RecipeLister
	images     ImageStore
	config     *config.Config
	progress   Progress
	archive    func(path string) (recordArchive, error)
}

// New creates a Pipeline. cfg must already be validated.
func New(categories scraper.CategoryLister, recipes scraper.RecipeLister, images ImageStore, cfg *config.Config) *Pipeline {
	return &Pipeline{
		categories: categories,
		recipes:    recipes,
		images:     images,
		config:     cfg,
		archive:    openArchive,
	}
}

// OnProgress registers fn to be called after every saved recipe.
func (p *Pipeline) OnProgress(fn Progress) {
	p.progress = fn
}

// Run performs one complete scrape and returns its manifest. The manifest
// is also returned, partially filled, when Run fails. When manifest output
// is enabled it is written in both cases.
func (p *Pipeline) Run(ctx context.Context) (manifest output.Manifest, err error) {
	dest := p.config.Destination()
	manifest = output.Manifest{
		StartedAt:  time.Now().UTC(),
		BaseURL:    p.config.BaseURL,
		MaxResults: p.config.MaxResults,
	}

	logger.Debug("pipeline starting",
		"base_url", p.config.BaseURL,
		"max_results", p.config.MaxResults,
		"recipe_delay", p.config.RecipeDelay,
		"output_dir", p.config.OutputDir)

	var sink *output.Sink
	defer func() {
		if sink != nil {
			manifest.Totals = sink.Stats()
			if cerr := sink.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close tables: %w", cerr)
			}
		}
		manifest.FinishedAt = time.Now().UTC()
		if err != nil {
			manifest.Error = err.Error()
		}
		if dest.Manifest != "" {
			if werr := output.WriteManifest(dest.Manifest, manifest); werr != nil {
				logger.Warn("failed to write manifest", "path", dest.Manifest, "error", werr)
			}
		}
	}()

	cats, err := p.categories.ListCategories(ctx)
	if err != nil {
		return manifest, fmt.Errorf("list categories: %w", err)
	}
	if err := output.WriteCategories(dest.CategoryMaster, cats); err != nil {
		return manifest, fmt.Errorf("write categories: %w", err)
	}
	logger.InfoContext(ctx, "category master written", "path", dest.CategoryMaster, "categories", len(cats))

	sink, err = output.NewSink(dest)
	if err != nil {
		return manifest, fmt.Errorf("open tables: %w", err)
	}

	var archive recordArchive
	if dest.RawDump != "" {
		archive, err = p.archive(dest.RawDump)
		if err != nil {
			return manifest, err
		}
		defer func() {
			if cerr := archive.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close archive: %w", cerr)
			}
		}()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.config.RecipeDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(p.config.RecipeDelay), 1)
	}

	for _, cat := range cats {
		if !p.config.WantsCategory(cat.Slug) {
			logger.Debug("category filtered out", "category", cat.ID, "slug", cat.Slug)
			continue
		}

		entry := output.CategoryManifest{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
		n, err := p.runCategory(ctx, cat, sink, archive, limiter)
		entry.Recipes = n
		if errors.Is(err, scraper.ErrEmptyOrUnavailableListing) {
			logger.Warn("skipping category", "category", cat.ID, "slug", cat.Slug, "error", err)
			entry.Skipped = scraper.ErrEmptyOrUnavailableListing.Error()
			err = nil
		}
		manifest.Categories = append(manifest.Categories, entry)
		if err != nil {
			return manifest, fmt.Errorf("category %s: %w", cat.Slug, err)
		}
	}

	stats := sink.Stats()
	logger.Info("scrape complete",
		"recipes", stats.Recipes,
		"ingredients", stats.Ingredients,
		"nutrition", stats.Nutrition,
		"duration", time.Since(manifest.StartedAt).Round(time.Millisecond))
	return manifest, nil
}

// runCategory lists and persists every record of cat, returning how many
// recipes were saved.
func (p *Pipeline) runCategory(ctx context.Context, cat recipe.Category, sink *output.Sink, archive recordArchive, limiter *rate.Limiter) (int, error) {
	log := logger.With("category", cat.ID, "slug", cat.Slug)
	log.InfoContext(ctx, "category", "name", cat.Name)

	records, err := p.recipes.ListRecipes(ctx, cat.Slug, p.config.MaxResults)
	if err != nil {
		return 0, err
	}
	if len(records) > p.config.MaxResults {
		records = records[:p.config.MaxResults]
	}
	log.Debug("listing received", "records", len(records))

	saved := 0
	for i, rec := range records {
		position := i + 1
		if err := limiter.Wait(ctx); err != nil {
			return saved, err
		}

		cookingID := recipe.CookingID(cat.ID, position)
		size, err := p.saveRecipe(ctx, cat, cookingID, rec, sink, archive)
		if err != nil {
			return saved, fmt.Errorf("recipe %s: %w", cookingID, err)
		}
		saved++

		if p.progress != nil {
			p.progress(Event{
				Category:   cat,
				CookingID:  cookingID,
				Name:       rec.Name,
				Position:   position,
				Total:      len(records),
				ImageBytes: size,
			})
		}
	}
	return saved, nil
}

func (p *Pipeline) saveRecipe(ctx context.Context, cat recipe.Category, cookingID string, rec recipe.Record, sink *output.Sink, archive recordArchive) (int64, error) {
	log := logger.ForRecipe(cat.ID, cookingID)

	var size int64
	if rec.Image != "" {
		n, err := p.images.Save(ctx, string(rec.Image), cookingID)
		if err != nil {
			return 0, err
		}
		size = n
	} else {
		log.Warn("record has no image", "name", rec.Name)
	}

	extracted := recipe.Extract(rec, cookingID, cat.ID)
	if err := sink.WriteRecipe(extracted); err != nil {
		return size, err
	}

	if archive != nil {
		if err := archive.Write(output.ArchivedRecord{CookingID: cookingID, CategoryID: cat.ID, Record: rec}); err != nil {
			return size, fmt.Errorf("archive record: %w", err)
		}
	}

	log.Info("recipe saved",
		"name", rec.Name,
		"ingredients", len(extracted.Ingredients),
		"nutrition", len(extracted.Nutrition),
		"image", humanize.Bytes(uint64(size)))
	return size, nil
}
