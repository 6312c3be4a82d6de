package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/yumscrape/internal/config"
	"github.com/jmylchreest/yumscrape/internal/logger"
	"github.com/jmylchreest/yumscrape/internal/output"
	"github.com/jmylchreest/yumscrape/internal/pipeline"
	"github.com/jmylchreest/yumscrape/internal/scraper"
	"github.com/jmylchreest/yumscrape/pkg/fetcher"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every cuisine category into the CSV tables",
	Long: `Scrape discovers the cuisine categories, fetches each category listing
and appends one cooking info row, its ingredient rows and its nutrition
rows per recipe. Each recipe photo is saved as id_<cooking_id>.png.

Tables are appended to without headers; run "yumscrape init" first for a
fresh output directory. Running scrape twice appends duplicate rows.

Examples:
  # Full run with defaults
  yumscrape scrape

  # Two cuisines, faster pacing, raw records archived as JSONL
  yumscrape scrape --categories italian,thai --recipe-delay 200ms --raw-dump`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	defaults := config.DefaultConfig()
	flags := scrapeCmd.Flags()

	// Listing settings
	flags.Int("max-results", defaults.MaxResults, "max recipes requested per category")
	flags.Int("max-attempts", defaults.MaxAttempts, "listing fetch attempts before a category is skipped")
	flags.Duration("initial-backoff", defaults.InitialBackoff, "wait before the second listing attempt (doubles after)")
	flags.StringSlice("categories", nil, "only scrape these category slugs (default: all)")

	// Pacing
	flags.Duration("recipe-delay", defaults.RecipeDelay, "minimum interval between recipes")
	flags.Duration("category-delay", defaults.CategoryDelay, "pause after opening the category filters")

	// Output
	flags.Bool("raw-dump", defaults.RawDump, "append raw records to records.jsonl")
	flags.Bool("manifest", defaults.Manifest, "write manifest.yaml at the end of the run")
	flags.String("max-body-size", "10MB", "max listing or image size (e.g., 5MB, 0=unlimited)")

	_ = viper.BindPFlag("max_results", flags.Lookup("max-results"))
	_ = viper.BindPFlag("max_attempts", flags.Lookup("max-attempts"))
	_ = viper.BindPFlag("initial_backoff", flags.Lookup("initial-backoff"))
	_ = viper.BindPFlag("categories", flags.Lookup("categories"))
	_ = viper.BindPFlag("recipe_delay", flags.Lookup("recipe-delay"))
	_ = viper.BindPFlag("category_delay", flags.Lookup("category-delay"))
	_ = viper.BindPFlag("raw_dump", flags.Lookup("raw-dump"))
	_ = viper.BindPFlag("manifest", flags.Lookup("manifest"))
	_ = viper.BindPFlag("max_body_size", flags.Lookup("max-body-size"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	maxBodySize, err := parseBodySize(viper.GetString("max_body_size"))
	if err != nil {
		logger.Error("invalid max-body-size", "value", viper.GetString("max_body_size"), "error", err)
		return err
	}
	logger.Debug("max body size", "bytes", maxBodySize)

	f := newFetcher(cfg, maxBodySize)
	defer func() { _ = f.Close() }()

	dest := cfg.Destination()
	fetchOpts := fetcher.Options{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout}

	p := pipeline.New(
		newCategoryLister(cfg),
		scraper.NewHTTPRecipeLister(f, scraper.ListingConfig{
			BaseURL:        cfg.BaseURL,
			MaxAttempts:    cfg.MaxAttempts,
			InitialBackoff: cfg.InitialBackoff,
			Fetch:          fetchOpts,
		}),
		pipeline.NewFileImageStore(f, dest.ImageDir, fetchOpts),
		cfg,
	)

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	p.OnProgress(func(e pipeline.Event) {
		logInfo("%s %s %s %s",
			faint.Sprintf("[%d/%d]", e.Position, e.Total),
			color.New(color.FgCyan).Sprint(e.CookingID),
			bold.Sprint(e.Name),
			faint.Sprint(humanize.Bytes(uint64(e.ImageBytes))))
	})

	logger.Info("starting scrape",
		"base_url", cfg.BaseURL,
		"output_dir", cfg.OutputDir,
		"max_results", cfg.MaxResults,
		"categories", strings.Join(cfg.Categories, ","))

	m, runErr := p.Run(ctx)
	printSummary(m, dest)
	if runErr != nil {
		logger.ErrorContext(ctx, "scrape failed", "error", runErr)
		return runErr
	}
	return nil
}

func parseBodySize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func newFetcher(cfg *config.Config, maxBodySize int) fetcher.Fetcher {
	return fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.Timeout,
		MaxBodySize: maxBodySize,
	})
}

func newCategoryLister(cfg *config.Config) scraper.CategoryLister {
	return scraper.NewBrowserCategoryLister(cfg.BaseURL, scraper.BrowserConfig{
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.PageTimeout,
		SettleDelay: cfg.CategoryDelay,
		ChromePath:  cfg.ChromePath,
	})
}

// printSummary writes the per-category outcome of a run to stderr.
func printSummary(m output.Manifest, dest config.Destination) {
	if viper.GetBool("quiet") {
		return
	}

	ok := color.New(color.FgGreen).Sprint("OK     ")
	skip := color.New(color.FgYellow).Sprint("SKIPPED")

	fmt.Fprintln(os.Stderr)
	for _, c := range m.Categories {
		status := ok
		if c.Skipped != "" {
			status = skip
		}
		fmt.Fprintf(os.Stderr, "  %s %3d %-24s %5d recipes\n", status, c.ID, c.Name, c.Recipes)
	}

	fmt.Fprintf(os.Stderr, "\n%s %d recipes, %d ingredient rows, %d nutrition rows in %s\n",
		color.New(color.Bold).Sprint("Total:"),
		m.Totals.Recipes, m.Totals.Ingredients, m.Totals.Nutrition,
		elapsed(m.FinishedAt.Sub(m.StartedAt)))
	fmt.Fprintf(os.Stderr, "Tables in %s, images in %s\n", filepath.Dir(dest.CookingInfo), dest.ImageDir)
	if m.Error != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgRed).Sprint("Stopped:"), m.Error)
	}
}
