package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/yumscrape/internal/logger"
	"github.com/jmylchreest/yumscrape/pkg/fetcher"
	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// BrowserConfig holds configuration for the headless category browser.
type BrowserConfig struct {
	UserAgent   string
	Timeout     time.Duration // Bound on navigate-wait-click; browser launch is not counted
	SettleDelay time.Duration // Pause after opening the filter panel
	ChromePath  string        // Explicit browser binary; empty = search
}

// DefaultBrowserConfig returns sensible defaults.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		UserAgent:   fetcher.DefaultUserAgent,
		Timeout:     10 * time.Second,
		SettleDelay: time.Second,
	}
}

// BrowserCategoryLister renders the recipe root page in headless Chrome.
// The cuisine filter list only exists after client-side rendering, so a
// plain GET is not enough.
type BrowserCategoryLister struct {
	rootURL string
	config  BrowserConfig
}

// NewBrowserCategoryLister creates a lister for rootURL.
func NewBrowserCategoryLister(rootURL string, cfg BrowserConfig) *BrowserCategoryLister {
	defaults := DefaultBrowserConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &BrowserCategoryLister{rootURL: rootURL, config: cfg}
}

// ListCategories opens one browser session, reveals the filter panel and
// parses the cuisine headings. The session is closed before returning.
func (l *BrowserCategoryLister) ListCategories(ctx context.Context) ([]recipe.Category, error) {
	html, err := l.render(ctx)
	if err != nil {
		return nil, err
	}

	cats, err := ParseCategories(html)
	if err != nil {
		return nil, err
	}
	logger.Info("categories discovered", "count", len(cats))
	return cats, nil
}

func (l *BrowserCategoryLister) render(ctx context.Context) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1024, 768),
		chromedp.UserAgent(l.config.UserAgent),
	)
	if chromePath := FindChromePath(l.config.ChromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	// Launch the browser first so the timeout bounds navigation only.
	if err := chromedp.Run(browserCtx); err != nil {
		return "", fmt.Errorf("start browser: %w", err)
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, l.config.Timeout)
	defer cancelTimeout()

	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(l.rootURL),
		chromedp.WaitVisible(filterToggleSelector, chromedp.ByQuery),
		chromedp.Click(filterToggleSelector, chromedp.ByQuery),
	}
	if l.config.SettleDelay > 0 {
		actions = append(actions, chromedp.Sleep(l.config.SettleDelay))
	}
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	logger.Debug("rendering category page",
		"url", l.rootURL,
		"timeout", l.config.Timeout,
		"settle", l.config.SettleDelay)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if ctx.Err() == nil && (errors.Is(err, context.DeadlineExceeded) || timeoutCtx.Err() != nil) {
			return "", fmt.Errorf("%w: %s did not become interactive within %s", ErrNavigationTimeout, l.rootURL, l.config.Timeout)
		}
		return "", fmt.Errorf("browser automation failed: %w", err)
	}

	return html, nil
}
