package scraper

import (
	"os/exec"

	"github.com/jmylchreest/yumscrape/internal/logger"
)

// Common Chrome/Chromium binary names across different systems
var chromeBinaryNames = []string{
	"google-chrome-stable",
	"google-chrome",
	"chromium",
	"chromium-browser",
	"chrome",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	"/snap/bin/chromium",
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
}

// FindChromePath returns override when it is set, otherwise the first
// Chrome/Chromium binary found on PATH or in a common install location.
// Returns empty string if none is found, leaving chromedp to its own
// lookup.
func FindChromePath(override string) string {
	if override != "" {
		return override
	}
	for _, name := range chromeBinaryNames {
		if path, err := exec.LookPath(name); err == nil {
			logger.Debug("found Chrome binary", "name", name, "path", path)
			return path
		}
	}
	logger.Warn("no Chrome binary found - category discovery may fail")
	return ""
}
