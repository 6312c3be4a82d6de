// Package version holds build metadata for the yumscrape binary.
//
// The variables are set at build time with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/yumscrape/internal/version.Version=0.3.0 -X github.com/jmylchreest/yumscrape/internal/version.Commit=$(git rev-parse --short HEAD)" ./cmd/yumscrape
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	Dirty     = "false"
	BuildDate = "unknown"
)

// Info is the structured form printed by "yumscrape version --json".
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the version, suffixed with -dirty for modified trees.
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// Full returns the multi-line block printed by the version command.
func Full() string {
	info := Get()
	var sb strings.Builder
	fmt.Fprintf(&sb, "yumscrape %s\n", String())
	fmt.Fprintf(&sb, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(&sb, "  built:    %s\n", info.BuildDate)
	fmt.Fprintf(&sb, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(&sb, "  platform: %s", info.Platform)
	return sb.String()
}
