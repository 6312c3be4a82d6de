package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest summarizes one scrape run.
type Manifest struct {
	StartedAt  time.Time          `yaml:"started_at"`
	FinishedAt time.Time          `yaml:"finished_at"`
	BaseURL    string             `yaml:"base_url"`
	MaxResults int                `yaml:"max_results"`
	Totals     SinkStats          `yaml:"totals"`
	Categories []CategoryManifest `yaml:"categories"`
	Error      string             `yaml:"error,omitempty"`
}

// CategoryManifest is the per-category part of a Manifest.
type CategoryManifest struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Slug    string `yaml:"slug"`
	Recipes int    `yaml:"recipes"`
	Skipped string `yaml:"skipped,omitempty"` // Reason the category produced no rows
}

// WriteManifest writes m as YAML to path, replacing any previous file.
func WriteManifest(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path) //#nosec G304 -- path comes from the run configuration
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(m); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the run configuration
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}
