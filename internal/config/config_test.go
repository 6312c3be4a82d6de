package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// --- Validate Tests ---

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }, ErrInvalidBaseURL},
		{"relative base url", func(c *Config) { c.BaseURL = "/recipes" }, ErrInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com/recipes" }, ErrInvalidBaseURL},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"zero page timeout", func(c *Config) { c.PageTimeout = 0 }, ErrInvalidTimeout},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }, ErrInvalidMaxResults},
		{"max results overflows id space", func(c *Config) { c.MaxResults = 10000 }, ErrInvalidMaxResults},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"negative backoff", func(c *Config) { c.InitialBackoff = -time.Second }, ErrInvalidDelay},
		{"negative recipe delay", func(c *Config) { c.RecipeDelay = -time.Millisecond }, ErrInvalidDelay},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, ErrEmptyOutputDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_ZeroDelaysAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialBackoff = 0
	cfg.CategoryDelay = 0
	cfg.RecipeDelay = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// --- Destination Tests ---

func TestNewDestination_Layout(t *testing.T) {
	d := NewDestination("/tmp/out")

	checks := map[string]string{
		d.CategoryMaster: filepath.Join("/tmp/out", "category_master.csv"),
		d.CookingInfo:    filepath.Join("/tmp/out", "cooking_info.csv"),
		d.Ingredients:    filepath.Join("/tmp/out", "ingredients.csv"),
		d.Nutrition:      filepath.Join("/tmp/out", "nutrition.csv"),
		d.ImageDir:       filepath.Join("/tmp/out", "recipe_images"),
	}
	for got, want := range checks {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	if d.Manifest != "" || d.RawDump != "" {
		t.Error("optional outputs should be unset")
	}
}

func TestConfig_Destination_OptionalOutputs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "out"
	cfg.RawDump = true
	cfg.Manifest = false

	d := cfg.Destination()
	if d.RawDump != filepath.Join("out", "records.jsonl") {
		t.Errorf("unexpected raw dump path %q", d.RawDump)
	}
	if d.Manifest != "" {
		t.Errorf("manifest should be disabled, got %q", d.Manifest)
	}
}

// --- Category Filter Tests ---

func TestWantsCategory(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.WantsCategory("italian") {
		t.Error("empty filter should accept every slug")
	}

	cfg.Categories = []string{"italian", "barbecue-bbq"}
	if !cfg.WantsCategory("barbecue-bbq") {
		t.Error("expected listed slug to be accepted")
	}
	if cfg.WantsCategory("thai") {
		t.Error("expected unlisted slug to be rejected")
	}
}
