// Package config holds the run configuration and the output destination
// derived from it.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default file names inside the output directory.
const (
	CategoryMasterFile = "category_master.csv"
	CookingInfoFile    = "cooking_info.csv"
	IngredientsFile    = "ingredients.csv"
	NutritionFile      = "nutrition.csv"
	ImageDirName       = "recipe_images"
	ManifestFile       = "manifest.yaml"
	RawDumpFile        = "records.jsonl"
)

// Config holds scraper configuration.
type Config struct {
	// Site
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url" validate:"required,url,startswith=http"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`

	// Browser
	ChromePath  string        `mapstructure:"chrome_path" yaml:"chrome_path"` // Empty = search PATH
	PageTimeout time.Duration `mapstructure:"page_timeout" yaml:"page_timeout" validate:"gt=0"`

	// Listing
	MaxResults     int           `mapstructure:"max_results" yaml:"max_results" validate:"min=1,max=9999"`
	MaxAttempts    int           `mapstructure:"max_attempts" yaml:"max_attempts" validate:"min=1"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" yaml:"initial_backoff" validate:"gte=0"`
	Categories     []string      `mapstructure:"categories" yaml:"categories"` // Slug filter; empty = all

	// Pacing
	CategoryDelay time.Duration `mapstructure:"category_delay" yaml:"category_delay" validate:"gte=0"`
	RecipeDelay   time.Duration `mapstructure:"recipe_delay" yaml:"recipe_delay" validate:"gte=0"`

	// Output
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	RawDump   bool   `mapstructure:"raw_dump" yaml:"raw_dump"`
	Manifest  bool   `mapstructure:"manifest" yaml:"manifest"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://www.yummly.com/recipes",
		Timeout:        30 * time.Second,
		PageTimeout:    10 * time.Second,
		MaxResults:     500,
		MaxAttempts:    5,
		InitialBackoff: 3 * time.Second,
		CategoryDelay:  1 * time.Second,
		RecipeDelay:    500 * time.Millisecond,
		OutputDir:      "./data",
		Manifest:       true,
	}
}

var validate = validator.New()

// Validate checks if the configuration is valid. Failures map onto the
// sentinel errors in errors.go.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	first := verrs[0]
	switch first.Field() {
	case "BaseURL":
		return ErrInvalidBaseURL
	case "OutputDir":
		return ErrEmptyOutputDir
	case "MaxResults":
		return ErrInvalidMaxResults
	case "MaxAttempts":
		return ErrInvalidMaxAttempts
	case "Timeout", "PageTimeout":
		return ErrInvalidTimeout
	case "InitialBackoff", "CategoryDelay", "RecipeDelay":
		return fmt.Errorf("%w: %s", ErrInvalidDelay, first.Field())
	default:
		return fmt.Errorf("invalid config field %s: %s", first.Field(), first.Tag())
	}
}

// Destination names every file the scraper writes. It is passed explicitly
// to the sink and image store.
type Destination struct {
	CategoryMaster string `yaml:"category_master"`
	CookingInfo    string `yaml:"cooking_info"`
	Ingredients    string `yaml:"ingredients"`
	Nutrition      string `yaml:"nutrition"`
	ImageDir       string `yaml:"image_dir"`
	Manifest       string `yaml:"manifest,omitempty"`
	RawDump        string `yaml:"raw_dump,omitempty"`
}

// NewDestination lays out the standard file names under dir.
func NewDestination(dir string) Destination {
	return Destination{
		CategoryMaster: filepath.Join(dir, CategoryMasterFile),
		CookingInfo:    filepath.Join(dir, CookingInfoFile),
		Ingredients:    filepath.Join(dir, IngredientsFile),
		Nutrition:      filepath.Join(dir, NutritionFile),
		ImageDir:       filepath.Join(dir, ImageDirName),
	}
}

// Destination returns the output layout for c. Manifest and RawDump are
// only set when enabled.
func (c *Config) Destination() Destination {
	d := NewDestination(c.OutputDir)
	if c.Manifest {
		d.Manifest = filepath.Join(c.OutputDir, ManifestFile)
	}
	if c.RawDump {
		d.RawDump = filepath.Join(c.OutputDir, RawDumpFile)
	}
	return d
}

// WantsCategory reports whether slug passes the category filter.
func (c *Config) WantsCategory(slug string) bool {
	if len(c.Categories) == 0 {
		return true
	}
	for _, s := range c.Categories {
		if s == slug {
			return true
		}
	}
	return false
}
