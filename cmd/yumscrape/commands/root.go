// Package commands implements the CLI commands for yumscrape.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/yumscrape/internal/config"
	"github.com/jmylchreest/yumscrape/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "yumscrape",
	Short: "Harvest recipes by cuisine into CSV tables",
	Long: `Yumscrape walks every cuisine category of the recipe site, pulls the
structured recipe data embedded in each category listing, downloads the
recipe photos and appends everything to four CSV tables.

Examples:
  # Prepare the output tables with their header rows
  yumscrape init -o ./data

  # List the cuisine categories and their slugs
  yumscrape categories

  # Scrape two cuisines only, keeping the raw records
  yumscrape scrape --categories italian,thai --raw-dump`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.DefaultConfig()

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.yumscrape.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "suppress progress output")
	flags.Bool("log-json", false, "emit logs as JSON")

	// Site settings shared by every command
	flags.String("base-url", defaults.BaseURL, "recipe root URL")
	flags.String("user-agent", "", "override the browser user agent")
	flags.Duration("timeout", defaults.Timeout, "HTTP request timeout")
	flags.Duration("page-timeout", defaults.PageTimeout, "bound on rendering the category page")
	flags.String("chrome-path", "", "Chrome/Chromium binary (default: search PATH)")
	flags.StringP("output-dir", "o", defaults.OutputDir, "directory for the CSV tables and images")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("page_timeout", flags.Lookup("page-timeout"))
	_ = viper.BindPFlag("chrome_path", flags.Lookup("chrome-path"))
	_ = viper.BindPFlag("output_dir", flags.Lookup("output-dir"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".yumscrape")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("YUMSCRAPE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogger initializes the logger from the global flags.
func setupLogger() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config file loaded", "path", used)
	}
}

// loadConfig merges defaults, config file, env and flags, then validates.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// elapsed formats d for the summary lines.
func elapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
