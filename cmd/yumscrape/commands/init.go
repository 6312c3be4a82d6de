package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/yumscrape/internal/config"
	"github.com/jmylchreest/yumscrape/internal/logger"
	"github.com/jmylchreest/yumscrape/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the output tables with their header rows",
	Long: `Init writes the header row of cooking_info.csv, ingredients.csv and
nutrition.csv and creates the image directory. Scrape never writes these
headers itself, so run init once per output directory.

Existing non-empty tables are left alone unless --force is given, in which
case they are truncated.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("force", "f", false, "truncate existing tables")
}

func runInit(cmd *cobra.Command, args []string) error {
	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return err
	}
	dest := cfg.Destination()

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		for _, path := range []string{dest.CookingInfo, dest.Ingredients, dest.Nutrition} {
			if nonEmpty(path) {
				err := fmt.Errorf("%s already has data (use --force to truncate)", path)
				logger.Error("refusing to initialize", "path", path)
				return err
			}
		}
	}

	if err := output.InitTables(dest); err != nil {
		logger.Error("failed to initialize tables", "error", err)
		return err
	}

	created := color.New(color.FgGreen).Sprint("CREATE")
	for _, path := range []string{dest.CookingInfo, dest.Ingredients, dest.Nutrition, dest.ImageDir} {
		logInfo("  %s %s", created, path)
	}
	logger.Debug("tables initialized", "output_dir", cfg.OutputDir, "files", []string{
		config.CookingInfoFile, config.IngredientsFile, config.NutritionFile,
	})
	return nil
}

// nonEmpty reports whether path exists and holds any bytes.
func nonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > 0
}
