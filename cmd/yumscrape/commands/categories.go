package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/yumscrape/internal/logger"
	"github.com/jmylchreest/yumscrape/internal/output"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the cuisine categories and their slugs",
	Long: `Categories renders the recipe root page in headless Chrome and prints
each cuisine category with the id and slug a scrape would use. Slugs are
the values accepted by "scrape --categories".`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().Bool("write", false, "also replace category_master.csv in the output directory")
}

func runCategories(cmd *cobra.Command, args []string) error {
	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cats, err := newCategoryLister(cfg).ListCategories(ctx)
	if err != nil {
		logger.Error("failed to list categories", "error", err)
		return err
	}

	id := color.New(color.FgCyan)
	slug := color.New(color.Faint)
	for _, c := range cats {
		fmt.Fprintf(os.Stdout, "%s  %-24s %s\n", id.Sprintf("%3d", c.ID), c.Name, slug.Sprint(c.Slug))
	}

	if write, _ := cmd.Flags().GetBool("write"); write {
		path := cfg.Destination().CategoryMaster
		if err := output.WriteCategories(path, cats); err != nil {
			logger.Error("failed to write categories", "path", path, "error", err)
			return err
		}
		logInfo("wrote %d categories to %s", len(cats), path)
	}
	return nil
}
