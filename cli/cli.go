// Package cli implements the interactive command line driver. Search
// parameters come from flags with interactive prompts as fallback; searches
// repeat until the user declines to start another.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ebay-scraper/config"
	"ebay-scraper/fetch"
	"ebay-scraper/scraper/ebay"
	"ebay-scraper/services"
	"ebay-scraper/utils"
)

var (
	flagCondition string
	flagMinPrice  string
	flagMaxPrice  string
	flagPages     int
)

var rootCmd = &cobra.Command{
	Use:   "ebay-scraper [keywords...]",
	Short: "Price statistics for sold eBay listings matching your keywords.",
	Args:  cobra.ArbitraryArgs,
	Run:   run,
}

func init() {
	registerSearchFlags(rootCmd)
}

func registerSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCondition, "condition", "", "Item condition (new, used, refurbished, or any)")
	cmd.Flags().StringVar(&flagMinPrice, "min-price", "", "Minimum price (optional)")
	cmd.Flags().StringVar(&flagMaxPrice, "max-price", "", "Maximum price (optional)")
	cmd.Flags().IntVar(&flagPages, "pages", 0, "Number of pages to search (default 1)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== eBay Sold-Price Scraper starting ===")
	logger.Info("Config: fetcher: %s | concurrency: %d | retries: %d",
		cfg.FetcherMode, cfg.MaxConcurrency, cfg.MaxRetries)

	fetcher := buildFetcher(cfg, logger)
	if closer, ok := fetcher.(io.Closer); ok {
		defer closer.Close()
	}

	stats := services.NewStatsService(logger, cfg.CurrencySymbol)
	scraper := ebay.New(cfg, logger, fetcher, stats)

	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	// Flags and positional arguments seed every iteration; whatever they do
	// not cover is collected interactively each time around.
	for {
		params, err := resolveParams(cmd, args, reader)
		if err != nil {
			logger.Error("Could not read search parameters: %v", err)
			os.Exit(1)
		}

		summary, err := scraper.Run(cmd.Context(), params)
		if err != nil {
			logger.Error("Search failed: %v", err)
		} else {
			stats.Print(summary)
		}

		if !promptYes(reader, out, "\nWould you like to start another search? (y/n): ") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
	}
}

// buildFetcher picks the page-fetching strategy. Plain HTTP is the default;
// the headless browser handles marketplaces that challenge simple clients.
func buildFetcher(cfg *config.Config, logger *utils.Logger) fetch.Fetcher {
	if cfg.FetcherMode == "browser" {
		return fetch.NewBrowserFetcher(cfg, logger)
	}
	return fetch.NewHTTPFetcher(cfg, logger)
}
