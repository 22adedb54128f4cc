// Package cli implements the fieldhouse command line interface.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/cache"
	"github.com/fortuna/fieldhouse/internal/config"
	"github.com/fortuna/fieldhouse/internal/espn"
	"github.com/fortuna/fieldhouse/internal/fetch"
	"github.com/fortuna/fieldhouse/internal/registry"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

var (
	cfgFile        string
	flagLeague     string
	flagCSV        bool
	flagOut        string
	flagWorkers    int
	flagNoProgress bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:          "fieldhouse",
	Short:        "College basketball game, boxscore, and play-by-play scraper",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("league") {
			cfg.League = flagLeague
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = flagWorkers
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default fieldhouse.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLeague, "league", "mens", "league to scrape (mens or womens)")
	rootCmd.PersistentFlags().BoolVar(&flagCSV, "csv", false, "write CSV instead of JSON")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "directory for CSV output (default stdout)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "batch worker count (default one per CPU)")
	rootCmd.PersistentFlags().BoolVar(&flagNoProgress, "no-progress", false, "disable the progress bar")

	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(idsCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(conferenceCmd)
	rootCmd.AddCommand(serveCmd)
}

func league() (espn.League, error) {
	l := espn.League(cfg.League)
	if !l.Valid() {
		return "", fmt.Errorf("unknown league %q (use mens or womens)", cfg.League)
	}
	return l, nil
}

// newScraper assembles the fetch stack the config asks for. The returned
// cleanup must be called before exit.
func newScraper() (*scrape.Scraper, func(), error) {
	fetchCfg := fetch.Config{
		Attempts: cfg.FetchAttempts,
		MinDelay: cfg.FetchMinDelay,
		MaxDelay: cfg.FetchMaxDelay,
		Timeout:  cfg.FetchTimeout,
	}

	var fetcher fetch.Fetcher
	cleanup := func() {}

	if cfg.UseBrowser {
		browser := fetch.NewBrowser(cfg.FetchTimeout)
		fetcher = browser
		cleanup = browser.Close
	} else {
		fetcher = fetch.NewClient(fetchCfg)
	}

	if cfg.CacheEnabled {
		pages, err := cache.NewPageCache(cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting page cache: %w", err)
		}
		fetcher = fetch.WithCache(fetcher, pages, cfg.CacheTTL)
		prev := cleanup
		cleanup = func() {
			if err := pages.Close(); err != nil {
				log.Printf("[cli] ⚠️ closing cache: %v", err)
			}
			prev()
		}
	}

	reg := registry.New(cfg.TeamDataDir)
	return scrape.New(fetcher, reg), cleanup, nil
}

func newRunner(scraper *scrape.Scraper) *batch.Runner {
	var reporter batch.Reporter
	if !flagNoProgress {
		reporter = newProgressReporter()
	}
	return batch.NewRunner(scraper, cfg.Workers, reporter)
}
