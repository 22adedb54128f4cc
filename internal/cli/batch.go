package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/batch"
)

var (
	teamSeason       int
	conferenceSeason int
)

var seasonCmd = &cobra.Command{
	Use:   "season <year>",
	Short: "Scrape every game of one season (named by its ending year)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}
		season, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		ds, err := newRunner(scraper).GamesSeason(cmd.Context(), l, season, selectedParts())
		if err != nil {
			return err
		}
		return writeDataset(ds, "season_"+args[0])
	},
}

var rangeCmd = &cobra.Command{
	Use:   "range <start> <end>",
	Short: "Scrape every game played between two dates, inclusive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}
		start, err := batch.ParseDate(args[0])
		if err != nil {
			return err
		}
		end, err := batch.ParseDate(args[1])
		if err != nil {
			return err
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		ds, err := newRunner(scraper).GamesRange(cmd.Context(), l, start, end, selectedParts())
		if err != nil {
			return err
		}
		return writeDataset(ds, "range")
	},
}

var teamCmd = &cobra.Command{
	Use:   "team <team>",
	Short: "Scrape every game on one team's schedule for a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}
		season := teamSeason
		if season <= 0 {
			season = batch.CurrentSeason(time.Now())
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		ds, err := newRunner(scraper).GamesTeam(cmd.Context(), l, args[0], season, selectedParts())
		if err != nil {
			return err
		}
		return writeDataset(ds, "team")
	},
}

var conferenceCmd = &cobra.Command{
	Use:   "conference <name>",
	Short: "Scrape every game played by a conference's teams in a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}
		season := conferenceSeason
		if season <= 0 {
			season = batch.CurrentSeason(time.Now())
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		ds, err := newRunner(scraper).GamesConference(cmd.Context(), l, args[0], season, selectedParts())
		if err != nil {
			return err
		}
		return writeDataset(ds, "conference")
	},
}

func init() {
	addPartsFlags(seasonCmd)
	addPartsFlags(rangeCmd)
	addPartsFlags(teamCmd)
	addPartsFlags(conferenceCmd)
	teamCmd.Flags().IntVar(&teamSeason, "season", 0, "season ending year (default current)")
	conferenceCmd.Flags().IntVar(&conferenceSeason, "season", 0, "season ending year (default current)")
}
