package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/records"
)

var scheduleSeason int

var scheduleCmd = &cobra.Command{
	Use:   "schedule <team>",
	Short: "Scrape a team's schedule for a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}

		season := scheduleSeason
		if season <= 0 {
			season = batch.CurrentSeason(time.Now())
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := scraper.TeamSchedule(cmd.Context(), l, args[0], season)
		if err != nil {
			return err
		}

		if flagCSV {
			return writeTable(records.ScheduleTable(rows), "schedule")
		}
		return writeJSON(rows)
	},
}

func init() {
	scheduleCmd.Flags().IntVar(&scheduleSeason, "season", 0, "season ending year (default current)")
}
