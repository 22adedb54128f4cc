package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/batch"
)

var idsCmd = &cobra.Command{
	Use:   "ids [date]",
	Short: "List the game ids played on a date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}

		date := time.Now()
		if len(args) == 1 {
			date, err = batch.ParseDate(args[0])
			if err != nil {
				return err
			}
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		ids, err := scraper.GameIDs(cmd.Context(), l, date)
		if err != nil {
			return err
		}

		if flagCSV {
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}
		return writeJSON(map[string]interface{}{
			"date":     date.Format("2006-01-02"),
			"game_ids": ids,
		})
	},
}
