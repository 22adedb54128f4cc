package cli

import (
	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/records"
)

var playerCmd = &cobra.Command{
	Use:   "player <playerID>",
	Short: "Scrape one player's bio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := league()
		if err != nil {
			return err
		}

		scraper, cleanup, err := newScraper()
		if err != nil {
			return err
		}
		defer cleanup()

		info, err := scraper.Player(cmd.Context(), l, args[0])
		if err != nil {
			return err
		}

		if flagCSV {
			return writeTable(records.PlayerTable([]records.PlayerInfo{info}), "player")
		}
		return writeJSON(info)
	},
}
