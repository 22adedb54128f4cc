package cli

import (
	"github.com/spf13/cobra"

	"github.com/fortuna/fieldhouse/internal/scrape"
)

var (
	partInfo bool
	partBox  bool
	partPBP  bool
)

// addPartsFlags registers the table-selection flags shared by game-scraping
// commands.
func addPartsFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&partInfo, "info", true, "include game metadata")
	cmd.Flags().BoolVar(&partBox, "box", true, "include boxscores")
	cmd.Flags().BoolVar(&partPBP, "pbp", true, "include play-by-play")
}

func selectedParts() scrape.Parts {
	return scrape.Parts{Info: partInfo, Box: partBox, PBP: partPBP}
}

var gameCmd = &cobra.Command{
	Use:   "game <gameID>",
	Short: "Scrape one game's metadata, boxscore, and play-by-play",
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

		ds, err := scraper.Game(cmd.Context(), l, args[0], selectedParts())
		if err != nil {
			return err
		}
		return writeDataset(ds, "game_"+args[0])
	},
}

func init() {
	addPartsFlags(gameCmd)
}
