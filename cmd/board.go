package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
	"github.com/jaydubbbbb/train-departures-backend/pkg/transperth"
	"github.com/jaydubbbbb/train-departures-backend/pkg/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the live departure board to the terminal",
	Long:  "Fetches the current departures once and renders both direction lists, soonest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		location, err := cfg.Location()
		if err != nil {
			return err
		}

		source := transperth.NewSource(transperth.NewClient(), cfg)

		var raws []board.RawDeparture
		var fetchErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Fetching live departures for %s...", cfg.StationName)).
			Action(func() {
				raws, fetchErr = source.FetchDepartures()
			}).
			Run()

		if fetchErr != nil {
			return fmt.Errorf("could not fetch departures: %w", fetchErr)
		}

		result, _ := board.Build(raws, time.Now().In(location), board.Options{
			HubToken:           cfg.HubToken,
			PlatformDirections: platformDirections(cfg),
			Limit:              cfg.Limit,
		})

		tui.RenderBoard(result, cfg.StationName)
		return nil
	},
}

// platformDirections converts the string map from the config file into board
// direction labels.
func platformDirections(cfg *config.AppConfig) map[string]board.Direction {
	directions := make(map[string]board.Direction, len(cfg.PlatformDirections))
	for platform, direction := range cfg.PlatformDirections {
		directions[platform] = board.Direction(direction)
	}
	return directions
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
