package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
	"github.com/jaydubbbbb/train-departures-backend/pkg/exporter"
	"github.com/jaydubbbbb/train-departures-backend/pkg/transperth"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the upcoming departures to an ICS file",
	Long:  "Fetches the current board once and writes every departure as a calendar event.",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

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
			Title(fmt.Sprintf("Exporting departures for %s to %s...", cfg.StationName, output)).
			Action(func() {
				raws, fetchErr = source.FetchDepartures()
			}).
			Run()

		if fetchErr != nil {
			return fmt.Errorf("failed to fetch departures: %w", fetchErr)
		}

		now := time.Now().In(location)
		result, _ := board.Build(raws, now, board.Options{
			HubToken:           cfg.HubToken,
			PlatformDirections: platformDirections(cfg),
			Limit:              cfg.Limit,
		})

		deps := append(result.Citybound, result.Outbound...)
		if len(deps) == 0 {
			return fmt.Errorf("no departures found for %s", cfg.StationName)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(deps, cfg.StationName, now, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d departures to %s\n", len(deps), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "departures.ics", "Output file path")
}
