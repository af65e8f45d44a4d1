package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
	"github.com/jaydubbbbb/train-departures-backend/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the backend configuration",
	Long:  "View or edit local settings like the hub token, source mode and scraping proxy key.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed := false

		if hubToken, _ := cmd.Flags().GetString("set-hub-token"); hubToken != "" {
			cfg.HubToken = hubToken
			changed = true
		}

		if mode, _ := cmd.Flags().GetString("set-source-mode"); mode != "" {
			switch mode {
			case config.SourceModeScrape, config.SourceModeAPI, config.SourceModeAuto:
				cfg.SourceMode = mode
				changed = true
			default:
				return fmt.Errorf("unknown source mode %q (expected %s, %s or %s)",
					mode, config.SourceModeScrape, config.SourceModeAPI, config.SourceModeAuto)
			}
		}

		if proxyKey, _ := cmd.Flags().GetString("set-proxy-key"); proxyKey != "" {
			cfg.ProxyAPIKey = proxyKey
			changed = true
		}

		if changed {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Println("✅ Configuration saved.")
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-hub-token", "", "Destination token that marks a departure as city-bound")
	configCmd.Flags().String("set-source-mode", "", "How departures are fetched: scrape, api or auto")
	configCmd.Flags().String("set-proxy-key", "", "API key for the scraping proxy fallback")
}
