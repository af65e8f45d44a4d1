package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jaydubbbbb/train-departures-backend/pkg/api"
	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
	"github.com/jaydubbbbb/train-departures-backend/pkg/metrics"
	"github.com/jaydubbbbb/train-departures-backend/pkg/transperth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the departures web API",
	Long:  "Starts the HTTP server exposing /api/departures and /api/health, plus an optional Prometheus metrics listener.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.ListenAddr = listen
		}

		collector := metrics.NewCollector()
		if cfg.MetricsAddr != "" {
			collector.Serve(cfg.MetricsAddr)
		}

		source := transperth.NewSource(transperth.NewClient(), cfg)

		server, err := api.New(cfg, source, collector)
		if err != nil {
			return err
		}

		return server.Listen(cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Listen address for the web server (overrides config)")
}
