package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qpdepartures",
	Short: "Live train departures backend for Queens Park station",
	Long: `qpdepartures fetches live Transperth train times for Queens Park station,
splits them into Perth-bound and South-bound boards and serves them as a
small JSON API. It can also print the board straight to your terminal or
export it to an ICS calendar file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
