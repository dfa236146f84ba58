// Command tripatlas is the thin CLI dispatcher over the trip-atlas
// pipeline: normalize a GTFS feed, derive its direct-connection graph,
// and query earliest-arrival times from a set of origin stations.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jacqueslucke/trip-atlas/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "tripatlas",
	Short:        "trip-atlas reachability engine",
	Long:         "Computes earliest-arrival travel times over a GTFS network",
	SilenceUsage: true,
}

var cfg config.Config

func main() {
	cfg = config.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns the console logger every command logs through,
// honoring the ambient LOG_LEVEL config unless quiet overrides it to
// warn-and-above.
func newLogger(quiet bool) zerolog.Logger {
	level := cfg.LogLevel
	if quiet && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
