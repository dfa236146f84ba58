package main

import (
	"github.com/spf13/cobra"
)

var buildConnectionsPath string
var buildConnectionsQuiet bool

var buildConnectionsCmd = &cobra.Command{
	Use:   "build-connections",
	Short: "Ensure the direct-connection graph archive exists for a feed folder",
	RunE:  buildConnections,
}

func init() {
	buildConnectionsCmd.Flags().StringVarP(&buildConnectionsPath, "gtfs-path", "", "", "path to the GTFS feed folder")
	buildConnectionsCmd.Flags().BoolVarP(&buildConnectionsQuiet, "quiet", "q", false, "suppress progress bars and drop log level to warn")
	buildConnectionsCmd.MarkFlagRequired("gtfs-path")
	rootCmd.AddCommand(buildConnectionsCmd)
}

func buildConnections(cmd *cobra.Command, args []string) error {
	log := newLogger(buildConnectionsQuiet)

	gtfs, err := ensureGTFSArchive(buildConnectionsPath, log, buildConnectionsQuiet)
	if err != nil {
		return err
	}
	defer gtfs.Close()

	conns, err := ensureConnectionsArchive(buildConnectionsPath, gtfs, log, buildConnectionsQuiet)
	if err != nil {
		return err
	}
	defer conns.Close()

	return nil
}
