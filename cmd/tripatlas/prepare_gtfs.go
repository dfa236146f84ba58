package main

import (
	"github.com/spf13/cobra"
)

var prepareGTFSPath string
var prepareGTFSQuiet bool

var prepareGTFSCmd = &cobra.Command{
	Use:   "prepare-gtfs",
	Short: "Ensure the normalized GTFS archive exists for a feed folder",
	RunE:  prepareGTFS,
}

func init() {
	prepareGTFSCmd.Flags().StringVarP(&prepareGTFSPath, "gtfs-path", "", "", "path to the GTFS feed folder")
	prepareGTFSCmd.Flags().BoolVarP(&prepareGTFSQuiet, "quiet", "q", false, "suppress progress bars and drop log level to warn")
	prepareGTFSCmd.MarkFlagRequired("gtfs-path")
	rootCmd.AddCommand(prepareGTFSCmd)
}

func prepareGTFS(cmd *cobra.Command, args []string) error {
	log := newLogger(prepareGTFSQuiet)

	gtfs, err := ensureGTFSArchive(prepareGTFSPath, log, prepareGTFSQuiet)
	if err != nil {
		return err
	}
	defer gtfs.Close()

	return nil
}
