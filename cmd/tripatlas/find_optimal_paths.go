package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacqueslucke/trip-atlas/export"
	"github.com/jacqueslucke/trip-atlas/pathfinder"
)

var (
	findPathsGTFSPath   string
	findPathsOutputPath string
	findPathsOrigins    []string
	findPathsQuiet      bool
)

var findOptimalPathsCmd = &cobra.Command{
	Use:   "find-optimal-paths",
	Short: "Compute earliest-arrival times from one or more origin stations",
	RunE:  findOptimalPaths,
}

func init() {
	findOptimalPathsCmd.Flags().StringVarP(&findPathsGTFSPath, "gtfs-path", "", "", "path to the GTFS feed folder")
	findOptimalPathsCmd.Flags().StringVarP(&findPathsOutputPath, "output-path", "", "", "path to write the arrival JSON to")
	findOptimalPathsCmd.Flags().StringArrayVarP(&findPathsOrigins, "origin-station", "", nil, "name of an origin station (repeatable)")
	findOptimalPathsCmd.Flags().BoolVarP(&findPathsQuiet, "quiet", "q", false, "suppress progress bars and drop log level to warn")
	findOptimalPathsCmd.MarkFlagRequired("gtfs-path")
	findOptimalPathsCmd.MarkFlagRequired("output-path")
	findOptimalPathsCmd.MarkFlagRequired("origin-station")
	rootCmd.AddCommand(findOptimalPathsCmd)
}

func findOptimalPaths(cmd *cobra.Command, args []string) error {
	log := newLogger(findPathsQuiet)

	gtfs, err := ensureGTFSArchive(findPathsGTFSPath, log, findPathsQuiet)
	if err != nil {
		return err
	}
	defer gtfs.Close()

	conns, err := ensureConnectionsArchive(findPathsGTFSPath, gtfs, log, findPathsQuiet)
	if err != nil {
		return err
	}
	defer conns.Close()

	names := stationNames(gtfs, conns)
	origins := make([]uint32, 0, len(findPathsOrigins))
	for _, name := range findPathsOrigins {
		idx, ok := names[name]
		if !ok {
			return fmt.Errorf("origin station %q not found", name)
		}
		origins = append(origins, idx)
	}

	engine := pathfinder.NewBucketEngine(
		pathfinder.WithSecondsPerBucket(cfg.SecondsPerBucket),
		pathfinder.WithMaxSeconds(cfg.MaxSeconds),
	)
	table := engine.Query(conns, origins)

	rows := stationRows(gtfs, conns)
	stations := make([]export.Station, len(rows))
	for i, r := range rows {
		stations[i] = export.Station{Name: r.name, Latitude: r.lat, Longitude: r.lon}
		if seconds, reached := table.Get(uint32(i)); reached {
			s := seconds
			stations[i].Time = &s
		}
	}

	result := export.Apply(stations)
	data, err := result.MarshalIndent()
	if err != nil {
		return fmt.Errorf("marshaling arrival table: %w", err)
	}

	if err := os.WriteFile(findPathsOutputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", findPathsOutputPath, err)
	}

	log.Info().Str("path", findPathsOutputPath).Int("origins", len(origins)).Msg("wrote arrival table")
	return nil
}
