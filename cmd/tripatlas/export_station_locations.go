package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacqueslucke/trip-atlas/export"
)

var (
	exportGTFSPath     string
	exportOutputPath   string
	exportNameContains string
	exportBBox         string
)

var exportStationLocationsCmd = &cobra.Command{
	Use:   "export-station-locations",
	Short: "Write a JSON document of station names and coordinates",
	RunE:  exportStationLocations,
}

func init() {
	exportStationLocationsCmd.Flags().StringVarP(&exportGTFSPath, "gtfs-path", "", "", "path to the GTFS feed folder")
	exportStationLocationsCmd.Flags().StringVarP(&exportOutputPath, "output-path", "", "", "path to write the JSON document to")
	exportStationLocationsCmd.Flags().StringVarP(&exportNameContains, "name-contains", "", "", "keep only stations whose name contains this substring")
	exportStationLocationsCmd.Flags().StringVarP(&exportBBox, "bbox", "", "", "keep only stations within minLat,maxLat,minLon,maxLon")
	exportStationLocationsCmd.MarkFlagRequired("gtfs-path")
	exportStationLocationsCmd.MarkFlagRequired("output-path")
	rootCmd.AddCommand(exportStationLocationsCmd)
}

func exportStationLocations(cmd *cobra.Command, args []string) error {
	log := newLogger(false)

	gtfs, err := ensureGTFSArchive(exportGTFSPath, log, false)
	if err != nil {
		return err
	}
	defer gtfs.Close()

	conns, err := ensureConnectionsArchive(exportGTFSPath, gtfs, log, false)
	if err != nil {
		return err
	}
	defer conns.Close()

	var filters []export.Filter
	if exportNameContains != "" {
		filters = append(filters, export.ByNameSubstring(exportNameContains))
	}
	if exportBBox != "" {
		minLat, maxLat, minLon, maxLon, err := parseBBox(exportBBox)
		if err != nil {
			return fmt.Errorf("invalid --bbox: %w", err)
		}
		filters = append(filters, export.ByBoundingBox(minLat, maxLat, minLon, maxLon))
	}

	rows := stationRows(gtfs, conns)
	stations := make([]export.Station, len(rows))
	for i, r := range rows {
		stations[i] = export.Station{Name: r.name, Latitude: r.lat, Longitude: r.lon}
	}

	result := export.Apply(stations, filters...)
	data, err := result.MarshalIndent()
	if err != nil {
		return fmt.Errorf("marshaling station locations: %w", err)
	}

	if err := os.WriteFile(exportOutputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutputPath, err)
	}

	log.Info().Str("path", exportOutputPath).Int("stations", len(result.Stations)).Msg("wrote station locations")
	return nil
}

// parseBBox parses "minLat,maxLat,minLon,maxLon".
func parseBBox(s string) (minLat, maxLat, minLon, maxLon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("value %d (%q): %w", i, p, err)
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}
