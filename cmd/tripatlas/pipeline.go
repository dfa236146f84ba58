package main

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jacqueslucke/trip-atlas/connections"
	"github.com/jacqueslucke/trip-atlas/gtfsnorm"
	"github.com/jacqueslucke/trip-atlas/internal/buildlog"
)

// ensureGTFSArchive normalizes gtfsPath's feed if data_rkyv.bin is
// missing, records the attempt to the build log, and returns an opened
// memory-mapped view either way.
func ensureGTFSArchive(gtfsPath string, log zerolog.Logger, quiet bool) (*gtfsnorm.Mapped, error) {
	started := time.Now()
	path, err := gtfsnorm.EnsureArchive(gtfsPath, log, quiet)
	if logErr := recordBuild(gtfsPath, buildlog.StageGTFSNormalize, started, err); logErr != nil {
		log.Warn().Err(logErr).Msg("failed to record build history")
	}
	if err != nil {
		return nil, err
	}
	return gtfsnorm.Open(path)
}

// ensureConnectionsArchive builds all_connections.bin if missing,
// records the attempt to the build log, and returns an opened
// memory-mapped view either way.
func ensureConnectionsArchive(gtfsPath string, gtfs *gtfsnorm.Mapped, log zerolog.Logger, quiet bool) (*connections.Mapped, error) {
	started := time.Now()
	path, err := connections.EnsureArchive(gtfsPath, gtfs, log, quiet)
	if logErr := recordBuild(gtfsPath, buildlog.StageConnectionsBuild, started, err); logErr != nil {
		log.Warn().Err(logErr).Msg("failed to record build history")
	}
	if err != nil {
		return nil, err
	}
	return connections.Open(path)
}

// recordBuild opens the build-history database for gtfsPath, appends
// one row for this run, and closes it. Opening/closing per invocation
// keeps the sqlite file lock-free between CLI runs, matching the
// process-per-invocation lifecycle the rest of the pipeline assumes.
func recordBuild(gtfsPath string, stage buildlog.Stage, started time.Time, runErr error) error {
	logPath := filepath.Join(gtfsPath, cfg.BuildLogPath)
	bl, err := buildlog.Open(logPath)
	if err != nil {
		return err
	}
	defer bl.Close()
	return bl.Record(stage, gtfsPath, started, time.Now(), runErr)
}

// stationNames maps every station's display name (its main stop's name,
// falling back to the stop id when unnamed) to its station index.
func stationNames(gtfs *gtfsnorm.Mapped, conns *connections.Mapped) map[string]uint32 {
	names := make(map[string]uint32, conns.NumStations())
	for i := 0; i < conns.NumStations(); i++ {
		stop := gtfs.Stop(int(conns.MainStopIndex(i)))
		name := stop.ID
		if stop.Name != nil && *stop.Name != "" {
			name = *stop.Name
		}
		names[name] = uint32(i)
	}
	return names
}

// stationRows renders every station as an exportStation row (name and
// coordinates). Callers convert the rows to export.Station and fill in
// Time separately when they have an arrival table.
func stationRows(gtfs *gtfsnorm.Mapped, conns *connections.Mapped) []exportStation {
	rows := make([]exportStation, conns.NumStations())
	for i := 0; i < conns.NumStations(); i++ {
		stop := gtfs.Stop(int(conns.MainStopIndex(i)))
		name := stop.ID
		if stop.Name != nil && *stop.Name != "" {
			name = *stop.Name
		}
		var lat, lon float64
		if stop.Lat != nil {
			lat = *stop.Lat
		}
		if stop.Lon != nil {
			lon = *stop.Lon
		}
		rows[i] = exportStation{name: name, lat: lat, lon: lon}
	}
	return rows
}

// exportStation is the intermediate, pre-filter form of a station row:
// export.Station itself is already filter-ready, but building it needs
// both the gtfs and connections archives in scope, which the export
// package deliberately knows nothing about.
type exportStation struct {
	name     string
	lat, lon float64
}
