package connections

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/jacqueslucke/trip-atlas/archive"
	"github.com/jacqueslucke/trip-atlas/gtfsnorm"
)

// ArchiveFileName is the file written next to a GTFS folder once its
// direct-connection graph has been built.
const ArchiveFileName = "all_connections.bin"

type edgeKey struct {
	from, to uint32
}

// EnsureArchive builds the direct-connection graph for the GTFS feed in
// folder into ArchiveFileName, unless it already exists. gtfs must be an
// already-normalized archive for the same folder. When quiet is true,
// progress bars are not rendered.
func EnsureArchive(folder string, gtfs *gtfsnorm.Mapped, log zerolog.Logger, quiet bool) (string, error) {
	path := filepath.Join(folder, ArchiveFileName)
	if _, err := os.Stat(path); err == nil {
		log.Info().Str("path", path).Msg("archive already exists, skipping")
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "statting archive path")
	}

	a := build(gtfs, log, quiet)

	data := Encode(a)
	if err := archive.WriteFile(path, data); err != nil {
		return "", errors.Wrap(err, "writing archive")
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote archive")
	return path, nil
}

func build(gtfs *gtfsnorm.Mapped, log zerolog.Logger, quiet bool) *Archive {
	stationOfStop, mainStopIndex := indexStations(gtfs, log, quiet)

	stopsByTrip := bucketStopTimesByTrip(gtfs, log, quiet)

	durations := shortestDurations(gtfs, stopsByTrip, stationOfStop, log, quiet)

	return materialize(mainStopIndex, durations, log, quiet)
}

// newProgressBar mirrors progressbar.Default, except it renders to
// io.Discard when quiet is set instead of stderr.
func newProgressBar(max int64, description string, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return progressbar.NewOptions64(max, progressbar.OptionSetWriter(io.Discard), progressbar.OptionSetDescription(description))
	}
	return progressbar.Default(max, description)
}

// indexStations assigns a dense station index to every parent-less
// stop, then aliases every parented stop to its parent's station.
// Stops whose declared parent is unknown are left unaliased; they
// contribute no edges. mainStopIndex[station] is the stop-array index
// of the parent-less stop that defines that station.
func indexStations(gtfs *gtfsnorm.Mapped, log zerolog.Logger, quiet bool) (map[string]uint32, []uint32) {
	numStops := gtfs.NumStops()
	bar := newProgressBar(int64(numStops), "indexing stations", quiet)

	stationOfStop := make(map[string]uint32, numStops)
	var mainStopIndex []uint32

	for i := 0; i < numStops; i++ {
		stop := gtfs.Stop(i)
		if stop.ParentStation == nil {
			stationOfStop[stop.ID] = uint32(len(mainStopIndex))
			mainStopIndex = append(mainStopIndex, uint32(i))
		}
		bar.Add(1)
	}

	for i := 0; i < numStops; i++ {
		stop := gtfs.Stop(i)
		if stop.ParentStation == nil {
			continue
		}
		parentStation, ok := stationOfStop[*stop.ParentStation]
		if !ok {
			log.Debug().Str("stop_id", stop.ID).Str("parent_station", *stop.ParentStation).
				Msg("dropping stop with unknown parent_station")
			continue
		}
		stationOfStop[stop.ID] = parentStation
	}

	return stationOfStop, mainStopIndex
}

func bucketStopTimesByTrip(gtfs *gtfsnorm.Mapped, log zerolog.Logger, quiet bool) map[string][]gtfsnorm.StopTime {
	numStopTimes := gtfs.NumStopTimes()
	bar := newProgressBar(int64(numStopTimes), "bucketing stop times by trip", quiet)

	stopsByTrip := map[string][]gtfsnorm.StopTime{}
	for i := 0; i < numStopTimes; i++ {
		st := gtfs.StopTime(i)
		stopsByTrip[st.TripID] = append(stopsByTrip[st.TripID], st)
		bar.Add(1)
	}

	return stopsByTrip
}

func shortestDurations(
	gtfs *gtfsnorm.Mapped,
	stopsByTrip map[string][]gtfsnorm.StopTime,
	stationOfStop map[string]uint32,
	log zerolog.Logger,
	quiet bool,
) map[edgeKey]uint32 {
	bar := newProgressBar(int64(len(stopsByTrip)), "finding shortest durations", quiet)

	durations := map[edgeKey]uint32{}
	for _, stopTimes := range stopsByTrip {
		sort.SliceStable(stopTimes, func(i, j int) bool {
			return stopTimes[i].StopSequence < stopTimes[j].StopSequence
		})

		for i := 0; i+1 < len(stopTimes); i++ {
			a, b := stopTimes[i], stopTimes[i+1]

			fromStation, ok := stationOfStop[a.StopID]
			if !ok {
				continue
			}
			toStation, ok := stationOfStop[b.StopID]
			if !ok {
				continue
			}
			if a.Departure == nil || b.Arrival == nil {
				continue
			}

			duration := int64(*b.Arrival) - int64(*a.Departure)
			if duration <= 0 {
				continue
			}

			key := edgeKey{from: fromStation, to: toStation}
			if cur, ok := durations[key]; !ok || uint32(duration) < cur {
				durations[key] = uint32(duration)
			}
		}

		bar.Add(1)
	}

	return durations
}

func materialize(mainStopIndex []uint32, durations map[edgeKey]uint32, log zerolog.Logger, quiet bool) *Archive {
	bar := newProgressBar(int64(len(durations)), "creating connections", quiet)

	stations := make([]Station, len(mainStopIndex))
	for i, stopIndex := range mainStopIndex {
		stations[i].MainStopIndex = stopIndex
	}

	for key, duration := range durations {
		stations[key.from].Edges = append(stations[key.from].Edges, Edge{
			ToStation: key.to,
			Duration:  duration,
		})
		bar.Add(1)
	}

	return &Archive{Stations: stations}
}
