package gtfsnorm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/jacqueslucke/trip-atlas/archive"
)

// ArchiveFileName is the file written next to a GTFS folder once it has
// been normalized.
const ArchiveFileName = "data_rkyv.bin"

// EnsureArchive normalizes the GTFS feed in folder into ArchiveFileName,
// unless it already exists. The whole feed is held in memory while
// normalizing; this is an accepted trade-off for feeds of ordinary,
// country-scale size. When quiet is true, progress bars are not
// rendered.
func EnsureArchive(folder string, log zerolog.Logger, quiet bool) (string, error) {
	path := filepath.Join(folder, ArchiveFileName)
	if _, err := os.Stat(path); err == nil {
		log.Info().Str("path", path).Msg("archive already exists, skipping")
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "statting archive path")
	}

	a, err := load(folder, log, quiet)
	if err != nil {
		return "", err
	}

	log.Info().Msg("serializing archive")
	data := Encode(a)

	if err := archive.WriteFile(path, data); err != nil {
		return "", errors.Wrap(err, "writing archive")
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote archive")
	return path, nil
}

func load(folder string, log zerolog.Logger, quiet bool) (*Archive, error) {
	steps := []struct {
		file     string
		required bool
	}{
		{"agency.txt", true},
		{"routes.txt", true},
		{"stops.txt", true},
		{"trips.txt", true},
		{"stop_times.txt", true},
		{"calendar.txt", false},
		{"calendar_dates.txt", false},
	}

	bar := newProgressBar(int64(len(steps)), "normalizing gtfs", quiet)

	a := &Archive{}

	for _, step := range steps {
		path := filepath.Join(folder, step.file)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) && !step.required {
				bar.Add(1)
				continue
			}
			return nil, errors.Wrapf(err, "opening %s", step.file)
		}

		log.Debug().Str("file", step.file).Msg("parsing")

		switch step.file {
		case "agency.txt":
			a.Agencies, err = parseAgency(f)
		case "routes.txt":
			a.Routes, err = parseRoutes(f)
		case "stops.txt":
			a.Stops, err = parseStops(f)
		case "trips.txt":
			a.Trips, err = parseTrips(f)
		case "stop_times.txt":
			a.StopTimes, err = parseStopTimes(f)
		case "calendar.txt":
			a.Calendars, err = parseCalendar(f)
		case "calendar_dates.txt":
			a.CalendarDates, err = parseCalendarDates(f)
		}

		closeErr := f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", step.file)
		}
		if closeErr != nil {
			return nil, errors.Wrapf(closeErr, "closing %s", step.file)
		}

		bar.Add(1)
	}

	if len(a.Calendars) == 0 && len(a.CalendarDates) == 0 {
		return nil, fmt.Errorf("feed has neither calendar.txt nor calendar_dates.txt entries")
	}

	return a, nil
}

// newProgressBar mirrors progressbar.Default, except it renders to
// io.Discard when quiet is set instead of stderr.
func newProgressBar(max int64, description string, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return progressbar.NewOptions64(max, progressbar.OptionSetWriter(io.Discard), progressbar.OptionSetDescription(description))
	}
	return progressbar.Default(max, description)
}
