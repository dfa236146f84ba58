package gtfsnorm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type stopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  string `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

func parseStopTimes(r io.Reader) ([]StopTime, error) {
	var stopTimes []StopTime

	i := 0
	err := gocsv.UnmarshalToCallbackWithError(r, func(row *stopTimeCSV) error {
		i++
		if row.TripID == "" {
			return fmt.Errorf("missing trip_id (row %d)", i)
		}
		if row.StopID == "" {
			return fmt.Errorf("missing stop_id (row %d)", i)
		}

		var seq uint16
		if row.StopSequence != "" {
			v, err := strconv.ParseUint(row.StopSequence, 10, 16)
			if err != nil {
				return fmt.Errorf("invalid stop_sequence '%s' (row %d)", row.StopSequence, i)
			}
			seq = uint16(v)
		}

		arrival, err := parseOptClockSeconds(row.ArrivalTime)
		if err != nil {
			return errors.Wrapf(err, "parsing arrival_time (row %d)", i)
		}
		departure, err := parseOptClockSeconds(row.DepartureTime)
		if err != nil {
			return errors.Wrapf(err, "parsing departure_time (row %d)", i)
		}
		if arrival != nil && departure != nil && *arrival > *departure {
			return fmt.Errorf("arrival after departure (row %d)", i)
		}

		stopTimes = append(stopTimes, StopTime{
			TripID:       row.TripID,
			StopID:       row.StopID,
			StopSequence: seq,
			Arrival:      arrival,
			Departure:    departure,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling stop_times.txt")
	}

	return stopTimes, nil
}
