package gtfsnorm

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type tripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ShortName string `csv:"trip_short_name"`
}

func parseTrips(r io.Reader) ([]Trip, error) {
	var rows []*tripCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling trips.txt: %w", err)
	}

	seen := map[string]bool{}
	trips := make([]Trip, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			return nil, fmt.Errorf("empty trip_id")
		}
		if seen[row.ID] {
			return nil, fmt.Errorf("repeated trip_id '%s'", row.ID)
		}
		seen[row.ID] = true

		trips = append(trips, Trip{
			ID:        row.ID,
			ServiceID: row.ServiceID,
			RouteID:   row.RouteID,
			ShortName: optStr(row.ShortName),
		})
	}

	return trips, nil
}
