package gtfsnorm

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type stopCSV struct {
	ID            string `csv:"stop_id"`
	Code          string `csv:"stop_code"`
	Name          string `csv:"stop_name"`
	Lat           string `csv:"stop_lat"`
	Lon           string `csv:"stop_lon"`
	ParentStation string `csv:"parent_station"`
}

func parseStops(r io.Reader) ([]Stop, error) {
	var rows []*stopCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling stops.txt: %w", err)
	}

	seen := map[string]bool{}
	stops := make([]Stop, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			return nil, fmt.Errorf("empty stop_id")
		}
		if seen[row.ID] {
			return nil, fmt.Errorf("repeated stop_id '%s'", row.ID)
		}
		seen[row.ID] = true

		var lat, lon *float64
		if row.Lat != "" {
			v, err := parseFloat(row.Lat)
			if err != nil {
				return nil, fmt.Errorf("parsing stop_lat for '%s': %w", row.ID, err)
			}
			lat = &v
		}
		if row.Lon != "" {
			v, err := parseFloat(row.Lon)
			if err != nil {
				return nil, fmt.Errorf("parsing stop_lon for '%s': %w", row.ID, err)
			}
			lon = &v
		}

		stops = append(stops, Stop{
			ID:            row.ID,
			Code:          optStr(row.Code),
			Name:          optStr(row.Name),
			ParentStation: optStr(row.ParentStation),
			Lat:           lat,
			Lon:           lon,
		})
	}

	return stops, nil
}
