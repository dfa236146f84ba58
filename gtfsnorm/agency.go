package gtfsnorm

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type agencyCSV struct {
	ID   string `csv:"agency_id"`
	Name string `csv:"agency_name"`
}

func parseAgency(r io.Reader) ([]Agency, error) {
	var rows []*agencyCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling agency.txt: %w", err)
	}

	seen := map[string]bool{}
	agencies := make([]Agency, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			return nil, fmt.Errorf("missing agency_name")
		}
		if row.ID != "" {
			if seen[row.ID] {
				return nil, fmt.Errorf("duplicated agency_id '%s'", row.ID)
			}
			seen[row.ID] = true
		}

		agencies = append(agencies, Agency{
			ID:   optStr(row.ID),
			Name: row.Name,
		})
	}

	return agencies, nil
}
