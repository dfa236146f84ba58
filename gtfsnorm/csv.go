package gtfsnorm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"
)

func init() {
	// LazyCSVReader survives sloppy use of quotes, which real-world
	// GTFS exports are full of. bom.NewReader strips a leading unicode
	// BOM some exporters still emit.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", s)
	}
	return v, nil
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseClockSeconds parses an HH:MM:SS GTFS time-of-day string into
// seconds since the start of the service day. Hours may legally exceed
// 23 to express service past midnight.
func parseClockSeconds(s string) (uint32, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected H:M:S, found %d parts in '%s'", len(parts), s)
	}

	var hms [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("non-integer component in '%s'", s)
		}
		hms[i] = v
	}

	if hms[0] < 0 {
		return 0, fmt.Errorf("negative hour in '%s'", s)
	}
	if hms[1] < 0 || hms[1] > 59 {
		return 0, fmt.Errorf("invalid minute in '%s'", s)
	}
	if hms[2] < 0 || hms[2] > 59 {
		return 0, fmt.Errorf("invalid second in '%s'", s)
	}

	return uint32(hms[0]*3600 + hms[1]*60 + hms[2]), nil
}

func parseOptClockSeconds(s string) (*uint32, error) {
	if s == "" {
		return nil, nil
	}
	v, err := parseClockSeconds(s)
	if err != nil {
		return nil, errors.Wrap(err, "parsing time")
	}
	return &v, nil
}
