package gtfsnorm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

type routeCSV struct {
	ID        string `csv:"route_id"`
	AgencyID  string `csv:"agency_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
}

// mapRouteType translates a raw GTFS route_type code into the closed
// enum, preserving unrecognized codes via RouteTypeOther rather than
// rejecting the row.
func mapRouteType(code int) (RouteType, int16) {
	switch {
	case code == 0:
		return RouteTypeTramway, 0
	case code == 1:
		return RouteTypeSubway, 0
	case code == 2 || (code >= 100 && code < 200):
		return RouteTypeRail, 0
	case code == 3 || (code >= 700 && code < 900):
		return RouteTypeBus, 0
	case code == 4 || (code >= 1000 && code < 1100) || code == 1200:
		return RouteTypeFerry, 0
	case code == 5 || (code >= 900 && code < 1000):
		return RouteTypeCableCar, 0
	case code == 6 || (code >= 1300 && code < 1400):
		return RouteTypeGondola, 0
	case code == 7 || (code >= 1400 && code < 1500):
		return RouteTypeFunicular, 0
	case code >= 200 && code < 300:
		return RouteTypeCoach, 0
	case code >= 1100 && code < 1200:
		return RouteTypeAir, 0
	case code >= 1500 && code < 1600:
		return RouteTypeTaxi, 0
	default:
		return RouteTypeOther, int16(code)
	}
}

func parseRoutes(r io.Reader) ([]Route, error) {
	var rows []*routeCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling routes.txt: %w", err)
	}

	seen := map[string]bool{}
	routes := make([]Route, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			return nil, fmt.Errorf("empty route_id")
		}
		if seen[row.ID] {
			return nil, fmt.Errorf("repeated route_id '%s'", row.ID)
		}
		seen[row.ID] = true

		var routeType RouteType
		var otherCode int16
		if row.Type != "" {
			code, err := strconv.Atoi(row.Type)
			if err != nil {
				return nil, fmt.Errorf("invalid route_type '%s' for route '%s'", row.Type, row.ID)
			}
			routeType, otherCode = mapRouteType(code)
		}

		routes = append(routes, Route{
			ID:        row.ID,
			Short:     optStr(row.ShortName),
			Long:      optStr(row.LongName),
			Type:      routeType,
			OtherCode: otherCode,
			AgencyID:  optStr(row.AgencyID),
		})
	}

	return routes, nil
}
