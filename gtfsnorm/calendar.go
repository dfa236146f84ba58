package gtfsnorm

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
}

func weekdayBit(v int8, day time.Weekday, field string) (uint8, error) {
	if v == 1 {
		return 1 << uint(day), nil
	}
	if v != 0 {
		return 0, fmt.Errorf("invalid %s value '%d'", field, v)
	}
	return 0, nil
}

func parseCalendar(r io.Reader) ([]Calendar, error) {
	var rows []*calendarCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar.txt: %w", err)
	}

	seen := map[string]bool{}
	calendars := make([]Calendar, 0, len(rows))
	for _, row := range rows {
		if row.ServiceID == "" {
			return nil, fmt.Errorf("empty service_id")
		}
		if seen[row.ServiceID] {
			return nil, fmt.Errorf("repeated service_id '%s'", row.ServiceID)
		}
		seen[row.ServiceID] = true

		var weekday uint8
		for _, bit := range []struct {
			v     int8
			day   time.Weekday
			field string
		}{
			{row.Monday, time.Monday, "monday"},
			{row.Tuesday, time.Tuesday, "tuesday"},
			{row.Wednesday, time.Wednesday, "wednesday"},
			{row.Thursday, time.Thursday, "thursday"},
			{row.Friday, time.Friday, "friday"},
			{row.Saturday, time.Saturday, "saturday"},
			{row.Sunday, time.Sunday, "sunday"},
		} {
			b, err := weekdayBit(bit.v, bit.day, bit.field)
			if err != nil {
				return nil, err
			}
			weekday |= b
		}

		calendars = append(calendars, Calendar{
			ServiceID: row.ServiceID,
			Weekday:   weekday,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		})
	}

	return calendars, nil
}
