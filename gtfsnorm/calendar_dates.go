package gtfsnorm

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

func parseCalendarDates(r io.Reader) ([]CalendarDate, error) {
	var rows []*calendarDateCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates.txt: %w", err)
	}

	seen := map[string]bool{}
	dates := make([]CalendarDate, 0, len(rows))
	for _, row := range rows {
		if row.ExceptionType != 1 && row.ExceptionType != 2 {
			return nil, fmt.Errorf("illegal exception_type '%d' for service '%s'", row.ExceptionType, row.ServiceID)
		}

		key := row.ServiceID + "/" + row.Date
		if seen[key] {
			return nil, fmt.Errorf("duplicate service/date '%s'", key)
		}
		seen[key] = true

		exception := ExceptionAdded
		if row.ExceptionType == 2 {
			exception = ExceptionDeleted
		}

		dates = append(dates, CalendarDate{
			ServiceID: row.ServiceID,
			Date:      row.Date,
			Exception: exception,
		})
	}

	return dates, nil
}
