package gtfsnorm

import (
	"github.com/jacqueslucke/trip-atlas/archive"
)

const (
	stopRecordSize         = 50
	stopTimeRecordSize     = 26
	tripRecordSize         = 32
	routeRecordSize        = 35
	agencyRecordSize       = 16
	calendarRecordSize     = 25
	calendarDateRecordSize = 17

	headerCountsSize = 7 * 4
)

// Encode lays a normalized Archive out as a position-independent byte
// buffer: seven table counts, then one fixed-size record table per
// field in Archive, in declaration order, then the shared string pool.
func Encode(a *Archive) []byte {
	b := archive.NewBuilder(archive.SchemaGTFS)

	b.PutUint32(uint32(len(a.Stops)))
	b.PutUint32(uint32(len(a.StopTimes)))
	b.PutUint32(uint32(len(a.Trips)))
	b.PutUint32(uint32(len(a.Routes)))
	b.PutUint32(uint32(len(a.Agencies)))
	b.PutUint32(uint32(len(a.Calendars)))
	b.PutUint32(uint32(len(a.CalendarDates)))

	for _, s := range a.Stops {
		b.PutString(s.ID)
		b.PutOptString(s.Code)
		b.PutOptString(s.Name)
		b.PutOptString(s.ParentStation)
		b.PutOptFloat64(s.Lat)
		b.PutOptFloat64(s.Lon)
	}
	for _, st := range a.StopTimes {
		b.PutString(st.TripID)
		b.PutString(st.StopID)
		b.PutUint16(st.StopSequence)
		b.PutOptUint32(st.Arrival)
		b.PutOptUint32(st.Departure)
	}
	for _, t := range a.Trips {
		b.PutString(t.ID)
		b.PutString(t.ServiceID)
		b.PutString(t.RouteID)
		b.PutOptString(t.ShortName)
	}
	for _, r := range a.Routes {
		b.PutString(r.ID)
		b.PutOptString(r.Short)
		b.PutOptString(r.Long)
		b.PutByte(byte(r.Type))
		b.PutInt16(r.OtherCode)
		b.PutOptString(r.AgencyID)
	}
	for _, ag := range a.Agencies {
		b.PutOptString(ag.ID)
		b.PutString(ag.Name)
	}
	for _, c := range a.Calendars {
		b.PutString(c.ServiceID)
		b.PutByte(c.Weekday)
		b.PutString(c.StartDate)
		b.PutString(c.EndDate)
	}
	for _, cd := range a.CalendarDates {
		b.PutString(cd.ServiceID)
		b.PutString(cd.Date)
		b.PutByte(byte(cd.Exception))
	}

	return b.Finish()
}

// Mapped is a memory-mapped, read-only view of a normalized GTFS archive.
// Each accessor decodes one record directly out of the mapping; nothing
// is parsed upfront beyond the table offsets computed in Open.
type Mapped struct {
	m *archive.Mapped

	numStops, numStopTimes, numTrips, numRoutes int
	numAgencies, numCalendars, numCalendarDates int
	stopsOff, stopTimesOff, tripsOff, routesOff int
	agenciesOff, calendarsOff, calendarDatesOff int
}

func Open(path string) (*Mapped, error) {
	m, err := archive.Open(path, archive.SchemaGTFS)
	if err != nil {
		return nil, err
	}

	md := &Mapped{m: m}
	md.numStops = int(m.Uint32(0))
	md.numStopTimes = int(m.Uint32(4))
	md.numTrips = int(m.Uint32(8))
	md.numRoutes = int(m.Uint32(12))
	md.numAgencies = int(m.Uint32(16))
	md.numCalendars = int(m.Uint32(20))
	md.numCalendarDates = int(m.Uint32(24))

	off := headerCountsSize
	md.stopsOff = off
	off += md.numStops * stopRecordSize
	md.stopTimesOff = off
	off += md.numStopTimes * stopTimeRecordSize
	md.tripsOff = off
	off += md.numTrips * tripRecordSize
	md.routesOff = off
	off += md.numRoutes * routeRecordSize
	md.agenciesOff = off
	off += md.numAgencies * agencyRecordSize
	md.calendarsOff = off
	off += md.numCalendars * calendarRecordSize
	md.calendarDatesOff = off

	return md, nil
}

func (m *Mapped) Close() error { return m.m.Close() }

func (m *Mapped) NumStops() int         { return m.numStops }
func (m *Mapped) NumStopTimes() int     { return m.numStopTimes }
func (m *Mapped) NumTrips() int         { return m.numTrips }
func (m *Mapped) NumRoutes() int        { return m.numRoutes }
func (m *Mapped) NumAgencies() int      { return m.numAgencies }
func (m *Mapped) NumCalendars() int     { return m.numCalendars }
func (m *Mapped) NumCalendarDates() int { return m.numCalendarDates }

func (m *Mapped) Stop(i int) Stop {
	off := m.stopsOff + i*stopRecordSize
	return Stop{
		ID:            m.m.String(off),
		Code:          m.m.OptString(off + 8),
		Name:          m.m.OptString(off + 16),
		ParentStation: m.m.OptString(off + 24),
		Lat:           m.m.OptFloat64(off + 32),
		Lon:           m.m.OptFloat64(off + 41),
	}
}

func (m *Mapped) StopTime(i int) StopTime {
	off := m.stopTimesOff + i*stopTimeRecordSize
	return StopTime{
		TripID:       m.m.String(off),
		StopID:       m.m.String(off + 8),
		StopSequence: m.m.Uint16(off + 16),
		Arrival:      m.m.OptUint32(off + 18),
		Departure:    m.m.OptUint32(off + 22),
	}
}

func (m *Mapped) Trip(i int) Trip {
	off := m.tripsOff + i*tripRecordSize
	return Trip{
		ID:        m.m.String(off),
		ServiceID: m.m.String(off + 8),
		RouteID:   m.m.String(off + 16),
		ShortName: m.m.OptString(off + 24),
	}
}

func (m *Mapped) Route(i int) Route {
	off := m.routesOff + i*routeRecordSize
	return Route{
		ID:        m.m.String(off),
		Short:     m.m.OptString(off + 8),
		Long:      m.m.OptString(off + 16),
		Type:      RouteType(m.m.Byte(off + 24)),
		OtherCode: m.m.Int16(off + 25),
		AgencyID:  m.m.OptString(off + 27),
	}
}

func (m *Mapped) Agency(i int) Agency {
	off := m.agenciesOff + i*agencyRecordSize
	return Agency{
		ID:   m.m.OptString(off),
		Name: m.m.String(off + 8),
	}
}

func (m *Mapped) Calendar(i int) Calendar {
	off := m.calendarsOff + i*calendarRecordSize
	return Calendar{
		ServiceID: m.m.String(off),
		Weekday:   m.m.Byte(off + 8),
		StartDate: m.m.String(off + 9),
		EndDate:   m.m.String(off + 17),
	}
}

func (m *Mapped) CalendarDate(i int) CalendarDate {
	off := m.calendarDatesOff + i*calendarDateRecordSize
	return CalendarDate{
		ServiceID: m.m.String(off),
		Date:      m.m.String(off + 8),
		Exception: ExceptionType(m.m.Byte(off + 16)),
	}
}
