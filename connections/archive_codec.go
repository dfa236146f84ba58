package connections

import (
	"github.com/jacqueslucke/trip-atlas/archive"
)

// stationRecordSize: mainStopIndex (4) + edgeOffset (4) + edgeCount (4).
const stationRecordSize = 12

// edgeRecordSize: toStation (4) + duration (4).
const edgeRecordSize = 8

// Encode lays the connection graph out as a station table indexing into
// a flat edge table, avoiding per-station allocation on read.
func Encode(a *Archive) []byte {
	b := archive.NewBuilder(archive.SchemaConnections)

	totalEdges := 0
	for _, s := range a.Stations {
		totalEdges += len(s.Edges)
	}

	b.PutUint32(uint32(len(a.Stations)))
	b.PutUint32(uint32(totalEdges))

	edgeOffset := uint32(0)
	for _, s := range a.Stations {
		b.PutUint32(s.MainStopIndex)
		b.PutUint32(edgeOffset)
		b.PutUint32(uint32(len(s.Edges)))
		edgeOffset += uint32(len(s.Edges))
	}

	for _, s := range a.Stations {
		for _, e := range s.Edges {
			b.PutUint32(e.ToStation)
			b.PutUint32(e.Duration)
		}
	}

	return b.Finish()
}

// Mapped is a memory-mapped, read-only view of a direct-connection
// archive.
type Mapped struct {
	m              *archive.Mapped
	numStations    int
	stationsOffset int
	edgesOffset    int
}

func Open(path string) (*Mapped, error) {
	m, err := archive.Open(path, archive.SchemaConnections)
	if err != nil {
		return nil, err
	}

	md := &Mapped{m: m}
	md.numStations = int(m.Uint32(0))
	md.stationsOffset = 8
	md.edgesOffset = md.stationsOffset + md.numStations*stationRecordSize
	return md, nil
}

func (m *Mapped) Close() error { return m.m.Close() }

func (m *Mapped) NumStations() int { return m.numStations }

func (m *Mapped) MainStopIndex(station int) uint32 {
	off := m.stationsOffset + station*stationRecordSize
	return m.m.Uint32(off)
}

func (m *Mapped) NumEdges(station int) int {
	off := m.stationsOffset + station*stationRecordSize
	return int(m.m.Uint32(off + 8))
}

func (m *Mapped) Edge(station, i int) Edge {
	off := m.stationsOffset + station*stationRecordSize
	edgeOffset := int(m.m.Uint32(off + 4))
	edgeOff := m.edgesOffset + (edgeOffset+i)*edgeRecordSize
	return Edge{
		ToStation: m.m.Uint32(edgeOff),
		Duration:  m.m.Uint32(edgeOff + 4),
	}
}

// Edges returns every outgoing edge for station, decoded into a fresh
// slice.
func (m *Mapped) Edges(station int) []Edge {
	n := m.NumEdges(station)
	out := make([]Edge, n)
	for i := 0; i < n; i++ {
		out[i] = m.Edge(station, i)
	}
	return out
}
