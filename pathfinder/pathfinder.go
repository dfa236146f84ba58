// Package pathfinder computes earliest-arrival times over a
// direct-connection graph from one or more origin stations.
package pathfinder

import "github.com/jacqueslucke/trip-atlas/connections"

// Graph is the read access a pathfinder engine needs from a
// direct-connection archive. *connections.Mapped satisfies it directly;
// tests can supply an in-memory stand-in.
type Graph interface {
	NumStations() int
	NumEdges(station int) int
	Edge(station, i int) connections.Edge
}

// ArrivalTable holds the earliest-arrival result of one query. Seconds
// is only meaningful where Reached is true; Go has no inline niche
// optimization for Option<u32> in a packed array, so absence is tracked
// in a parallel bool slice instead of a sentinel value.
type ArrivalTable struct {
	Seconds []uint32
	Reached []bool
}

func newArrivalTable(n int) ArrivalTable {
	return ArrivalTable{
		Seconds: make([]uint32, n),
		Reached: make([]bool, n),
	}
}

// Get reports station's earliest arrival and whether it was reached.
func (t ArrivalTable) Get(station uint32) (uint32, bool) {
	return t.Seconds[station], t.Reached[station]
}

// Engine computes an ArrivalTable for a graph and a set of origin
// stations. BucketEngine and HeapEngine both satisfy it.
type Engine interface {
	Query(g Graph, origins []uint32) ArrivalTable
}
