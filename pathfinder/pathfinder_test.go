package pathfinder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacqueslucke/trip-atlas/connections"
)

// memGraph is a plain in-memory Graph used only by tests, so pathfinder
// tests never need to round-trip through an archive file.
type memGraph struct {
	edges [][]connections.Edge
}

func (g *memGraph) NumStations() int { return len(g.edges) }
func (g *memGraph) NumEdges(station int) int {
	return len(g.edges[station])
}
func (g *memGraph) Edge(station, i int) connections.Edge {
	return g.edges[station][i]
}

func newMemGraph(numStations int, edges map[int][]connections.Edge) *memGraph {
	g := &memGraph{edges: make([][]connections.Edge, numStations)}
	for from, es := range edges {
		g.edges[from] = es
	}
	return g
}

func TestBucketEngineLinearChain(t *testing.T) {
	g := newMemGraph(4, map[int][]connections.Edge{
		0: {{ToStation: 1, Duration: 60}},
		1: {{ToStation: 2, Duration: 90}},
		2: {{ToStation: 3, Duration: 30}},
	})

	table := NewBucketEngine().Query(g, []uint32{0})

	seconds, reached := table.Get(0)
	assert.True(t, reached)
	assert.Equal(t, uint32(0), seconds)

	seconds, reached = table.Get(3)
	assert.True(t, reached)
	assert.Equal(t, uint32(180), seconds)
}

func TestBucketEngineUnreachedStationIsNotReached(t *testing.T) {
	g := newMemGraph(2, map[int][]connections.Edge{})
	table := NewBucketEngine().Query(g, []uint32{0})

	_, reached := table.Get(1)
	assert.False(t, reached)
}

func TestBucketEngineTakesShortestOfMultiplePaths(t *testing.T) {
	g := newMemGraph(3, map[int][]connections.Edge{
		0: {{ToStation: 1, Duration: 300}, {ToStation: 2, Duration: 30}},
		2: {{ToStation: 1, Duration: 30}},
	})

	table := NewBucketEngine().Query(g, []uint32{0})

	seconds, reached := table.Get(1)
	require.True(t, reached)
	assert.Equal(t, uint32(60), seconds)
}

func TestBucketEngineMultipleOriginsStartAtZero(t *testing.T) {
	g := newMemGraph(3, map[int][]connections.Edge{
		0: {{ToStation: 2, Duration: 100}},
		1: {{ToStation: 2, Duration: 10}},
	})

	table := NewBucketEngine().Query(g, []uint32{0, 1})

	seconds, reached := table.Get(2)
	require.True(t, reached)
	assert.Equal(t, uint32(10), seconds)
}

// Scenario D: bucket boundary. With secondsPerBucket=30, an edge of
// duration 29 is drained within bucket 0, while durations 30 and 31 fall
// into bucket 1 — the point being both resolve correctly regardless of
// which bucket drains them.
func TestBucketEngineBucketBoundary(t *testing.T) {
	g := newMemGraph(4, map[int][]connections.Edge{
		0: {
			{ToStation: 1, Duration: 29},
			{ToStation: 2, Duration: 30},
			{ToStation: 3, Duration: 31},
		},
	})

	table := NewBucketEngine(WithSecondsPerBucket(30)).Query(g, []uint32{0})

	for station, want := range map[uint32]uint32{1: 29, 2: 30, 3: 31} {
		got, reached := table.Get(station)
		require.True(t, reached)
		assert.Equal(t, want, got, "station %d", station)
	}
}

// Scenario E: within-bucket re-relaxation. A→B→C completed inside a
// single bucket sweep must beat a direct, slower A→C edge discovered in
// the same sweep.
func TestBucketEngineWithinBucketReRelaxation(t *testing.T) {
	g := newMemGraph(3, map[int][]connections.Edge{
		0: {{ToStation: 1, Duration: 10}, {ToStation: 2, Duration: 20}},
		1: {{ToStation: 2, Duration: 5}},
	})

	table := NewBucketEngine(WithSecondsPerBucket(30)).Query(g, []uint32{0})

	seconds, reached := table.Get(2)
	require.True(t, reached)
	assert.Equal(t, uint32(15), seconds, "A->B->C (15) must beat direct A->C (20)")
}

// Scenario F: an isolated station with no incoming edges is never
// reached, from any origin.
func TestBucketEngineIsolatedStationIsUnreached(t *testing.T) {
	g := newMemGraph(3, map[int][]connections.Edge{
		0: {{ToStation: 1, Duration: 10}},
	})

	table := NewBucketEngine().Query(g, []uint32{0})

	_, reached := table.Get(2)
	assert.False(t, reached)
}

func TestBucketEngineAndHeapEngineAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		numStations := 5 + rng.Intn(40)
		edges := map[int][]connections.Edge{}
		for from := 0; from < numStations; from++ {
			numEdges := rng.Intn(4)
			for i := 0; i < numEdges; i++ {
				edges[from] = append(edges[from], connections.Edge{
					ToStation: uint32(rng.Intn(numStations)),
					Duration:  uint32(1 + rng.Intn(500)),
				})
			}
		}
		g := newMemGraph(numStations, edges)

		numOrigins := 1 + rng.Intn(3)
		origins := make([]uint32, numOrigins)
		for i := range origins {
			origins[i] = uint32(rng.Intn(numStations))
		}

		bucketTable := NewBucketEngine(WithSecondsPerBucket(10), WithMaxSeconds(100000)).Query(g, origins)
		heapTable := NewHeapEngine().Query(g, origins)

		for station := 0; station < numStations; station++ {
			bSeconds, bReached := bucketTable.Get(uint32(station))
			hSeconds, hReached := heapTable.Get(uint32(station))
			require.Equal(t, hReached, bReached, "trial %d station %d", trial, station)
			if hReached {
				assert.Equal(t, hSeconds, bSeconds, "trial %d station %d", trial, station)
			}
		}
	}
}
