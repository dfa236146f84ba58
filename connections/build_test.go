package connections

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacqueslucke/trip-atlas/archive"
	"github.com/jacqueslucke/trip-atlas/gtfsnorm"
)

func u32(v uint32) *uint32 { return &v }

func openGTFS(t *testing.T, a *gtfsnorm.Archive) *gtfsnorm.Mapped {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data_rkyv.bin")
	require.NoError(t, archive.WriteFile(path, gtfsnorm.Encode(a)))
	m, err := gtfsnorm.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

// Scenario A: single trip, three stops.
func TestBuildSingleTripThreeStops(t *testing.T) {
	gtfs := openGTFS(t, &gtfsnorm.Archive{
		Stops: []gtfsnorm.Stop{
			{ID: "A"}, {ID: "B"}, {ID: "C"},
		},
		StopTimes: []gtfsnorm.StopTime{
			{TripID: "T", StopID: "A", StopSequence: 1, Departure: u32(100)},
			{TripID: "T", StopID: "B", StopSequence: 2, Arrival: u32(160), Departure: u32(165)},
			{TripID: "T", StopID: "C", StopSequence: 3, Arrival: u32(220)},
		},
	})

	a := build(gtfs, zerolog.Nop(), true)
	require.Len(t, a.Stations, 3)

	assert.ElementsMatch(t, []Edge{{ToStation: 1, Duration: 60}}, a.Stations[0].Edges)
	assert.ElementsMatch(t, []Edge{{ToStation: 2, Duration: 55}}, a.Stations[1].Edges)
	assert.Empty(t, a.Stations[2].Edges)
}

// Scenario B: platform aliasing onto a parent station.
func TestBuildParentStationAliasing(t *testing.T) {
	gtfs := openGTFS(t, &gtfsnorm.Archive{
		Stops: []gtfsnorm.Stop{
			{ID: "A"},
			{ID: "A1", ParentStation: optStrPtr("A")},
			{ID: "B"},
		},
		StopTimes: []gtfsnorm.StopTime{
			{TripID: "T", StopID: "A1", StopSequence: 1, Departure: u32(0)},
			{TripID: "T", StopID: "B", StopSequence: 2, Arrival: u32(30)},
		},
	})

	a := build(gtfs, zerolog.Nop(), true)
	require.Len(t, a.Stations, 2, "A1 must alias to A's station, not get its own")

	assert.ElementsMatch(t, []Edge{{ToStation: 1, Duration: 30}}, a.Stations[0].Edges)
	assert.Empty(t, a.Stations[1].Edges)
}

// Scenario C: minimum duration retained across multiple trips.
func TestBuildRetainsMinimumDurationAcrossTrips(t *testing.T) {
	gtfs := openGTFS(t, &gtfsnorm.Archive{
		Stops: []gtfsnorm.Stop{{ID: "A"}, {ID: "B"}},
		StopTimes: []gtfsnorm.StopTime{
			{TripID: "T1", StopID: "A", StopSequence: 1, Departure: u32(0)},
			{TripID: "T1", StopID: "B", StopSequence: 2, Arrival: u32(100)},
			{TripID: "T2", StopID: "A", StopSequence: 1, Departure: u32(0)},
			{TripID: "T2", StopID: "B", StopSequence: 2, Arrival: u32(80)},
		},
	})

	a := build(gtfs, zerolog.Nop(), true)
	require.Len(t, a.Stations[0].Edges, 1)
	assert.Equal(t, uint32(80), a.Stations[0].Edges[0].Duration)
}

// Non-positive durations are dropped, not clamped.
func TestBuildDropsNonPositiveDurations(t *testing.T) {
	gtfs := openGTFS(t, &gtfsnorm.Archive{
		Stops: []gtfsnorm.Stop{{ID: "A"}, {ID: "B"}},
		StopTimes: []gtfsnorm.StopTime{
			{TripID: "T", StopID: "A", StopSequence: 1, Departure: u32(100)},
			{TripID: "T", StopID: "B", StopSequence: 2, Arrival: u32(100)},
		},
	})

	a := build(gtfs, zerolog.Nop(), true)
	assert.Empty(t, a.Stations[0].Edges)
}

// A stop_time missing a time contributes no edge.
func TestBuildSkipsStopTimeMissingTime(t *testing.T) {
	gtfs := openGTFS(t, &gtfsnorm.Archive{
		Stops: []gtfsnorm.Stop{{ID: "A"}, {ID: "B"}},
		StopTimes: []gtfsnorm.StopTime{
			{TripID: "T", StopID: "A", StopSequence: 1},
			{TripID: "T", StopID: "B", StopSequence: 2, Arrival: u32(100)},
		},
	})

	a := build(gtfs, zerolog.Nop(), true)
	assert.Empty(t, a.Stations[0].Edges)
}

// A stop with an unknown parent_station is dropped from the alias map
// and contributes no edges.
func TestBuildDropsStopWithUnknownParent(t *testing.T) {
	gtfs := openGTFS(t, &gtfsnorm.Archive{
		Stops: []gtfsnorm.Stop{
			{ID: "B"},
			{ID: "Orphan", ParentStation: optStrPtr("does-not-exist")},
		},
		StopTimes: []gtfsnorm.StopTime{
			{TripID: "T", StopID: "Orphan", StopSequence: 1, Departure: u32(0)},
			{TripID: "T", StopID: "B", StopSequence: 2, Arrival: u32(30)},
		},
	})

	a := build(gtfs, zerolog.Nop(), true)
	require.Len(t, a.Stations, 1, "only B gets a station; Orphan's parent does not resolve")
	assert.Empty(t, a.Stations[0].Edges)
}

func optStrPtr(s string) *string { return &s }
