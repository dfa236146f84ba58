package gtfsnorm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeedFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

// writeMinimalFeed writes a feed with every required table and one
// optional calendar table, small enough to normalize in a unit test.
func writeMinimalFeed(t *testing.T, dir string) {
	t.Helper()
	writeFeedFile(t, dir, "agency.txt", "agency_id,agency_name\nAG,Agency\n")
	writeFeedFile(t, dir, "routes.txt", "route_id,route_short_name,route_type,agency_id\nR1,1,3,AG\n")
	writeFeedFile(t, dir, "stops.txt", "stop_id,stop_name,stop_lat,stop_lon,parent_station\nA,Stop A,52.5,13.4,\nB,Stop B,52.6,13.5,\n")
	writeFeedFile(t, dir, "trips.txt", "trip_id,route_id,service_id\nT1,R1,WD\n")
	writeFeedFile(t, dir, "stop_times.txt", "trip_id,stop_id,stop_sequence,arrival_time,departure_time\nT1,A,1,00:01:40,00:01:40\nT1,B,2,00:02:40,00:02:40\n")
	writeFeedFile(t, dir, "calendar.txt", "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\nWD,1,1,1,1,1,0,0,20240101,20241231\n")
}

func TestEnsureArchiveNormalizesFeed(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)

	path, err := EnsureArchive(dir, zerolog.Nop(), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ArchiveFileName), path)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 2, m.NumStops())
	assert.Equal(t, 2, m.NumStopTimes())
	assert.Equal(t, 1, m.NumTrips())
	assert.Equal(t, 1, m.NumRoutes())
	assert.Equal(t, 1, m.NumAgencies())
	assert.Equal(t, 1, m.NumCalendars())
}

// Idempotence: running EnsureArchive a second time on the same folder
// leaves the existing archive untouched rather than rebuilding it.
func TestEnsureArchiveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)

	path, err := EnsureArchive(dir, zerolog.Nop(), true)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = EnsureArchive(dir, zerolog.Nop(), true)
	require.NoError(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestEnsureArchiveFailsWithoutRequiredTable(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "stops.txt")))

	_, err := EnsureArchive(dir, zerolog.Nop(), true)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, ArchiveFileName))
	assert.True(t, os.IsNotExist(statErr), "no partial archive should be left behind")
}

func TestEnsureArchiveFailsWithoutAnyCalendarTable(t *testing.T) {
	dir := t.TempDir()
	writeMinimalFeed(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "calendar.txt")))

	_, err := EnsureArchive(dir, zerolog.Nop(), true)
	require.Error(t, err)
}
