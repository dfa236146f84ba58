package connections

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacqueslucke/trip-atlas/archive"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := &Archive{
		Stations: []Station{
			{MainStopIndex: 0, Edges: []Edge{{ToStation: 1, Duration: 120}, {ToStation: 2, Duration: 300}}},
			{MainStopIndex: 3, Edges: nil},
			{MainStopIndex: 5, Edges: []Edge{{ToStation: 0, Duration: 90}}},
		},
	}

	data := Encode(a)

	dir := t.TempDir()
	path := filepath.Join(dir, "all_connections.bin")
	require.NoError(t, archive.WriteFile(path, data))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, 3, m.NumStations())
	assert.Equal(t, uint32(0), m.MainStopIndex(0))
	assert.Equal(t, uint32(3), m.MainStopIndex(1))
	assert.Equal(t, uint32(5), m.MainStopIndex(2))

	assert.ElementsMatch(t, []Edge{{ToStation: 1, Duration: 120}, {ToStation: 2, Duration: 300}}, m.Edges(0))
	assert.Empty(t, m.Edges(1))
	assert.ElementsMatch(t, []Edge{{ToStation: 0, Duration: 90}}, m.Edges(2))
}
