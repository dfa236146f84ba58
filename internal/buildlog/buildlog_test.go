package buildlog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	dir := t.TempDir()
	log, err := Open(filepath.Join(dir, "build.db"))
	require.NoError(t, err)
	defer log.Close()

	start := time.Now().Add(-time.Minute)
	finish := time.Now()

	require.NoError(t, log.Record(StageGTFSNormalize, "/feeds/berlin", start, finish, nil))
	require.NoError(t, log.Record(StageConnectionsBuild, "/feeds/berlin", finish, finish, errors.New("boom")))

	runs, err := log.Recent("/feeds/berlin", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, StageConnectionsBuild, runs[0].Stage)
	assert.False(t, runs[0].OK)
	assert.Equal(t, "boom", runs[0].Error)

	assert.Equal(t, StageGTFSNormalize, runs[1].Stage)
	assert.True(t, runs[1].OK)
}

func TestRecentScopedByFolder(t *testing.T) {
	dir := t.TempDir()
	log, err := Open(filepath.Join(dir, "build.db"))
	require.NoError(t, err)
	defer log.Close()

	now := time.Now()
	require.NoError(t, log.Record(StageGTFSNormalize, "/feeds/a", now, now, nil))
	require.NoError(t, log.Record(StageGTFSNormalize, "/feeds/b", now, now, nil))

	runs, err := log.Recent("/feeds/a", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "/feeds/a", runs[0].Folder)
}
