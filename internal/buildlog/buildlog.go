// Package buildlog records a history of archive build runs (GTFS
// normalization and direct-connection construction) in a small SQLite
// side-table, so operators can answer "when was this folder last
// rebuilt, and how long did it take" without grepping logs.
package buildlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Stage names one of the two build operations a run can record.
type Stage string

const (
	StageGTFSNormalize    Stage = "gtfs_normalize"
	StageConnectionsBuild Stage = "connections_build"
)

// Run is one recorded build attempt.
type Run struct {
	ID         string
	Stage      Stage
	Folder     string
	StartedAt  time.Time
	FinishedAt time.Time
	OK         bool
	Error      string
}

// Log is a handle to the build-history database. A Log is safe to share
// across goroutines (database/sql pools its own connections).
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening build log database")
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS build_run (
    id TEXT PRIMARY KEY,
    stage TEXT NOT NULL,
    folder TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL,
    ok BOOLEAN NOT NULL,
    error TEXT NOT NULL
);`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating build_run table")
	}

	return &Log{db: db}, nil
}

func (l *Log) Close() error { return l.db.Close() }

// Record inserts a completed run. runErr is nil for a successful run;
// otherwise its message is stored and the run is marked not ok.
func (l *Log) Record(stage Stage, folder string, started, finished time.Time, runErr error) error {
	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}

	_, err := l.db.Exec(
		`INSERT INTO build_run (id, stage, folder, started_at, finished_at, ok, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), string(stage), folder, started, finished, runErr == nil, errMsg,
	)
	if err != nil {
		return fmt.Errorf("recording build run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs for folder, most recent first.
func (l *Log) Recent(folder string, limit int) ([]Run, error) {
	rows, err := l.db.Query(
		`SELECT id, stage, folder, started_at, finished_at, ok, error
		 FROM build_run WHERE folder = ? ORDER BY started_at DESC LIMIT ?`,
		folder, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying build runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var stage string
		if err := rows.Scan(&r.ID, &stage, &r.Folder, &r.StartedAt, &r.FinishedAt, &r.OK, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning build run: %w", err)
		}
		r.Stage = Stage(stage)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
