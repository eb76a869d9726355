package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder journals pipeline runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pipeline_runs (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			period      TEXT NOT NULL,
			bar_interval TEXT NOT NULL,
			provider    TEXT,
			status      TEXT NOT NULL,
			row_count   INTEGER,
			cached      INTEGER,
			timed_out   INTEGER,
			duration_ms INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON pipeline_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON pipeline_runs(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO pipeline_runs
		(id, timestamp, symbol, period, bar_interval, provider, status, row_count, cached, timed_out, duration_ms, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.ID, evt.At.Unix(), evt.Symbol, evt.Period, evt.Interval, evt.Provider,
		evt.Status, evt.Rows, evt.Cached, evt.Timeout, evt.Duration.Milliseconds(), evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) Stats() (RunStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s RunStats
	err := r.db.QueryRow(`SELECT
			COUNT(*),
			COALESCE(SUM(status = 'LOADED'), 0),
			COALESCE(SUM(status = 'EMPTY'), 0),
			COALESCE(SUM(status = 'FAILED'), 0),
			COALESCE(SUM(cached), 0)
		FROM pipeline_runs`).Scan(&s.Total, &s.Loaded, &s.Empty, &s.Failed, &s.CacheHit)
	if err != nil {
		return RunStats{}, fmt.Errorf("query stats: %w", err)
	}
	return s, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
