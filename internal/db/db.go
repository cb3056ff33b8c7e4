// Package db is the sqlite archive for report exports and scheduler runs.
// Journal data itself lives in JSON documents (internal/store); this
// database only tracks what the background jobs produced.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
-- Report export history
CREATE TABLE IF NOT EXISTS exports (
    export_id TEXT PRIMARY KEY,
    journal_key TEXT NOT NULL,
    for_date TEXT NOT NULL,
    entry_count INTEGER NOT NULL,
    file_path TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Scheduler job tracking
CREATE TABLE IF NOT EXISTS scheduler_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_type TEXT NOT NULL,
    status TEXT NOT NULL,
    started_at TEXT NOT NULL,
    completed_at TEXT,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_exports_key_date ON exports(journal_key, for_date);
CREATE INDEX IF NOT EXISTS idx_runs_type ON scheduler_runs(job_type, started_at);
`

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// ExportRecord is one row of the export history.
type ExportRecord struct {
	ExportID   string
	JournalKey string
	ForDate    string
	EntryCount int
	FilePath   string
	CreatedAt  string
}

// LogExport records a completed report export.
func (db *DB) LogExport(exportID, journalKey, forDate string, entryCount int, filePath string) error {
	_, err := db.conn.Exec(`
		INSERT INTO exports (export_id, journal_key, for_date, entry_count, file_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, exportID, journalKey, forDate, entryCount, filePath, time.Now().UTC().Format(time.RFC3339))
	return err
}

// RecentExports returns the latest export rows, newest first.
func (db *DB) RecentExports(limit int) ([]ExportRecord, error) {
	rows, err := db.conn.Query(`
		SELECT export_id, journal_key, for_date, entry_count, file_path, created_at
		FROM exports
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.ExportID, &r.JournalKey, &r.ForDate, &r.EntryCount, &r.FilePath, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning export row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// StartRun records a scheduler job starting and returns the row id.
func (db *DB) StartRun(jobType string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO scheduler_runs (job_type, status, started_at)
		VALUES (?, 'running', ?)
	`, jobType, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun marks a scheduler job as completed or failed.
func (db *DB) FinishRun(id int64, status, errMsg string) error {
	_, err := db.conn.Exec(`
		UPDATE scheduler_runs
		SET status = ?, completed_at = ?, error_message = ?
		WHERE id = ?
	`, status, time.Now().UTC().Format(time.RFC3339), errMsg, id)
	return err
}
