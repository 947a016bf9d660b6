package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS files (
    path   TEXT PRIMARY KEY,
    root   TEXT NOT NULL,
    rel    TEXT NOT NULL,
    ext    TEXT NOT NULL,
    lines  INTEGER NOT NULL DEFAULT 0,
    mtime  INTEGER NOT NULL DEFAULT 0,
    size   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS files_root ON files(root, ext);

CREATE TABLE IF NOT EXISTS mood_runs (
    run_id        TEXT PRIMARY KEY,
    created_at    TEXT NOT NULL,
    samples       INTEGER NOT NULL,
    avg_intensity REAL NOT NULL,
    top_mood      TEXT NOT NULL DEFAULT '',
    summary_path  TEXT NOT NULL DEFAULT '',
    summary_json  TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// schemaVersion should be bumped whenever line counting rules change
// so cached counts are recomputed.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() error {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err == nil && ver == schemaVersion {
		return nil
	}
	// invalidate every cached count
	if _, err := d.db.Exec("UPDATE files SET mtime = 0, size = -1"); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}
