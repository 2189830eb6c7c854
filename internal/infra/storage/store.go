// Package storage persists runs, endings, and the audit trail to SQLite.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store wraps the SQLite handle and its prepared schema.
type Store struct {
	db *sqlx.DB
}

// Open initializes the local SQLite database and creates the schemas for
// saved runs, recorded endings, and the audit log.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schemas: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchemas(db *sqlx.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			run_id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			ending_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			rarity TEXT NOT NULL,
			first_seen DATETIME NOT NULL,
			times_earned INTEGER NOT NULL,
			best_score REAL NOT NULL,
			last_run_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS audit (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			wall DATETIME NOT NULL,
			at_ms REAL NOT NULL,
			type TEXT NOT NULL,
			actor TEXT NOT NULL,
			value REAL NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_run_id ON audit(run_id);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_type ON audit(run_id, type);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
