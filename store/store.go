// Package store persists analyzed reviews in SQLite and answers the
// aggregate queries behind the reports and charts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite handle. SQLite allows one writer, so the pool
// is capped at a single connection.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=60000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if _, err := db.Exec("PRAGMA temp_store=MEMORY;"); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Init creates the schema. Safe to call repeatedly.
func (s *Store) Init(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS banks (
                bank_id    INTEGER PRIMARY KEY AUTOINCREMENT,
                bank_code  TEXT NOT NULL UNIQUE,
                app_name   TEXT,
                created_at TEXT NOT NULL DEFAULT (datetime('now'))
            );
            CREATE TABLE IF NOT EXISTS reviews (
                review_id       TEXT PRIMARY KEY,
                bank_id         INTEGER NOT NULL REFERENCES banks(bank_id) ON DELETE CASCADE,
                review_text     TEXT NOT NULL,
                rating          INTEGER CHECK (rating BETWEEN 1 AND 5),
                review_date     TEXT,
                sentiment_label TEXT,
                sentiment_score REAL,
                themes          TEXT,
                source          TEXT,
                created_at      TEXT NOT NULL DEFAULT (datetime('now'))
            );
            CREATE INDEX IF NOT EXISTS idx_reviews_bank_id ON reviews(bank_id);
            CREATE INDEX IF NOT EXISTS idx_reviews_rating ON reviews(rating);
            CREATE INDEX IF NOT EXISTS idx_reviews_sentiment ON reviews(sentiment_label);
            CREATE INDEX IF NOT EXISTS idx_reviews_date ON reviews(review_date);
            CREATE TABLE IF NOT EXISTS runs (
                run_id      TEXT PRIMARY KEY,
                stage       TEXT NOT NULL,
                started_at  TEXT NOT NULL,
                finished_at TEXT,
                total       INTEGER,
                inserted    INTEGER,
                skipped     INTEGER
            );`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// StartRun records a pipeline stage run.
func (s *Store) StartRun(ctx context.Context, runID, stage string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs(run_id, stage, started_at) VALUES(?,?,?)`,
		runID, stage, time.Now().UTC().Format(time.RFC3339))
	return err
}

// FinishRun closes out a run with its row counts.
func (s *Store) FinishRun(ctx context.Context, runID string, total, inserted, skipped int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, total = ?, inserted = ?, skipped = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339), total, inserted, skipped, runID)
	return err
}
