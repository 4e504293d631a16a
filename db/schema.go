// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and verifies the connection.
// databaseType is "postgres" (production, Supabase) or "sqlite" (local dev
// and tests); both drivers sit behind the same database/sql queries.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver := "postgres"
	if databaseType == "sqlite" {
		driver = "sqlite"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is written to run unchanged on both Postgres and SQLite: no
// NOW() defaults (timestamps are always passed from Go), no JSONB (theme,
// insight, and goal lists are stored as JSON text).
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Journal entries (append-only; no update or delete path exists)
CREATE TABLE IF NOT EXISTS journal_entries (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    audio_url TEXT NOT NULL,
    transcription TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'processed'
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_user_id ON journal_entries(user_id);
CREATE INDEX IF NOT EXISTS idx_journal_entries_created_at ON journal_entries(created_at);

-- AI analyses (an entry may accumulate several; no uniqueness constraint)
CREATE TABLE IF NOT EXISTS ai_analysis (
    id TEXT PRIMARY KEY,
    entry_id TEXT NOT NULL,
    themes TEXT NOT NULL,
    sentiment REAL NOT NULL,
    insights TEXT NOT NULL,
    suggested_goals TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT 'model' CHECK (source IN ('model', 'fallback')),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ai_analysis_entry_id ON ai_analysis(entry_id);

-- Landing page signups; the primary key makes insert-if-absent atomic
CREATE TABLE IF NOT EXISTS signups (
    email TEXT PRIMARY KEY,
    signup_date TIMESTAMP NOT NULL,
    source TEXT NOT NULL DEFAULT 'landing_page'
);
`
