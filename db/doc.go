// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open picks the driver from the configured database type and pings:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq, the hosted Supabase database) and
"sqlite" (modernc.org/sqlite, pure Go, used for local development and the
test suite).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - journal_entries: one row per processed voice recording
  - ai_analysis: derived themes/sentiment/insights/goals per entry
  - signups: landing page email captures

# Portability

Every statement in this package and in handlers runs unchanged on both
drivers: $N placeholders, timestamps bound from Go (never NOW()), list
columns stored as JSON text, and ON CONFLICT for the signup insert.

# Relationships

	journal_entries 1──* ai_analysis (by entry_id, checked at read time only)

The model is append-only; nothing is ever updated or deleted, so there are
no cascading deletes to declare.
*/
package db
