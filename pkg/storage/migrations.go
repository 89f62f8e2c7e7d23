package storage

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	// Migration 1: runs and phases
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		output_dir  TEXT NOT NULL,
		number_kind TEXT NOT NULL CHECK(number_kind IN ('integer', 'real')),
		status      TEXT NOT NULL CHECK(status IN ('running', 'completed', 'aborted')),
		error       TEXT NOT NULL DEFAULT '',
		started_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	CREATE TABLE IF NOT EXISTS run_phases (
		run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		phase       TEXT NOT NULL CHECK(phase IN ('budget', 'spending', 'donation')),
		location    TEXT NOT NULL,
		field_count INTEGER NOT NULL DEFAULT 0,
		written_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (run_id, phase)
	);`,
}

// migrate brings the schema up to the latest version, one transaction per
// migration.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var applied int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&applied); err != nil {
		return fmt.Errorf("check migration version: %w", err)
	}

	for version := applied + 1; version <= len(migrations); version++ {
		if err := applyMigration(ctx, db, version); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migrations[version-1]); err != nil {
		return fmt.Errorf("run migration %d: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("record migration %d: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", version, err)
	}
	return nil
}
