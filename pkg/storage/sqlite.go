package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ogulcanaydogan/budget-intake/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Journal interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite journal at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) StartRun(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.Status = model.RunRunning

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, output_dir, number_kind, status, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.OutputDir, run.NumberKind, run.Status, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLite) RecordPhase(ctx context.Context, phase *model.RunPhase) error {
	if phase.WrittenAt.IsZero() {
		phase.WrittenAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_phases (run_id, phase, location, field_count, written_at)
		 VALUES (?, ?, ?, ?, ?)`,
		phase.RunID, phase.Phase, phase.Location, phase.FieldCount, phase.WrittenAt,
	)
	if err != nil {
		return fmt.Errorf("insert run phase: %w", err)
	}
	return nil
}

func (s *SQLite) FinishRun(ctx context.Context, runID string, status model.RunStatus, errText string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, errText, time.Now().UTC(), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run %q not found", runID)
	}
	return nil
}

func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	query := `SELECT id, output_dir, number_kind, status, error, started_at, finished_at
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.OutputDir, &r.NumberKind, &r.Status, &r.Error,
			&r.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		phases, err := s.runPhases(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Phases = phases
	}
	return runs, nil
}

func (s *SQLite) runPhases(ctx context.Context, runID string) ([]model.RunPhase, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, phase, location, field_count, written_at
		 FROM run_phases WHERE run_id = ? ORDER BY written_at, rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run phases: %w", err)
	}
	defer rows.Close()

	var phases []model.RunPhase
	for rows.Next() {
		var p model.RunPhase
		if err := rows.Scan(&p.RunID, &p.Phase, &p.Location, &p.FieldCount, &p.WrittenAt); err != nil {
			return nil, fmt.Errorf("scan run phase row: %w", err)
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
