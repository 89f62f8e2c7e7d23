package storage

import (
	"context"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
)

// Journal records collection runs and the phases they wrote.
type Journal interface {
	// StartRun persists a new run in the running state.
	StartRun(ctx context.Context, run *model.Run) error

	// RecordPhase notes that a phase was written during a run.
	RecordPhase(ctx context.Context, phase *model.RunPhase) error

	// FinishRun sets the final status of a run.
	FinishRun(ctx context.Context, runID string, status model.RunStatus, errText string) error

	// ListRuns returns the most recent runs, newest first, with their phases.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Close releases resources.
	Close() error
}
