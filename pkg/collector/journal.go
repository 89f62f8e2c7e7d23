package collector

import (
	"context"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
)

// Journal failures are logged and never stop a collection run.

func (c *Collector) startRun(ctx context.Context) string {
	if c.journal == nil {
		return ""
	}

	run := &model.Run{OutputDir: c.opts.OutputDir, NumberKind: c.opts.Kind}
	if err := c.journal.StartRun(ctx, run); err != nil {
		c.logger.Warn("journal start run", "error", err)
		return ""
	}
	c.logger.Info("run started", "run_id", run.ID, "output_dir", run.OutputDir)
	return run.ID
}

func (c *Collector) recordPhase(ctx context.Context, runID string, res model.PhaseResult) {
	if c.journal == nil || runID == "" {
		return
	}

	err := c.journal.RecordPhase(ctx, &model.RunPhase{
		RunID:      runID,
		Phase:      res.Phase,
		Location:   res.Location,
		FieldCount: res.FieldCount,
	})
	if err != nil {
		c.logger.Warn("journal record phase", "run_id", runID, "phase", res.Phase, "error", err)
	}
}

func (c *Collector) finishRun(ctx context.Context, runID string, status model.RunStatus, runErr error) {
	if c.journal == nil || runID == "" {
		return
	}

	var errText string
	if runErr != nil {
		errText = runErr.Error()
	}
	if err := c.journal.FinishRun(ctx, runID, status, errText); err != nil {
		c.logger.Warn("journal finish run", "run_id", runID, "error", err)
		return
	}
	c.logger.Info("run finished", "run_id", runID, "status", status)
}
