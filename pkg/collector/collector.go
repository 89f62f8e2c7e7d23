package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
	"github.com/ogulcanaydogan/budget-intake/pkg/storage"
)

// Prompt texts shown for each field.
const (
	PromptIncome   = "Annual income: "
	PromptTaxes    = "Annual taxes: "
	PromptSavings  = "Annual savings: "
	PromptDonation = "Donation level (% of income): "
)

// ExpensePrompt returns the prompt used for each monthly expense.
func ExpensePrompt(sentinel string) string {
	return fmt.Sprintf("Monthly expense (type '%s' if done): ", sentinel)
}

// Asker is the validated prompt loop the collector drives.
type Asker interface {
	Number(message string) (model.Entry, error)
	Sentinel() string
}

// Options controls how rows are written.
type Options struct {
	// CRLF terminates rows with \r\n instead of \n.
	CRLF bool
	// Preflight checks every output before the first prompt.
	Preflight bool
	// OutputDir and Kind are recorded in the journal.
	OutputDir string
	Kind      model.NumberKind
}

// Collector runs the budget, spending and donation phases in order.
type Collector struct {
	asker   Asker
	output  storage.Output
	journal storage.Journal
	opts    Options
	logger  *slog.Logger
}

// New creates a collector. journal may be nil.
func New(asker Asker, output storage.Output, journal storage.Journal, opts Options, logger *slog.Logger) *Collector {
	return &Collector{
		asker:   asker,
		output:  output,
		journal: journal,
		opts:    opts,
		logger:  logger,
	}
}

// Run executes every phase. It stops at the first failure; files written by
// earlier phases are left in place. The returned results cover every phase
// that was started, including the one that failed.
func (c *Collector) Run(ctx context.Context) ([]model.PhaseResult, error) {
	if c.opts.Preflight {
		if err := c.preflight(); err != nil {
			return nil, err
		}
	}

	runID := c.startRun(ctx)

	steps := []struct {
		phase   model.Phase
		collect func() (model.Row, error)
	}{
		{model.PhaseBudget, c.collectBudget},
		{model.PhaseSpending, c.collectSpending},
		{model.PhaseDonation, c.collectDonation},
	}

	var results []model.PhaseResult
	for _, step := range steps {
		res, err := c.runPhase(step.phase, step.collect)
		results = append(results, res)
		if err != nil {
			c.finishRun(ctx, runID, model.RunAborted, err)
			return results, err
		}
		c.recordPhase(ctx, runID, res)
	}

	c.finishRun(ctx, runID, model.RunCompleted, nil)
	return results, nil
}

func (c *Collector) preflight() error {
	for _, phase := range model.Phases {
		exists, err := c.output.Exists(phase.FileName())
		if err != nil {
			return fmt.Errorf("check %s output: %w", phase, err)
		}
		if exists {
			return fmt.Errorf("%s phase: %w: %s", phase, storage.ErrOutputExists, c.output.Location(phase.FileName()))
		}
	}
	return nil
}

// runPhase opens the phase output, collects one row, writes it and closes
// the output on every path.
func (c *Collector) runPhase(phase model.Phase, collect func() (model.Row, error)) (res model.PhaseResult, err error) {
	name := phase.FileName()
	res = model.PhaseResult{Phase: phase, State: model.StateNotStarted, Location: c.output.Location(name)}

	w, err := c.output.Create(name)
	if err != nil {
		c.transition(&res, model.StateAborted)
		return res, fmt.Errorf("%s phase: %w", phase, err)
	}
	c.transition(&res, model.StateResourceOpen)

	defer func() {
		closeErr := w.Close()
		switch {
		case err != nil:
		case closeErr != nil:
			c.transition(&res, model.StateAborted)
			err = fmt.Errorf("%s phase: close output: %w", phase, closeErr)
		default:
			c.transition(&res, model.StateClosed)
		}
	}()

	c.transition(&res, model.StateCollecting)
	row, err := collect()
	if err != nil {
		c.transition(&res, model.StateAborted)
		return res, fmt.Errorf("%s phase: %w", phase, err)
	}
	res.FieldCount = len(row)
	c.transition(&res, model.StateRowAssembled)

	if err := storage.WriteRow(w, row, c.opts.CRLF); err != nil {
		c.transition(&res, model.StateAborted)
		return res, fmt.Errorf("%s phase: %w", phase, err)
	}
	c.transition(&res, model.StateWritten)

	return res, nil
}

func (c *Collector) transition(res *model.PhaseResult, to model.PhaseState) {
	c.logger.Debug("phase state",
		"phase", res.Phase,
		"from", res.State.String(),
		"to", to.String(),
	)
	res.State = to
}

func (c *Collector) collectBudget() (model.Row, error) {
	row := make(model.Row, 0, 3)
	for _, msg := range []string{PromptIncome, PromptTaxes, PromptSavings} {
		field, err := c.scalar(msg)
		if err != nil {
			return nil, err
		}
		row = append(row, field)
	}
	return row, nil
}

func (c *Collector) collectSpending() (model.Row, error) {
	msg := ExpensePrompt(c.asker.Sentinel())
	row := model.Row{}
	for {
		e, err := c.asker.Number(msg)
		if err != nil {
			return nil, err
		}
		if e.IsDone() {
			return row, nil
		}
		row = append(row, e.Text())
	}
}

func (c *Collector) collectDonation() (model.Row, error) {
	field, err := c.scalar(PromptDonation)
	if err != nil {
		return nil, err
	}
	return model.Row{field}, nil
}

// scalar asks for a single field. The sentinel leaves the field blank.
func (c *Collector) scalar(msg string) (string, error) {
	e, err := c.asker.Number(msg)
	if err != nil {
		return "", err
	}
	if e.IsDone() {
		c.logger.Debug("field left blank", "prompt", msg)
		return "", nil
	}
	return e.Text(), nil
}
