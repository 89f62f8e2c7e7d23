package model

import (
	"fmt"
	"time"
)

// NumberKind selects how user input is validated as a number.
type NumberKind string

const (
	KindInteger NumberKind = "integer"
	KindReal    NumberKind = "real"
)

// ParseNumberKind converts a config value into a NumberKind.
func ParseNumberKind(s string) (NumberKind, error) {
	switch NumberKind(s) {
	case KindInteger, KindReal:
		return NumberKind(s), nil
	}
	return "", fmt.Errorf("unknown number kind %q (want integer or real)", s)
}

// Entry is the outcome of one validated prompt: either a value or the
// sentinel that ends input.
type Entry struct {
	text string
	done bool
}

// Value wraps a validated token.
func Value(text string) Entry {
	return Entry{text: text}
}

// Done is the entry returned when the sentinel token is typed.
var Done = Entry{done: true}

// IsDone reports whether the sentinel was entered.
func (e Entry) IsDone() bool { return e.done }

// Text returns the token exactly as typed. It is empty for Done.
func (e Entry) Text() string { return e.text }

func (e Entry) String() string {
	if e.done {
		return "Done"
	}
	return fmt.Sprintf("Value(%q)", e.text)
}

// Row is one flat CSV record.
type Row []string

// Phase is one independent collect-then-write unit.
type Phase string

const (
	PhaseBudget   Phase = "budget"
	PhaseSpending Phase = "spending"
	PhaseDonation Phase = "donation"
)

// Phases lists every phase in execution order.
var Phases = []Phase{PhaseBudget, PhaseSpending, PhaseDonation}

// FileName returns the output file name for the phase.
func (p Phase) FileName() string {
	return string(p) + ".csv"
}

// PhaseState tracks a phase through its lifecycle.
type PhaseState int

const (
	StateNotStarted PhaseState = iota
	StateResourceOpen
	StateCollecting
	StateRowAssembled
	StateWritten
	StateClosed
	StateAborted
)

var stateNames = [...]string{
	StateNotStarted:   "not_started",
	StateResourceOpen: "resource_open",
	StateCollecting:   "collecting",
	StateRowAssembled: "row_assembled",
	StateWritten:      "written",
	StateClosed:       "closed",
	StateAborted:      "aborted",
}

func (s PhaseState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("PhaseState(%d)", int(s))
	}
	return stateNames[s]
}

// PhaseResult describes how a phase ended.
type PhaseResult struct {
	Phase      Phase      `json:"phase"`
	State      PhaseState `json:"state"`
	Location   string     `json:"location"`
	FieldCount int        `json:"field_count"`
}

// RunStatus is the final outcome of a collection run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunAborted   RunStatus = "aborted"
)

// Run is a journal entry for one invocation of the collector.
type Run struct {
	ID         string     `json:"id" db:"id"`
	OutputDir  string     `json:"output_dir" db:"output_dir"`
	NumberKind NumberKind `json:"number_kind" db:"number_kind"`
	Status     RunStatus  `json:"status" db:"status"`
	Error      string     `json:"error,omitempty" db:"error"`
	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	FinishedAt time.Time  `json:"finished_at,omitempty" db:"finished_at"`
	Phases     []RunPhase `json:"phases,omitempty"`
}

// RunPhase records a phase written during a run. Only metadata is kept,
// never the figures.
type RunPhase struct {
	RunID      string    `json:"run_id" db:"run_id"`
	Phase      Phase     `json:"phase" db:"phase"`
	Location   string    `json:"location" db:"location"`
	FieldCount int       `json:"field_count" db:"field_count"`
	WrittenAt  time.Time `json:"written_at" db:"written_at"`
}
