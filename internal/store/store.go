// Package store persists solve runs: the inputs, configuration, and
// outcome of each invocation of internal/solve.Solver, for audit and
// replay (SPEC_FULL.md §12 "Solve-run persistence").
package store

import (
	"context"
	"errors"
	"time"

	"crossword-solver/internal/solve"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// RunOutcome classifies how a solve run ended.
type RunOutcome string

const (
	OutcomeSolved    RunOutcome = "solved"
	OutcomeNoSlots   RunOutcome = "no_slots"
	OutcomeUnsolved  RunOutcome = "unsolved"
	OutcomeCancelled RunOutcome = "cancelled"
	OutcomeError     RunOutcome = "error"
)

// RunFilter contains criteria for listing solve runs.
type RunFilter struct {
	Outcome  RunOutcome
	FromDate string // RFC3339
	ToDate   string // RFC3339
	Limit    int
	Offset   int
}

// RunSummary contains summary info for run listings.
type RunSummary struct {
	ID             string     `json:"id"`
	GridDigest     string     `json:"grid_digest"`
	DictDigest     string     `json:"dict_digest"`
	Outcome        RunOutcome `json:"outcome"`
	RecursiveCalls uint64     `json:"recursive_calls"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Run is a single persisted solve invocation: its inputs, the config it
// ran with, and its outcome.
type Run struct {
	ID         string     `json:"id"`
	GridDigest string     `json:"grid_digest"`
	DictDigest string     `json:"dict_digest"`
	RNGSeed    int64      `json:"rng_seed"`
	Outcome    RunOutcome `json:"outcome"`

	// Result is nil unless Outcome == OutcomeSolved.
	Result *solve.Result `json:"result,omitempty"`
	Stats  solve.Stats   `json:"stats"`

	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RunRepository defines the interface for solve-run storage operations.
type RunRepository interface {
	// Store saves a run to the database.
	Store(ctx context.Context, r *Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns runs matching the filter criteria.
	List(ctx context.Context, filter RunFilter) ([]*RunSummary, error)

	// Delete removes a run by ID.
	Delete(ctx context.Context, id string) error
}

// Store combines the repository interface with lifecycle operations.
type Store interface {
	Runs() RunRepository

	// Migrate runs database migrations.
	Migrate(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
