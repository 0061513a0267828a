package solve

import "errors"

// Sentinel errors surfaced by the solver, matched with errors.Is by
// callers — returned, never panicked (spec.md §7).
var (
	// ErrInvalidGrid is returned when the grid is nil or has no rows or
	// columns. Non-rectangular rows, unknown tokens and duplicate numbers
	// are rejected earlier by grid.Parse with grid.ErrInvalidGrid.
	ErrInvalidGrid = errors.New("solve: invalid grid")

	// ErrInvalidDictionary names the invalid-dictionary error kind. Solve
	// does not return it: empty or non-A-Z words are rejected when they
	// are added to a dictionary.Dictionary, with
	// dictionary.ErrInvalidDictionary.
	ErrInvalidDictionary = errors.New("solve: invalid dictionary")

	// ErrNoSlots is returned when a structurally valid grid yields zero
	// slots of length >= 2.
	ErrNoSlots = errors.New("solve: grid has no slots")

	// ErrNoSolution is returned when the search space is exhausted
	// without a complete assignment.
	ErrNoSolution = errors.New("solve: no solution found")

	// ErrCancelled is returned when the caller's cancellation signal was
	// observed during solve.
	ErrCancelled = errors.New("solve: cancelled")

	// ErrBusy is returned when Solve is called concurrently on the same
	// Solver instance.
	ErrBusy = errors.New("solve: solver instance busy")
)
