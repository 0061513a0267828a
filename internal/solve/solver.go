// Package solve implements the crossword constraint-satisfaction engine:
// slot extraction, overlap-constraint construction, domain
// initialization, AC-3 arc-consistency pruning, and MRV/degree/LCV
// backtracking search with forward checking (spec.md §2-§5).
package solve

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"crossword-solver/internal/dictionary"
	"crossword-solver/internal/grid"
)

// Solver is a single-puzzle solve session. Slot, constraint, and domain
// state is exclusively owned by the instance that built it (spec.md §5);
// the Dictionary it solves against may be shared read-only across many
// Solver instances.
type Solver struct {
	config Config
	logger *slog.Logger
	guard  busyGuard
}

// NewSolver creates a Solver. A nil logger falls back to slog.Default().
func NewSolver(cfg Config, logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxSolutions <= 0 {
		cfg.MaxSolutions = 1
	}
	if cfg.ProgressEvery == 0 {
		cfg.ProgressEvery = 1000
	}
	return &Solver{config: cfg, logger: logger}
}

// Solve runs the full pipeline (spec.md §2) against g and dict. Search
// collects up to config.MaxSolutions complete assignments and Solve
// returns the first one found; the others are not returned.
func (s *Solver) Solve(ctx context.Context, g *grid.Grid, dict *dictionary.Dictionary) (*Result, error) {
	if !s.guard.acquire() {
		return nil, ErrBusy
	}
	defer s.guard.release()

	start := time.Now()

	slots, prefilled, err := ExtractSlots(g)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	constraints := BuildConstraints(slots)
	domains := InitDomains(slots, prefilled, dict)

	seed := s.config.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	consistent, err := AC3(ctx, constraints, domains)
	if err != nil {
		return nil, err
	}
	if !consistent {
		s.logger.Info("ac3 detected an empty domain; proceeding to search", "grid_rows", g.Rows, "grid_cols", g.Cols)
	}

	shuffleDomains(domains, rng)

	st := &searchState{
		ctx:           ctx,
		slots:         slots,
		constraints:   constraints,
		domains:       domains,
		assignment:    make(map[string]string),
		freq:          dict.LetterFrequency(),
		rng:           rng,
		maxSolutions:  s.config.MaxSolutions,
		hooks:         s.config.Hooks,
		progressEvery: s.config.ProgressEvery,
	}

	_, err = st.backtrack()
	if err != nil {
		return nil, err
	}

	if len(st.solutions) == 0 {
		s.logger.Info("search exhausted without a solution",
			"slots", len(slots),
			"recursive_calls", st.stats.RecursiveCalls,
			"elapsed", time.Since(start).String(),
		)
		return nil, ErrNoSolution
	}

	result := buildResult(slots, st.solutions[0], g, st.stats)
	s.logger.Info("solve complete",
		"slots", len(slots),
		"recursive_calls", st.stats.RecursiveCalls,
		"elapsed", time.Since(start).String(),
	)
	return result, nil
}
