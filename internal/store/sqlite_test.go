package store

import (
	"context"
	"testing"

	"crossword-solver/internal/grid"
	"crossword-solver/internal/solve"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		store.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func createTestRun() *Run {
	g, _ := grid.Parse([][]string{
		{"1", ".", "."},
		{".", "#", "."},
		{".", ".", "#"},
	})
	return &Run{
		ID:         "test-run-1",
		GridDigest: "sha256:deadbeef",
		DictDigest: "sha256:cafef00d",
		RNGSeed:    42,
		Outcome:    OutcomeSolved,
		Result: &solve.Result{
			Assignment: map[string]string{"1ACROSS": "CAT", "1DOWN": "CAR"},
			Across:     []solve.ClueResult{{Number: 1, Word: "CAT"}},
			Down:       []solve.ClueResult{{Number: 1, Word: "CAR"}},
			Grid:       g,
			Stats:      solve.Stats{RecursiveCalls: 5},
		},
		Stats: solve.Stats{RecursiveCalls: 5},
	}
}

func TestRunRepository_Store(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run := createTestRun()
	if err := store.Runs().Store(ctx, run); err != nil {
		t.Fatalf("failed to store run: %v", err)
	}

	retrieved, err := store.Runs().Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}

	if retrieved.ID != run.ID {
		t.Errorf("ID mismatch: got %s, want %s", retrieved.ID, run.ID)
	}
	if retrieved.Outcome != OutcomeSolved {
		t.Errorf("Outcome mismatch: got %s, want %s", retrieved.Outcome, OutcomeSolved)
	}
	if retrieved.Result == nil || retrieved.Result.Assignment["1ACROSS"] != "CAT" {
		t.Errorf("Result not round-tripped: %+v", retrieved.Result)
	}
	if retrieved.Stats.RecursiveCalls != 5 {
		t.Errorf("RecursiveCalls mismatch: got %d, want 5", retrieved.Stats.RecursiveCalls)
	}
}

func TestRunRepository_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Runs().Get(ctx, "nonexistent")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestRunRepository_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		run := createTestRun()
		run.ID = "test-run-" + string(rune('0'+i))
		if err := store.Runs().Store(ctx, run); err != nil {
			t.Fatalf("failed to store run %d: %v", i, err)
		}
	}

	runs, err := store.Runs().List(ctx, RunFilter{})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}

	runs, err = store.Runs().List(ctx, RunFilter{Limit: 2})
	if err != nil {
		t.Fatalf("failed to list runs with limit: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(runs))
	}
}

func TestRunRepository_List_FilterByOutcome(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	solved := createTestRun()
	solved.ID = "solved-run"
	store.Runs().Store(ctx, solved)

	unsolved := createTestRun()
	unsolved.ID = "unsolved-run"
	unsolved.Outcome = OutcomeUnsolved
	unsolved.Result = nil
	store.Runs().Store(ctx, unsolved)

	runs, err := store.Runs().List(ctx, RunFilter{Outcome: OutcomeUnsolved})
	if err != nil {
		t.Fatalf("failed to list with outcome filter: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "unsolved-run" {
		t.Errorf("expected [unsolved-run], got %v", runs)
	}
}

func TestRunRepository_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run := createTestRun()
	store.Runs().Store(ctx, run)

	if err := store.Runs().Delete(ctx, run.ID); err != nil {
		t.Fatalf("failed to delete run: %v", err)
	}

	_, err := store.Runs().Get(ctx, run.ID)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestRunRepository_Delete_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.Runs().Delete(ctx, "nonexistent")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestSQLiteStore_AutoGenerateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run := createTestRun()
	run.ID = ""

	if err := store.Runs().Store(ctx, run); err != nil {
		t.Fatalf("failed to store run: %v", err)
	}
	if run.ID == "" {
		t.Error("expected ID to be auto-generated")
	}
}

func TestSQLiteStore_UnsolvedRunHasNilResult(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run := createTestRun()
	run.Outcome = OutcomeUnsolved
	run.Result = nil
	store.Runs().Store(ctx, run)

	retrieved, err := store.Runs().Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if retrieved.Result != nil {
		t.Errorf("expected nil Result for unsolved run, got %+v", retrieved.Result)
	}
}

func TestMemoryStore_MatchesSQLiteSemantics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	run := createTestRun()
	if err := store.Runs().Store(ctx, run); err != nil {
		t.Fatalf("failed to store run: %v", err)
	}

	retrieved, err := store.Runs().Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if retrieved.Result.Assignment["1DOWN"] != "CAR" {
		t.Errorf("Result not preserved: %+v", retrieved.Result)
	}

	if _, err := store.Runs().Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
