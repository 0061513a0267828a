package solve

import (
	"testing"

	"crossword-solver/internal/grid"
)

func mustGrid(t *testing.T, rows [][]string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(rows)
	if err != nil {
		t.Fatalf("grid.Parse: %v", err)
	}
	return g
}

func TestExtractSlots_Smoke(t *testing.T) {
	// spec.md §8 Scenario 1.
	g := mustGrid(t, [][]string{
		{"1", ".", "."},
		{".", "#", "."},
		{".", ".", "#"},
	})

	slots, prefilled, err := ExtractSlots(g)
	if err != nil {
		t.Fatalf("ExtractSlots: %v", err)
	}

	across, ok := slots["1ACROSS"]
	if !ok {
		t.Fatal("expected 1ACROSS slot")
	}
	wantAcross := []grid.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	if !positionsEqual(across.Cells, wantAcross) {
		t.Errorf("1ACROSS cells = %v, want %v", across.Cells, wantAcross)
	}

	down, ok := slots["1DOWN"]
	if !ok {
		t.Fatal("expected 1DOWN slot")
	}
	wantDown := []grid.Position{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}
	if !positionsEqual(down.Cells, wantDown) {
		t.Errorf("1DOWN cells = %v, want %v", down.Cells, wantDown)
	}

	if len(prefilled) != 0 {
		t.Errorf("expected no pre-filled letters, got %v", prefilled)
	}
}

func TestExtractSlots_PreFilled(t *testing.T) {
	// spec.md §8 Scenario 2.
	g := mustGrid(t, [][]string{
		{"1", "A", "."},
		{".", ".", "."},
		{".", ".", "."},
	})

	slots, prefilled, err := ExtractSlots(g)
	if err != nil {
		t.Fatalf("ExtractSlots: %v", err)
	}

	across := slots["1ACROSS"]
	if got := across.Pattern(prefilled); got != ".A." {
		t.Errorf("pattern = %q, want .A.", got)
	}
}

func TestExtractSlots_DiscardsShortSlots(t *testing.T) {
	g := mustGrid(t, [][]string{
		{"1", "#"},
		{".", "#"},
	})
	slots, _, err := ExtractSlots(g)
	if err != nil {
		t.Fatalf("ExtractSlots: %v", err)
	}
	// The across run from (0,0) has length 1 and is discarded; the down
	// run (0,0)-(1,0) has length 2 and is kept.
	if len(slots) != 1 || slots["1DOWN"] == nil {
		t.Errorf("expected only 1DOWN, got %v", slots)
	}
}

func TestExtractSlots_AllBlocks(t *testing.T) {
	g := mustGrid(t, [][]string{
		{"#", "#"},
		{"#", "#"},
	})
	slots, _, err := ExtractSlots(g)
	if err != nil {
		t.Fatalf("ExtractSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected NoSlots-eligible result, got %v", slots)
	}
}

func positionsEqual(a, b []grid.Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
