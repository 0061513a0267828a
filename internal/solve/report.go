package solve

import (
	"sort"

	"crossword-solver/internal/grid"
)

// ClueResult is one solved slot's number and assigned word.
type ClueResult struct {
	Number int
	Word   string
}

// Result is the output of a successful solve (spec.md §4.6, §6).
type Result struct {
	Assignment map[string]string
	Across     []ClueResult
	Down       []ClueResult
	Grid       *grid.Grid
	Stats      Stats
}

// buildResult is the Solution Reporter (spec.md §4.6): it projects the
// final assignment's letters onto a copy of the input grid and splits
// the assignment into number-sorted across/down lists.
func buildResult(slots map[string]*Slot, assignment map[string]string, g *grid.Grid, stats Stats) *Result {
	projected := projectGrid(slots, assignment, g)

	var across, down []ClueResult
	for name, word := range assignment {
		slot := slots[name]
		cr := ClueResult{Number: slot.Number, Word: word}
		if slot.Direction == Across {
			across = append(across, cr)
		} else {
			down = append(down, cr)
		}
	}

	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })

	return &Result{
		Assignment: assignment,
		Across:     across,
		Down:       down,
		Grid:       projected,
		Stats:      stats,
	}
}

// projectGrid returns a copy of g with every slot's assigned-word letters
// written into their cells. Overlapping cells are written twice with an
// identical letter by construction (spec.md §8 "Soundness").
func projectGrid(slots map[string]*Slot, assignment map[string]string, g *grid.Grid) *grid.Grid {
	cells := make([][]grid.Cell, g.Rows)
	for r := range g.Cells {
		cells[r] = make([]grid.Cell, g.Cols)
		copy(cells[r], g.Cells[r])
	}
	out := &grid.Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}

	for name, word := range assignment {
		slot := slots[name]
		for i, pos := range slot.Cells {
			out.Cells[pos.Row][pos.Col].Letter = rune(word[i])
		}
	}

	return out
}
