package solve

import "crossword-solver/internal/grid"

// Overlap is a pair of indices (i, j) meaning slotA[i] and slotB[j] refer
// to the same grid cell (spec.md §3).
type Overlap struct {
	IdxA, IdxB int
}

// Constraints maps A -> B -> the overlaps between them. Both directions
// are stored, with indices swapped, per spec.md §4.2's mirror invariant.
type Constraints map[string]map[string][]Overlap

type slotCellRef struct {
	name string
	idx  int
}

// BuildConstraints is the Constraint Builder (spec.md §4.2): it inverts
// the slot map into cell -> occupying slots, and for every cell shared by
// two or more slots, records a bidirectional overlap entry for every
// unordered pair.
func BuildConstraints(slots map[string]*Slot) Constraints {
	cellOwners := make(map[grid.Position][]slotCellRef)

	for name, slot := range slots {
		for idx, pos := range slot.Cells {
			cellOwners[pos] = append(cellOwners[pos], slotCellRef{name: name, idx: idx})
		}
	}

	constraints := make(Constraints)

	for _, owners := range cellOwners {
		if len(owners) < 2 {
			continue
		}
		for i := 0; i < len(owners); i++ {
			for j := i + 1; j < len(owners); j++ {
				a, b := owners[i], owners[j]
				addOverlap(constraints, a.name, b.name, a.idx, b.idx)
				addOverlap(constraints, b.name, a.name, b.idx, a.idx)
			}
		}
	}

	return constraints
}

func addOverlap(constraints Constraints, a, b string, idxA, idxB int) {
	if constraints[a] == nil {
		constraints[a] = make(map[string][]Overlap)
	}
	constraints[a][b] = append(constraints[a][b], Overlap{IdxA: idxA, IdxB: idxB})
}

// Neighbors returns the names of every slot constrained against slot.
func (c Constraints) Neighbors(slot string) []string {
	out := make([]string, 0, len(c[slot]))
	for n := range c[slot] {
		out = append(out, n)
	}
	return out
}

// Degree returns the number of distinct neighbors a slot has — the
// degree heuristic's input (spec.md §4.5).
func (c Constraints) Degree(slot string) int {
	return len(c[slot])
}
