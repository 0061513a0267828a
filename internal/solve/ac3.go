package solve

import (
	"context"
	"sort"
)

// arc is a directed pair of slots with at least one overlapping cell.
type arc struct {
	A, B string
}

// AC3 is the Arc-Consistency Engine (spec.md §4.4): it prunes domains so
// that every remaining word in slot A has, for every overlap with
// neighbor B, at least one compatible partner in domain[B]. This is the
// textbook "for every overlap, some partner exists" rule spec.md §9
// directs implementers to adopt over the source's single-overlap
// shortcut; they coincide whenever a slot pair has exactly one overlap,
// the common case.
//
// AC3 mutates domains in place and returns false the instant any domain
// is driven empty. Per spec.md §7, an AC3 false return is not itself
// terminal — the caller proceeds into backtracking search regardless.
func AC3(ctx context.Context, constraints Constraints, domains Domains) (bool, error) {
	// Arcs are queued in sorted name order so that Go's randomized map
	// iteration never changes which domain is revised first.
	names := make([]string, 0, len(constraints))
	for a := range constraints {
		names = append(names, a)
	}
	sort.Strings(names)

	queue := make([]arc, 0, len(constraints)*2)
	for _, a := range names {
		neighbors := constraints.Neighbors(a)
		sort.Strings(neighbors)
		for _, b := range neighbors {
			queue = append(queue, arc{A: a, B: b})
		}
	}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return false, ErrCancelled
		default:
		}

		cur := queue[0]
		queue = queue[1:]

		if !revise(cur.A, cur.B, constraints, domains) {
			continue
		}
		if len(domains[cur.A]) == 0 {
			return false, nil
		}
		for _, x := range names {
			if x == cur.A || x == cur.B {
				continue
			}
			if _, ok := constraints[x][cur.A]; ok {
				queue = append(queue, arc{A: x, B: cur.A})
			}
		}
	}

	return true, nil
}

// revise retains w in domains[A] iff, for every overlap (i, j) between A
// and B, some w' in domains[B] satisfies w[i] == w'[j]. Returns true iff
// domains[A] shrank.
func revise(a, b string, constraints Constraints, domains Domains) bool {
	overlaps := constraints[a][b]
	if len(overlaps) == 0 {
		return false
	}

	current := domains[a]
	kept := make([]string, 0, len(current))
	shrank := false

	for _, w := range current {
		if wordSatisfiesOverlaps(w, overlaps, domains[b]) {
			kept = append(kept, w)
		} else {
			shrank = true
		}
	}

	if shrank {
		domains[a] = kept
	}
	return shrank
}

func wordSatisfiesOverlaps(w string, overlaps []Overlap, partners []string) bool {
	for _, ov := range overlaps {
		found := false
		for _, w2 := range partners {
			if w[ov.IdxA] == w2[ov.IdxB] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
