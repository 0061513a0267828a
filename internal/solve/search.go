package solve

import (
	"context"
	"math/rand"
	"sort"
	"sync/atomic"
)

// Hooks lets a caller observe search progress. OnStep is invoked
// synchronously from the solver's own goroutine (spec.md §5) and must
// not call back into the same Solver.
type Hooks struct {
	OnStep func(stats Stats)
}

// Stats reports search cost. It is carried on the Result of a successful
// solve; when Solve returns an error, no Stats are returned.
type Stats struct {
	RecursiveCalls uint64
}

// Config controls optional solve behavior (spec.md §6).
type Config struct {
	// MaxSolutions caps how many complete assignments backtracking
	// collects before stopping; 0 means the spec.md default of 1
	// (first-solution semantics).
	MaxSolutions int
	// RNGSeed seeds the domain shuffle and MRV/degree tie-break. 0 means
	// an OS-random seed.
	RNGSeed int64
	// Hooks, if set, receives synchronous progress callbacks.
	Hooks *Hooks
	// ProgressEvery controls how often OnStep fires, in recursive calls.
	// Defaults to 1000 when zero.
	ProgressEvery uint64
}

// searchState holds everything one Solve invocation's recursion shares.
type searchState struct {
	ctx           context.Context
	slots         map[string]*Slot
	constraints   Constraints
	domains       Domains
	assignment    map[string]string
	freq          map[rune]int
	rng           *rand.Rand
	maxSolutions  int
	hooks         *Hooks
	progressEvery uint64

	solutions []map[string]string
	stats     Stats
}

type domainSnapshot struct {
	name  string
	words []string
}

func (st *searchState) backtrack() (bool, error) {
	select {
	case <-st.ctx.Done():
		return false, ErrCancelled
	default:
	}

	name, ok := st.selectNextSlot()
	if !ok {
		st.solutions = append(st.solutions, cloneAssignment(st.assignment))
		return len(st.solutions) >= st.maxSolutions, nil
	}

	candidates := orderByLCV(st.domains[name], st.freq)

	for _, word := range candidates {
		st.stats.RecursiveCalls++
		if st.hooks != nil && st.hooks.OnStep != nil && st.progressEvery > 0 && st.stats.RecursiveCalls%st.progressEvery == 0 {
			st.hooks.OnStep(st.stats)
		}

		if !st.consistent(name, word) {
			continue
		}

		st.assignment[name] = word
		snaps, ok := st.forwardCheck(name, word)

		if ok {
			done, err := st.backtrack()
			if err != nil {
				delete(st.assignment, name)
				st.restore(snaps)
				return false, err
			}
			if done {
				return true, nil
			}
		}

		delete(st.assignment, name)
		st.restore(snaps)
	}

	return false, nil
}

// selectNextSlot implements MRV + degree + random tie-break (spec.md
// §4.5) over a stably-sorted base order, so that the random tie-break is
// reproducible given a fixed RNG seed regardless of Go's randomized map
// iteration.
func (st *searchState) selectNextSlot() (string, bool) {
	names := SortedNames(st.slots)

	var unassigned []string
	for _, n := range names {
		if _, ok := st.assignment[n]; !ok {
			unassigned = append(unassigned, n)
		}
	}
	if len(unassigned) == 0 {
		return "", false
	}

	minDomain := -1
	for _, n := range unassigned {
		l := len(st.domains[n])
		if minDomain == -1 || l < minDomain {
			minDomain = l
		}
	}

	var mrvTied []string
	for _, n := range unassigned {
		if len(st.domains[n]) == minDomain {
			mrvTied = append(mrvTied, n)
		}
	}

	maxDegree := -1
	for _, n := range mrvTied {
		d := st.constraints.Degree(n)
		if d > maxDegree {
			maxDegree = d
		}
	}

	var degreeTied []string
	for _, n := range mrvTied {
		if st.constraints.Degree(n) == maxDegree {
			degreeTied = append(degreeTied, n)
		}
	}

	if len(degreeTied) == 1 {
		return degreeTied[0], true
	}
	return degreeTied[st.rng.Intn(len(degreeTied))], true
}

// consistent checks candidate word against every pre-filled letter (via
// the slot's current domain membership, already pattern-filtered) and
// every neighbor's current state (spec.md §4.5's consistency check).
func (st *searchState) consistent(name, word string) bool {
	for neighbor, overlaps := range st.constraints[name] {
		if assignedWord, isAssigned := st.assignment[neighbor]; isAssigned {
			for _, ov := range overlaps {
				if word[ov.IdxA] != assignedWord[ov.IdxB] {
					return false
				}
			}
			continue
		}

		if !hasCompatiblePartner(word, overlaps, st.domains[neighbor]) {
			return false
		}
	}
	return true
}

func hasCompatiblePartner(word string, overlaps []Overlap, candidates []string) bool {
	for _, w2 := range candidates {
		ok := true
		for _, ov := range overlaps {
			if word[ov.IdxA] != w2[ov.IdxB] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// forwardCheck prunes every unassigned neighbor's domain to words
// compatible with the tentative assignment of word to name, snapshotting
// each touched domain first so the caller can restore on backtrack
// (spec.md §8 Invariant 5). Returns false the instant a neighbor's domain
// is driven empty; snapshots taken up to that point are still returned so
// the caller can restore them.
func (st *searchState) forwardCheck(name, word string) ([]domainSnapshot, bool) {
	var snaps []domainSnapshot

	for neighbor, overlaps := range st.constraints[name] {
		if _, assigned := st.assignment[neighbor]; assigned {
			continue
		}

		prev := st.domains[neighbor]
		snaps = append(snaps, domainSnapshot{name: neighbor, words: prev})

		filtered := make([]string, 0, len(prev))
		for _, w2 := range prev {
			ok := true
			for _, ov := range overlaps {
				if word[ov.IdxA] != w2[ov.IdxB] {
					ok = false
					break
				}
			}
			if ok {
				filtered = append(filtered, w2)
			}
		}
		st.domains[neighbor] = filtered

		if len(filtered) == 0 {
			return snaps, false
		}
	}

	return snaps, true
}

func (st *searchState) restore(snaps []domainSnapshot) {
	for _, s := range snaps {
		st.domains[s.name] = s.words
	}
}

func cloneAssignment(a map[string]string) map[string]string {
	out := make(map[string]string, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// orderByLCV sorts candidates ascending by the sum of per-letter
// dictionary frequency — the least-constraining-value approximation
// spec.md §4.5 specifies. The slice is assumed to already carry whatever
// one-time Fisher-Yates shuffle was applied to the domain after AC-3;
// sort.SliceStable preserves that shuffled order within tied scores.
func orderByLCV(words []string, freq map[rune]int) []string {
	out := make([]string, len(words))
	copy(out, words)
	sort.SliceStable(out, func(i, j int) bool {
		return lcvScore(out[i], freq) < lcvScore(out[j], freq)
	})
	return out
}

func lcvScore(word string, freq map[rune]int) int {
	score := 0
	for _, r := range word {
		score += freq[r]
	}
	return score
}

// shuffleDomains applies a one-time Fisher-Yates shuffle to every
// domain, run once after AC-3 (spec.md §4.5), seeded by rng so the
// result is reproducible given a fixed config.RNGSeed. Domains are
// visited in sorted name order so that Go's randomized map iteration
// never changes which domain consumes which slice of rng output.
func shuffleDomains(domains Domains, rng *rand.Rand) {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		words := domains[name]
		shuffled := make([]string, len(words))
		copy(shuffled, words)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		domains[name] = shuffled
	}
}

// busyGuard implements the single-flight "Busy" rule (spec.md §5): a
// Solver instance refuses concurrent Solve calls, but independent
// instances run in parallel freely.
type busyGuard struct {
	busy atomic.Bool
}

func (g *busyGuard) acquire() bool { return g.busy.CompareAndSwap(false, true) }
func (g *busyGuard) release()      { g.busy.Store(false) }
