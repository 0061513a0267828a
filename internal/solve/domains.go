package solve

import (
	"crossword-solver/internal/dictionary"
	"crossword-solver/internal/grid"
)

// Domains maps slot name to its current candidate word list.
type Domains map[string][]string

// InitDomains is the Domain Initializer (spec.md §4.3): for each slot it
// forms the pre-filled-letter pattern and filters the dictionary's
// length bucket against it. A slot whose filtered domain comes back
// empty is retained with an empty domain — AC-3 or search detects
// unsolvability later, this step never fails on its own.
func InitDomains(slots map[string]*Slot, prefilled map[grid.Position]rune, dict *dictionary.Dictionary) Domains {
	domains := make(Domains, len(slots))
	for name, slot := range slots {
		pattern := slot.Pattern(prefilled)
		matches := dict.Match(pattern)
		candidates := make([]string, len(matches))
		copy(candidates, matches)
		domains[name] = candidates
	}
	return domains
}
