// Package dictionary provides the length-bucketed word list the Domain
// Initializer filters against, and the letter-frequency table the
// backtracking search uses for least-constraining-value ordering.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidDictionary is returned when a candidate word is empty or
// contains characters outside A-Z.
var ErrInvalidDictionary = errors.New("invalid dictionary")

// FallbackWords is the small built-in list spec.md §6 specifies as a
// loader fallback on I/O failure.
var FallbackWords = []string{"LASER", "SAILS", "SHEET", "STEER", "HEEL", "HIKE", "KEEL", "KNOT"}

// Dictionary is a read-only, length-bucketed word list shared by every
// solver instance built from it (spec.md §5 "Shared-resource policy").
type Dictionary struct {
	words     map[string]bool
	byLength  map[int][]string
	frequency map[rune]int
}

// New builds an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		words:    make(map[string]bool),
		byLength: make(map[int][]string),
	}
}

// Add inserts a single word, validating it is non-empty and A-Z only.
func (d *Dictionary) Add(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidDictionary)
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: %q contains non-A-Z character %q", ErrInvalidDictionary, word, r)
		}
	}
	if d.words[word] {
		return nil
	}
	d.words[word] = true
	d.byLength[len(word)] = append(d.byLength[len(word)], word)
	d.frequency = nil // invalidate cached table
	return nil
}

// Load reads one uppercase word per line from r, skipping blank lines and
// "#"-prefixed comments. Returns ErrInvalidDictionary on the first
// non-conforming entry — callers that want a best-effort load should
// filter input upstream; this loader is strict per spec.md §7.
func Load(r io.Reader) (*Dictionary, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := d.Add(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadNormalized reads raw (possibly accented, mixed-case, punctuated)
// text, one entry per line, normalizing each to uppercase A-Z before
// insertion. Entries that normalize to the empty string are skipped
// rather than rejected, since the source text (not the dictionary) is
// then to blame.
func LoadNormalized(r io.Reader) (*Dictionary, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		norm := normalizeUpper(line)
		if norm == "" {
			continue
		}
		if err := d.Add(norm); err != nil {
			return nil, err
		}
	}
	return d, scanner.Err()
}

// normalizeUpper strips diacritics and keeps only letters, uppercased —
// the same NFD-decompose-and-drop-combining-marks approach the teacher's
// domain.NormalizeFR uses.
func normalizeUpper(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// NewFallback builds a Dictionary from FallbackWords.
func NewFallback() *Dictionary {
	d := New()
	for _, w := range FallbackWords {
		_ = d.Add(w)
	}
	return d
}

// ByLength returns all words of the given length (unfiltered).
func (d *Dictionary) ByLength(length int) []string {
	return d.byLength[length]
}

// Match returns every word of len(pattern) whose letters agree with
// pattern at every non-wildcard ('.') position — the Domain Initializer's
// filter step (spec.md §4.3).
func (d *Dictionary) Match(pattern string) []string {
	candidates := d.byLength[len(pattern)]
	if len(candidates) == 0 {
		return nil
	}
	matches := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if matchesPattern(w, pattern) {
			matches = append(matches, w)
		}
	}
	return matches
}

func matchesPattern(word, pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '.' && pattern[i] != word[i] {
			return false
		}
	}
	return true
}

// Contains reports whether word is present in the dictionary.
func (d *Dictionary) Contains(word string) bool { return d.words[word] }

// Size returns the number of distinct words.
func (d *Dictionary) Size() int { return len(d.words) }

// Words returns every word, sorted, for deterministic iteration (e.g.
// export or inspection tooling).
func (d *Dictionary) Words() []string {
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// LetterFrequency returns, computed once over the full dictionary, a
// per-letter occurrence count used by the backtracking search's
// least-constraining-value approximation (spec.md §4.5). The result is
// cached until the next Add.
func (d *Dictionary) LetterFrequency() map[rune]int {
	if d.frequency != nil {
		return d.frequency
	}
	freq := make(map[rune]int, 26)
	for w := range d.words {
		for _, r := range w {
			freq[r]++
		}
	}
	d.frequency = freq
	return freq
}
