package dictionary

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	d, err := Load(strings.NewReader("CAT\nCAR\n# comment\n\nTAR\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", d.Size())
	}
	if !d.Contains("CAT") {
		t.Error("expected CAT in dictionary")
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := Load(strings.NewReader("cat\n")); err == nil {
		t.Fatal("expected error for lowercase word")
	}
	if _, err := Load(strings.NewReader("CA7\n")); err == nil {
		t.Fatal("expected error for non-letter word")
	}
}

func TestMatch(t *testing.T) {
	d := New()
	for _, w := range []string{"CAT", "CAR", "TAR", "TAB"} {
		if err := d.Add(w); err != nil {
			t.Fatalf("Add(%s): %v", w, err)
		}
	}

	got := d.Match("?A?")
	// "?" isn't the wildcard; "." is. Verify the literal contract.
	if len(got) != 0 {
		t.Errorf("Match with non-wildcard '?' should match nothing, got %v", got)
	}

	got = d.Match(".A.")
	want := map[string]bool{"CAT": true, "CAR": true, "TAR": true, "TAB": true}
	if len(got) != len(want) {
		t.Fatalf("Match(.A.) = %v, want all of %v", got, want)
	}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected match %s", w)
		}
	}

	got = d.Match("CA.")
	if len(got) != 2 {
		t.Fatalf("Match(CA.) = %v, want 2 matches (CAT, CAR)", got)
	}
}

func TestLetterFrequency(t *testing.T) {
	d := New()
	_ = d.Add("AAB")
	freq := d.LetterFrequency()
	if freq['A'] != 2 || freq['B'] != 1 {
		t.Errorf("freq = %v, want A=2 B=1", freq)
	}

	_ = d.Add("CCC")
	freq2 := d.LetterFrequency()
	if freq2['C'] != 3 {
		t.Errorf("freq not recomputed after Add: %v", freq2)
	}
}

func TestNewFallback(t *testing.T) {
	d := NewFallback()
	if d.Size() != len(FallbackWords) {
		t.Errorf("Size() = %d, want %d", d.Size(), len(FallbackWords))
	}
}

func TestLoadNormalized(t *testing.T) {
	d, err := LoadNormalized(strings.NewReader("Éléphant\nC'est-à-dire\n"))
	if err != nil {
		t.Fatalf("LoadNormalized: %v", err)
	}
	if !d.Contains("ELEPHANT") {
		t.Errorf("expected ELEPHANT, got words %v", d.Words())
	}
	if !d.Contains("CESTADIRE") {
		t.Errorf("expected CESTADIRE, got words %v", d.Words())
	}
}
