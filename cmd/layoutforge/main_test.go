package main

import (
	"testing"

	"github.com/kbfrost/layoutforge/internal/engine"
)

func TestParseCount(t *testing.T) {
	if _, err := parseCount(nil); err == nil {
		t.Error("expected an error with no arguments")
	}
	if _, err := parseCount([]string{"0"}); err == nil {
		t.Error("expected an error for a non-positive count")
	}
	if _, err := parseCount([]string{"not-a-number"}); err == nil {
		t.Error("expected an error for a non-numeric count")
	}
	n, err := parseCount([]string{"5"})
	if err != nil {
		t.Fatalf("parseCount: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}
}

func TestAlphabetFromModelRejectsTooFewCharacters(t *testing.T) {
	chars := []engine.CharEntry{{Rune: 'a', Freq: 1}, {Rune: 'b', Freq: 1}}
	model, err := engine.BuildLanguageModel("test", chars, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("BuildLanguageModel: %v", err)
	}
	if _, err := alphabetFromModel(model); err == nil {
		t.Error("expected an error when the language has fewer characters than positions")
	}
}

func TestAlphabetFromModelReturnsDecodedRunesInIDOrder(t *testing.T) {
	letters := "qwertyuiopasdfghjkl;zxcvbnm,./"
	chars := make([]engine.CharEntry, 0, len(letters))
	for _, r := range letters {
		chars = append(chars, engine.CharEntry{Rune: r, Freq: 1})
	}
	model, err := engine.BuildLanguageModel("test", chars, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("BuildLanguageModel: %v", err)
	}
	alphabet, err := alphabetFromModel(model)
	if err != nil {
		t.Fatalf("alphabetFromModel: %v", err)
	}
	for i, r := range letters {
		if alphabet[i] != r {
			t.Errorf("alphabet[%d] = %q, want %q", i, alphabet[i], r)
		}
	}
}

func TestSeedsForReturnsNDistinctSeeds(t *testing.T) {
	seeds := seedsFor(8)
	if len(seeds) != 8 {
		t.Fatalf("len(seeds) = %d, want 8", len(seeds))
	}
	seen := map[uint64]bool{}
	for _, s := range seeds {
		if seen[s] {
			t.Errorf("duplicate seed %d", s)
		}
		seen[s] = true
	}
}
