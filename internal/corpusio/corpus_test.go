package corpusio

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCorpusPreservesCharacterOrder(t *testing.T) {
	path := writeCorpusFile(t, `{
		"language": "test",
		"characters": {"e": 10.0, "t": 8.0, "a": 7.0},
		"bigrams": {"et": 1.0},
		"skipgrams": {},
		"skipgrams2": {},
		"skipgrams3": {},
		"trigrams": {"eta": 0.5}
	}`)

	model, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if model.Language != "test" {
		t.Errorf("Language = %q, want %q", model.Language, "test")
	}

	eID, err := model.Codec.Encode('e')
	if err != nil {
		t.Fatalf("encode 'e': %v", err)
	}
	tID, err := model.Codec.Encode('t')
	if err != nil {
		t.Fatalf("encode 't': %v", err)
	}
	if eID != 0 || tID != 1 {
		t.Errorf("expected insertion order e=0,t=1; got e=%d,t=%d", eID, tID)
	}
}

func TestLoadCorpusMissingFile(t *testing.T) {
	if _, err := LoadCorpus(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error loading a missing corpus file")
	}
}

func TestLoadCorpusRejectsMultiRuneCharacterKey(t *testing.T) {
	path := writeCorpusFile(t, `{
		"language": "test",
		"characters": {"ab": 1.0},
		"bigrams": {},
		"skipgrams": {},
		"skipgrams2": {},
		"skipgrams3": {},
		"trigrams": {}
	}`)
	if _, err := LoadCorpus(path); err == nil {
		t.Error("expected an error for a multi-rune character key")
	}
}

func TestLoadCorpusDiscardsTrigramsWithRepeatedIDs(t *testing.T) {
	path := writeCorpusFile(t, `{
		"language": "test",
		"characters": {"a": 1.0, "b": 1.0},
		"bigrams": {},
		"skipgrams": {},
		"skipgrams2": {},
		"skipgrams3": {},
		"trigrams": {"aab": 1.0, "abb": 1.0, "bab": 1.0}
	}`)
	model, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(model.Trigrams) != 1 {
		t.Fatalf("expected only \"bab\" to survive dedup (aab/abb have a repeated adjacent id), got %d trigrams", len(model.Trigrams))
	}
}
