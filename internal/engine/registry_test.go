package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testReadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLayout(string(raw))
}

func testWriteLayout(path string, layout *Layout) error {
	return os.WriteFile(path, []byte(layout.Render()+"\n"), 0o644)
}

func writeTestLayoutFile(t *testing.T, dir, name, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".kb"), []byte(text), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

func TestLoadRegistryScoresAndRanksLayouts(t *testing.T) {
	dir := t.TempDir()
	writeTestLayoutFile(t, dir, "qwerty", "qwertyuiopasdfghjkl;zxcvbnm,./")
	writeTestLayoutFile(t, dir, "shifted", "zxcvbnm,./asdfghjkl;qwertyuiop")

	model := testModel()
	w := DefaultWeights()
	reg, errs := LoadRegistry(context.Background(), dir, model, &w, testReadLayout)
	if len(errs) != 0 {
		t.Fatalf("unexpected load errors: %v", errs)
	}

	rank := reg.Rank()
	if len(rank) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(rank))
	}
	first := reg.Get(rank[0])
	second := reg.Get(rank[1])
	if first.Score < second.Score {
		t.Errorf("rank order not descending: %v < %v", first.Score, second.Score)
	}
}

func TestLoadRegistryCollectsParseErrorsWithoutFailing(t *testing.T) {
	dir := t.TempDir()
	writeTestLayoutFile(t, dir, "good", "qwertyuiopasdfghjkl;zxcvbnm,./")
	writeTestLayoutFile(t, dir, "bad", "tooshort")

	model := testModel()
	w := DefaultWeights()
	reg, errs := LoadRegistry(context.Background(), dir, model, &w, testReadLayout)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 load error, got %d: %v", len(errs), errs)
	}
	if reg.Get("good") == nil {
		t.Error("the valid layout should still have loaded")
	}
}

func TestSaveGeneratesUniquePlaceholderNames(t *testing.T) {
	dir := t.TempDir()
	model := testModel()
	w := DefaultWeights()
	reg, _ := LoadRegistry(context.Background(), dir, model, &w, testReadLayout)

	layout, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	// Force a known home-row-right reading so the placeholder name is
	// predictable: positions 16-19 spell "jkl;" on a QWERTY layout.
	name1, err := reg.Save(layout.Clone(), "", testWriteLayout)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	name2, err := reg.Save(layout.Clone(), "", testWriteLayout)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name1 == name2 {
		t.Fatalf("expected distinct placeholder names, got %q twice", name1)
	}
	if !strings.HasPrefix(name1, "jkl;") || !strings.HasPrefix(name2, "jkl;") {
		t.Errorf("expected placeholder names prefixed with home-row-right %q, got %q and %q", "jkl;", name1, name2)
	}
}

func TestSaveWithExplicitNameUsesIt(t *testing.T) {
	dir := t.TempDir()
	model := testModel()
	w := DefaultWeights()
	reg, _ := LoadRegistry(context.Background(), dir, model, &w, testReadLayout)

	layout, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	name, err := reg.Save(layout, "myLayout", testWriteLayout)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "myLayout" {
		t.Errorf("Save returned %q, want %q", name, "myLayout")
	}
	if reg.Get("myLayout") == nil {
		t.Error("saved layout not retrievable from the registry")
	}
}
