package engine

import (
	"math/rand/v2"
	"testing"
)

func TestParseLayoutStripsWhitespace(t *testing.T) {
	text := "qwertyuiop\nasdfghjkl;\nzxcvbnm,./\n"
	l, err := ParseLayout(text)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if l.Matrix[0] != 'q' || l.Matrix[10] != 'a' || l.Matrix[29] != '/' {
		t.Errorf("unexpected matrix: %q", l.Matrix)
	}
	pos, ok := l.PositionOf('a')
	if !ok || pos != 10 {
		t.Errorf("PositionOf('a') = %d, %v; want 10, true", pos, ok)
	}
}

func TestParseLayoutTooShort(t *testing.T) {
	if _, err := ParseLayout("qwerty"); err == nil {
		t.Error("expected an error for fewer than 30 characters")
	}
}

func TestLayoutRenderRoundTrip(t *testing.T) {
	text := "qwertyuiop\nasdfghjkl;\nzxcvbnm,./"
	l, err := ParseLayout(text)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	again, err := ParseLayout(l.Render())
	if err != nil {
		t.Fatalf("ParseLayout(Render()): %v", err)
	}
	if again.Matrix != l.Matrix {
		t.Errorf("render round-trip mismatch: %q vs %q", again.Matrix, l.Matrix)
	}
}

func TestLayoutSwap(t *testing.T) {
	l, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	a, b := l.Matrix[0], l.Matrix[1]
	l.Swap(0, 1)
	if l.Matrix[0] != b || l.Matrix[1] != a {
		t.Errorf("swap did not exchange matrix entries")
	}
	if p, _ := l.PositionOf(a); p != 1 {
		t.Errorf("PositionOf(%q) = %d, want 1", a, p)
	}
	if p, _ := l.PositionOf(b); p != 0 {
		t.Errorf("PositionOf(%q) = %d, want 0", b, p)
	}
}

func TestLayoutCloneIsIndependent(t *testing.T) {
	l, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	cp := l.Clone()
	cp.Swap(0, 1)
	if l.Matrix == cp.Matrix {
		t.Error("clone shares state with the original after a swap")
	}
}

func TestRandomFillIsAPermutation(t *testing.T) {
	var alphabet [NumPositions]rune
	for i := range alphabet {
		alphabet[i] = rune('a' + i)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	l := NewLayout([NumPositions]rune{})
	l.RandomFill(alphabet, rng)

	seen := map[rune]bool{}
	for _, r := range l.Matrix {
		seen[r] = true
	}
	if len(seen) != NumPositions {
		t.Errorf("expected %d distinct characters, got %d", NumPositions, len(seen))
	}
}

func TestRandomPinsKeepsPinnedCharactersFixed(t *testing.T) {
	template, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	pinned := map[int]bool{3: true, 4: true, 5: true, 6: true}
	rng := rand.New(rand.NewPCG(7, 9))

	for i := 0; i < 1000; i++ {
		l := NewLayout([NumPositions]rune{})
		l.RandomPins(template, pinned, rng)
		for pos := range pinned {
			if l.Matrix[pos] != template.Matrix[pos] {
				t.Fatalf("iteration %d: pinned position %d changed from %q to %q", i, pos, template.Matrix[pos], l.Matrix[pos])
			}
		}
	}
}
