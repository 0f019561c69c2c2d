package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

// NumPositions is the fixed layout size: three rows of ten keys.
const NumPositions = 30

// ParseError reports a malformed layout file or string.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "parse layout: " + e.Reason }

// Layout is a 30-slot permutation of characters: positions 0-9 are the
// top row, 10-19 the home row, 20-29 the bottom row; within each row,
// 0-4 are the left hand (pinky to index) and 5-9 the right hand
// (index to pinky). It carries a reverse index from character to
// position for O(1) lookups, and a cached score that may be stale
// until recomputed.
type Layout struct {
	Name   string
	Matrix [NumPositions]rune
	Pos    map[rune]int
	Score  float64
}

// NewLayout builds a Layout from a fixed assignment of characters to
// positions.
func NewLayout(matrix [NumPositions]rune) *Layout {
	l := &Layout{Matrix: matrix, Pos: make(map[rune]int, NumPositions)}
	for i, r := range matrix {
		l.Pos[r] = i
	}
	return l
}

// ParseLayout strips whitespace and newlines from text and fills
// positions 0..29 from the first 30 remaining characters.
func ParseLayout(text string) (*Layout, error) {
	var b strings.Builder
	b.Grow(NumPositions)
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
		n++
		if n >= NumPositions {
			break
		}
	}
	runes := []rune(b.String())
	if len(runes) < NumPositions {
		return nil, &ParseError{Reason: fmt.Sprintf("expected %d non-space characters, got %d", NumPositions, len(runes))}
	}
	var matrix [NumPositions]rune
	copy(matrix[:], runes[:NumPositions])
	return NewLayout(matrix), nil
}

// Render renders the layout as three rows of ten characters, a space
// between hands, and a newline between rows.
func (l *Layout) Render() string {
	var b strings.Builder
	b.Grow(NumPositions + 6)
	for row := 0; row < 3; row++ {
		base := row * 10
		for col := 0; col < 10; col++ {
			if col == 5 {
				b.WriteByte(' ')
			}
			b.WriteRune(l.Matrix[base+col])
		}
		if row < 2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Swap exchanges the characters at positions i and j and updates the
// reverse index. No bounds checks are performed on this fast path;
// callers iterate position pairs already known to be in range.
func (l *Layout) Swap(i, j int) {
	l.Matrix[i], l.Matrix[j] = l.Matrix[j], l.Matrix[i]
	l.Pos[l.Matrix[i]] = i
	l.Pos[l.Matrix[j]] = j
}

// PositionOf returns the position of r via the reverse index.
func (l *Layout) PositionOf(r rune) (int, bool) {
	p, ok := l.Pos[r]
	return p, ok
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	cp := &Layout{Name: l.Name, Matrix: l.Matrix, Score: l.Score, Pos: make(map[rune]int, len(l.Pos))}
	for k, v := range l.Pos {
		cp.Pos[k] = v
	}
	return cp
}

// RandomFill assigns a uniformly random permutation of alphabet to the
// layout's 30 positions.
func (l *Layout) RandomFill(alphabet [NumPositions]rune, rng *rand.Rand) {
	shuffled := alphabet
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	l.Matrix = shuffled
	l.Pos = make(map[rune]int, NumPositions)
	for i, r := range l.Matrix {
		l.Pos[r] = i
	}
}

// RandomPins fills the layout from template at every position in
// pinned, and assigns a uniformly random permutation of the remaining
// characters to the rest.
func (l *Layout) RandomPins(template *Layout, pinned map[int]bool, rng *rand.Rand) {
	var free []rune
	l.Matrix = template.Matrix
	for i, r := range template.Matrix {
		if !pinned[i] {
			free = append(free, r)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	fi := 0
	for i := range l.Matrix {
		if !pinned[i] {
			l.Matrix[i] = free[fi]
			fi++
		}
	}
	l.Pos = make(map[rune]int, NumPositions)
	for i, r := range l.Matrix {
		l.Pos[r] = i
	}
}

// String renders the layout, matching fmt's Stringer convention so
// layouts print legibly in logs and test failures.
func (l *Layout) String() string {
	if l.Name == "" {
		return l.Render()
	}
	return l.Name + "\n" + l.Render()
}
