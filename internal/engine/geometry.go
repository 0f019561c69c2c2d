package engine

import "math"

// PosPair is an unordered pair of layout positions.
type PosPair struct {
	A, B int
}

// StartLen is a (start, length) slice into the finger-speed pair
// table for one finger-column.
type StartLen struct {
	Start, Len int
}

// Finger-column identities. Columns 0-2 and 5-7 are single-grid-column
// fingers (pinky, ring, middle per hand); columns 3 and 4 are the
// index fingers, each covering two grid columns.
const (
	ColLeftPinky = iota
	ColLeftRing
	ColLeftMiddle
	ColLeftIndex
	ColRightIndex
	ColRightMiddle
	ColRightRing
	ColRightPinky
	NumFingerCols
)

// GridCols lists the six non-index grid columns eligible for the
// optimizer's column-permutation pass (position%10 values).
var GridCols = [6]int{0, 1, 2, 7, 8, 9}

// FingerCol returns the finger-column (0-7) of a layout position.
func FingerCol(pos int) int {
	g := pos % 10
	switch g {
	case 0:
		return ColLeftPinky
	case 1:
		return ColLeftRing
	case 2:
		return ColLeftMiddle
	case 3, 4:
		return ColLeftIndex
	case 5, 6:
		return ColRightIndex
	case 7:
		return ColRightMiddle
	case 8:
		return ColRightRing
	default:
		return ColRightPinky
	}
}

// Hand returns 0 (left) or 1 (right) for a layout position.
func Hand(pos int) int {
	if pos%10 < 5 {
		return 0
	}
	return 1
}

// ValidPos reports whether pos is a real layout position; this module
// has no thumb or out-of-range keys, so it is simply a range check.
func ValidPos(pos int) bool {
	return pos >= 0 && pos < NumPositions
}

// ColToStartLen is the reference table locating each finger-column's
// slice within the 48-entry finger-speed pair table: six non-index
// columns of 3 pairs each, followed by the two index columns of 15
// pairs each, ordered [0,1,2,5,6,7,3,4].
var ColToStartLen = [NumFingerCols]StartLen{
	ColLeftPinky:   {0, 3},
	ColLeftRing:    {3, 3},
	ColLeftMiddle:  {6, 3},
	ColLeftIndex:   {18, 15},
	ColRightIndex:  {33, 15},
	ColRightMiddle: {9, 3},
	ColRightRing:   {12, 3},
	ColRightPinky:  {15, 3},
}

// NumFingerSpeedPairs is the fixed size of the finger-speed table: six
// columns of C(3,2)=3 pairs, plus two index columns of C(6,2)=15 pairs.
const NumFingerSpeedPairs = 6*3 + 2*15

// colPositions returns a finger-column's member positions in
// ascending order.
func colPositions(col int) []int {
	var out []int
	for p := 0; p < NumPositions; p++ {
		if FingerCol(p) == col {
			out = append(out, p)
		}
	}
	return out
}

// FingerSpeedEntry is one same-finger position pair and its travel
// distance, used by the scorer's finger-speed term.
type FingerSpeedEntry struct {
	Pair PosPair
	Dist float64
}

// FingerSpeedTable builds the 48-entry finger-speed pair table for a
// given lateral-stretch penalty, ordered to match ColToStartLen.
func FingerSpeedTable(lateralPenalty float64) []FingerSpeedEntry {
	out := make([]FingerSpeedEntry, 0, NumFingerSpeedPairs)
	order := [NumFingerCols]int{ColLeftPinky, ColLeftRing, ColLeftMiddle, ColRightMiddle, ColRightRing, ColRightPinky, ColLeftIndex, ColRightIndex}
	for _, col := range order {
		positions := colPositions(col)
		for i := 0; i < len(positions); i++ {
			for j := i + 1; j < len(positions); j++ {
				a, b := positions[i], positions[j]
				dx := float64(abs(a%10-b%10)) * lateralPenalty
				dy := float64(abs(a/10 - b/10))
				out = append(out, FingerSpeedEntry{Pair: PosPair{A: a, B: b}, Dist: math.Hypot(dx, dy)})
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// baseEffort is the static per-position ergonomic baseline, before the
// weight configuration's (scale, offset) heatmap transform is applied.
// Home row is cheapest; the two stretch columns of each index finger
// cost a little more than the neighbouring middle finger.
var baseEffort = [NumPositions]float64{
	3.0, 2.6, 2.2, 2.4, 3.0, 3.0, 2.4, 2.2, 2.6, 3.0,
	1.6, 1.2, 1.0, 1.2, 2.0, 2.0, 1.2, 1.0, 1.2, 1.6,
	3.2, 2.8, 2.4, 2.6, 3.4, 3.4, 2.6, 2.4, 2.8, 3.2,
}

// EffortMap applies the weight configuration's (scale, offset)
// heatmap transform to the static base-effort table.
func EffortMap(heatmap [2]float64) [NumPositions]float64 {
	scale, offset := heatmap[0], heatmap[1]
	var out [NumPositions]float64
	for i, e := range baseEffort {
		out[i] = e*scale + offset
	}
	return out
}

// ScissorIndices is a curated list of 15 position pairs considered
// ergonomically bad same-hand bigrams: adjacent-finger pairs with a
// large row gap ("full" scissors) plus a few additional pinky/middle
// combinations ("half" scissors), grounded on the conventional
// scissor-bigram definition used by layout analysers.
var ScissorIndices = buildScissorIndices()

func buildScissorIndices() []PosPair {
	// Adjacent finger-column pairs per hand: (pinky,ring), (ring,middle),
	// (middle,index-near). Index columns contribute only their near
	// sub-column (closest to the middle finger) to this adjacency.
	type adj struct{ colA, colB int }
	leftAdj := []adj{{ColLeftPinky, ColLeftRing}, {ColLeftRing, ColLeftMiddle}, {ColLeftMiddle, ColLeftIndex}}
	rightAdj := []adj{{ColRightPinky, ColRightRing}, {ColRightRing, ColRightMiddle}, {ColRightMiddle, ColRightIndex}}

	nearIndexPos := func(col int, row int) int {
		// Left index near sub-column is grid col 3 (nearer the middle
		// finger); right index near sub-column is grid col 6.
		if col == ColLeftIndex {
			return row*10 + 3
		}
		return row*10 + 6
	}
	posFor := func(col, row int) int {
		if col == ColLeftIndex || col == ColRightIndex {
			return nearIndexPos(col, row)
		}
		return row*10 + gridColOf(col)
	}

	var out []PosPair
	for _, pairs := range [][]adj{leftAdj, rightAdj} {
		for _, p := range pairs {
			// Full scissor: top row of one finger with bottom row of
			// the other, both directions.
			out = append(out, PosPair{A: posFor(p.colA, 0), B: posFor(p.colB, 2)})
			out = append(out, PosPair{A: posFor(p.colB, 0), B: posFor(p.colA, 2)})
		}
	}
	// Three additional half-scissor pairs (top/bottom row, pinky/middle
	// skip over ring), rounding the curated list out to 15.
	out = append(out,
		PosPair{A: posFor(ColLeftPinky, 0), B: posFor(ColLeftMiddle, 2)},
		PosPair{A: posFor(ColRightPinky, 0), B: posFor(ColRightMiddle, 2)},
		PosPair{A: posFor(ColLeftPinky, 2), B: posFor(ColLeftMiddle, 0)},
	)
	return out
}

func gridColOf(col int) int {
	switch col {
	case ColLeftPinky:
		return 0
	case ColLeftRing:
		return 1
	case ColLeftMiddle:
		return 2
	case ColRightMiddle:
		return 7
	case ColRightRing:
		return 8
	case ColRightPinky:
		return 9
	default:
		return -1
	}
}

// IsScissorPair reports whether the unordered pair (a,b) is a member
// of ScissorIndices.
func IsScissorPair(a, b int) bool {
	for _, p := range ScissorIndices {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return true
		}
	}
	return false
}

// PossibleSwaps enumerates all C(30,2)=435 unordered position pairs.
var PossibleSwaps = buildPossibleSwaps()

func buildPossibleSwaps() []PosPair {
	out := make([]PosPair, 0, 435)
	for i := 0; i < NumPositions; i++ {
		for j := i + 1; j < NumPositions; j++ {
			out = append(out, PosPair{A: i, B: j})
		}
	}
	return out
}

// SwapsExcludingPinned returns the subset of PossibleSwaps touching no
// pinned position.
func SwapsExcludingPinned(pinned map[int]bool) []PosPair {
	if len(pinned) == 0 {
		return PossibleSwaps
	}
	out := make([]PosPair, 0, len(PossibleSwaps))
	for _, p := range PossibleSwaps {
		if pinned[p.A] || pinned[p.B] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FingerBand names the max-finger-use band a finger-column belongs to.
func FingerBand(col int) string {
	switch col {
	case ColLeftPinky, ColRightPinky:
		return "pinky"
	case ColLeftRing, ColRightRing:
		return "ring"
	case ColLeftMiddle, ColRightMiddle:
		return "middle"
	default:
		return "index"
	}
}
