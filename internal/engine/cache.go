package engine

// LayoutCache holds per-position, per-column and per-trigram partial
// aggregates for a layout, so that re-scoring after a single swap
// costs only the work proportional to the columns and characters the
// swap touches, not a full recomputation.
//
// total = trigrams - effort - usage_penalty - fspeed - scissors
type LayoutCache struct {
	layout *Layout
	scorer *Scorer

	ids     [NumPositions]uint8
	posOfID [MaxCharacters]int

	effortPer    [NumPositions]float64
	effortTotal  float64
	usageRaw     [NumFingerCols]float64
	usagePenalty float64
	fspeedPer    [NumFingerCols]float64
	fspeedTotal  float64
	scissorsTot  float64
	trigramsTot  float64

	total float64
}

// NewLayoutCache builds a cache for layout against scorer, computing
// every field from a full recomputation.
func NewLayoutCache(layout *Layout, scorer *Scorer) *LayoutCache {
	c := &LayoutCache{layout: layout, scorer: scorer}
	for i := range c.posOfID {
		c.posOfID[i] = -1
	}
	for pos, r := range layout.Matrix {
		id, err := scorer.Model.Codec.Encode(r)
		if err != nil {
			continue
		}
		c.ids[pos] = id
		c.posOfID[id] = pos
	}
	c.fullRecompute()
	return c
}

// TotalScore returns the cache's current total score.
func (c *LayoutCache) TotalScore() float64 { return c.total }

// IDs returns a copy of the cache's current position-to-character-id
// mapping.
func (c *LayoutCache) IDs() [NumPositions]uint8 { return c.ids }

// ResetFromIDs replaces the cache's layout content and recomputes
// every aggregate from scratch; used to restore a previously-seen
// arrangement after an exploratory pass (e.g. the column-permutation
// pass) without replaying the swap sequence that produced it.
func (c *LayoutCache) ResetFromIDs(ids [NumPositions]uint8) {
	c.ids = ids
	for i := range c.posOfID {
		c.posOfID[i] = -1
	}
	for pos, id := range ids {
		c.posOfID[id] = pos
	}
	c.syncLayoutAll()
	c.fullRecompute()
}

func (c *LayoutCache) syncLayoutAll() {
	for pos, id := range c.ids {
		r, ok := c.scorer.Model.Codec.Decode(id)
		if !ok {
			continue
		}
		c.layout.Matrix[pos] = r
	}
	c.layout.Pos = make(map[rune]int, NumPositions)
	for pos, r := range c.layout.Matrix {
		c.layout.Pos[r] = pos
	}
}

func (c *LayoutCache) syncLayoutPositions(positions ...int) {
	for _, pos := range positions {
		id := c.ids[pos]
		r, ok := c.scorer.Model.Codec.Decode(id)
		if !ok {
			continue
		}
		c.layout.Matrix[pos] = r
		c.layout.Pos[r] = pos
	}
}

func (c *LayoutCache) fullRecompute() {
	s := c.scorer

	c.effortTotal = 0
	for pos, id := range c.ids {
		c.effortPer[pos] = s.Model.Freq(id) * s.Effort[pos]
		c.effortTotal += c.effortPer[pos]
	}

	for col := 0; col < NumFingerCols; col++ {
		c.usageRaw[col] = c.recomputeColumnUsage(col)
		c.fspeedPer[col] = c.recomputeColumnFspeed(col)
	}
	c.usagePenalty = c.recomputeUsagePenalty()
	c.fspeedTotal = 0
	for _, v := range c.fspeedPer {
		c.fspeedTotal += v
	}
	c.fspeedTotal *= s.Weights.Fspeed

	c.scissorsTot = c.recomputeScissors()

	c.trigramsTot = 0
	for k := range s.Model.Trigrams {
		c.trigramsTot += c.trigramContribution(k)
	}

	c.total = c.trigramsTot - c.effortTotal - c.usagePenalty - c.fspeedTotal - c.scissorsTot
}

func (c *LayoutCache) recomputeColumnUsage(col int) float64 {
	var total float64
	for pos := 0; pos < NumPositions; pos++ {
		if FingerCol(pos) == col {
			total += c.scorer.Model.Freq(c.ids[pos])
		}
	}
	return total
}

func (c *LayoutCache) recomputeColumnFspeed(col int) float64 {
	sl := c.scorer.ColStartLen[col]
	var total float64
	for _, e := range c.scorer.FSpeed[sl.Start : sl.Start+sl.Len] {
		a, b := c.ids[e.Pair.A], c.ids[e.Pair.B]
		total += e.Dist * c.scorer.ngramMix(a, b)
	}
	return total
}

func (c *LayoutCache) recomputeUsagePenalty() float64 {
	var total float64
	mfu := c.scorer.Weights.MaxFingerUse
	for col, u := range c.usageRaw {
		band := mfu.Band(FingerBand(col))
		if over := u - band; over > 0 {
			total += over * mfu.Penalty
		}
	}
	return total
}

func (c *LayoutCache) recomputeScissors() float64 {
	var total float64
	for _, p := range c.scorer.Scissors {
		a, b := c.ids[p.A], c.ids[p.B]
		total += c.scorer.bigramFreq(c.scorer.Model.Bigrams, a, b)
	}
	return total * c.scorer.Weights.Scissors
}

// trigramContribution returns trigram k's current contribution to the
// trigram-reward term, 0 if any of its characters is not placed.
func (c *LayoutCache) trigramContribution(k int) float64 {
	tg := c.scorer.Model.Trigrams[k]
	p1, p2, p3 := c.posOfID[tg.IDs[0]], c.posOfID[tg.IDs[1]], c.posOfID[tg.IDs[2]]
	if p1 < 0 || p2 < 0 || p3 < 0 {
		return 0
	}
	return c.scorer.patternWeight(Classify(p1, p2, p3)) * tg.Freq
}

// trigramIndexUnion returns the deduplicated union of the trigram
// indices containing character a or b, iterating the larger set in
// full and the smaller set filtered against it, so a swap's trigram
// recomputation never double-counts a trigram containing both
// swapped characters.
func (c *LayoutCache) trigramIndexUnion(a, b uint8) []int {
	setA := c.scorer.CharTrigrams[a]
	setB := c.scorer.CharTrigrams[b]
	larger, smaller := setA, setB
	if len(smaller) > len(larger) {
		larger, smaller = smaller, larger
	}
	seen := make(map[int]bool, len(larger))
	out := make([]int, 0, len(larger)+len(smaller))
	for _, k := range larger {
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range smaller {
		if seen[k] {
			continue
		}
		out = append(out, k)
	}
	return out
}

func (c *LayoutCache) sumTrigrams(idxs []int) float64 {
	var total float64
	for _, k := range idxs {
		total += c.trigramContribution(k)
	}
	return total
}

func (c *LayoutCache) swapIDs(i, j int) {
	c.ids[i], c.ids[j] = c.ids[j], c.ids[i]
	c.posOfID[c.ids[i]] = i
	c.posOfID[c.ids[j]] = j
}

// applySwapAndMeasure swaps positions i and j, recomputes every
// affected aggregate, and returns the new total score. Effort is
// recomputed for exactly the two swapped positions; usage and
// finger-speed for the one or two affected finger-columns; scissors
// are a fixed 15-pair recomputation, and the trigram delta covers only
// the trigrams containing either swapped character.
func (c *LayoutCache) applySwapAndMeasure(i, j int) float64 {
	oldA, oldB := c.ids[i], c.ids[j]

	idxs := c.trigramIndexUnion(oldA, oldB)
	oldTriSum := c.sumTrigrams(idxs)

	c.swapIDs(i, j)

	newTriSum := c.sumTrigrams(idxs)
	c.trigramsTot += newTriSum - oldTriSum

	c.effortTotal -= c.effortPer[i] + c.effortPer[j]
	c.effortPer[i] = c.scorer.Model.Freq(c.ids[i]) * c.scorer.Effort[i]
	c.effortPer[j] = c.scorer.Model.Freq(c.ids[j]) * c.scorer.Effort[j]
	c.effortTotal += c.effortPer[i] + c.effortPer[j]

	colI, colJ := FingerCol(i), FingerCol(j)
	cols := []int{colI}
	if colJ != colI {
		cols = append(cols, colJ)
	}
	for _, col := range cols {
		c.usageRaw[col] = c.recomputeColumnUsage(col)
		c.fspeedPer[col] = c.recomputeColumnFspeed(col)
	}
	c.usagePenalty = c.recomputeUsagePenalty()
	c.fspeedTotal = 0
	for _, v := range c.fspeedPer {
		c.fspeedTotal += v
	}
	c.fspeedTotal *= c.scorer.Weights.Fspeed

	c.scissorsTot = c.recomputeScissors()

	c.total = c.trigramsTot - c.effortTotal - c.usagePenalty - c.fspeedTotal - c.scissorsTot
	return c.total
}

// ScoreSwap returns the total score as if positions i and j were
// swapped, without committing the mutation.
func (c *LayoutCache) ScoreSwap(i, j int) float64 {
	total := c.applySwapAndMeasure(i, j)
	c.applySwapAndMeasure(i, j)
	return total
}

// AcceptSwap performs the swap and commits the cache and layout
// mutation, returning the new total score.
func (c *LayoutCache) AcceptSwap(i, j int) float64 {
	total := c.applySwapAndMeasure(i, j)
	c.syncLayoutPositions(i, j)
	return total
}
