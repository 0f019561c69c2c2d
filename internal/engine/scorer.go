package engine

// Scorer computes a layout's total ergonomic score and holds the
// geometry tables derived from a weight configuration, shared
// read-only across every optimization task.
type Scorer struct {
	Model   *LanguageModel
	Weights *Weights

	Effort      [NumPositions]float64
	FSpeed      []FingerSpeedEntry
	ColStartLen [NumFingerCols]StartLen
	Scissors    []PosPair

	// CharTrigrams maps a character id to the indices of Model.Trigrams
	// that contain it, built once and used by the incremental cache to
	// bound a swap's trigram recomputation to the affected characters.
	CharTrigrams [MaxCharacters][]int
}

// NewScorer derives a Scorer's geometry tables from w and precomputes
// the per-character trigram index.
func NewScorer(model *LanguageModel, w *Weights) *Scorer {
	s := &Scorer{
		Model:       model,
		Weights:     w,
		Effort:      EffortMap(w.Heatmap),
		FSpeed:      FingerSpeedTable(w.LateralPenalty),
		ColStartLen: ColToStartLen,
		Scissors:    ScissorIndices,
	}
	for k, tg := range model.Trigrams {
		seen := map[uint8]bool{}
		for _, id := range tg.IDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			s.CharTrigrams[id] = append(s.CharTrigrams[id], k)
		}
	}
	return s
}

func (s *Scorer) bigramFreq(m map[[2]uint8]float64, a, b uint8) float64 {
	return m[[2]uint8{a, b}] + m[[2]uint8{b, a}]
}

// patternWeight maps a trigram pattern to its signed contribution to
// the trigram-reward term; redirects and bad redirects are penalties.
func (s *Scorer) patternWeight(p Pattern) float64 {
	w := s.Weights
	switch p {
	case Inroll:
		return w.Inrolls
	case Outroll:
		return w.Outrolls
	case Onehand:
		return w.Onehands
	case Alternate:
		return w.Alternates
	case AlternateSfs:
		return w.AlternatesSfs
	case Redirect:
		return -w.Redirects
	case BadRedirect:
		return -w.BadRedirects
	default:
		return 0
	}
}

// Score computes the layout's total score from a full recomputation:
// trigram_reward - effort - finger_speed_and_usage - scissors.
func (s *Scorer) Score(layout *Layout) float64 {
	ids, posOfID := s.idsAndPositions(layout)
	return s.scoreIDs(ids, posOfID, len(s.Model.Trigrams))
}

// Stats is a named breakdown of a layout's score, for display by
// internal/tui rather than for optimization (which only ever needs
// the total).
type Stats struct {
	Effort        float64
	UsagePenalty  float64
	Fspeed        float64
	Scissors      float64
	TrigramReward float64
	Total         float64
}

// ScoreStats computes a layout's full metric breakdown from a full
// recomputation.
func (s *Scorer) ScoreStats(layout *Layout) Stats {
	w := s.Weights
	ids, posOfID := s.idsAndPositions(layout)

	var effort float64
	for pos, id := range ids {
		effort += s.Model.Freq(id) * s.Effort[pos]
	}

	var usagePenalty float64
	colUsage := s.columnUsage(ids)
	for col, u := range colUsage {
		band := w.MaxFingerUse.Band(FingerBand(col))
		if over := u - band; over > 0 {
			usagePenalty += over * w.MaxFingerUse.Penalty
		}
	}

	var fspeed float64
	for col := 0; col < NumFingerCols; col++ {
		sl := s.ColStartLen[col]
		for _, e := range s.FSpeed[sl.Start : sl.Start+sl.Len] {
			a, b := ids[e.Pair.A], ids[e.Pair.B]
			fspeed += e.Dist * s.ngramMix(a, b)
		}
	}
	fspeed *= w.Fspeed

	var scissors float64
	for _, p := range s.Scissors {
		a, b := ids[p.A], ids[p.B]
		scissors += s.bigramFreq(s.Model.Bigrams, a, b)
	}
	scissors *= w.Scissors

	var trigramReward float64
	for _, tg := range s.Model.Trigrams {
		p1, p2, p3 := posOfID[tg.IDs[0]], posOfID[tg.IDs[1]], posOfID[tg.IDs[2]]
		if p1 < 0 || p2 < 0 || p3 < 0 {
			continue
		}
		trigramReward += s.patternWeight(Classify(p1, p2, p3)) * tg.Freq
	}

	return Stats{
		Effort:        effort,
		UsagePenalty:  usagePenalty,
		Fspeed:        fspeed,
		Scissors:      scissors,
		TrigramReward: trigramReward,
		Total:         trigramReward - effort - usagePenalty - fspeed - scissors,
	}
}

// ScoreWithPrecision is the ad-hoc one-shot scoring entry point, which
// may truncate the trigram sum to the top `precision` entries; the
// incremental cache always uses the full list.
func (s *Scorer) ScoreWithPrecision(layout *Layout, precision int) float64 {
	ids, posOfID := s.idsAndPositions(layout)
	if precision > len(s.Model.Trigrams) || precision < 0 {
		precision = len(s.Model.Trigrams)
	}
	return s.scoreIDs(ids, posOfID, precision)
}

func (s *Scorer) idsAndPositions(layout *Layout) (ids [NumPositions]uint8, posOfID [MaxCharacters]int) {
	for i := range posOfID {
		posOfID[i] = -1
	}
	for pos, r := range layout.Matrix {
		id, err := s.Model.Codec.Encode(r)
		if err != nil {
			continue
		}
		ids[pos] = id
		posOfID[id] = pos
	}
	return
}

func (s *Scorer) scoreIDs(ids [NumPositions]uint8, posOfID [MaxCharacters]int, precision int) float64 {
	w := s.Weights

	var effort float64
	for pos, id := range ids {
		effort += s.Model.Freq(id) * s.Effort[pos]
	}

	var usagePenalty float64
	colUsage := s.columnUsage(ids)
	for col, u := range colUsage {
		band := s.Weights.MaxFingerUse.Band(FingerBand(col))
		if over := u - band; over > 0 {
			usagePenalty += over * w.MaxFingerUse.Penalty
		}
	}

	var fspeed float64
	for col := 0; col < NumFingerCols; col++ {
		sl := s.ColStartLen[col]
		var colTotal float64
		for _, e := range s.FSpeed[sl.Start : sl.Start+sl.Len] {
			a, b := ids[e.Pair.A], ids[e.Pair.B]
			colTotal += e.Dist * s.ngramMix(a, b)
		}
		fspeed += colTotal
	}
	fspeed *= w.Fspeed

	var scissors float64
	for _, p := range s.Scissors {
		a, b := ids[p.A], ids[p.B]
		scissors += s.bigramFreq(s.Model.Bigrams, a, b)
	}
	scissors *= w.Scissors

	var trigramReward float64
	n := precision
	if n > len(s.Model.Trigrams) {
		n = len(s.Model.Trigrams)
	}
	for _, tg := range s.Model.Trigrams[:n] {
		p1, p2, p3 := posOfID[tg.IDs[0]], posOfID[tg.IDs[1]], posOfID[tg.IDs[2]]
		if p1 < 0 || p2 < 0 || p3 < 0 {
			continue
		}
		pat := Classify(p1, p2, p3)
		trigramReward += s.patternWeight(pat) * tg.Freq
	}

	return trigramReward - effort - usagePenalty - fspeed - scissors
}

func (s *Scorer) columnUsage(ids [NumPositions]uint8) [NumFingerCols]float64 {
	var out [NumFingerCols]float64
	for pos, id := range ids {
		out[FingerCol(pos)] += s.Model.Freq(id)
	}
	return out
}

// ngramMix implements the bigram/skipgram selection for the
// finger-speed term: bigrams at full weight, then skipgrams,
// skipgrams2 and skipgrams3 weighted by dsfb_ratio, dsfb_ratio2 and
// dsfb_ratio3 respectively.
func (s *Scorer) ngramMix(a, b uint8) float64 {
	w := s.Weights
	total := s.bigramFreq(s.Model.Bigrams, a, b)
	total += w.DsfbRatio * s.bigramFreq(s.Model.Skipgrams, a, b)
	total += w.DsfbRatio2 * s.bigramFreq(s.Model.Skipgrams2, a, b)
	total += w.DsfbRatio3 * s.bigramFreq(s.Model.Skipgrams3, a, b)
	return total
}
