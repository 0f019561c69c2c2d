package engine

import "testing"

func TestScoreStatsTotalMatchesScore(t *testing.T) {
	model := testModel()
	w := DefaultWeights()
	scorer := NewScorer(model, &w)
	layout, err := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	stats := scorer.ScoreStats(layout)
	score := scorer.Score(layout)
	if diff := stats.Total - score; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ScoreStats.Total = %v, Score() = %v, diverge by %v", stats.Total, score, diff)
	}
}

func TestScoreWithPrecisionClampsToFullList(t *testing.T) {
	model := testModel()
	w := DefaultWeights()
	scorer := NewScorer(model, &w)
	layout, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")

	full := scorer.Score(layout)
	overshoot := scorer.ScoreWithPrecision(layout, len(model.Trigrams)+1000)
	if overshoot != full {
		t.Errorf("ScoreWithPrecision with an out-of-range precision = %v, want %v", overshoot, full)
	}
}

func TestScoreWithPrecisionZeroHasNoTrigramReward(t *testing.T) {
	model := testModel()
	w := DefaultWeights()
	scorer := NewScorer(model, &w)
	layout, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")

	zero := scorer.ScoreWithPrecision(layout, 0)
	stats := scorer.ScoreStats(layout)
	want := -stats.Effort - stats.UsagePenalty - stats.Fspeed - stats.Scissors
	if diff := zero - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ScoreWithPrecision(0) = %v, want %v (no trigram reward)", zero, want)
	}
}

func TestSwappingIdenticalPositionsDoesNotChangeScore(t *testing.T) {
	model := testModel()
	w := DefaultWeights()
	scorer := NewScorer(model, &w)
	layout, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")

	before := scorer.Score(layout)
	layout.Swap(5, 5)
	after := scorer.Score(layout)
	if before != after {
		t.Errorf("swapping a position with itself changed the score: %v -> %v", before, after)
	}
}
