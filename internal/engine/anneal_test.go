package engine

import "testing"

func TestGetAcceptFuncAlwaysAndNever(t *testing.T) {
	always := getAcceptFunc("always")
	if got := always(1, 10, 0, 0); got != 1.0 {
		t.Errorf("always policy = %v, want 1.0", got)
	}
	never := getAcceptFunc("never")
	if got := never(1, 10, 0, 0); got != 0.0 {
		t.Errorf("never policy = %v, want 0.0", got)
	}
}

func TestGetAcceptFuncLinearDecaysToZero(t *testing.T) {
	linear := getAcceptFunc("linear")
	start := linear(0, 100, 0, 0)
	end := linear(100, 100, 0, 0)
	if start <= end {
		t.Errorf("expected linear acceptance to decay, got start=%v end=%v", start, end)
	}
	if end != 0 {
		t.Errorf("expected linear acceptance to reach 0 at the final generation, got %v", end)
	}
}

func TestGetAcceptFuncUnknownPolicyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown accept-worse policy")
		}
	}()
	getAcceptFunc("not-a-real-policy")
}

func TestAnnealGenomeMutateRespectsPinned(t *testing.T) {
	layout, _ := ParseLayout("qwertyuiopasdfghjkl;zxcvbnm,./")
	model := testModel()
	w := DefaultWeights()
	scorer := NewScorer(model, &w)

	pinned := map[int]bool{}
	for i := 0; i < NumPositions; i++ {
		if i != 0 && i != 1 {
			pinned[i] = true
		}
	}
	g := &annealGenome{layout: layout.Clone(), scorer: scorer, pinned: pinned}
	rng := newStdRand(3)
	g.Mutate(rng)

	for pos := range pinned {
		if g.layout.Matrix[pos] != layout.Matrix[pos] {
			t.Errorf("Mutate changed pinned position %d", pos)
		}
	}
}
