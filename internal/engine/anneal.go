package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// getAcceptFunc returns a simulated-annealing acceptance function for
// the named policy, matching the shapes a layout analyser typically
// exposes: always accept worse, never, or a cosine/linear/exponential
// cooling schedule.
func getAcceptFunc(acceptWorse string) func(g, ng uint, e0, e1 float64) float64 {
	switch acceptWorse {
	case "always":
		return func(g, ng uint, e0, e1 float64) float64 { return 1.0 }
	case "never":
		return func(g, ng uint, e0, e1 float64) float64 { return 0.0 }
	case "drop-slow":
		return func(g, ng uint, e0, e1 float64) float64 {
			t := float64(g) / float64(ng)
			return (math.Cos(t*math.Pi) + 1.0) / 2.0
		}
	case "linear", "":
		return func(g, ng uint, e0, e1 float64) float64 {
			return 1.0 - float64(g)/float64(ng)
		}
	case "drop-fast":
		return func(g, ng uint, e0, e1 float64) float64 {
			t := 1.0 - float64(g)/float64(ng)
			return math.Exp(-3.0 * (1 - t))
		}
	default:
		panic("unknown accept-worse policy: " + acceptWorse)
	}
}

// annealGenome adapts a Layout to eaopt's Genome interface, scoring
// with the module's direct weighted-sum Scorer instead of a
// reference-layout-relative one. It exists as an optional, explicitly
// stochastic alternative to the deterministic Optimize search: its
// Evaluate/Mutate/Crossover/Clone contract assumes a tolerant
// accept-worse schedule, which the hill-climb optimizer's strict
// monotonic-improvement requirement cannot itself satisfy.
type annealGenome struct {
	layout *Layout
	scorer *Scorer
	pinned map[int]bool
}

func (g *annealGenome) Evaluate() (float64, error) {
	return -g.scorer.Score(g.layout), nil
}

func (g *annealGenome) Mutate(rng *rand.Rand) {
	var free []int
	for i := 0; i < NumPositions; i++ {
		if !g.pinned[i] {
			free = append(free, i)
		}
	}
	if len(free) < 2 {
		panic(fmt.Sprintf("not enough unpinned positions to mutate: %d", len(free)))
	}
	i := free[rng.Intn(len(free))]
	j := free[rng.Intn(len(free))]
	for j == i {
		j = free[rng.Intn(len(free))]
	}
	g.layout.Swap(i, j)
}

func (g *annealGenome) Crossover(_ eaopt.Genome, _ *rand.Rand) {}

func (g *annealGenome) Clone() eaopt.Genome {
	return &annealGenome{layout: g.layout.Clone(), scorer: g.scorer, pinned: g.pinned}
}

// Anneal runs simulated annealing (via eaopt) as an alternative to the
// deterministic optimizer, returning the best layout found.
func Anneal(layout *Layout, scorer *Scorer, pinned map[int]bool, generations uint, acceptWorse string) (*Layout, error) {
	free := 0
	for i := 0; i < NumPositions; i++ {
		if !pinned[i] {
			free++
		}
	}
	if free < 2 {
		return nil, fmt.Errorf("anneal: need at least 2 unpinned positions, got %d", free)
	}

	cfg := eaopt.NewDefaultGAConfig()
	cfg.NGenerations = generations
	cfg.Model = eaopt.ModSimulatedAnnealing{Accept: getAcceptFunc(acceptWorse)}

	ga, err := cfg.NewGA()
	if err != nil {
		return nil, err
	}

	seed := &annealGenome{layout: layout.Clone(), scorer: scorer, pinned: pinned}
	newGenome := func(rng *rand.Rand) eaopt.Genome { return seed.Clone() }
	if err := ga.Minimize(newGenome); err != nil {
		return nil, err
	}

	best := ga.HallOfFame[0].Genome.(*annealGenome)
	best.layout.Score = scorer.Score(best.layout)
	return best.layout, nil
}
