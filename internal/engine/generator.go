package engine

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Progress reports generator progress; done/total are a monotone
// counter suitable for an ETA display. The exact format is not part
// of the contract, only the counts.
type Progress func(done, total int)

// Generate draws a uniformly random permutation of alphabet, runs the
// full optimizer, and returns the resulting layout with Score set.
// scorer is shared read-only across every restart.
func Generate(scorer *Scorer, alphabet [NumPositions]rune, rng *rand.Rand) *Layout {
	layout := NewLayout([NumPositions]rune{})
	layout.RandomFill(alphabet, rng)
	cache := NewLayoutCache(layout, scorer)
	Optimize(cache, PossibleSwaps)
	layout.Score = cache.TotalScore()
	return layout
}

// GenerateN runs Generate n times in parallel across the available
// cores, each task owning its own layout and cache; the shared scorer
// (model, weights, and geometry tables) is read-only. Results are
// collected into a buffer and sorted by score descending, making the
// output order deterministic for presentation even though task
// completion order is arbitrary. seeds must have length n; each task
// uses its own seed so the run is reproducible given the same seeds.
func GenerateN(ctx context.Context, n int, scorer *Scorer, alphabet [NumPositions]rune, seeds []uint64, progress Progress) ([]*Layout, error) {
	results := make([]*Layout, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	var done atomic.Int64
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			rng := rand.New(rand.NewPCG(seeds[i], seeds[i]))
			results[i] = Generate(scorer, alphabet, rng)
			d := done.Add(1)
			if progress != nil {
				progress(int(d), n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	return results, nil
}

// GeneratePinned fixes the characters at pinned positions to
// template's values and uniformly shuffles the rest, then optimizes
// using only the pin-restricted candidate swap list. scorer is shared
// read-only across every restart.
func GeneratePinned(scorer *Scorer, template *Layout, pinned map[int]bool, rng *rand.Rand) *Layout {
	layout := template.Clone()
	layout.RandomPins(template, pinned, rng)
	cache := NewLayoutCache(layout, scorer)
	Optimize(cache, SwapsExcludingPinned(pinned))
	layout.Score = cache.TotalScore()
	return layout
}

// GenerateNPins runs GeneratePinned n times in parallel, the same way
// GenerateN parallelizes unconstrained generation.
func GenerateNPins(ctx context.Context, n int, scorer *Scorer, template *Layout, pinned map[int]bool, seeds []uint64, progress Progress) ([]*Layout, error) {
	results := make([]*Layout, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	var done atomic.Int64
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			rng := rand.New(rand.NewPCG(seeds[i], seeds[i]))
			results[i] = GeneratePinned(scorer, template, pinned, rng)
			d := done.Add(1)
			if progress != nil {
				progress(int(d), n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	return results, nil
}
