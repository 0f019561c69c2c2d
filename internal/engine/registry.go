package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Registry loads, scores, and persists a language's named layouts
// from a directory of *.kb files.
type Registry struct {
	Dir     string
	Model   *LanguageModel
	Weights *Weights
	Scorer  *Scorer

	mu      sync.RWMutex
	layouts map[string]*Layout
	order   []string
}

// LoadError is a non-fatal parse failure for a single *.kb file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ReadLayoutFile is supplied by the caller (internal/corpusio), passed
// in as a parameter rather than imported to avoid engine depending on
// the file-format package.
type ReadLayoutFile func(path string) (*Layout, error)
type WriteLayoutFile func(path string, layout *Layout) error

// LoadRegistry scans dir for *.kb files, using read to parse each.
// Parse failures are collected and returned alongside a populated
// registry of whatever loaded successfully; they are never fatal.
func LoadRegistry(ctx context.Context, dir string, model *LanguageModel, w *Weights, read ReadLayoutFile) (*Registry, []error) {
	r := &Registry{
		Dir:     dir,
		Model:   model,
		Weights: w,
		Scorer:  NewScorer(model, w),
		layouts: make(map[string]*Layout),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return r, []error{err}
	}

	var mu sync.Mutex
	var loadErrs []error
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".kb") {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), ".kb")
		path := filepath.Join(dir, ent.Name())
		g.Go(func() error {
			layout, err := read(path)
			if err != nil {
				mu.Lock()
				loadErrs = append(loadErrs, &LoadError{Path: path, Err: err})
				mu.Unlock()
				return nil
			}
			layout.Name = name
			layout.Score = r.Scorer.Score(layout)
			mu.Lock()
			r.layouts[name] = layout
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	r.resort()
	return r, loadErrs
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (r *Registry) resort() {
	r.order = r.order[:0]
	for name := range r.layouts {
		r.order = append(r.order, name)
	}
	sort.Slice(r.order, func(i, j int) bool {
		si, sj := r.layouts[r.order[i]].Score, r.layouts[r.order[j]].Score
		if si != sj {
			return si > sj
		}
		return r.order[i] < r.order[j]
	})
}

// Rank returns the registry's layout names in stable, score-descending
// order; layouts with equal scores are ordered by name.
func (r *Registry) Rank() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns a named layout, or nil if unknown.
func (r *Registry) Get(name string) *Layout {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.layouts[name]
}

// homeRowRight extracts the four right-hand home-row characters
// (positions 16-19: right index home column, middle, ring, pinky),
// the conventional basis for an auto-generated layout name.
func homeRowRight(layout *Layout) string {
	var b strings.Builder
	for _, pos := range []int{16, 17, 18, 19} {
		b.WriteRune(layout.Matrix[pos])
	}
	return b.String()
}

// placeholderName generates a name from the layout's home-row-right
// characters, suffixed with the smallest positive integer making the
// name unique against existing.
func placeholderName(layout *Layout, existing map[string]bool) string {
	base := homeRowRight(layout)
	for i := 1; i < 1000; i++ {
		cand := fmt.Sprintf("%s%d", base, i)
		if !existing[cand] {
			return cand
		}
	}
	return base + "-" + uuid.NewString()[:8]
}

// Save assigns layout a name if none is given, writes it via write,
// and adds it to the registry. It returns the name used.
func (r *Registry) Save(layout *Layout, name string, write WriteLayoutFile) (string, error) {
	r.mu.Lock()
	if name == "" {
		existing := make(map[string]bool, len(r.layouts))
		for n := range r.layouts {
			existing[n] = true
		}
		if entries, err := os.ReadDir(r.Dir); err == nil {
			for _, ent := range entries {
				if strings.HasSuffix(ent.Name(), ".kb") {
					existing[strings.TrimSuffix(ent.Name(), ".kb")] = true
				}
			}
		}
		name = placeholderName(layout, existing)
	}
	r.mu.Unlock()

	path := filepath.Join(r.Dir, name+".kb")
	saved := layout.Clone()
	saved.Name = name
	if err := write(path, saved); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}

	saved.Score = r.Scorer.Score(saved)
	r.mu.Lock()
	r.layouts[name] = saved
	r.resort()
	r.mu.Unlock()
	return name, nil
}
