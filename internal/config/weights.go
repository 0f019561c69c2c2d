// Package config loads the weights.toml configuration file: the
// scoring coefficients, finger-use bands, and the default language to
// select on startup.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kbfrost/layoutforge/internal/engine"
)

type maxFingerUseDoc struct {
	Pinky   float64 `toml:"pinky"`
	Ring    float64 `toml:"ring"`
	Middle  float64 `toml:"middle"`
	Index   float64 `toml:"index"`
	Penalty float64 `toml:"penalty"`
}

type weightsDoc struct {
	Heatmap        [2]float64      `toml:"heatmap"`
	Sfb            float64         `toml:"sfb"`
	Dsfb           float64         `toml:"dsfb"`
	Fspeed         float64         `toml:"fspeed"`
	Scissors       float64         `toml:"scissors"`
	Inrolls        float64         `toml:"inrolls"`
	Outrolls       float64         `toml:"outrolls"`
	Onehands       float64         `toml:"onehands"`
	Alternates     float64         `toml:"alternates"`
	AlternatesSfs  float64         `toml:"alternates_sfs"`
	Redirects      float64         `toml:"redirects"`
	BadRedirects   float64         `toml:"bad_redirects"`
	LateralPenalty float64         `toml:"lateral_penalty"`
	DsfbRatio      float64         `toml:"dsfb_ratio"`
	DsfbRatio2     float64         `toml:"dsfb_ratio2"`
	DsfbRatio3     float64         `toml:"dsfb_ratio3"`
	MaxFingerUse   maxFingerUseDoc `toml:"max_finger_use"`
}

type defaultsDoc struct {
	Language string `toml:"language"`
}

type fileDoc struct {
	Defaults defaultsDoc `toml:"defaults"`
	Weights  weightsDoc  `toml:"weights"`
}

func docFromWeights(w engine.Weights) fileDoc {
	return fileDoc{
		Defaults: defaultsDoc{Language: w.Language},
		Weights: weightsDoc{
			Heatmap:        w.Heatmap,
			Sfb:            w.Sfb,
			Dsfb:           w.Dsfb,
			Fspeed:         w.Fspeed,
			Scissors:       w.Scissors,
			Inrolls:        w.Inrolls,
			Outrolls:       w.Outrolls,
			Onehands:       w.Onehands,
			Alternates:     w.Alternates,
			AlternatesSfs:  w.AlternatesSfs,
			Redirects:      w.Redirects,
			BadRedirects:   w.BadRedirects,
			LateralPenalty: w.LateralPenalty,
			DsfbRatio:      w.DsfbRatio,
			DsfbRatio2:     w.DsfbRatio2,
			DsfbRatio3:     w.DsfbRatio3,
			MaxFingerUse: maxFingerUseDoc{
				Pinky: w.MaxFingerUse.Pinky, Ring: w.MaxFingerUse.Ring,
				Middle: w.MaxFingerUse.Middle, Index: w.MaxFingerUse.Index,
				Penalty: w.MaxFingerUse.Penalty,
			},
		},
	}
}

func (d fileDoc) toWeights() engine.Weights {
	return engine.Weights{
		Language:       d.Defaults.Language,
		Heatmap:        d.Weights.Heatmap,
		Sfb:            d.Weights.Sfb,
		Dsfb:           d.Weights.Dsfb,
		Fspeed:         d.Weights.Fspeed,
		Scissors:       d.Weights.Scissors,
		Inrolls:        d.Weights.Inrolls,
		Outrolls:       d.Weights.Outrolls,
		Onehands:       d.Weights.Onehands,
		Alternates:     d.Weights.Alternates,
		AlternatesSfs:  d.Weights.AlternatesSfs,
		Redirects:      d.Weights.Redirects,
		BadRedirects:   d.Weights.BadRedirects,
		LateralPenalty: d.Weights.LateralPenalty,
		DsfbRatio:      d.Weights.DsfbRatio,
		DsfbRatio2:     d.Weights.DsfbRatio2,
		DsfbRatio3:     d.Weights.DsfbRatio3,
		MaxFingerUse: engine.MaxFingerUse{
			Pinky: d.Weights.MaxFingerUse.Pinky, Ring: d.Weights.MaxFingerUse.Ring,
			Middle: d.Weights.MaxFingerUse.Middle, Index: d.Weights.MaxFingerUse.Index,
			Penalty: d.Weights.MaxFingerUse.Penalty,
		},
	}
}

// Load reads a weights.toml file at path, starting from
// engine.DefaultWeights() so a file that overrides only a handful of
// fields still behaves sensibly. It fails with a descriptive message
// on a missing file, malformed TOML, or an empty language/heatmap.
func Load(path string) (*engine.Weights, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load weights %s: %w", path, err)
	}

	doc := docFromWeights(engine.DefaultWeights())
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse weights %s: %w", path, err)
	}

	w := doc.toWeights()
	if err := validate(w); err != nil {
		return nil, fmt.Errorf("weights %s: %w", path, err)
	}
	return &w, nil
}

func validate(w engine.Weights) error {
	if w.Language == "" {
		return fmt.Errorf("defaults.language must not be empty")
	}
	if w.Heatmap[0] == 0 && w.Heatmap[1] == 0 {
		return fmt.Errorf("weights.heatmap must not be [0, 0]")
	}
	if w.MaxFingerUse.Penalty < 0 {
		return fmt.Errorf("weights.max_finger_use.penalty must be non-negative")
	}
	return nil
}
