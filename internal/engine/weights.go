package engine

// MaxFingerUse bands the column-usage penalty's free allowance by
// finger identity, plus the penalty multiplier applied beyond it.
type MaxFingerUse struct {
	Pinky, Ring, Middle, Index float64
	Penalty                    float64
}

// Band returns the allowance for the named finger band.
func (m MaxFingerUse) Band(name string) float64 {
	switch name {
	case "pinky":
		return m.Pinky
	case "ring":
		return m.Ring
	case "middle":
		return m.Middle
	default:
		return m.Index
	}
}

// Weights holds every scoring coefficient read from the weights file
// (loaded by internal/config).
type Weights struct {
	Language string

	Heatmap  [2]float64 // (scale, offset)
	Sfb      float64
	Dsfb     float64
	Fspeed   float64
	Scissors float64

	Inrolls       float64
	Outrolls      float64
	Onehands      float64
	Alternates    float64
	AlternatesSfs float64
	Redirects     float64
	BadRedirects  float64

	LateralPenalty float64

	DsfbRatio  float64
	DsfbRatio2 float64
	DsfbRatio3 float64

	MaxFingerUse MaxFingerUse
}

// DefaultWeights returns the default scoring configuration, adopted
// from the original implementation's own Config::default().
func DefaultWeights() Weights {
	return Weights{
		Language:       "english",
		Heatmap:        [2]float64{1.4, 0.6},
		Sfb:            15.0,
		Dsfb:           2.5,
		Fspeed:         1.0,
		Scissors:       1.0,
		Inrolls:        0.6,
		Outrolls:       0.4,
		Onehands:       0.5,
		Alternates:     0.5,
		AlternatesSfs:  0.25,
		Redirects:      0.5,
		BadRedirects:   4.5,
		LateralPenalty: 1.0,
		DsfbRatio:      0.5,
		DsfbRatio2:     0.3,
		DsfbRatio3:     0.2,
		MaxFingerUse: MaxFingerUse{
			Pinky: 18, Ring: 24, Middle: 28, Index: 34,
			Penalty: 10.0,
		},
	}
}
