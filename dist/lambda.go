package dist

import "math/rand"

// Lambda wraps a user-provided log-probability function, for callers
// who need a distribution shape this package doesn't otherwise offer.
// It supports neither sampling nor fitting.
type Lambda struct {
	Fn func(x float64) float64
}

// NewLambda constructs a Lambda around fn. Panics if fn is nil.
func NewLambda(fn func(x float64) float64) *Lambda {
	if fn == nil {
		panic("dist: NewLambda requires a non-nil function")
	}
	return &Lambda{Fn: fn}
}

// LogProbability delegates to Fn.
func (l *Lambda) LogProbability(x float64) float64 { return l.Fn(x) }

// Sample panics: Lambda is not samplable.
func (l *Lambda) Sample(rng *rand.Rand) float64 {
	panic("dist: Lambda does not support Sample")
}

// Fit is a no-op that reports ErrNotFittable.
func (l *Lambda) Fit(samples []float64, weights []float64) error {
	return ErrNotFittable
}

// CloneUntied returns a shallow copy (Fn is a pure function, sharing it
// is safe).
func (l *Lambda) CloneUntied() Distribution { return &Lambda{Fn: l.Fn} }

func (l *Lambda) Samplable() bool { return false }
func (l *Lambda) Fittable() bool  { return false }
