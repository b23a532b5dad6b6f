// Package dist implements the emission-distribution algebra shared by
// every state in a gohmm model: a small, closed set of parametric and
// non-parametric distributions behind one polymorphic contract.
//
// Every Distribution supports LogProbability; Sample and Fit are
// conditionally supported (Samplable/Fittable report which) so that the
// DP kernels and trainers can dispatch without type-switching on every
// call.
package dist

import "math/rand"

// Distribution is the uniform contract every emission distribution
// satisfies. CloneUntied returns a deep copy with independent
// parameters, used when a tied state must be split (or simply to avoid
// aliasing when the same literal distribution is reused by mistake at
// build time).
type Distribution interface {
	// LogProbability returns the log pdf/pmf at x, or -Inf when x is
	// outside the distribution's support.
	LogProbability(x float64) float64

	// Sample draws one variate using rng. Panics if Samplable() is
	// false; callers must check first.
	Sample(rng *rand.Rand) float64

	// Fit replaces the distribution's parameters by the weighted MLE
	// over samples/weights. A no-op when samples is empty or the
	// weights sum to zero. Returns ErrNotFittable for distributions
	// that don't support fitting.
	Fit(samples []float64, weights []float64) error

	// CloneUntied returns a deep copy with independently owned
	// parameters (not sharing any tie relationship with the original).
	CloneUntied() Distribution

	// Samplable reports whether Sample is supported.
	Samplable() bool

	// Fittable reports whether Fit is supported.
	Fittable() bool
}

// weightedMeanVar returns the weighted mean and (biased) variance of
// samples/weights, along with the count of strictly-positive-weight
// entries and the total weight. It is the one piece of arithmetic
// shared by Normal and Exponential fitting.
func weightedMeanVar(samples, weights []float64) (mean, variance, totalWeight float64, nPositive int) {
	for i, x := range samples {
		w := weights[i]
		if w <= 0 {
			continue
		}
		nPositive++
		totalWeight += w
		mean += w * x
	}
	if totalWeight == 0 {
		return 0, 0, 0, nPositive
	}
	mean /= totalWeight

	var ex2 float64
	for i, x := range samples {
		w := weights[i]
		if w <= 0 {
			continue
		}
		ex2 += w * x * x
	}
	ex2 /= totalWeight
	variance = ex2 - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, variance, totalWeight, nPositive
}

// uniformWeights returns an all-ones slice the same length as samples,
// used when callers pass a nil weights slice to Fit.
func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// resolveWeights returns weights unchanged if it already matches the
// length of samples, or a fresh all-ones slice if weights is nil; it
// returns ErrLengthMismatch if weights is non-nil but the wrong length.
func resolveWeights(samples, weights []float64) ([]float64, error) {
	if weights == nil {
		return uniformWeights(len(samples)), nil
	}
	if len(weights) != len(samples) {
		return nil, ErrLengthMismatch
	}
	return weights, nil
}
