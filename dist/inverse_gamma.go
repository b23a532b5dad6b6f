package dist

import "math/rand"

// InverseGamma is the distribution of 1/X where X ~ Gamma(Alpha, Beta).
// It delegates every operation to an embedded Gamma evaluated on the
// reciprocal.
type InverseGamma struct {
	inner *Gamma
}

// NewInverseGamma constructs InverseGamma(alpha, beta). Panics if
// alpha<=0 or beta<=0 (delegated to NewGamma's own validation).
func NewInverseGamma(alpha, beta float64) *InverseGamma {
	return &InverseGamma{inner: NewGamma(alpha, beta)}
}

// Alpha returns the shape parameter.
func (ig *InverseGamma) Alpha() float64 { return ig.inner.Alpha }

// Beta returns the rate parameter.
func (ig *InverseGamma) Beta() float64 { return ig.inner.Beta }

// LogProbability returns Gamma(alpha,beta).LogProbability(1/x).
func (ig *InverseGamma) LogProbability(x float64) float64 {
	if x == 0 {
		return ig.inner.LogProbability(0)
	}
	return ig.inner.LogProbability(1 / x)
}

// Sample draws Y ~ Gamma(alpha,beta) and returns 1/Y.
func (ig *InverseGamma) Sample(rng *rand.Rand) float64 {
	return 1 / ig.inner.Sample(rng)
}

// Fit fits the underlying Gamma on the reciprocals of samples.
func (ig *InverseGamma) Fit(samples []float64, weights []float64) error {
	recip := make([]float64, len(samples))
	for i, x := range samples {
		if x == 0 {
			recip[i] = 0
			continue
		}
		recip[i] = 1 / x
	}
	return ig.inner.Fit(recip, weights)
}

// CloneUntied returns an independent copy.
func (ig *InverseGamma) CloneUntied() Distribution {
	return &InverseGamma{inner: ig.inner.CloneUntied().(*Gamma)}
}

func (ig *InverseGamma) Samplable() bool { return true }
func (ig *InverseGamma) Fittable() bool  { return true }
