package dist

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

// Exponential is the distribution with rate Lambda > 0.
type Exponential struct {
	Lambda float64
}

// NewExponential constructs Exponential(lambda). Panics if lambda<=0.
func NewExponential(lambda float64) *Exponential {
	if lambda <= 0 {
		panic("dist: NewExponential requires lambda > 0")
	}
	return &Exponential{Lambda: lambda}
}

// LogProbability returns log(lambda) - lambda*x for x>=0, -Inf otherwise.
func (e *Exponential) LogProbability(x float64) float64 {
	if x < 0 {
		return logspace.NegInf
	}
	return math.Log(e.Lambda) - e.Lambda*x
}

// Sample draws one variate via inverse-CDF sampling.
func (e *Exponential) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return -math.Log(u) / e.Lambda
}

// Fit sets Lambda = 1/weighted_mean; a no-op if total weight is zero or
// the weighted mean is non-positive.
func (e *Exponential) Fit(samples []float64, weights []float64) error {
	weights, err := resolveWeights(samples, weights)
	if err != nil {
		return err
	}
	mean, _, totalWeight, _ := weightedMeanVar(samples, weights)
	if totalWeight == 0 || mean <= 0 {
		return nil
	}
	e.Lambda = 1 / mean
	return nil
}

// CloneUntied returns an independent copy.
func (e *Exponential) CloneUntied() Distribution { c := *e; return &c }

func (e *Exponential) Samplable() bool { return true }
func (e *Exponential) Fittable() bool  { return true }
