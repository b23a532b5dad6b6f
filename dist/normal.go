package dist

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

// DefaultSigmaMin is the floor applied to Normal's standard deviation,
// both at construction and after every Fit.
const DefaultSigmaMin = 0.01

// Normal is the univariate Gaussian N(Mu, Sigma), clamped to
// Sigma >= SigmaMin except for the explicit Sigma==0 point-mass case.
type Normal struct {
	Mu, Sigma float64
	SigmaMin  float64
}

// NewNormal constructs N(mu, sigma) with the default sigma floor.
// Panics on sigma<0 (a malformed literal parameter).
func NewNormal(mu, sigma float64) *Normal {
	return NewNormalWithFloor(mu, sigma, DefaultSigmaMin)
}

// NewNormalWithFloor is NewNormal with an explicit sigma floor.
func NewNormalWithFloor(mu, sigma, sigmaMin float64) *Normal {
	if sigma < 0 {
		panic("dist: NewNormal requires sigma >= 0")
	}
	n := &Normal{Mu: mu, Sigma: sigma, SigmaMin: sigmaMin}
	if sigma > 0 && sigma < n.floor() {
		n.Sigma = n.floor()
	}
	return n
}

// LogProbability returns the Gaussian log pdf. When Sigma==0 it behaves
// as a point mass at Mu: log-probability 0 within a tiny epsilon, -Inf
// otherwise.
func (n *Normal) LogProbability(x float64) float64 {
	const pointEps = 1e-12
	if n.Sigma == 0 {
		if math.Abs(x-n.Mu) < pointEps {
			return 0
		}
		return logspace.NegInf
	}
	z := (x - n.Mu) / n.Sigma
	return -0.5*z*z - math.Log(n.Sigma) - 0.5*math.Log(2*math.Pi)
}

// Sample draws one variate via rng.NormFloat64.
func (n *Normal) Sample(rng *rand.Rand) float64 {
	return n.Mu + n.Sigma*rng.NormFloat64()
}

// Fit replaces (Mu,Sigma) by the weighted MLE. Sigma is only updated
// when at least two samples carry positive weight (a single point
// can't estimate a spread); the floor is re-applied afterward.
func (n *Normal) Fit(samples []float64, weights []float64) error {
	weights, err := resolveWeights(samples, weights)
	if err != nil {
		return err
	}
	mean, variance, totalWeight, nPositive := weightedMeanVar(samples, weights)
	if totalWeight == 0 {
		return nil
	}
	n.Mu = mean
	if nPositive >= 2 {
		sigma := math.Sqrt(variance)
		if sigma < n.floor() {
			sigma = n.floor()
		}
		n.Sigma = sigma
	}
	return nil
}

func (n *Normal) floor() float64 {
	if n.SigmaMin > 0 {
		return n.SigmaMin
	}
	return DefaultSigmaMin
}

// CloneUntied returns an independent copy.
func (n *Normal) CloneUntied() Distribution { c := *n; return &c }

func (n *Normal) Samplable() bool { return true }
func (n *Normal) Fittable() bool  { return true }
