package dist

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

const (
	gammaNewtonTol   = 1e-9
	gammaNewtonSteps = 1000
)

// Gamma is the shape/rate parametrization Gamma(Alpha, Beta): pdf
// proportional to x^(alpha-1) * exp(-beta*x) for x>0.
type Gamma struct {
	Alpha, Beta float64

	// Rng backs the reseed-on-divergence step of Fit's Newton-Raphson
	// solve. Lazily defaulted to a deterministic stream so that Fit is
	// reproducible even when a caller never sets it explicitly.
	Rng *rand.Rand
}

// NewGamma constructs Gamma(alpha, beta). Panics if alpha<=0 or beta<=0.
func NewGamma(alpha, beta float64) *Gamma {
	if alpha <= 0 || beta <= 0 {
		panic("dist: NewGamma requires alpha > 0 and beta > 0")
	}
	return &Gamma{Alpha: alpha, Beta: beta}
}

// LogProbability returns the Gamma log pdf for x>0, -Inf otherwise.
func (g *Gamma) LogProbability(x float64) float64 {
	if x <= 0 {
		return logspace.NegInf
	}
	return g.Alpha*math.Log(g.Beta) - lgamma(g.Alpha) + (g.Alpha-1)*math.Log(x) - g.Beta*x
}

// Sample draws one variate with the Marsaglia-Tsang method driven by rng.
func (g *Gamma) Sample(rng *rand.Rand) float64 {
	// math/rand has no built-in Gamma sampler; use Marsaglia-Tsang,
	// valid for alpha>=1, and the standard boost-exponent trick below
	// that threshold.
	if g.Alpha < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		boosted := &Gamma{Alpha: g.Alpha + 1, Beta: g.Beta}
		return boosted.Sample(rng) * math.Pow(u, 1/g.Alpha)
	}
	d := g.Alpha - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v / g.Beta
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v / g.Beta
		}
	}
}

// Fit performs the numerical MLE: seed alpha from the moment-based
// formula, Newton-Raphson to convergence on
// log(alpha) - psi(alpha) - s == 0, reseeding uniformly in (0,1) if
// alpha escapes to a non-finite or non-positive value, then solve beta
// in closed form.
func (g *Gamma) Fit(samples []float64, weights []float64) error {
	weights, err := resolveWeights(samples, weights)
	if err != nil {
		return err
	}

	var sumW, sumWX, sumWLogX float64
	for i, x := range samples {
		w := weights[i]
		if w <= 0 || x <= 0 {
			continue
		}
		sumW += w
		sumWX += w * x
		sumWLogX += w * math.Log(x)
	}
	if sumW == 0 {
		return nil
	}

	mean := sumWX / sumW
	meanLog := sumWLogX / sumW
	s := math.Log(mean) - meanLog

	alpha := g.seedAlpha(s)
	alpha = g.newtonRaphson(alpha, s)

	g.Alpha = alpha
	g.Beta = sumW / (alpha * sumWX)
	return nil
}

// seedAlpha computes the moment-based closed-form starting point for
// Newton-Raphson, falling back to the previous alpha when s<=0 (the
// formula is only valid for s>0).
func (g *Gamma) seedAlpha(s float64) float64 {
	if s <= 0 {
		return g.Alpha
	}
	return (3 - s + math.Sqrt((s-3)*(s-3)+24*s)) / (12 * s)
}

// newtonRaphson solves log(alpha) - psi(alpha) - s == 0 for alpha,
// reseeding uniformly in (0,1) whenever the iterate escapes to a
// non-finite or non-positive value, accepting the last finite iterate
// if convergence is never reached.
func (g *Gamma) newtonRaphson(alpha, s float64) float64 {
	rng := g.rng()
	for iter := 0; iter < gammaNewtonSteps; iter++ {
		f := math.Log(alpha) - digamma(alpha) - s
		fPrime := 1/alpha - trigamma(alpha)
		if fPrime == 0 {
			break
		}
		delta := f / fPrime
		next := alpha - delta

		if next <= 0 || math.IsNaN(next) || math.IsInf(next, 0) {
			next = rng.Float64()
			for next == 0 {
				next = rng.Float64()
			}
			alpha = next
			continue
		}
		converged := math.Abs(next-alpha) < gammaNewtonTol
		alpha = next
		if converged {
			break
		}
	}
	return alpha
}

func (g *Gamma) rng() *rand.Rand {
	if g.Rng == nil {
		g.Rng = logspace.RNGFromSeed(0)
	}
	return g.Rng
}

// CloneUntied returns an independent copy; the RNG stream is re-derived
// so the clone does not advance the original's stream.
func (g *Gamma) CloneUntied() Distribution {
	c := &Gamma{Alpha: g.Alpha, Beta: g.Beta}
	if g.Rng != nil {
		c.Rng = logspace.DeriveRNG(g.Rng, 0)
	}
	return c
}

func (g *Gamma) Samplable() bool { return true }
func (g *Gamma) Fittable() bool  { return true }

// lgamma is math.Lgamma without the sign return value, for brevity at
// call sites that only ever evaluate it on the positive reals.
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
