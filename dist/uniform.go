package dist

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

// Uniform is the continuous uniform distribution on [A, B].
type Uniform struct {
	A, B float64
}

// NewUniform constructs Uniform(a,b). Panics if a>b: a literal,
// caller-supplied parameter outside the domain is a programmer error,
// distinct from runtime/user data fed to an algorithm, which this
// package never panics on.
func NewUniform(a, b float64) *Uniform {
	if a > b {
		panic("dist: NewUniform requires a <= b")
	}
	return &Uniform{A: a, B: b}
}

// LogProbability returns -log(b-a) on [a,b], -Inf outside it. The
// degenerate a==b==x case returns 0 (a point mass).
func (u *Uniform) LogProbability(x float64) float64 {
	if u.A == u.B {
		if x == u.A {
			return 0
		}
		return logspace.NegInf
	}
	if x < u.A || x > u.B {
		return logspace.NegInf
	}
	return -math.Log(u.B - u.A)
}

// Sample draws x ~ Uniform(a,b).
func (u *Uniform) Sample(rng *rand.Rand) float64 {
	if u.A == u.B {
		return u.A
	}
	return u.A + rng.Float64()*(u.B-u.A)
}

// Fit sets (A,B) to (min,max) over entries with strictly positive
// weight; a no-op if no such entry exists.
func (u *Uniform) Fit(samples []float64, weights []float64) error {
	weights, err := resolveWeights(samples, weights)
	if err != nil {
		return err
	}
	first := true
	var lo, hi float64
	for i, x := range samples {
		if weights[i] <= 0 {
			continue
		}
		if first {
			lo, hi = x, x
			first = false
			continue
		}
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if first {
		return nil // no positively-weighted sample: no-op
	}
	u.A, u.B = lo, hi
	return nil
}

// CloneUntied returns an independent copy.
func (u *Uniform) CloneUntied() Distribution { c := *u; return &c }

func (u *Uniform) Samplable() bool { return true }
func (u *Uniform) Fittable() bool  { return true }
