// Package logspace collects the small numeric primitives shared by the
// dist, model, dp and train packages: the log-sum-exp reduction used to
// keep every dynamic-programming kernel in log space, and a deterministic
// RNG-stream derivation helper used for Gamma-fit reseeding in dist and
// train.
package logspace

import "math"

// NegInf and PosInf are the sentinel log-probabilities used throughout
// the package: NegInf marks an impossible event, PosInf only ever
// appears as an intermediate in LSE's own conventions.
var (
	NegInf = math.Inf(-1)
	PosInf = math.Inf(1)
)

// LSE computes log(exp(x)+exp(y)) without overflow, using the identity
// max(x,y) + log1p(exp(-|x-y|)).
//
// Conventions (spec-mandated, not incidental):
//   - LSE(-Inf, y) == y
//   - LSE(+Inf, _) == +Inf
func LSE(x, y float64) float64 {
	if math.IsInf(x, 1) || math.IsInf(y, 1) {
		return PosInf
	}
	if math.IsInf(x, -1) {
		return y
	}
	if math.IsInf(y, -1) {
		return x
	}
	hi, lo := x, y
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi + math.Log1p(math.Exp(lo-hi))
}

// LSEAll reduces a slice of log-values via repeated LSE, returning NegInf
// for an empty slice.
func LSEAll(xs []float64) float64 {
	acc := NegInf
	for _, x := range xs {
		acc = LSE(acc, x)
	}
	return acc
}

// Max2 returns the larger of two float64 values, with the Viterbi
// convention that -Inf never wins over any finite score. Ties are left
// to the caller so that "prefer the first winner encountered" can be
// enforced at the call site (index order is not visible here).
func Max2(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}
