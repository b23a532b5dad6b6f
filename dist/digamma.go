package dist

import "math"

// digamma returns psi(x), the logarithmic derivative of the gamma
// function, via the standard recurrence-down-then-asymptotic-series
// approach (shift x up past the asymptotic regime using
// psi(x) = psi(x+1) - 1/x, then apply the Bernoulli-number expansion).
func digamma(x float64) float64 {
	var result float64
	for x < 6 {
		result -= 1 / x
		x++
	}
	inv := 1 / x
	inv2 := inv * inv
	result += math.Log(x) - 0.5*inv
	result -= inv2 * (1.0/12 - inv2*(1.0/120-inv2/252))
	return result
}

// trigamma returns psi'(x), the second logarithmic derivative of the
// gamma function, via the same shift-then-series strategy, using the
// recurrence psi'(x) = psi'(x+1) + 1/x^2.
func trigamma(x float64) float64 {
	var result float64
	for x < 6 {
		result += 1 / (x * x)
		x++
	}
	inv := 1 / x
	inv2 := inv * inv
	result += inv + 0.5*inv2 + inv2*inv*(1.0/6-inv2*(1.0/30-inv2/42))
	return result
}
