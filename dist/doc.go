// Package dist implements gohmm's emission-distribution algebra: a
// closed set of parametric and non-parametric distributions behind one
// Distribution interface (LogProbability/Sample/Fit/CloneUntied), so
// model/dp/train can dispatch polymorphically without a type switch
// per call site.
//
// Variants: Uniform, Normal, Exponential, Gamma, InverseGamma, Discrete,
// the three kernel densities (Gaussian/Uniform/Triangle), Mixture and
// Lambda. Every constructor validates its literal parameters and panics
// on a malformed domain (e.g. Uniform(a,b) with a>b); Fit never panics
// on bad/empty runtime data, it is a no-op instead, per spec.
package dist
