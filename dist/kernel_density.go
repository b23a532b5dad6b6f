package dist

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

// kernelKind selects the per-point contribution function shared by the
// three kernel-density variants.
type kernelKind int

const (
	kernelGaussian kernelKind = iota
	kernelUniform
	kernelTriangle
)

// kernelDensity is the common representation behind
// GaussianKernelDensity, UniformKernelDensity and TriangleKernelDensity:
// p(x) = sum_i weights[i] * contribution(kind, x, points[i], bandwidth),
// with weights renormalized to sum to 1 at construction and after Fit.
type kernelDensity struct {
	kind      kernelKind
	points    []float64
	weights   []float64
	bandwidth float64
}

func newKernelDensity(kind kernelKind, points []float64, bandwidth float64, weights []float64) *kernelDensity {
	if len(points) == 0 {
		panic("dist: kernel density requires at least one point")
	}
	if bandwidth <= 0 {
		panic("dist: kernel density requires bandwidth > 0")
	}
	w := weights
	if w == nil {
		w = uniformWeights(len(points))
	}
	if len(w) != len(points) {
		panic("dist: kernel density weights/points length mismatch")
	}
	kd := &kernelDensity{kind: kind, points: append([]float64(nil), points...), bandwidth: bandwidth}
	kd.weights = normalizeCopy(w)
	return kd
}

func normalizeCopy(w []float64) []float64 {
	cp := append([]float64(nil), w...)
	var sum float64
	for _, v := range cp {
		sum += v
	}
	if sum > 0 {
		for i := range cp {
			cp[i] /= sum
		}
	}
	return cp
}

// contribution returns the (unnormalized, not necessarily a pdf)
// per-point contribution used by LogProbability.
func (kd *kernelDensity) contribution(x, point float64) float64 {
	switch kd.kind {
	case kernelUniform:
		if math.Abs(x-point) <= kd.bandwidth {
			return 1
		}
		return 0
	case kernelTriangle:
		c := kd.bandwidth - math.Abs(x-point)
		if c < 0 {
			return 0
		}
		return c
	default: // kernelGaussian
		z := (x - point) / kd.bandwidth
		return math.Exp(-0.5*z*z) / (kd.bandwidth * math.Sqrt(2*math.Pi))
	}
}

// LogProbability reduces per-point log-contributions via LSE, which
// tolerates exact-zero contributions from the Uniform/Triangle kernels
// (math.Log(0) is -Inf, and LSE(-Inf, y) == y).
func (kd *kernelDensity) LogProbability(x float64) float64 {
	acc := logspace.NegInf
	for i, p := range kd.points {
		c := kd.contribution(x, p)
		var logTerm float64
		if c <= 0 {
			logTerm = logspace.NegInf
		} else {
			logTerm = math.Log(kd.weights[i]) + math.Log(c)
		}
		acc = logspace.LSE(acc, logTerm)
	}
	return acc
}

// Sample picks a support point by weight, then draws from that point's
// kernel: a Gaussian for the Gaussian kernel, uniform within bandwidth
// for the Uniform kernel, and the triangular distribution for the
// Triangle kernel.
func (kd *kernelDensity) Sample(rng *rand.Rand) float64 {
	point := kd.pickPoint(rng)
	switch kd.kind {
	case kernelUniform:
		return point - kd.bandwidth + rng.Float64()*2*kd.bandwidth
	case kernelTriangle:
		u1, u2 := rng.Float64(), rng.Float64()
		return point + kd.bandwidth*(u1-u2)
	default: // kernelGaussian
		return point + kd.bandwidth*rng.NormFloat64()
	}
}

func (kd *kernelDensity) pickPoint(rng *rand.Rand) float64 {
	u := rng.Float64()
	var cum float64
	for i, w := range kd.weights {
		cum += w
		if u < cum {
			return kd.points[i]
		}
	}
	return kd.points[len(kd.points)-1]
}

// Fit replaces the support points by the positively-weighted samples
// and renormalizes their weights; a no-op if no sample carries positive
// weight.
func (kd *kernelDensity) Fit(samples []float64, weights []float64) error {
	weights, err := resolveWeights(samples, weights)
	if err != nil {
		return err
	}
	var pts, ws []float64
	for i, x := range samples {
		if weights[i] <= 0 {
			continue
		}
		pts = append(pts, x)
		ws = append(ws, weights[i])
	}
	if len(pts) == 0 {
		return nil
	}
	kd.points = pts
	kd.weights = normalizeCopy(ws)
	return nil
}

func (kd *kernelDensity) cloneUntied() *kernelDensity {
	return &kernelDensity{
		kind:      kd.kind,
		points:    append([]float64(nil), kd.points...),
		weights:   append([]float64(nil), kd.weights...),
		bandwidth: kd.bandwidth,
	}
}

func (kd *kernelDensity) Samplable() bool { return true }
func (kd *kernelDensity) Fittable() bool  { return true }

// GaussianKernelDensity is p(x) = sum_i w_i * N(x; points_i, bandwidth).
type GaussianKernelDensity struct{ *kernelDensity }

// NewGaussianKernelDensity constructs a Gaussian KDE. Panics if points
// is empty or bandwidth<=0.
func NewGaussianKernelDensity(points []float64, bandwidth float64, weights []float64) *GaussianKernelDensity {
	return &GaussianKernelDensity{newKernelDensity(kernelGaussian, points, bandwidth, weights)}
}

// CloneUntied returns an independent copy.
func (g *GaussianKernelDensity) CloneUntied() Distribution {
	return &GaussianKernelDensity{g.cloneUntied()}
}

// UniformKernelDensity gives each point an indicator contribution of 1
// within bandwidth, 0 outside it.
type UniformKernelDensity struct{ *kernelDensity }

// NewUniformKernelDensity constructs a Uniform-kernel KDE.
func NewUniformKernelDensity(points []float64, bandwidth float64, weights []float64) *UniformKernelDensity {
	return &UniformKernelDensity{newKernelDensity(kernelUniform, points, bandwidth, weights)}
}

// CloneUntied returns an independent copy.
func (u *UniformKernelDensity) CloneUntied() Distribution {
	return &UniformKernelDensity{u.cloneUntied()}
}

// TriangleKernelDensity gives each point a tent-shaped contribution
// peaking at bandwidth and falling linearly to 0 at distance bandwidth.
type TriangleKernelDensity struct{ *kernelDensity }

// NewTriangleKernelDensity constructs a Triangle-kernel KDE.
func NewTriangleKernelDensity(points []float64, bandwidth float64, weights []float64) *TriangleKernelDensity {
	return &TriangleKernelDensity{newKernelDensity(kernelTriangle, points, bandwidth, weights)}
}

// CloneUntied returns an independent copy.
func (t *TriangleKernelDensity) CloneUntied() Distribution {
	return &TriangleKernelDensity{t.cloneUntied()}
}
