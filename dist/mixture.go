package dist

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

// Mixture combines child distributions with weights:
// log p(x) = log( sum_j weights[j] * exp(children[j].LogProbability(x)) ).
//
// Sampling selects a child by weight, then delegates to that child's
// own Sample.
type Mixture struct {
	Children []Distribution
	Weights  []float64
}

// NewMixture constructs a Mixture. Panics if children is empty or
// weights has a different length.
func NewMixture(children []Distribution, weights []float64) *Mixture {
	if len(children) == 0 {
		panic("dist: NewMixture requires at least one child")
	}
	if len(weights) != len(children) {
		panic("dist: NewMixture requires len(weights) == len(children)")
	}
	return &Mixture{
		Children: append([]Distribution(nil), children...),
		Weights:  normalizeCopy(weights),
	}
}

// LogProbability reduces per-child log-contributions via LSE.
func (m *Mixture) LogProbability(x float64) float64 {
	acc := logspace.NegInf
	for i, child := range m.Children {
		if m.Weights[i] <= 0 {
			continue
		}
		acc = logspace.LSE(acc, math.Log(m.Weights[i])+child.LogProbability(x))
	}
	return acc
}

// Sample selects a child by weight and delegates to its Sample. Panics
// if the selected child is not samplable.
func (m *Mixture) Sample(rng *rand.Rand) float64 {
	idx := m.pickChild(rng)
	child := m.Children[idx]
	if !child.Samplable() {
		panic("dist: Mixture.Sample selected a non-samplable child")
	}
	return child.Sample(rng)
}

func (m *Mixture) pickChild(rng *rand.Rand) int {
	u := rng.Float64()
	var cum float64
	for i, w := range m.Weights {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(m.Weights) - 1
}

// Fit is not implemented at the Mixture level: a mixture's
// posterior-responsibility-weighted EM update belongs to the trainer
// (which already computes per-state posteriors), not to the
// distribution itself. Calling Fit directly returns ErrNotFittable.
func (m *Mixture) Fit(samples []float64, weights []float64) error {
	return ErrNotFittable
}

// CloneUntied returns an independent copy with independently cloned
// children.
func (m *Mixture) CloneUntied() Distribution {
	children := make([]Distribution, len(m.Children))
	for i, c := range m.Children {
		children[i] = c.CloneUntied()
	}
	return &Mixture{Children: children, Weights: append([]float64(nil), m.Weights...)}
}

func (m *Mixture) Samplable() bool {
	for _, c := range m.Children {
		if !c.Samplable() {
			return false
		}
	}
	return true
}

func (m *Mixture) Fittable() bool { return false }
