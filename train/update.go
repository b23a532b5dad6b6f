package train

import (
	"math"

	"github.com/katalvlaran/gohmm/model"
)

// safeLog returns log(p), or NegInf for p<=0, mirroring model's bake-time
// convention.
func safeLog(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}

// applyEdgeUpdate runs the shared edge update rule over m's out-edges,
// using expected (linear-domain expected counts, parallel to
// m.OutTarget) and the trainer's pseudocount/inertia configuration. A
// source state whose outgoing row normalizes to zero is left unchanged.
// Updates are mirrored into the corresponding in-edge entries.
func applyEdgeUpdate(m *model.Model, expected []float64, cfg *trainConfig) {
	inIdx := buildInIndex(m)

	for k := 0; k < m.NumStates(); k++ {
		lo, hi := m.OutOffset[k], m.OutOffset[k+1]
		if lo == hi {
			continue
		}

		norm := 0.0
		for idx := lo; idx < hi; idx++ {
			pc := 0.0
			if cfg.usePseudocount {
				pc = m.OutPC[idx]
			}
			norm += expected[idx] + cfg.transitionPseudocount + pc
		}
		if norm == 0 {
			continue
		}

		for idx := lo; idx < hi; idx++ {
			pc := 0.0
			if cfg.usePseudocount {
				pc = m.OutPC[idx]
			}
			newP := (expected[idx] + cfg.transitionPseudocount + pc) / norm
			oldP := math.Exp(m.OutLogP[idx])
			mixed := oldP*cfg.edgeInertia + newP*(1-cfg.edgeInertia)
			newLogP := safeLog(mixed)

			m.OutLogP[idx] = newLogP
			target := m.OutTarget[idx]
			if ii, ok := inIdx[[2]int{k, target}]; ok {
				m.InLogP[ii] = newLogP
			}
		}
	}
}

// sampleBucket accumulates weighted observations for one tied
// distribution class.
type sampleBucket struct {
	samples []float64
	weights []float64
}

// refitDistributions fits every tie class's shared distribution once
// from its accumulated bucket, skipping classes with zero total weight
// per spec's "left unchanged" semantics.
func refitDistributions(m *model.Model, buckets []sampleBucket, groups []int) {
	for _, l := range representatives(groups) {
		b := buckets[l]
		if len(b.samples) == 0 {
			continue
		}
		total := 0.0
		for _, w := range b.weights {
			total += w
		}
		if total == 0 {
			continue
		}
		dist := m.States[l].Distribution
		if !dist.Fittable() {
			continue
		}
		_ = dist.Fit(b.samples, b.weights)
	}
}
