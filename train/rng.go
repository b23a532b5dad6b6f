package train

import (
	"github.com/katalvlaran/gohmm/dist"
	"github.com/katalvlaran/gohmm/internal/logspace"
	"github.com/katalvlaran/gohmm/model"
)

// assignDeterministicRNGs gives every Gamma-distributed tie-class
// representative its own RNG stream derived from cfg.seed and the
// state's index, so Fit's reseed-on-divergence step is reproducible
// regardless of how many goroutines the accumulation round used (stream
// assignment depends only on state index, never on worker scheduling).
func assignDeterministicRNGs(m *model.Model, groups []int, seed int64) {
	base := logspace.RNGFromSeed(seed)
	for _, l := range representatives(groups) {
		if g, ok := m.States[l].Distribution.(*dist.Gamma); ok {
			g.Rng = logspace.DeriveRNG(base, uint64(l))
		}
	}
}
