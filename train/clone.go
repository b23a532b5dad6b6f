package train

import (
	"github.com/katalvlaran/gohmm/dist"
	"github.com/katalvlaran/gohmm/model"
	"github.com/samber/lo"
)

// cloneForTraining returns a shallow copy of m whose edge-probability and
// pseudocount arrays and emission distributions are independently owned,
// so a trainer can mutate them in place across iterations without
// aliasing the caller's model. Each distinct Distribution is cloned once,
// so states tied in m stay tied in the copy. Topology (OutTarget/InSource/
// Tie tables) is shared.
func cloneForTraining(m *model.Model) *model.Model {
	clone := *m
	clone.OutLogP = append([]float64(nil), m.OutLogP...)
	clone.OutPC = append([]float64(nil), m.OutPC...)
	clone.InLogP = append([]float64(nil), m.InLogP...)
	clone.InPC = append([]float64(nil), m.InPC...)

	clone.States = append([]model.StateInfo(nil), m.States...)
	copies := make(map[dist.Distribution]dist.Distribution)
	for i := range clone.States {
		d := clone.States[i].Distribution
		if d == nil {
			continue
		}
		if _, ok := copies[d]; !ok {
			copies[d] = d.CloneUntied()
		}
		clone.States[i].Distribution = copies[d]
	}
	return &clone
}

// buildInIndex maps (source, target) state-index pairs to their flat
// in-edge index, so an out-edge update can mirror into the matching
// in-edge entry without a linear scan.
func buildInIndex(m *model.Model) map[[2]int]int {
	idx := make(map[[2]int]int, len(m.InSource))
	for k := 0; k < m.NumStates(); k++ {
		for j := 0; j < m.InDegree(k); j++ {
			src := m.InSource[m.InOffset[k]+j]
			idx[[2]int{src, k}] = m.InOffset[k] + j
		}
	}
	return idx
}

// fitGroups returns, for every emitting state, the representative state
// of its tie class: the smallest index among itself and everything
// model.Model.TieClass reports for it. Samples are accumulated once per
// representative so a tied class's pooled weight isn't double-counted.
func fitGroups(m *model.Model) []int {
	return lo.Map(lo.Range(m.SilentStart), func(l int, _ int) int {
		rep := l
		for _, other := range m.TieClass(l) {
			if other < rep {
				rep = other
			}
		}
		return rep
	})
}

// representatives returns the subset of [0, SilentStart) that are their
// own tie-class representative, i.e. the states refitDistributions
// actually calls Fit on.
func representatives(groups []int) []int {
	return lo.Filter(lo.Range(len(groups)), func(l int, _ int) bool {
		return groups[l] == l
	})
}
