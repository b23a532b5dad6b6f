package train

import (
	"github.com/katalvlaran/gohmm/model"
)

// Labelled trains m from exact (sequence, path) pairs: transitions are
// counted exactly along each path (with an implicit start->path[0] and
// path[-1]->end), and emissions are counted per state, propagated into
// tied classes. Re-running on the same pairs yields identical arrays.
func Labelled(m *model.Model, sequences [][]float64, paths [][]int, opts ...TrainOption) (*Result, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if len(sequences) == 0 {
		return nil, ErrNoSequences
	}
	if len(sequences) != len(paths) {
		return nil, ErrLengthMismatch
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	trained := cloneForTraining(m)
	groups := fitGroups(trained)
	assignDeterministicRNGs(trained, groups, cfg.seed)

	expected := make([]float64, len(trained.OutTarget))
	buckets := make([]sampleBucket, trained.SilentStart)
	edgeIdx := buildOutIndex(trained)

	for i, seq := range sequences {
		path := paths[i]
		if len(path) != len(seq) {
			return nil, ErrLengthMismatch
		}
		countPathTransitions(trained, edgeIdx, path, expected)
		for t, state := range path {
			if state >= trained.SilentStart {
				continue
			}
			rep := groups[state]
			buckets[rep].samples = append(buckets[rep].samples, seq[t])
			buckets[rep].weights = append(buckets[rep].weights, 1.0)
		}
	}

	applyEdgeUpdate(trained, expected, cfg)
	refitDistributions(trained, buckets, groups)

	return &Result{Model: trained, Iterations: nil, TotalImprovement: 0}, nil
}

// buildOutIndex maps (source, target) pairs to their flat out-edge
// index, for exact transition counting along a labelled path.
func buildOutIndex(m *model.Model) map[[2]int]int {
	idx := make(map[[2]int]int, len(m.OutTarget))
	for k := 0; k < m.NumStates(); k++ {
		for j := 0; j < m.OutDegree(k); j++ {
			idx[[2]int{k, m.OutTarget[m.OutOffset[k]+j]}] = m.OutOffset[k] + j
		}
	}
	return idx
}

// countPathTransitions adds one count to each edge used along path,
// including the implicit start->path[0] and path[-1]->end transitions.
func countPathTransitions(m *model.Model, edgeIdx map[[2]int]int, path []int, expected []float64) {
	if len(path) == 0 {
		return
	}
	prev := m.StartIndex
	for _, state := range path {
		if idx, ok := edgeIdx[[2]int{prev, state}]; ok {
			expected[idx]++
		}
		prev = state
	}
	if idx, ok := edgeIdx[[2]int{prev, m.EndIndex}]; ok {
		expected[idx]++
	}
}
