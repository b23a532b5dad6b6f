package model

import "github.com/katalvlaran/gohmm/dist"

// StateInfo is the immutable, post-bake description of one state.
type StateInfo struct {
	Name         string
	Weight       float64
	Distribution dist.Distribution // nil for silent states
}

// Silent reports whether this state carries no emission distribution.
func (s *StateInfo) Silent() bool { return s.Distribution == nil }

// Model is the immutable, index-based compiled representation produced
// by Bake. States [0, SilentStart) are emitting, in any stable order;
// states [SilentStart, len(States)) are silent, in topological order
// (an edge between two silent states always goes from a lower index to
// a higher one).
type Model struct {
	Name string

	States      []StateInfo
	SilentStart int
	StartIndex  int
	EndIndex    int
	Finite      bool

	// Out-edges, CSR: out_target[OutOffset[k]:OutOffset[k+1]] are the
	// successors of state k, with matching OutLogP/OutPC entries.
	OutOffset []int
	OutTarget []int
	OutLogP   []float64
	OutPC     []float64

	// In-edges, CSR, mirror of the above.
	InOffset []int
	InSource []int
	InLogP   []float64
	InPC     []float64

	// TieOffset/TieMember: tie_member[TieOffset[k]:TieOffset[k+1]] lists
	// the OTHER emitting states sharing k's Distribution by identity.
	TieOffset []int
	TieMember []int

	// StateLogWeight[i] = log(States[i].Weight), for i < SilentStart.
	// Added into Viterbi scores only.
	StateLogWeight []float64
}

// NumStates returns the total number of states (emitting + silent).
func (m *Model) NumStates() int { return len(m.States) }

// OutDegree returns the number of outgoing edges of state k.
func (m *Model) OutDegree(k int) int { return m.OutOffset[k+1] - m.OutOffset[k] }

// InDegree returns the number of incoming edges of state k.
func (m *Model) InDegree(k int) int { return m.InOffset[k+1] - m.InOffset[k] }

// OutEdge returns the target, log-probability and pseudocount of the
// k-th outgoing edge's j-th entry (0 <= j < OutDegree(k)).
func (m *Model) OutEdge(k, j int) (target int, logP, pc float64) {
	idx := m.OutOffset[k] + j
	return m.OutTarget[idx], m.OutLogP[idx], m.OutPC[idx]
}

// InEdge returns the source, log-probability and pseudocount of state
// k's j-th incoming entry (0 <= j < InDegree(k)).
func (m *Model) InEdge(k, j int) (source int, logP, pc float64) {
	idx := m.InOffset[k] + j
	return m.InSource[idx], m.InLogP[idx], m.InPC[idx]
}

// TieClass returns the other emitting states tied to k (excluding k
// itself). Empty for silent states and untied emitting states.
func (m *Model) TieClass(k int) []int {
	if k >= m.SilentStart {
		return nil
	}
	return m.TieMember[m.TieOffset[k]:m.TieOffset[k+1]]
}

// ModelStats is a diagnostic snapshot of a compiled Model's shape.
type ModelStats struct {
	NumStates      int
	NumEmitting    int
	NumSilent      int
	NumTransitions int
	NumTieClasses  int
	Finite         bool
}

// Stats computes a ModelStats snapshot.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		NumStates:      len(m.States),
		NumEmitting:    m.SilentStart,
		NumSilent:      len(m.States) - m.SilentStart,
		NumTransitions: len(m.OutTarget),
		Finite:         m.Finite,
	}
	seen := make(map[int]bool)
	for k := 0; k < m.SilentStart; k++ {
		if seen[k] {
			continue
		}
		seen[k] = true
		stats.NumTieClasses++
		for _, j := range m.TieClass(k) {
			seen[j] = true
		}
	}
	return stats
}
