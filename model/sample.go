package model

import (
	"math"
	"math/rand"
)

// Sample draws one realization of the model: a symbol sequence and,
// optionally, the path of state indices visited (including silent
// states). maxLength caps the number of emitted symbols; 0 means
// unbounded (valid only for a finite model, which will eventually reach
// EndIndex on its own).
//
// Sampling protocol: draw u in [0,1), walk the current state's
// outgoing edges in storage order accumulating probability, transition
// when the cumulative mass exceeds u. While more symbols are still
// wanted, the edge into EndIndex is excluded from the candidate set
// unless it is the state's only outgoing edge, so a finite model
// doesn't terminate before reaching the requested length.
func (m *Model) Sample(rng *rand.Rand, maxLength int, withPath bool) (symbols []float64, path []int) {
	const hardStepCap = 1_000_000 // guards against a pathological infinite model that never reaches EndIndex

	current := m.StartIndex
	if withPath {
		path = append(path, current)
	}

	for step := 0; step < hardStepCap; step++ {
		if current == m.EndIndex {
			return symbols, path
		}

		if maxLength > 0 && len(symbols) >= maxLength {
			return symbols, path
		}

		next := m.pickNext(rng, current, maxLength > 0)
		current = next

		if withPath {
			path = append(path, current)
		}
		if !m.States[current].Silent() {
			symbols = append(symbols, m.States[current].Distribution.Sample(rng))
		}
	}
	return symbols, path
}

// pickNext walks k's outgoing edges in storage order, excluding the
// edge to EndIndex unless it is the sole outgoing edge or avoidEnd is
// false.
func (m *Model) pickNext(rng *rand.Rand, k int, avoidEnd bool) int {
	deg := m.OutDegree(k)
	if deg == 0 {
		return m.EndIndex // orphaned dead end: nothing survives bake's pruning, but stay defensive
	}

	candidates := make([]int, deg)
	for j := 0; j < deg; j++ {
		candidates[j] = j
	}
	if avoidEnd && deg > 1 {
		filtered := candidates[:0]
		for _, j := range candidates {
			target, _, _ := m.OutEdge(k, j)
			if target == m.EndIndex {
				continue
			}
			filtered = append(filtered, j)
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	var total float64
	for _, j := range candidates {
		_, logP, _ := m.OutEdge(k, j)
		total += math.Exp(logP)
	}
	if total <= 0 {
		target, _, _ := m.OutEdge(k, candidates[0])
		return target
	}

	u := rng.Float64() * total
	var cum float64
	for _, j := range candidates {
		target, logP, _ := m.OutEdge(k, j)
		cum += math.Exp(logP)
		if cum > u {
			return target
		}
	}
	target, _, _ := m.OutEdge(k, candidates[len(candidates)-1])
	return target
}
