package core

import "github.com/katalvlaran/gohmm/dist"

// State is a node of a Builder graph: a name, a non-negative initial
// weight, and an optional emission Distribution. Distribution == nil
// marks a silent state (no emission).
type State struct {
	ID           int
	Name         string
	Weight       float64
	Distribution dist.Distribution
}

// Silent reports whether the state carries no emission distribution.
func (s *State) Silent() bool { return s.Distribution == nil }

// Transition is a directed, weighted edge between two state IDs.
// Pseudocount is added to this edge's expected count in the trainers'
// edge update when the trainer's WithUsePseudocount option is on.
type Transition struct {
	From, To    int
	Probability float64
	Pseudocount float64
}
