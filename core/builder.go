package core

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/gohmm/dist"
)

// Builder is a mutable multi-digraph of States and Transitions, built up
// before a single-threaded bake. Every new Builder carries two built-in
// silent states, Start and End; states and transitions are owned by the
// Builder until Bake ingests them into the compiled model.
type Builder struct {
	Name string

	muState sync.RWMutex // guards states, nextStateID
	muTrans sync.RWMutex // guards transitions

	nextStateID int64
	states      map[int]*State

	transitions []*Transition

	Start int
	End   int
}

// NewBuilder creates an empty Builder with the given name and its
// built-in Start/End silent states already registered.
func NewBuilder(name string) *Builder {
	b := &Builder{
		Name:   name,
		states: make(map[int]*State),
	}
	b.Start = b.AddState("start", 1, nil)
	b.End = b.AddState("end", 0, nil)
	return b
}

// AddState registers a new state and returns its ID. weight must be
// >= 0; d == nil marks the state silent.
func (b *Builder) AddState(name string, weight float64, d dist.Distribution) int {
	id := int(atomic.AddInt64(&b.nextStateID, 1)) - 1

	b.muState.Lock()
	defer b.muState.Unlock()
	b.states[id] = &State{ID: id, Name: name, Weight: weight, Distribution: d}
	return id
}

// AddTransition adds a directed edge from a to b with probability p. If
// no pseudocount is supplied, it defaults to p. Returns ErrStateNotFound
// if either endpoint is unknown, ErrInvalidProbability if p is outside
// [0, 1].
func (bld *Builder) AddTransition(a, to int, p float64, pc ...float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("core: AddTransition(%d,%d,%v): %w", a, to, p, ErrInvalidProbability)
	}
	bld.muState.RLock()
	_, okA := bld.states[a]
	_, okB := bld.states[to]
	bld.muState.RUnlock()
	if !okA || !okB {
		return fmt.Errorf("core: AddTransition(%d,%d): %w", a, to, ErrStateNotFound)
	}

	pseudo := p
	if len(pc) > 0 {
		pseudo = pc[0]
	}

	bld.muTrans.Lock()
	defer bld.muTrans.Unlock()
	bld.transitions = append(bld.transitions, &Transition{From: a, To: to, Probability: p, Pseudocount: pseudo})
	return nil
}

// AddSubmodel merges other into b as a disjoint union: every state and
// transition of other is copied in with freshly allocated IDs, and
// other's own Start/End become ordinary silent states of the combined
// graph (no edge connects them to b's Start/End). Returns the mapping
// from each of other's state IDs to the ID it received in b; the new IDs
// are not a contiguous offset of the old ones.
func (b *Builder) AddSubmodel(other *Builder) (map[int]int, error) {
	if other == nil {
		return nil, ErrNilBuilder
	}

	other.muState.RLock()
	otherStates := make([]*State, 0, len(other.states))
	for _, s := range other.states {
		otherStates = append(otherStates, s)
	}
	other.muState.RUnlock()

	other.muTrans.RLock()
	otherTrans := append([]*Transition(nil), other.transitions...)
	other.muTrans.RUnlock()

	remap := make(map[int]int, len(otherStates))
	for _, s := range otherStates {
		remap[s.ID] = b.AddState(s.Name, s.Weight, s.Distribution)
	}
	for _, t := range otherTrans {
		if err := b.AddTransition(remap[t.From], remap[t.To], t.Probability, t.Pseudocount); err != nil {
			return nil, err
		}
	}
	return remap, nil
}

// Concatenate appends other after b: AddSubmodel(other), then wires
// b.End -> remapped(other.Start) at probability 1, and reassigns b.End
// to remapped(other.End). other's own Start becomes an ordinary silent
// state reachable only through that new edge.
func (b *Builder) Concatenate(other *Builder) error {
	if other == nil {
		return ErrNilBuilder
	}
	remap, err := b.AddSubmodel(other)
	if err != nil {
		return err
	}
	newStart := remap[other.Start]
	newEnd := remap[other.End]
	if err := b.AddTransition(b.End, newStart, 1, 1); err != nil {
		return err
	}
	b.End = newEnd
	return nil
}

// State returns the state with the given ID, or (nil, false) if unknown.
func (b *Builder) State(id int) (*State, bool) {
	b.muState.RLock()
	defer b.muState.RUnlock()
	s, ok := b.states[id]
	return s, ok
}

// States returns a snapshot slice of all states, ordered by ID.
func (b *Builder) States() []*State {
	b.muState.RLock()
	defer b.muState.RUnlock()
	out := make([]*State, 0, len(b.states))
	for i := 0; i < int(b.nextStateID); i++ {
		if s, ok := b.states[i]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Transitions returns a snapshot slice of all transitions in insertion
// order.
func (b *Builder) Transitions() []*Transition {
	b.muTrans.RLock()
	defer b.muTrans.RUnlock()
	return append([]*Transition(nil), b.transitions...)
}
