// Package core defines the mutable graph types — State, Transition and
// Builder — used to assemble a model before it is baked into its
// immutable, index-based form by the model package.
//
// Builder embeds two sync.RWMutex-guarded sections (states, transitions)
// so it can be populated from multiple goroutines before a single bake,
// mirroring the split-lock discipline of a conventional adjacency-list
// graph type.
package core

import "errors"

// Sentinel errors for Builder operations, checked via errors.Is at call
// sites.
var (
	// ErrStateNotFound indicates an operation referenced a state ID that
	// does not exist in the Builder.
	ErrStateNotFound = errors.New("core: state not found")

	// ErrInvalidProbability indicates a transition probability outside
	// [0, 1].
	ErrInvalidProbability = errors.New("core: transition probability out of range")

	// ErrNegativeWeight indicates a state weight below zero.
	ErrNegativeWeight = errors.New("core: state weight must be >= 0")

	// ErrNilBuilder indicates a nil *Builder was passed where a populated
	// one was required (e.g. AddSubmodel, Concatenate).
	ErrNilBuilder = errors.New("core: nil builder argument")
)
