// Package model implements the baker: it compiles a mutable core.Builder
// graph into an immutable, index-based sparse representation (the
// Model) consumed by the dp and train packages.
package model

import "errors"

// Sentinel errors produced by Bake, checked via errors.Is. They are
// always wrapped in a *StructuralError before being returned.
var (
	// ErrNoStartOrEnd indicates the builder lacks a reachable start or
	// end state after orphan pruning.
	ErrNoStartOrEnd = errors.New("model: no reachable start or end state")

	// ErrEmptyModel indicates the builder has no states left after
	// orphan pruning.
	ErrEmptyModel = errors.New("model: empty model after pruning")

	// ErrSilentCycle indicates the subgraph induced by silent states
	// contains a cycle. Returned only under WithSilentCyclePolicy(RejectCycles)
	// (the default); under WarnAndContinue the condition is logged
	// instead.
	ErrSilentCycle = errors.New("model: silent-state cycle detected")

	// ErrBadOptions indicates an invalid combination of BakeOption
	// values, surfaced by validating the bake configuration up front.
	ErrBadOptions = errors.New("model: invalid bake options")
)

// StructuralError wraps a structural bake failure (missing start/end,
// silent cycle, empty model) with the operation that produced it.
type StructuralError struct {
	Op  string
	Err error
}

func (e *StructuralError) Error() string { return "model: " + e.Op + ": " + e.Err.Error() }
func (e *StructuralError) Unwrap() error { return e.Err }

// DomainError wraps an out-of-domain value rejected during baking (a
// transition probability outside [0,1], a malformed distribution
// parameter surfaced lazily at bake time).
type DomainError struct {
	Op    string
	Field string
	Err   error
}

func (e *DomainError) Error() string {
	return "model: " + e.Op + ": field " + e.Field + ": " + e.Err.Error()
}
func (e *DomainError) Unwrap() error { return e.Err }
