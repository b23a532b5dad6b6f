package model

import "github.com/katalvlaran/gohmm/internal/obslog"

// MergePolicy selects how aggressively Bake collapses degenerate silent
// transitions in step 3 of the pipeline.
type MergePolicy int

const (
	// MergeNone disables the silent-state merge step entirely.
	MergeNone MergePolicy = iota
	// MergePartial merges a->b only when both a and b are silent
	// (the default).
	MergePartial
	// MergeAll merges a->b when a is silent, regardless of b.
	MergeAll
)

// SilentCyclePolicy selects Bake's behavior when the subgraph induced by
// silent states contains a cycle.
type SilentCyclePolicy int

const (
	// RejectCycles fails the bake with ErrSilentCycle (the default,
	// recommended choice per the design notes' resolved open question).
	RejectCycles SilentCyclePolicy = iota
	// WarnAndContinue logs the cycle and proceeds with an arbitrary
	// (non-topological) placement of the offending states.
	WarnAndContinue
)

// bakeConfig accumulates BakeOption values before a Bake call.
type bakeConfig struct {
	merge       MergePolicy
	cyclePolicy SilentCyclePolicy
	logger      obslog.Logger
}

func defaultBakeConfig() *bakeConfig {
	return &bakeConfig{
		merge:       MergePartial,
		cyclePolicy: RejectCycles,
		logger:      obslog.NoOp,
	}
}

// BakeOption configures Bake. WithLogger panics on a nil logger; policy
// values are not range-checked, here or in Validate.
type BakeOption func(*bakeConfig)

// WithMergePolicy sets the silent-state merge aggressiveness.
func WithMergePolicy(p MergePolicy) BakeOption {
	return func(c *bakeConfig) { c.merge = p }
}

// WithSilentCyclePolicy sets how Bake reacts to a silent-state cycle.
func WithSilentCyclePolicy(p SilentCyclePolicy) BakeOption {
	return func(c *bakeConfig) { c.cyclePolicy = p }
}

// WithLogger attaches a structured logger used for bake diagnostics
// (silent-cycle warnings). Defaults to a no-op logger.
func WithLogger(l obslog.Logger) BakeOption {
	if l == nil {
		panic("model: WithLogger(nil)")
	}
	return func(c *bakeConfig) { c.logger = l }
}

// Validate reports ErrBadOptions if the configuration is internally
// inconsistent. Currently the option space is fully orthogonal, so this
// always succeeds; it exists so callers that build bakeConfig-adjacent
// option sets elsewhere (tests, the CLI) have a stable hook to call.
func (c *bakeConfig) Validate() error {
	return nil
}
