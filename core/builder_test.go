package core_test

import (
	"testing"

	"github.com/katalvlaran/gohmm/core"
	"github.com/katalvlaran/gohmm/dist"
	"github.com/stretchr/testify/require"
)

func TestNewBuilder_HasStartAndEnd(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("m")

	startState, ok := b.State(b.Start)
	require.True(t, ok)
	require.True(t, startState.Silent())

	endState, ok := b.State(b.End)
	require.True(t, ok)
	require.True(t, endState.Silent())
	require.NotEqual(t, b.Start, b.End)
}

func TestAddState_EmittingVsSilent(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("m")

	emitting := b.AddState("e1", 1, dist.NewNormal(0, 1))
	silent := b.AddState("s1", 0, nil)

	es, ok := b.State(emitting)
	require.True(t, ok)
	require.False(t, es.Silent())

	ss, ok := b.State(silent)
	require.True(t, ok)
	require.True(t, ss.Silent())
}

func TestAddTransition_TableDriven(t *testing.T) {
	t.Parallel()
	scenarios := []struct {
		name    string
		p       float64
		wantErr bool
	}{
		{"valid middle", 0.5, false},
		{"valid zero", 0, false},
		{"valid one", 1, false},
		{"negative", -0.1, true},
		{"above one", 1.1, true},
	}

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			t.Parallel()
			b := core.NewBuilder("m")
			a := b.AddState("a", 1, dist.NewNormal(0, 1))
			c := b.AddState("c", 1, dist.NewNormal(1, 1))

			err := b.AddTransition(a, c, sc.p)
			if sc.wantErr {
				require.ErrorIs(t, err, core.ErrInvalidProbability)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAddTransition_UnknownState(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("m")
	a := b.AddState("a", 1, dist.NewNormal(0, 1))
	err := b.AddTransition(a, 9999, 0.5)
	require.ErrorIs(t, err, core.ErrStateNotFound)
}

func TestAddTransition_DefaultPseudocount(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("m")
	a := b.AddState("a", 1, dist.NewNormal(0, 1))
	c := b.AddState("c", 1, dist.NewNormal(1, 1))
	require.NoError(t, b.AddTransition(a, c, 0.7))

	found := false
	for _, tr := range b.Transitions() {
		if tr.From == a && tr.To == c {
			found = true
			require.Equal(t, 0.7, tr.Probability)
			require.Equal(t, 0.7, tr.Pseudocount)
		}
	}
	require.True(t, found)
}

func TestAddSubmodel_DisjointUnion(t *testing.T) {
	t.Parallel()
	base := core.NewBuilder("base")
	e1 := base.AddState("e1", 1, dist.NewNormal(0, 1))
	require.NoError(t, base.AddTransition(base.Start, e1, 1))

	sub := core.NewBuilder("sub")
	subEmit := sub.AddState("sub-e", 1, dist.NewNormal(5, 1))
	require.NoError(t, sub.AddTransition(sub.Start, subEmit, 1))
	require.NoError(t, sub.AddTransition(subEmit, sub.End, 1))

	remap, err := base.AddSubmodel(sub)
	require.NoError(t, err)

	// sub.Start/sub.End become ordinary silent states of base, not
	// connected to base.Start/base.End.
	remappedStart, ok := base.State(remap[sub.Start])
	require.True(t, ok)
	require.True(t, remappedStart.Silent())
	require.NotEqual(t, base.Start, remap[sub.Start])

	stats := base.Stats()
	require.Equal(t, 6, stats.NumStates) // base.Start, base.End, e1, sub.Start, sub.End, sub-e
	require.Equal(t, 3, stats.NumTransitions)
}

func TestConcatenate_WiresEndToEndWithProbabilityOne(t *testing.T) {
	t.Parallel()
	first := core.NewBuilder("first")
	firstEmit := first.AddState("f-e", 1, dist.NewNormal(0, 1))
	require.NoError(t, first.AddTransition(first.Start, firstEmit, 1))
	require.NoError(t, first.AddTransition(firstEmit, first.End, 1))
	originalEnd := first.End

	second := core.NewBuilder("second")
	secondEmit := second.AddState("s-e", 1, dist.NewNormal(5, 1))
	require.NoError(t, second.AddTransition(second.Start, secondEmit, 1))
	require.NoError(t, second.AddTransition(secondEmit, second.End, 1))
	secondStart := second.Start

	require.NoError(t, first.Concatenate(second))

	// first.End was reassigned away from originalEnd.
	require.NotEqual(t, originalEnd, first.End)

	var bridgeFound bool
	for _, tr := range first.Transitions() {
		if tr.From == originalEnd && tr.Probability == 1 {
			// the remapped secondStart state must be the target.
			target, ok := first.State(tr.To)
			require.True(t, ok)
			require.True(t, target.Silent())
			bridgeFound = true
		}
	}
	require.True(t, bridgeFound)
	_ = secondStart
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("m")
	e1 := b.AddState("e1", 1, dist.NewNormal(0, 1))
	require.NoError(t, b.AddTransition(b.Start, e1, 1))

	clone := b.Clone()
	_ = clone.AddState("extra", 1, dist.NewNormal(9, 1))

	require.Equal(t, 3, b.Stats().NumStates)
	require.Equal(t, 4, clone.Stats().NumStates)
}

func TestCloneEmpty_DropsTransitions(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("m")
	e1 := b.AddState("e1", 1, dist.NewNormal(0, 1))
	require.NoError(t, b.AddTransition(b.Start, e1, 1))

	clone := b.CloneEmpty()
	require.Equal(t, 0, clone.Stats().NumTransitions)
	require.Equal(t, b.Stats().NumStates, clone.Stats().NumStates)
}
