package train_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/gohmm/core"
	"github.com/katalvlaran/gohmm/dist"
	"github.com/katalvlaran/gohmm/model"
	"github.com/katalvlaran/gohmm/train"
	"github.com/stretchr/testify/require"
)

// twoStateModel builds start -e1<->e1-> e2 -> end, a minimal finite
// two-emitting-state model used across the trainer tests.
func twoStateModel(t *testing.T) *model.Model {
	t.Helper()
	b := core.NewBuilder("two-state")
	e1 := b.AddState("e1", 1, dist.NewNormal(-0.5, 1))
	e2 := b.AddState("e2", 1, dist.NewNormal(0.8, 1))
	require.NoError(t, b.AddTransition(b.Start, e1, 1))
	require.NoError(t, b.AddTransition(e1, e2, 0.5))
	require.NoError(t, b.AddTransition(e1, e1, 0.5))
	require.NoError(t, b.AddTransition(e2, b.End, 1))
	m, err := model.Bake(b)
	require.NoError(t, err)
	return m
}

func TestBaumWelch_ReturnsTrainedCopyAndIterationLog(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	sequences := [][]float64{
		{-0.5, 0.2, 0.2},
		{-0.5, 0.2, 1.2, 0.8},
	}

	result, err := train.BaumWelch(m, sequences,
		train.WithTransitionPseudocount(1),
		train.WithMinIterations(2),
		train.WithMaxIterations(10),
	)
	require.NoError(t, err)
	require.NotNil(t, result.Model)
	require.NotSame(t, m, result.Model)
	require.NotEmpty(t, result.Iterations)
}

func TestBaumWelch_DoesNotMutateInputModel(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	before := append([]float64(nil), m.OutLogP...)

	_, err := train.BaumWelch(m, [][]float64{{-0.5, 0.2, 0.2}})
	require.NoError(t, err)

	require.Equal(t, before, m.OutLogP)
}

func TestBaumWelch_RejectsEmptySequenceSet(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	_, err := train.BaumWelch(m, nil)
	require.ErrorIs(t, err, train.ErrNoSequences)
}

func TestBaumWelch_RejectsNilModel(t *testing.T) {
	t.Parallel()
	_, err := train.BaumWelch(nil, [][]float64{{0}})
	require.ErrorIs(t, err, train.ErrNilModel)
}

func TestBaumWelch_ParallelAccumulationMatchesSerial(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	sequences := [][]float64{
		{-0.5, 0.2, 0.2},
		{-0.5, 0.2, 1.2, 0.8},
		{-0.3, 0.1, 0.9},
	}

	serial, err := train.BaumWelch(m, sequences, train.WithWorkers(1), train.WithMaxIterations(3))
	require.NoError(t, err)
	parallel, err := train.BaumWelch(m, sequences, train.WithWorkers(4), train.WithMaxIterations(3))
	require.NoError(t, err)

	for i := range serial.Model.OutLogP {
		require.InDelta(t, serial.Model.OutLogP[i], parallel.Model.OutLogP[i], 1e-9)
	}
}

func TestLabelled_IsIdempotentAcrossReruns(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	sequences := [][]float64{{-0.5, 0.2, 0.2}}
	paths := [][]int{{0, 0, 1}} // e1, e1, e2 (indices depend on bake order but both emitting states here)

	r1, err := train.Labelled(m, sequences, paths)
	require.NoError(t, err)
	r2, err := train.Labelled(m, sequences, paths)
	require.NoError(t, err)

	require.Equal(t, r1.Model.OutLogP, r2.Model.OutLogP)
}

func TestLabelled_RejectsMismatchedLengths(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	_, err := train.Labelled(m, [][]float64{{0, 1}}, [][]int{{0}})
	require.ErrorIs(t, err, train.ErrLengthMismatch)
}

func TestViterbiTrain_RunsEndToEnd(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	sequences := [][]float64{{-0.5, 0.2, 0.2}, {-0.5, 0.2, 1.2, 0.8}}

	result, err := train.ViterbiTrain(m, sequences)
	require.NoError(t, err)
	require.NotNil(t, result.Model)

	for _, v := range result.Model.OutLogP {
		require.False(t, math.IsNaN(v))
	}
}

func TestOptions_ValidateRejectsOutOfRangeInertia(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	_, err := train.BaumWelch(m, [][]float64{{0}}, train.WithEdgeInertia(1.5))
	require.ErrorIs(t, err, train.ErrBadOptions)
}
