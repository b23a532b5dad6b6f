package dp_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/gohmm/core"
	"github.com/katalvlaran/gohmm/dist"
	"github.com/katalvlaran/gohmm/dp"
	"github.com/katalvlaran/gohmm/model"
	"github.com/stretchr/testify/require"
)

// twoStateModel builds start -e1<->e1-> e2 -> end, a minimal finite
// two-emitting-state model, and bakes it.
func twoStateModel(t *testing.T) *model.Model {
	t.Helper()
	b := core.NewBuilder("two-state")
	e1 := b.AddState("e1", 1, dist.NewNormal(0, 1))
	e2 := b.AddState("e2", 1, dist.NewNormal(5, 1))
	require.NoError(t, b.AddTransition(b.Start, e1, 1))
	require.NoError(t, b.AddTransition(e1, e2, 0.5))
	require.NoError(t, b.AddTransition(e1, e1, 0.5))
	require.NoError(t, b.AddTransition(e2, b.End, 1))
	m, err := model.Bake(b)
	require.NoError(t, err)
	return m
}

// silentModel builds start -> s1(silent) -> e1 -> end, plus a direct
// start -> e1 edge, exercising the silent-state relaxation paths.
func silentModel(t *testing.T) *model.Model {
	t.Helper()
	b := core.NewBuilder("with-silent")
	s1 := b.AddState("s1", 1, nil)
	e1 := b.AddState("e1", 1, dist.NewNormal(0, 1))
	require.NoError(t, b.AddTransition(b.Start, s1, 0.5))
	require.NoError(t, b.AddTransition(b.Start, e1, 0.5))
	require.NoError(t, b.AddTransition(s1, e1, 1))
	require.NoError(t, b.AddTransition(e1, b.End, 1))
	m, err := model.Bake(b)
	require.NoError(t, err)
	return m
}

// infiniteModel builds start -> e1 (self-looping), with no edge into
// end, so m.Finite is false and every emitting state is a valid place
// to stop.
func infiniteModel(t *testing.T) *model.Model {
	t.Helper()
	b := core.NewBuilder("infinite")
	e1 := b.AddState("e1", 1, dist.NewNormal(0, 1))
	require.NoError(t, b.AddTransition(b.Start, e1, 1))
	require.NoError(t, b.AddTransition(e1, e1, 1))
	m, err := model.Bake(b)
	require.NoError(t, err)
	require.False(t, m.Finite)
	return m
}

func TestForwardBackward_InfiniteModelOccupancyRowsSumToOne(t *testing.T) {
	t.Parallel()
	m := infiniteModel(t)
	seq := []float64{0.1, -0.2, 0.3}

	fb, err := dp.ForwardBackward(context.Background(), m, seq)
	require.NoError(t, err)

	for t2, row := range fb.W {
		sum := 0.0
		for _, logW := range row {
			if !math.IsInf(logW, -1) {
				sum += math.Exp(logW)
			}
		}
		require.InDeltaf(t, 1.0, sum, 1e-9, "checkpoint %d", t2)
	}
}

func TestForwardBackward_InfiniteModelAgreesWithForward(t *testing.T) {
	t.Parallel()
	m := infiniteModel(t)
	seq := []float64{0.1, -0.2, 0.3, 0.05}

	logP, err := dp.LogProbability(context.Background(), m, seq)
	require.NoError(t, err)

	fb, err := dp.ForwardBackward(context.Background(), m, seq)
	require.NoError(t, err)
	require.InDelta(t, logP, fb.LogProb, 1e-9)

	// Backward's boundary row credits every state uniformly at the final
	// checkpoint, so b[0][start] must also recover the same total mass.
	br, err := dp.Backward(context.Background(), m, seq)
	require.NoError(t, err)
	require.InDelta(t, logP, br.B[0][m.StartIndex], 1e-9)
}

func TestForwardBackward_AgreeOnSequenceLogProbability(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	seq := []float64{0.1, 0.2, 4.9, 5.1}

	logP, err := dp.LogProbability(context.Background(), m, seq)
	require.NoError(t, err)

	br, err := dp.Backward(context.Background(), m, seq)
	require.NoError(t, err)

	// b[0][start] must recover the same sequence log-probability, since
	// it sums over every path from the start through the whole sequence.
	require.InDelta(t, logP, br.B[0][m.StartIndex], 1e-9)
}

func TestForward_SilentRelaxationAgreesWithDirectPath(t *testing.T) {
	t.Parallel()
	m := silentModel(t)
	seq := []float64{0.0}

	logP, err := dp.LogProbability(context.Background(), m, seq)
	require.NoError(t, err)
	require.False(t, math.IsInf(logP, -1))

	// start->s1->e1 and start->e1 together carry all of start's mass into
	// e1, so the total equals e1's emission log-density at 0.
	require.InDelta(t, -0.5*math.Log(2*math.Pi), logP, 1e-12)
}

func TestForwardBackward_OccupancyRowsSumToOne(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	seq := []float64{0.1, 4.8, 0.3, 5.2}

	fb, err := dp.ForwardBackward(context.Background(), m, seq)
	require.NoError(t, err)

	for t2, row := range fb.W {
		sum := 0.0
		for _, logW := range row {
			if !math.IsInf(logW, -1) {
				sum += math.Exp(logW)
			}
		}
		require.InDeltaf(t, 1.0, sum, 1e-9, "checkpoint %d", t2)
	}
}

func TestForwardBackward_TieWPoolsTiedStates(t *testing.T) {
	t.Parallel()
	b := core.NewBuilder("tied")
	shared := dist.NewNormal(0, 1)
	e1 := b.AddState("e1", 1, shared)
	e2 := b.AddState("e2", 1, shared)
	require.NoError(t, b.AddTransition(b.Start, e1, 0.5))
	require.NoError(t, b.AddTransition(b.Start, e2, 0.5))
	require.NoError(t, b.AddTransition(e1, b.End, 1))
	require.NoError(t, b.AddTransition(e2, b.End, 1))
	m, err := model.Bake(b)
	require.NoError(t, err)

	seq := []float64{0.1}
	fb, err := dp.ForwardBackward(context.Background(), m, seq)
	require.NoError(t, err)

	for l := 0; l < m.SilentStart; l++ {
		expected := math.Exp(fb.W[1][l])
		for _, other := range m.TieClass(l) {
			expected += math.Exp(fb.W[1][other])
		}
		require.InDelta(t, expected, math.Exp(fb.TieW[1][l]), 1e-9)
	}
}

func TestViterbi_LogProbabilityNeverExceedsForward(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	seq := []float64{0.2, -0.1, 5.3, 4.7, 0.0}

	logP, err := dp.LogProbability(context.Background(), m, seq)
	require.NoError(t, err)

	vp, path, err := dp.Viterbi(context.Background(), m, seq)
	require.NoError(t, err)
	require.NotNil(t, path)
	require.LessOrEqual(t, vp, logP+1e-9)

	require.Equal(t, m.StartIndex, path[0].State)
	require.Equal(t, m.EndIndex, path[len(path)-1].State)
}

func TestViterbi_PathVisitsOneStatePerObservation(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	seq := []float64{0.1, 0.2, 4.9}

	_, path, err := dp.Viterbi(context.Background(), m, seq)
	require.NoError(t, err)

	count := 0
	for _, step := range path {
		if step.State < m.SilentStart {
			count++
		}
	}
	require.Equal(t, len(seq), count)
}

func TestMaximumAPosteriori_ReturnsStartAndEndBoundedPath(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	seq := []float64{0.1, 0.2, 4.9, 5.1}

	path, fb, err := dp.MaximumAPosteriori(context.Background(), m, seq)
	require.NoError(t, err)
	require.NotNil(t, fb)
	require.Equal(t, m.StartIndex, path[0])
	require.Equal(t, m.EndIndex, path[len(path)-1])
	require.Len(t, path, len(seq)+2)

	for _, state := range path[1 : len(path)-1] {
		require.Less(t, state, m.SilentStart)
	}
}

func TestEdgeExpectations_NeverNaNOrPosInf(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	seq := []float64{0.1, 4.8, 0.2}

	fb, err := dp.ForwardBackward(context.Background(), m, seq)
	require.NoError(t, err)

	// Every edge expectation must be a valid log-probability-weighted
	// count: finite or -Inf, never NaN or +Inf.
	for _, v := range fb.E {
		require.False(t, math.IsNaN(v))
		require.False(t, math.IsInf(v, 1))
	}
}

func TestForward_NilModelReturnsError(t *testing.T) {
	t.Parallel()
	_, err := dp.Forward(context.Background(), nil, []float64{0})
	require.ErrorIs(t, err, dp.ErrNilModel)
}

func TestForward_RespectsContextCancellation(t *testing.T) {
	t.Parallel()
	m := twoStateModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dp.Forward(ctx, m, []float64{0.1, 0.2, 0.3})
	require.ErrorIs(t, err, context.Canceled)
}
