package dist_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/gohmm/dist"
	"github.com/stretchr/testify/require"
)

func TestUniform_LogProbability(t *testing.T) {
	t.Parallel()
	u := dist.NewUniform(-1, 1)
	require.InDelta(t, -math.Log(2), u.LogProbability(0), 1e-12)
	require.True(t, math.IsInf(u.LogProbability(2), -1))

	degenerate := dist.NewUniform(5, 5)
	require.Equal(t, 0.0, degenerate.LogProbability(5))
	require.True(t, math.IsInf(degenerate.LogProbability(5.1), -1))
}

func TestUniform_Fit(t *testing.T) {
	t.Parallel()
	u := dist.NewUniform(0, 1)
	require.NoError(t, u.Fit([]float64{-2, 3, 0.5}, []float64{1, 1, 1}))
	require.Equal(t, -2.0, u.A)
	require.Equal(t, 3.0, u.B)

	// Zero-weight samples are excluded; empty effective set is a no-op.
	before := *u
	require.NoError(t, u.Fit([]float64{10, 20}, []float64{0, 0}))
	require.Equal(t, before, *u)
}

func TestNormal_LogProbability(t *testing.T) {
	t.Parallel()
	n := dist.NewNormal(0, 1)
	expected := -0.5*math.Log(2*math.Pi) - 0*0
	require.InDelta(t, expected, n.LogProbability(0), 1e-9)

	point := dist.NewNormalWithFloor(2, 0, 0)
	require.Equal(t, 0.0, point.LogProbability(2))
	require.True(t, math.IsInf(point.LogProbability(2.1), -1))
}

func TestNormal_Fit_RequiresTwoPositiveSamplesForSigma(t *testing.T) {
	t.Parallel()
	n := dist.NewNormal(0, 5)
	require.NoError(t, n.Fit([]float64{3}, []float64{1}))
	require.Equal(t, 3.0, n.Mu)
	require.Equal(t, 5.0, n.Sigma) // unchanged: only one positive-weight sample

	n2 := dist.NewNormal(0, 1)
	require.NoError(t, n2.Fit([]float64{1, 3}, []float64{1, 1}))
	require.InDelta(t, 2.0, n2.Mu, 1e-9)
	require.InDelta(t, 1.0, n2.Sigma, 1e-9)
}

func TestExponential_Fit(t *testing.T) {
	t.Parallel()
	e := dist.NewExponential(1)
	require.NoError(t, e.Fit([]float64{1, 2, 3}, nil))
	require.InDelta(t, 1.0/2.0, e.Lambda, 1e-9)
}

func TestDiscrete_LogProbability(t *testing.T) {
	t.Parallel()
	d := dist.NewDiscrete(map[string]float64{"a": 0.5, "b": 0.5})
	require.InDelta(t, math.Log(0.5), d.LogProbabilitySymbol("a"), 1e-12)
	require.True(t, math.IsInf(d.LogProbabilitySymbol("z"), -1))
}

func TestMixture_LogProbabilityMatchesManualLSE(t *testing.T) {
	t.Parallel()
	a := dist.NewNormal(0, 1)
	b := dist.NewNormal(5, 1)
	m := dist.NewMixture([]dist.Distribution{a, b}, []float64{0.5, 0.5})

	x := 2.5
	want := math.Log(0.5*math.Exp(a.LogProbability(x)) + 0.5*math.Exp(b.LogProbability(x)))
	require.InDelta(t, want, m.LogProbability(x), 1e-9)
}

func TestMixture_SampleDelegatesToChild(t *testing.T) {
	t.Parallel()
	a := dist.NewUniform(0, 1)
	b := dist.NewUniform(100, 101)
	m := dist.NewMixture([]dist.Distribution{a, b}, []float64{1, 0})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		x := m.Sample(rng)
		require.True(t, x >= 0 && x <= 1, "weight-1 child should always be selected")
	}
}

func TestLambda_NotSamplableNotFittable(t *testing.T) {
	t.Parallel()
	l := dist.NewLambda(func(x float64) float64 { return -x * x })
	require.Equal(t, -4.0, l.LogProbability(2))
	require.False(t, l.Samplable())
	require.False(t, l.Fittable())
	require.ErrorIs(t, l.Fit(nil, nil), dist.ErrNotFittable)
}

func TestKernelDensities_LogProbability(t *testing.T) {
	t.Parallel()
	points := []float64{0, 10}

	gauss := dist.NewGaussianKernelDensity(points, 1, nil)
	require.Greater(t, gauss.LogProbability(0), gauss.LogProbability(5))

	uni := dist.NewUniformKernelDensity(points, 1, nil)
	require.True(t, math.IsInf(uni.LogProbability(5), -1))
	require.False(t, math.IsInf(uni.LogProbability(0.5), -1))

	tri := dist.NewTriangleKernelDensity(points, 2, nil)
	require.Greater(t, tri.LogProbability(0), tri.LogProbability(1.9))
}

func TestGamma_FitRecoversParameters(t *testing.T) {
	t.Parallel()
	truth := dist.NewGamma(3, 2)
	truth.Rng = rand.New(rand.NewSource(42))

	n := 20000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = truth.Sample(truth.Rng)
	}

	fitted := dist.NewGamma(1, 1)
	fitted.Rng = rand.New(rand.NewSource(7))
	require.NoError(t, fitted.Fit(samples, nil))
	require.InDelta(t, 3, fitted.Alpha, 0.2)
	require.InDelta(t, 2, fitted.Beta, 0.2)
}

func TestInverseGamma_FitMatchesScenario(t *testing.T) {
	t.Parallel()
	truth := dist.NewInverseGamma(10, 0.5)
	rng := rand.New(rand.NewSource(0))

	n := 10000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = truth.Sample(rng)
	}

	fitted := dist.NewInverseGamma(1, 1)
	require.NoError(t, fitted.Fit(samples, nil))
	require.InDelta(t, 9.9757, fitted.Alpha(), 0.5)
	require.InDelta(t, 0.4958, fitted.Beta(), 0.1)
}
