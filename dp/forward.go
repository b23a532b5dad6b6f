package dp

import (
	"context"

	"github.com/katalvlaran/gohmm/internal/logspace"
	"github.com/katalvlaran/gohmm/model"
)

// ForwardResult holds the unscaled forward matrix F[0..n][0..|S|).
type ForwardResult struct {
	F [][]float64
}

// Forward runs the forward algorithm over seq against m, in log space
// with per-row rescaling inverted at read time, returning the full
// forward matrix.
func Forward(ctx context.Context, m *model.Model, seq []float64) (*ForwardResult, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	e := emissionCache(m, seq)
	return forwardWithCache(ctx, m, seq, e)
}

// forwardWithCache is Forward with a precomputed emission cache, shared
// with ForwardBackward so the cache is built only once per sequence.
func forwardWithCache(ctx context.Context, m *model.Model, seq []float64, e [][]float64) (*ForwardResult, error) {
	n := len(seq)
	numStates := m.NumStates()

	f := make([][]float64, n+1)
	for t := range f {
		row := make([]float64, numStates)
		for i := range row {
			row[i] = logspace.NegInf
		}
		f[t] = row
	}
	f[0][m.StartIndex] = 0
	relaxSilentForward(m, f[0], m.StartIndex)

	cum := make([]float64, n+1)

	for t := 0; t < n; t++ {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		cur, next := f[t], f[t+1]

		// Step 1: emitting states.
		for l := 0; l < m.SilentStart; l++ {
			acc := logspace.NegInf
			for j := 0; j < m.InDegree(l); j++ {
				k, w, _ := m.InEdge(l, j)
				acc = logspace.LSE(acc, cur[k]+w)
			}
			next[l] = e[t][l] + acc
		}

		// Steps 2-3: silent states, topological (ascending index) order.
		for l := m.SilentStart; l < numStates; l++ {
			acc := logspace.NegInf
			for j := 0; j < m.InDegree(l); j++ {
				k, w, _ := m.InEdge(l, j)
				if k >= m.SilentStart {
					continue // pass 1: emitting predecessors only
				}
				acc = logspace.LSE(acc, next[k]+w)
			}
			for j := 0; j < m.InDegree(l); j++ {
				k, w, _ := m.InEdge(l, j)
				if k < m.SilentStart || k >= l {
					continue // pass 2: silent predecessors strictly below l
				}
				acc = logspace.LSE(acc, next[k]+w)
			}
			next[l] = acc
		}

		scale := logspace.LSEAll(next)
		cum[t+1] = cum[t] + scale
		subtractRow(next, scale)
	}

	for t := 0; t <= n; t++ {
		addRow(f[t], cum[t])
	}

	return &ForwardResult{F: f}, nil
}

// relaxSilentForward resolves the boundary row's silent entries (all
// silent states except `skip`, i.e. start) in topological order, using
// only silent predecessors strictly below each target index.
func relaxSilentForward(m *model.Model, row []float64, skip int) {
	for l := m.SilentStart; l < m.NumStates(); l++ {
		if l == skip {
			continue
		}
		acc := logspace.NegInf
		for j := 0; j < m.InDegree(l); j++ {
			k, w, _ := m.InEdge(l, j)
			if k < m.SilentStart || k >= l {
				continue
			}
			acc = logspace.LSE(acc, row[k]+w)
		}
		row[l] = acc
	}
}

func subtractRow(row []float64, scale float64) {
	if scale == logspace.NegInf {
		return
	}
	for i, v := range row {
		if v != logspace.NegInf {
			row[i] = v - scale
		}
	}
}

func addRow(row []float64, amount float64) {
	if amount == 0 {
		return
	}
	for i, v := range row {
		if v != logspace.NegInf {
			row[i] = v + amount
		}
	}
}

// LogProbability runs Forward and reduces its final row: finite models
// read f[n, end]; infinite models, which have no forced terminal state,
// reduce the emitting entries of f[n, *] via lse instead.
func LogProbability(ctx context.Context, m *model.Model, seq []float64) (float64, error) {
	fr, err := Forward(ctx, m, seq)
	if err != nil {
		return logspace.NegInf, err
	}
	return sequenceLogProbability(m, fr), nil
}

func sequenceLogProbability(m *model.Model, fr *ForwardResult) float64 {
	n := len(fr.F) - 1
	if m.Finite {
		return fr.F[n][m.EndIndex]
	}
	return logspace.LSEAll(fr.F[n][:m.SilentStart])
}
