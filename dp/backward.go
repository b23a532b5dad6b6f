package dp

import (
	"context"

	"github.com/katalvlaran/gohmm/internal/logspace"
	"github.com/katalvlaran/gohmm/model"
)

// BackwardResult holds the unscaled backward matrix B[0..n][0..|S|).
type BackwardResult struct {
	B [][]float64
}

// Backward runs the backward algorithm over seq against m: the mirror
// of Forward, traversing silent states in reverse topological
// (high-to-low index) order and out-edges instead of in-edges.
func Backward(ctx context.Context, m *model.Model, seq []float64) (*BackwardResult, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	e := emissionCache(m, seq)
	return backwardWithCache(ctx, m, seq, e)
}

func backwardWithCache(ctx context.Context, m *model.Model, seq []float64, e [][]float64) (*BackwardResult, error) {
	n := len(seq)
	numStates := m.NumStates()

	b := make([][]float64, n+1)
	for t := range b {
		row := make([]float64, numStates)
		for i := range row {
			row[i] = logspace.NegInf
		}
		b[t] = row
	}

	if m.Finite {
		b[n][m.EndIndex] = 0
		relaxSilentBackward(m, b[n], m.EndIndex)
	} else {
		// No forced terminal state: every state validly explains "nothing
		// more to observe" at the sequence's end.
		for i := range b[n] {
			b[n][i] = 0
		}
	}

	cum := make([]float64, n+1) // cum[n] == 0: the boundary row is never rescaled

	for t := n - 1; t >= 0; t-- {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		next, prev := b[t], b[t+1]

		// Silent states first, descending (reverse topological) index
		// order: a silent successor always has a strictly higher index,
		// so by the time we reach l every silent successor is resolved.
		for l := numStates - 1; l >= m.SilentStart; l-- {
			acc := logspace.NegInf
			for j := 0; j < m.OutDegree(l); j++ {
				k, w, _ := m.OutEdge(l, j)
				if k < m.SilentStart {
					acc = logspace.LSE(acc, w+e[t][k]+prev[k])
				} else {
					acc = logspace.LSE(acc, w+next[k])
				}
			}
			next[l] = acc
		}

		// Emitting states: both silent (same row t, already resolved
		// above) and emitting (next row, already resolved) successors
		// are available.
		for l := 0; l < m.SilentStart; l++ {
			acc := logspace.NegInf
			for j := 0; j < m.OutDegree(l); j++ {
				k, w, _ := m.OutEdge(l, j)
				if k < m.SilentStart {
					acc = logspace.LSE(acc, w+e[t][k]+prev[k])
				} else {
					acc = logspace.LSE(acc, w+next[k])
				}
			}
			next[l] = acc
		}

		scale := logspace.LSEAll(next)
		cum[t] = cum[t+1] + scale
		subtractRow(next, scale)
	}

	for t := 0; t <= n; t++ {
		addRow(b[t], cum[t])
	}

	return &BackwardResult{B: b}, nil
}

// relaxSilentBackward resolves the boundary row's silent entries (all
// silent states except `skip`, i.e. end) in reverse topological order,
// using only silent successors strictly above each source index.
func relaxSilentBackward(m *model.Model, row []float64, skip int) {
	for l := m.NumStates() - 1; l >= m.SilentStart; l-- {
		if l == skip {
			continue
		}
		acc := logspace.NegInf
		for j := 0; j < m.OutDegree(l); j++ {
			k, w, _ := m.OutEdge(l, j)
			if k < m.SilentStart || k <= l {
				continue
			}
			acc = logspace.LSE(acc, w+row[k])
		}
		row[l] = acc
	}
}
