package dp

import (
	"context"
	"math"

	"github.com/katalvlaran/gohmm/internal/logspace"
	"github.com/katalvlaran/gohmm/model"
)

// PathStep is one (time, state index) pair of a Viterbi path, including
// any silent states visited along the way.
type PathStep struct {
	T     int
	State int
}

// Viterbi returns the log-probability of the single most likely state
// path for seq and that path as a chronological sequence of (t, state)
// steps, including silent transitions. Ties prefer the first winner
// encountered in ascending predecessor-index order. Returns
// (-Inf, nil, nil) when every path is impossible.
func Viterbi(ctx context.Context, m *model.Model, seq []float64) (float64, []PathStep, error) {
	if m == nil {
		return logspace.NegInf, nil, ErrNilModel
	}
	e := emissionCache(m, seq)
	n := len(seq)
	numStates := m.NumStates()

	v := make([][]float64, n+1)
	predT := make([][]int, n+1)
	predL := make([][]int, n+1)
	for t := range v {
		v[t] = make([]float64, numStates)
		predT[t] = make([]int, numStates)
		predL[t] = make([]int, numStates)
		for i := range v[t] {
			v[t][i] = logspace.NegInf
			predT[t][i] = -1
			predL[t][i] = -1
		}
	}
	v[0][m.StartIndex] = 0
	relaxSilentViterbi(m, v[0], predT[0], predL[0], 0, m.StartIndex)

	for t := 0; t < n; t++ {
		if err := checkCancel(ctx); err != nil {
			return logspace.NegInf, nil, err
		}
		cur := v[t]

		for l := 0; l < m.SilentStart; l++ {
			best, bestK := logspace.NegInf, -1
			for j := 0; j < m.InDegree(l); j++ {
				k, w, _ := m.InEdge(l, j)
				if cand := cur[k] + w; cand > best {
					best, bestK = cand, k
				}
			}
			if bestK >= 0 {
				v[t+1][l] = e[t][l] + m.StateLogWeight[l] + best
				predT[t+1][l], predL[t+1][l] = t, bestK
			}
		}

		for l := m.SilentStart; l < numStates; l++ {
			best, bestT, bestK := logspace.NegInf, -1, -1
			for j := 0; j < m.InDegree(l); j++ {
				k, w, _ := m.InEdge(l, j)
				if k >= m.SilentStart {
					continue
				}
				if cand := v[t+1][k] + w; cand > best {
					best, bestT, bestK = cand, t+1, k
				}
			}
			for j := 0; j < m.InDegree(l); j++ {
				k, w, _ := m.InEdge(l, j)
				if k < m.SilentStart || k >= l {
					continue
				}
				if cand := v[t+1][k] + w; cand > best {
					best, bestT, bestK = cand, t+1, k
				}
			}
			if bestK >= 0 {
				v[t+1][l] = best
				predT[t+1][l], predL[t+1][l] = bestT, bestK
			}
		}
	}

	var final float64
	var finalState int
	if m.Finite {
		final, finalState = v[n][m.EndIndex], m.EndIndex
	} else {
		final, finalState = logspace.NegInf, -1
		for l := 0; l < m.SilentStart; l++ {
			if v[n][l] > final {
				final, finalState = v[n][l], l
			}
		}
	}

	if math.IsInf(final, -1) || finalState < 0 {
		return logspace.NegInf, nil, nil
	}

	return final, tracePath(predT, predL, n, finalState), nil
}

// relaxSilentViterbi resolves the boundary row's silent entries (all
// except `skip`, i.e. start) in topological order, tracking the
// predecessor achieving each max.
func relaxSilentViterbi(m *model.Model, row []float64, predT, predL []int, t0, skip int) {
	for l := m.SilentStart; l < m.NumStates(); l++ {
		if l == skip {
			continue
		}
		best, bestK := logspace.NegInf, -1
		for j := 0; j < m.InDegree(l); j++ {
			k, w, _ := m.InEdge(l, j)
			if k < m.SilentStart || k >= l {
				continue
			}
			if cand := row[k] + w; cand > best {
				best, bestK = cand, k
			}
		}
		if bestK >= 0 {
			row[l] = best
			predT[l], predL[l] = t0, bestK
		}
	}
}

// tracePath walks the predecessor chain backward from (n, finalState)
// to (0, start) and returns it in chronological order.
func tracePath(predT, predL [][]int, n, finalState int) []PathStep {
	var rev []PathStep
	t, l := n, finalState
	for {
		rev = append(rev, PathStep{T: t, State: l})
		pt, pl := predT[t][l], predL[t][l]
		if pt < 0 {
			break
		}
		t, l = pt, pl
	}
	path := make([]PathStep, len(rev))
	for i, s := range rev {
		path[len(rev)-1-i] = s
	}
	return path
}
