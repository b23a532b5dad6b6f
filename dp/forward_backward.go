package dp

import (
	"context"

	"github.com/katalvlaran/gohmm/internal/logspace"
	"github.com/katalvlaran/gohmm/model"
	"github.com/samber/lo"
)

// ForwardBackwardResult bundles the posteriors Baum-Welch needs: the
// per-checkpoint state occupancy W, its tie-pooled counterpart TieW, and
// the expected per-edge usage counts E.
type ForwardBackwardResult struct {
	LogProb float64

	// W[t][i] = log P(state i after t observations | seq), t = 0..n.
	// For every t >= 1, lse(W[t][:SilentStart]) == 0. Silent entries are
	// occupancies of their own, so a full row sums past 1 when paths pass
	// through several silent states at the same checkpoint.
	W [][]float64

	// TieW[t][l], l < SilentStart, pools W[t][l] with every state tied to
	// l by shared Distribution identity (see Model.TieClass). Baum-Welch
	// uses this as the weight on seq[t-1] when refitting l's (shared)
	// distribution.
	TieW [][]float64

	// E holds, per edge, the expected log-count of that edge's use over
	// the whole sequence. Parallel to the model's OutTarget/OutLogP: edge
	// j of state k is at index m.OutOffset[k]+j.
	E []float64
}

// ForwardBackward runs the forward and backward passes once each and
// combines them into the posteriors needed for one Baum-Welch update.
func ForwardBackward(ctx context.Context, m *model.Model, seq []float64) (*ForwardBackwardResult, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	e := emissionCache(m, seq)

	fr, err := forwardWithCache(ctx, m, seq, e)
	if err != nil {
		return nil, err
	}
	br, err := backwardWithCache(ctx, m, seq, e)
	if err != nil {
		return nil, err
	}

	logZ := sequenceLogProbability(m, fr)
	n := len(seq)
	numStates := m.NumStates()

	w := make([][]float64, n+1)
	for t := 0; t <= n; t++ {
		row := make([]float64, numStates)
		for i := 0; i < numStates; i++ {
			fi, bi := fr.F[t][i], br.B[t][i]
			if fi == logspace.NegInf || bi == logspace.NegInf {
				row[i] = logspace.NegInf
			} else {
				row[i] = fi + bi - logZ
			}
		}
		w[t] = row
	}

	tieW := make([][]float64, n+1)
	for t := 0; t <= n; t++ {
		row := make([]float64, m.SilentStart)
		for l := 0; l < m.SilentStart; l++ {
			members := append([]int{l}, m.TieClass(l)...)
			row[l] = lo.Reduce(members, func(acc float64, member int, _ int) float64 {
				return logspace.LSE(acc, w[t][member])
			}, logspace.NegInf)
		}
		tieW[t] = row
	}

	edgeExp, err := edgeExpectations(ctx, m, seq, e, fr, br, logZ)
	if err != nil {
		return nil, err
	}

	return &ForwardBackwardResult{LogProb: logZ, W: w, TieW: tieW, E: edgeExp}, nil
}

// edgeExpectations computes, for every edge k->l in m, the expected
// log-count of its use over seq. Edges into an emitting state l consume
// an observation and are counted between checkpoints t and t+1 (t =
// 0..n-1); edges into a silent state l are intra-checkpoint and are
// counted at every checkpoint t = 0..n.
func edgeExpectations(ctx context.Context, m *model.Model, seq []float64, e [][]float64, fr *ForwardResult, br *BackwardResult, logZ float64) ([]float64, error) {
	n := len(seq)
	numStates := m.NumStates()
	out := make([]float64, len(m.OutTarget))

	for k := 0; k < numStates; k++ {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		for j := 0; j < m.OutDegree(k); j++ {
			l, logP, _ := m.OutEdge(k, j)
			acc := logspace.NegInf

			if l < m.SilentStart {
				for t := 0; t < n; t++ {
					fk := fr.F[t][k]
					bl := br.B[t+1][l]
					if fk == logspace.NegInf || bl == logspace.NegInf {
						continue
					}
					acc = logspace.LSE(acc, fk+logP+e[t][l]+bl-logZ)
				}
			} else {
				for t := 0; t <= n; t++ {
					fk := fr.F[t][k]
					bl := br.B[t][l]
					if fk == logspace.NegInf || bl == logspace.NegInf {
						continue
					}
					acc = logspace.LSE(acc, fk+logP+bl-logZ)
				}
			}

			out[m.OutOffset[k]+j] = acc
		}
	}

	return out, nil
}
