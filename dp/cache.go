package dp

import "github.com/katalvlaran/gohmm/model"

// emissionCache computes e[t][i] = States[i].Distribution.LogProbability(seq[t])
// for every emitting state i < m.SilentStart and every observation t,
// for reuse across forward and backward on the same sequence.
func emissionCache(m *model.Model, seq []float64) [][]float64 {
	e := make([][]float64, len(seq))
	for t, x := range seq {
		row := make([]float64, m.SilentStart)
		for i := 0; i < m.SilentStart; i++ {
			row[i] = m.States[i].Distribution.LogProbability(x)
		}
		e[t] = row
	}
	return e
}
