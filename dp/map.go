package dp

import (
	"context"

	"github.com/katalvlaran/gohmm/model"
)

// MaximumAPosteriori runs ForwardBackward and, for each observation,
// picks the emitting state with the highest posterior occupancy at the
// checkpoint immediately following it. The returned path is prefixed
// with StartIndex and suffixed with EndIndex.
func MaximumAPosteriori(ctx context.Context, m *model.Model, seq []float64) ([]int, *ForwardBackwardResult, error) {
	if m == nil {
		return nil, nil, ErrNilModel
	}
	fb, err := ForwardBackward(ctx, m, seq)
	if err != nil {
		return nil, nil, err
	}

	path := make([]int, 0, len(seq)+2)
	path = append(path, m.StartIndex)
	for t := 0; t < len(seq); t++ {
		row := fb.W[t+1]
		best, bestState := row[0], 0
		for l := 1; l < m.SilentStart; l++ {
			if row[l] > best {
				best, bestState = row[l], l
			}
		}
		path = append(path, bestState)
	}
	path = append(path, m.EndIndex)

	return path, fb, nil
}
