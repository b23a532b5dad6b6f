package train

import (
	"github.com/katalvlaran/gohmm/dp"
	"github.com/katalvlaran/gohmm/model"
	"github.com/samber/lo"
)

// ViterbiTrain replaces Baum-Welch's soft expectations with the integer
// counts implied by each sequence's most likely (Viterbi) path, then
// reduces to the exact labelled trainer.
func ViterbiTrain(m *model.Model, sequences [][]float64, opts ...TrainOption) (*Result, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if len(sequences) == 0 {
		return nil, ErrNoSequences
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	var usableSeqs [][]float64
	var paths [][]int
	for _, seq := range sequences {
		_, steps, err := dp.Viterbi(cfg.ctx, m, seq)
		if err != nil {
			return nil, err
		}
		if steps == nil {
			cfg.logger.Warn("train: skipping impossible sequence in viterbi hard-em")
			continue
		}
		usableSeqs = append(usableSeqs, seq)
		paths = append(paths, emittingStatesOnly(steps, m.SilentStart))
	}
	if len(usableSeqs) == 0 {
		return nil, ErrNoSequences
	}

	return Labelled(m, usableSeqs, paths, opts...)
}

// emittingStatesOnly extracts the emitting-state sequence from a
// Viterbi path, dropping silent steps so its length matches the
// observation sequence's.
func emittingStatesOnly(steps []dp.PathStep, silentStart int) []int {
	emitting := lo.Filter(steps, func(s dp.PathStep, _ int) bool { return s.State < silentStart })
	return lo.Map(emitting, func(s dp.PathStep, _ int) int { return s.State })
}
