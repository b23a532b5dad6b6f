package train

import (
	"math"
	"sync"

	"github.com/katalvlaran/gohmm/dp"
	"github.com/katalvlaran/gohmm/internal/logspace"
	"github.com/katalvlaran/gohmm/model"
)

// partialAccumulation is one worker's contribution to a Baum-Welch
// iteration: expected edge counts in linear domain, per-tie-class
// weighted sample buckets, summed sequence log-likelihood, and a skip
// count for -Inf sequences.
type partialAccumulation struct {
	expected []float64
	buckets  []sampleBucket
	sumLogP  float64
	skipped  int
}

func newPartialAccumulation(m *model.Model) *partialAccumulation {
	return &partialAccumulation{
		expected: make([]float64, len(m.OutTarget)),
		buckets:  make([]sampleBucket, m.SilentStart),
	}
}

func (p *partialAccumulation) merge(other *partialAccumulation) {
	for i, v := range other.expected {
		p.expected[i] += v
	}
	for l := range p.buckets {
		p.buckets[l].samples = append(p.buckets[l].samples, other.buckets[l].samples...)
		p.buckets[l].weights = append(p.buckets[l].weights, other.buckets[l].weights...)
	}
	p.sumLogP += other.sumLogP
	p.skipped += other.skipped
}

// accumulateSequence runs forward-backward over one sequence and folds
// its contribution into acc. Sequences whose log-probability is -Inf are
// skipped (diagnostic only, never an error), per spec's failure
// semantics.
func accumulateSequence(cfg *trainConfig, m *model.Model, groups []int, seq []float64, acc *partialAccumulation) {
	fb, err := dp.ForwardBackward(cfg.ctx, m, seq)
	if err != nil || math.IsInf(fb.LogProb, -1) {
		acc.skipped++
		cfg.logger.Warn("train: skipping impossible sequence", "logProb", fbLogProbOrNegInf(fb))
		return
	}
	acc.sumLogP += fb.LogProb

	for i, v := range fb.E {
		acc.expected[i] += math.Exp(v)
	}

	for t, x := range seq {
		row := fb.TieW[t+1]
		for l := 0; l < m.SilentStart; l++ {
			if groups[l] != l {
				continue
			}
			w := math.Exp(row[l])
			if w < cfg.emissionThreshold {
				continue
			}
			acc.buckets[l].samples = append(acc.buckets[l].samples, x)
			acc.buckets[l].weights = append(acc.buckets[l].weights, w)
		}
	}
}

func fbLogProbOrNegInf(fb *dp.ForwardBackwardResult) float64 {
	if fb == nil {
		return logspace.NegInf
	}
	return fb.LogProb
}

// BaumWelch re-estimates m's transition probabilities and tied
// distributions from sequences by expectation-maximization, returning
// the trained model and the iteration log. m is never mutated; the
// returned model is an independent copy.
func BaumWelch(m *model.Model, sequences [][]float64, opts ...TrainOption) (*Result, error) {
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

	trained := cloneForTraining(m)
	groups := fitGroups(trained)
	assignDeterministicRNGs(trained, groups, cfg.seed)

	var iterations []IterationLog
	prevLogLikelihood := math.Inf(-1)
	totalImprovement := 0.0

	for iter := 0; ; iter++ {
		if err := cfg.ctx.Err(); err != nil {
			return nil, err
		}

		acc := runAccumulationRound(cfg, trained, groups, sequences)

		applyEdgeUpdate(trained, acc.expected, cfg)
		refitDistributions(trained, acc.buckets, groups)

		delta := acc.sumLogP - prevLogLikelihood
		if iter == 0 {
			delta = 0
		} else {
			totalImprovement += delta
		}
		iterations = append(iterations, IterationLog{
			Iteration:     iter,
			NumSkipped:    acc.skipped,
			LogLikelihood: acc.sumLogP,
			Delta:         delta,
		})
		cfg.logger.Info("train: baum-welch iteration",
			"iteration", iter, "logLikelihood", acc.sumLogP, "delta", delta, "skipped", acc.skipped)

		prevLogLikelihood = acc.sumLogP

		if iter+1 >= cfg.minIterations && (iter > 0 && delta <= cfg.stopThreshold) {
			break
		}
		if iter+1 >= cfg.maxIterations {
			break
		}
	}

	return &Result{Model: trained, Iterations: iterations, TotalImprovement: totalImprovement}, nil
}

// runAccumulationRound fans sequences out over cfg.workers goroutines
// and merges their partial accumulations at a WaitGroup barrier, per
// spec's "simple per-sequence accumulation" allowance. Workers draw no
// random numbers; Gamma reseed streams are keyed by state index (see
// assignDeterministicRNGs).
func runAccumulationRound(cfg *trainConfig, m *model.Model, groups []int, sequences [][]float64) *partialAccumulation {
	workers := cfg.workers
	if workers > len(sequences) {
		workers = len(sequences)
	}
	if workers <= 1 {
		acc := newPartialAccumulation(m)
		for _, seq := range sequences {
			accumulateSequence(cfg, m, groups, seq, acc)
		}
		return acc
	}

	partials := make([]*partialAccumulation, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := newPartialAccumulation(m)
			for i := w; i < len(sequences); i += workers {
				accumulateSequence(cfg, m, groups, sequences[i], local)
			}
			partials[w] = local
		}()
	}
	wg.Wait()

	acc := newPartialAccumulation(m)
	for _, p := range partials {
		acc.merge(p)
	}
	return acc
}
