package train

import (
	"context"
	"runtime"

	"github.com/katalvlaran/gohmm/internal/obslog"
)

// trainConfig accumulates TrainOption values before a training call.
type trainConfig struct {
	transitionPseudocount float64
	usePseudocount        bool
	edgeInertia           float64
	emissionThreshold     float64
	minIterations         int
	maxIterations         int
	stopThreshold         float64
	workers               int
	seed                  int64
	ctx                   context.Context
	logger                obslog.Logger
}

func defaultTrainConfig() *trainConfig {
	return &trainConfig{
		transitionPseudocount: 0,
		usePseudocount:        false,
		edgeInertia:           0,
		emissionThreshold:     0,
		minIterations:         1,
		maxIterations:         100,
		stopThreshold:         1e-4,
		workers:               runtime.GOMAXPROCS(0),
		seed:                  0,
		ctx:                   context.Background(),
		logger:                obslog.NoOp,
	}
}

// TrainOption configures a trainer.
type TrainOption func(*trainConfig)

// WithTransitionPseudocount sets the flat additive pseudocount folded
// into every edge's update regardless of UsePseudocount.
func WithTransitionPseudocount(p float64) TrainOption {
	return func(c *trainConfig) { c.transitionPseudocount = p }
}

// WithUsePseudocount gates whether each edge's own Transition.Pseudocount
// also contributes to its update (in addition to the flat
// TransitionPseudocount).
func WithUsePseudocount(use bool) TrainOption {
	return func(c *trainConfig) { c.usePseudocount = use }
}

// WithEdgeInertia sets how much of the old edge probability is retained
// across an update: new = exp(old)*inertia + newP*(1-inertia).
func WithEdgeInertia(inertia float64) TrainOption {
	return func(c *trainConfig) { c.edgeInertia = inertia }
}

// WithEmissionThreshold sets the minimum posterior weight a (symbol,
// weight) sample must carry to be kept for distribution fitting.
func WithEmissionThreshold(threshold float64) TrainOption {
	return func(c *trainConfig) { c.emissionThreshold = threshold }
}

// WithMinIterations sets the minimum number of EM iterations to run
// regardless of convergence.
func WithMinIterations(n int) TrainOption {
	return func(c *trainConfig) { c.minIterations = n }
}

// WithMaxIterations caps the number of EM iterations.
func WithMaxIterations(n int) TrainOption {
	return func(c *trainConfig) { c.maxIterations = n }
}

// WithStopThreshold sets the log-likelihood improvement below which
// Baum-Welch stops iterating (once MinIterations is met).
func WithStopThreshold(threshold float64) TrainOption {
	return func(c *trainConfig) { c.stopThreshold = threshold }
}

// WithWorkers bounds how many goroutines Baum-Welch's per-sequence
// accumulation pass fans out to. n <= 0 is clamped to 1.
func WithWorkers(n int) TrainOption {
	return func(c *trainConfig) {
		if n <= 0 {
			n = 1
		}
		c.workers = n
	}
}

// WithSeed fixes the base seed from which the per-tie-class RNG streams
// (used for Gamma-fit reseeding) are derived.
func WithSeed(seed int64) TrainOption {
	return func(c *trainConfig) { c.seed = seed }
}

// WithContext attaches a cancellation context, checked between
// sequences and between iterations.
func WithContext(ctx context.Context) TrainOption {
	if ctx == nil {
		panic("train: WithContext(nil)")
	}
	return func(c *trainConfig) { c.ctx = ctx }
}

// WithLogger attaches a structured logger for per-iteration diagnostics.
// Defaults to a no-op logger.
func WithLogger(l obslog.Logger) TrainOption {
	if l == nil {
		panic("train: WithLogger(nil)")
	}
	return func(c *trainConfig) { c.logger = l }
}

// Validate reports ErrBadOptions if the configuration is internally
// inconsistent.
func (c *trainConfig) Validate() error {
	if c.edgeInertia < 0 || c.edgeInertia > 1 {
		return ErrBadOptions
	}
	if c.transitionPseudocount < 0 {
		return ErrBadOptions
	}
	if c.minIterations < 0 || c.maxIterations < 0 {
		return ErrBadOptions
	}
	if c.minIterations > c.maxIterations {
		return ErrBadOptions
	}
	return nil
}

func resolveConfig(opts []TrainOption) (*trainConfig, error) {
	cfg := defaultTrainConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
