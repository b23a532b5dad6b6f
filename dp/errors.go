// Package dp implements the dynamic-programming kernels that run over a
// baked model.Model: forward, backward, sequence log-probability,
// Viterbi, forward-backward and MAP posterior decoding. Every kernel
// works in log space with per-row rescaling, and accepts a
// context.Context so a caller can cancel a long sequence between time
// steps.
package dp

import "errors"

// ErrNilModel indicates a kernel was called with a nil *model.Model.
var ErrNilModel = errors.New("dp: nil model")
