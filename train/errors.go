// Package train implements parameter re-estimation over a compiled
// model.Model: Baum-Welch expectation-maximization, Viterbi hard-EM, and
// exact labelled-path training, sharing one edge-update rule and one
// tied-distribution refit step.
package train

import "errors"

// ErrBadOptions is returned by every trainer when its TrainOption
// configuration is internally inconsistent.
var ErrBadOptions = errors.New("train: invalid options")

// ErrNilModel is returned when a trainer is called with a nil model.
var ErrNilModel = errors.New("train: nil model")

// ErrNoSequences is returned when a trainer is given zero sequences.
var ErrNoSequences = errors.New("train: no sequences")

// ErrLengthMismatch is returned by Labelled when a path's length doesn't
// match its sequence's length.
var ErrLengthMismatch = errors.New("train: sequence/path length mismatch")
