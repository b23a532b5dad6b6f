// SPDX-License-Identifier: MIT
// Package dist: sentinel error set.
//
// Every message is prefixed with "dist: ..." for consistency and easy
// grepping across logs. Callers MUST use errors.Is to branch on semantics; these
// sentinels are never wrapped with formatted strings at the definition
// site, only %w-wrapped at call sites that have extra context.
package dist

import "errors"

var (
	// ErrInvalidParameters indicates a distribution constructor was
	// called with parameters outside that distribution's domain (e.g.
	// Uniform(a,b) with a>b, or Normal sigma<0).
	ErrInvalidParameters = errors.New("dist: invalid distribution parameters")

	// ErrEmptyMixture indicates a Mixture was constructed with zero
	// children.
	ErrEmptyMixture = errors.New("dist: mixture has no children")

	// ErrLengthMismatch indicates weights and samples/children/points
	// slices disagree in length.
	ErrLengthMismatch = errors.New("dist: slice length mismatch")

	// ErrNotSamplable indicates Sample was called on a distribution that
	// does not support sampling (Lambda).
	ErrNotSamplable = errors.New("dist: distribution does not support sampling")

	// ErrNotFittable indicates Fit was called on a distribution that does
	// not support fitting (Lambda).
	ErrNotFittable = errors.New("dist: distribution does not support fitting")

	// ErrEmptyPoints indicates a kernel density was constructed with zero
	// support points.
	ErrEmptyPoints = errors.New("dist: kernel density has no points")
)
