// Package gohmm is the module root for a Hidden Markov Model core
// library: heterogeneous emission distributions, silent states, tied
// distributions, and composition of sub-models.
//
// The library is organized into focused subpackages rather than one
// flat namespace:
//
//	core/   — mutable State/Transition graph (the Builder) used to
//	          assemble a model before compilation.
//	dist/   — the emission distribution algebra (Uniform, Normal,
//	          Exponential, Gamma, InverseGamma, Discrete, kernel
//	          densities, Mixture, Lambda).
//	model/  — the baker (Bake) and the immutable, CSR-like compiled
//	          Model it produces.
//	dp/     — forward, backward, Viterbi, forward-backward and MAP
//	          decoders over a compiled Model.
//	train/  — Baum-Welch, Viterbi hard-EM and labelled-path trainers.
//
// A typical session:
//
//	b := core.NewBuilder("toy")
//	s1 := b.AddState("S1", 1, dist.NewUniform(-1, 1))
//	b.AddTransition(b.Start, s1, 1.0)
//	b.AddTransition(s1, b.End, 1.0)
//	m, err := model.Bake(b)
//	logp, path, err := dp.Viterbi(context.Background(), m, seq)
//
// See cmd/gohmm-bake for a runnable end-to-end example.
package gohmm
