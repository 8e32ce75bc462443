// Package meegsim simulates multichannel brain-source time series with
// known ground truth — source locations, waveform shape, amplitude,
// signal-to-noise ratio and pairwise phase coupling — for validating
// connectivity estimators and other analysis pipelines.
//
// 🚀 What is meegsim?
//
//	A deterministic, batch-oriented library that brings together:
//		• Base waveforms: white noise, 1/f noise, narrowband oscillations
//		• Phase coupling: constant lag and probabilistic (von Mises) lag,
//		  with n:m cross-frequency harmonics
//		• A coupling-graph scheduler that orders waveform generation and
//		  rejects cycles, fan-in and self-coupling
//		• Local and global SNR adjustment against a forward model
//		• A strict random-state contract: same seed ⇒ identical output
//
// Under the hood, everything is organized into flat subpackages:
//
//	core/     — sources, locations, the registry and seed derivation
//	graph/    — coupling-graph validation and generation-order planning
//	dsp/      — analytic signal, band-pass filtering, normalization
//	waveform/ — base waveform generators
//	coupling/ — phase-coupling generators
//	snr/      — forward projection and sensor-space SNR math
//	simulate/ — the builder + driver API and the resulting configuration
//
// Quick example:
//
//	sim, _ := simulate.New(spaces)
//	s, _ := sim.AddPointSources(simulate.PointSpec{...})
//	_ = sim.SetCoupling(s[0], s[1], couple)
//	cfg, err := sim.Simulate(250, 10, simulate.WithSeed(0))
//
// Dive into each package's doc.go for contracts, invariants and errors.
package meegsim
