// Package waveform provides the built-in base waveform generators: white
// noise, one-over-f (colored) noise and narrowband oscillations.
//
// Every generator satisfies core.WaveformFunc:
//
//	func(nSeries int, times []float64, src rand.Source) ([][]float64, error)
//
// and is deterministic for a fixed src: all randomness flows through the
// provided source, never through global state. The simulation driver hands
// each source an independently derived source, so adding or removing
// unrelated sources cannot perturb another source's draws.
//
// Outputs are normalized so every series has unit sample standard
// deviation; the driver rescales to per-source targets afterwards.
//
// Constructor validation follows the option-constructor policy: meaningless
// parameters (slope < 0, fmin ≤ 0, fmax ≤ fmin) panic at construction time,
// while runtime failures (bad shapes, too few samples) surface as errors.
//
// Custom generators with the same signature are accepted anywhere a
// built-in is; the engine validates only the output shape.
package waveform
