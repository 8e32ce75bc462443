// Package coupling provides the built-in phase-coupling generators: a
// deterministic constant phase shift and a probabilistic phase shift based
// on the von Mises circular distribution.
//
// Every generator satisfies core.CouplingFunc:
//
//	func(parent []float64, sfreq float64, src rand.Source) ([]float64, error)
//
// producing a waveform of the same length whose instantaneous phase tracks
// the parent's phase under the configured relationship. Both built-ins
// support n:m cross-frequency coupling through the Harmonic parameter.
//
// Coupling strength is controlled continuously by the von Mises
// concentration kappa: kappa → ∞ approaches a constant shift, kappa = 0
// degenerates to uniform (no) coupling.
//
// The amplitude-envelope mode of the probabilistic generator is an explicit,
// required parameter: EnvelopeParent reuses the parent's envelope,
// EnvelopeRandom draws a fresh band-limited one. There is no default —
// constructors fail with ErrEnvelopeMode when it is left unset.
//
// Custom generators with the same signature are accepted anywhere a
// built-in is; the engine validates only the output length.
package coupling
