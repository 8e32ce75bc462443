// Package simulate exposes the builder + driver API of meegsim: a mutable
// Simulator accumulates point, patch and noise sources plus coupling edges
// (the builder phase, no computation), and Simulate freezes one realization
// of all waveforms into an immutable Configuration.
//
// Driver steps, strictly ordered:
//  1. Resolve the coupling graph into a generation order (fail fast on
//     cycles or structural violations).
//  2. Derive one independent sub-seed per source from the top-level seed
//     and the source's NAME — never from generation order — so rewiring
//     coupling or adding unrelated sources cannot reseed anything else.
//  3. Generate waveforms in order: independent sources from their base
//     generator, coupled sources from their parent's finished waveform.
//  4. Normalize generated waveforms to the per-source target standard
//     deviation (user-supplied fixed arrays stay untouched unless a target
//     is set explicitly).
//  5. Adjust local SNR for every source that opted in.
//  6. Adjust global SNR once across all signal sources.
//  7. Package the result.
//
// Reproducibility: the same seed produces a bit-identical Configuration.
// Every failure aborts the whole call — there are no partial configurations.
//
// Errors:
//
//	ErrNoSources        - simulate called on an empty registry.
//	ErrForwardRequired  - SNR adjustment or sensor export without a forward model.
//	ErrNoNoiseSources   - SNR adjustment without any registered noise source.
//	ErrBadSampling      - non-positive sfreq/duration or fewer than two samples.
//	ErrWaveformShape    - a waveform generator broke the output contract.
//	ErrCouplingShape    - a coupling generator broke the output contract.
//	ErrLocationSpec     - a source group needs exactly one location spec.
//	ErrWaveformSpec     - a source group needs exactly one waveform spec.
//	ErrLocationCount    - a location selector changed its mind between calls.
//	ErrSpecLength       - names/std/snr lists disagree with the source count.
//	ErrSNRBandRequired  - a local SNR target without frequency band limits.
//	ErrUnknownName      - configuration lookup for an unknown source.
package simulate
