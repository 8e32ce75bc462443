// Package dsp holds the signal math shared by waveform generation,
// phase coupling and SNR adjustment: the analytic signal (FFT Hilbert
// transform), FFT-domain band-pass filtering, sampling-rate recovery and
// standard-deviation normalization.
//
// All routines are pure batch computations over finished slices — no
// streaming, no state, no global RNG. Filtering is done by exact spectral
// masking rather than IIR filters: the pipeline operates on complete
// offline records, so a brick-wall mask in the frequency domain gives the
// band limitation the callers need without edge transients or filter-order
// tuning.
//
// Errors:
//
//	ErrTooFewSamples - a routine needs at least two samples.
//	ErrBadBand       - band limits are not 0 ≤ fmin < fmax ≤ Nyquist.
//	ErrZeroVariance  - normalization of a constant (zero-variance) series.
//	ErrNotUniform    - time points are not uniformly spaced.
package dsp
