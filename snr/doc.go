// Package snr computes sensor-space power through a forward model and the
// amplitude factors for local and global SNR adjustment.
//
// The forward model is an opaque linear operator (the Forward interface);
// LeadfieldForward is the standard implementation backed by a gain matrix
// with one column per known source location. The core never inspects
// geometry — it only projects source time courses to sensor space.
//
// SNR semantics:
//   - Local adjustment (per source): after scaling by AmplitudeFactor, the
//     source's band-limited mean sensor power equals target² times the
//     pooled noise power.
//   - Global adjustment (whole configuration): after scaling every signal
//     source by the single GlobalFactor, total signal sensor power over
//     total noise sensor power equals the target ratio; relative amplitudes
//     among signal sources are untouched.
//
// Errors:
//
//	ErrBandRequired       - band-limited variance requested without limits.
//	ErrZeroNoiseVariance  - pooled noise projects to zero sensor power.
//	ErrZeroSignalVariance - the signal projects to zero sensor power.
//	ErrSourceNotInForward - a location is missing from the gain matrix.
//	ErrDimensionMismatch  - gain/location/data shapes disagree.
package snr
