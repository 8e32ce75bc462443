// SPDX-License-Identifier: MIT
// Package: meegsim/simulate
//
// errors.go — sentinel errors shared by the simulate builder and driver.

package simulate

import "errors"

var (
	// ErrNoSources means Simulate was called before any source was added.
	ErrNoSources = errors.New("simulate: no sources registered")

	// ErrForwardRequired means an SNR adjustment or a sensor-space export
	// was requested without a forward model.
	ErrForwardRequired = errors.New("simulate: forward model required")

	// ErrNoNoiseSources means an SNR adjustment was requested but no noise
	// source exists to define the reference variance.
	ErrNoNoiseSources = errors.New("simulate: SNR adjustment needs at least one noise source")

	// ErrBadSampling means sfreq or duration is not positive, or the two
	// combine to fewer than two samples.
	ErrBadSampling = errors.New("simulate: invalid sampling parameters")

	// ErrWaveformShape means a waveform generator returned data whose shape
	// does not match the requested series count and sample count.
	ErrWaveformShape = errors.New("simulate: waveform generator returned wrong shape")

	// ErrCouplingShape means a coupling generator returned a series whose
	// length differs from the parent waveform.
	ErrCouplingShape = errors.New("simulate: coupling generator returned wrong shape")

	// ErrLocationSpec means a source group defined zero or two of the
	// mutually exclusive location fields.
	ErrLocationSpec = errors.New("simulate: exactly one of Locations and Select must be set")

	// ErrWaveformSpec means a source group defined zero or two of the
	// mutually exclusive waveform fields.
	ErrWaveformSpec = errors.New("simulate: exactly one of Waveform and Fixed must be set")

	// ErrLocationCount means a location selector returned a different number
	// of locations at simulation time than at registration time.
	ErrLocationCount = errors.New("simulate: location selector returned unexpected count")

	// ErrSpecLength means an optional per-source list (Names, Std, SNR,
	// Fixed) disagrees with the number of sources in the group.
	ErrSpecLength = errors.New("simulate: per-source list length mismatch")

	// ErrSNRBandRequired means a local SNR target was set without the
	// frequency band that defines where power is measured.
	ErrSNRBandRequired = errors.New("simulate: SNR target requires FMin and FMax")

	// ErrUnknownName means a Configuration lookup used a name that no
	// source carries.
	ErrUnknownName = errors.New("simulate: unknown source name")

	// ErrBadNoiseLevel means the sensor noise level is outside [0, 1].
	ErrBadNoiseLevel = errors.New("simulate: sensor noise level must lie in [0, 1]")
)
