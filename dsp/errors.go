// SPDX-License-Identifier: MIT
// Package: meegsim/dsp
//
// errors.go — sentinel errors for signal-math routines.

package dsp

import "errors"

// ErrTooFewSamples indicates an input with fewer than two samples.
var ErrTooFewSamples = errors.New("dsp: at least two samples required")

// ErrBadBand indicates band limits violating 0 ≤ fmin < fmax ≤ Nyquist.
var ErrBadBand = errors.New("dsp: invalid frequency band")

// ErrZeroVariance indicates an attempt to normalize a constant series.
var ErrZeroVariance = errors.New("dsp: series has zero variance")

// ErrNotUniform indicates time points that are not uniformly spaced.
var ErrNotUniform = errors.New("dsp: time points are not uniformly spaced")
