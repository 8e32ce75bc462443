// SPDX-License-Identifier: MIT
// Package: meegsim/coupling
//
// errors.go — sentinel errors for coupling-generator construction.
//
// Constructors return errors (rather than panicking) because coupling
// parameters typically come straight from user configuration; the errors
// surface at SetCoupling time, before any waveform generation.

package coupling

import "errors"

// ErrEnvelopeMode indicates that VonMisesParams.Envelope was left unset.
// The envelope mode is an explicit product decision; there is no default.
var ErrEnvelopeMode = errors.New("coupling: envelope mode must be set explicitly")

// ErrBadKappa indicates a negative von Mises concentration.
var ErrBadKappa = errors.New("coupling: kappa must be non-negative")

// ErrBadBand indicates band limits violating 0 < fmin < fmax.
var ErrBadBand = errors.New("coupling: invalid frequency band")

// ErrBadHarmonic indicates non-positive harmonic numbers in an n:m spec.
var ErrBadHarmonic = errors.New("coupling: harmonic numbers must be positive")
