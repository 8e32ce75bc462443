// SPDX-License-Identifier: MIT
// Package: meegsim/dsp
//
// normalize.go — standard-deviation normalization.
//
// Generated waveforms are normalized to a base unit standard deviation and
// then rescaled to per-source targets by the simulation driver; this keeps
// amplitude semantics identical across generator kinds.

package dsp

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// UnitStd is the base standard deviation every generated waveform is
// normalized to before per-source targets apply.
const UnitStd = 1.0

// Std returns the sample standard deviation of x.
func Std(x []float64) float64 {
	return stat.StdDev(x, nil)
}

// NormalizeStd rescales x in place so its sample standard deviation equals
// target. Returns ErrZeroVariance when x is constant.
func NormalizeStd(x []float64, target float64) error {
	sd := stat.StdDev(x, nil)
	if sd == 0 || sd != sd { // zero or NaN
		return ErrZeroVariance
	}
	floats.Scale(target/sd, x)

	return nil
}
