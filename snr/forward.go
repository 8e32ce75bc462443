// SPDX-License-Identifier: MIT
// Package: meegsim/snr
//
// forward.go — the forward-model collaborator.
//
// Contract: Project(locs, data) applies an opaque linear operator to source
// time courses, returning sensor time courses. Implementations must accept
// any subset of the locations they know about, in any order, so callers can
// project signal and noise subsets independently.

package snr

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ctrltz/meegsim/core"
)

// Sentinel errors for forward projection and SNR math.
var (
	// ErrBandRequired indicates band-limited variance without band limits.
	ErrBandRequired = errors.New("snr: frequency band limits are required")

	// ErrZeroNoiseVariance indicates pooled noise with zero sensor power, so
	// no SNR can be computed.
	ErrZeroNoiseVariance = errors.New("snr: noise variance is zero")

	// ErrZeroSignalVariance indicates a signal with zero sensor power, so the
	// SNR cannot be adjusted.
	ErrZeroSignalVariance = errors.New("snr: signal variance is zero")

	// ErrSourceNotInForward indicates a simulated location that the forward
	// model does not cover.
	ErrSourceNotInForward = errors.New("snr: source location not present in forward model")

	// ErrDimensionMismatch indicates disagreeing gain/location/data shapes.
	ErrDimensionMismatch = errors.New("snr: dimension mismatch")
)

// Forward projects source time courses to sensor space. data holds one row
// per location; the result holds one row per sensor.
type Forward interface {
	Project(locs []core.Location, data *mat.Dense) (*mat.Dense, error)
}

// LeadfieldForward implements Forward with an explicit gain matrix: one
// sensor per row, one known source location per column.
type LeadfieldForward struct {
	gain  *mat.Dense
	index map[core.Location]int
}

// NewLeadfieldForward builds a LeadfieldForward from the locations covered
// by the model (column order) and the gain matrix.
func NewLeadfieldForward(locs []core.Location, gain *mat.Dense) (*LeadfieldForward, error) {
	rows, cols := gain.Dims()
	if rows < 1 || cols != len(locs) {
		return nil, fmt.Errorf("%w: gain is %dx%d for %d locations",
			ErrDimensionMismatch, rows, cols, len(locs))
	}

	index := make(map[core.Location]int, len(locs))
	for i, loc := range locs {
		if _, dup := index[loc]; dup {
			return nil, fmt.Errorf("%w: duplicate location %s", ErrDimensionMismatch, loc)
		}
		index[loc] = i
	}

	return &LeadfieldForward{gain: gain, index: index}, nil
}

// NumSensors returns the number of sensors (gain rows).
func (f *LeadfieldForward) NumSensors() int {
	rows, _ := f.gain.Dims()

	return rows
}

// Project restricts the gain matrix to the requested locations and applies
// it: out = G_restricted · data. Fails with ErrSourceNotInForward when any
// location is unknown to the model.
func (f *LeadfieldForward) Project(locs []core.Location, data *mat.Dense) (*mat.Dense, error) {
	nLocs, nTimes := data.Dims()
	if nLocs != len(locs) {
		return nil, fmt.Errorf("%w: %d locations for %d data rows",
			ErrDimensionMismatch, len(locs), nLocs)
	}

	nSensors := f.NumSensors()
	restricted := mat.NewDense(nSensors, nLocs, nil)
	for j, loc := range locs {
		col, ok := f.index[loc]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotInForward, loc)
		}
		for i := 0; i < nSensors; i++ {
			restricted.Set(i, j, f.gain.At(i, col))
		}
	}

	out := mat.NewDense(nSensors, nTimes, nil)
	out.Mul(restricted, data)

	return out, nil
}
