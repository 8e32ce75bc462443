// SPDX-License-Identifier: MIT
// Package: meegsim/snr
//
// snr.go — sensor-space variance and SNR amplitude factors.
//
// Sensor-space variance of a set of sources is the mean over sensors of the
// per-sensor signal power after forward projection, optionally band-limited
// first. It equals trace(G·C·Gᵀ)/nSensors with C the source covariance,
// computed here directly from the projected time courses.

package snr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/dsp"
)

// Band is a frequency range in Hz used for band-limited power estimates.
type Band struct {
	FMin, FMax float64
}

// SensorSpaceVariance projects the source rows to sensor space and returns
// the mean per-sensor power. When filter is true the rows are band-passed
// to band first; the limits are then required (ErrBandRequired).
func SensorSpaceVariance(data *mat.Dense, locs []core.Location, fwd Forward, sfreq float64, band Band, filter bool) (float64, error) {
	nRows, nTimes := data.Dims()
	if nRows != len(locs) {
		return 0, fmt.Errorf("%w: %d locations for %d data rows",
			ErrDimensionMismatch, len(locs), nRows)
	}

	src := data
	if filter {
		if band.FMin <= 0 && band.FMax <= 0 {
			return 0, ErrBandRequired
		}
		filtered := mat.NewDense(nRows, nTimes, nil)
		for i := 0; i < nRows; i++ {
			row, err := dsp.BandPass(data.RawRowView(i), sfreq, band.FMin, band.FMax)
			if err != nil {
				return 0, fmt.Errorf("snr: band-limiting row %d: %w", i, err)
			}
			filtered.SetRow(i, row)
		}
		src = filtered
	}

	projected, err := fwd.Project(locs, src)
	if err != nil {
		return 0, err
	}

	nSensors, _ := projected.Dims()
	var power float64
	for i := 0; i < nSensors; i++ {
		row := projected.RawRowView(i)
		for _, v := range row {
			power += v * v
		}
	}

	return power / (float64(nTimes) * float64(nSensors)), nil
}

// AmplitudeFactor returns the factor a signal must be multiplied by so that
// its sensor power relative to the noise power equals target² (local SNR:
// target is an amplitude ratio, power goes with its square).
func AmplitudeFactor(signalVar, noiseVar, target float64) (float64, error) {
	if err := checkVariances(signalVar, noiseVar); err != nil {
		return 0, err
	}

	return target * math.Sqrt(noiseVar/signalVar), nil
}

// GlobalFactor returns the single factor applied uniformly to every signal
// source so that total signal sensor power over total noise sensor power
// equals target. Relative amplitudes among signal sources are preserved by
// construction.
func GlobalFactor(signalVar, noiseVar, target float64) (float64, error) {
	if err := checkVariances(signalVar, noiseVar); err != nil {
		return 0, err
	}

	return math.Sqrt(target * noiseVar / signalVar), nil
}

// checkVariances guards both factor computations against degenerate input.
func checkVariances(signalVar, noiseVar float64) error {
	if noiseVar <= 0 || math.IsNaN(noiseVar) {
		return ErrZeroNoiseVariance
	}
	if signalVar <= 0 || math.IsNaN(signalVar) {
		return ErrZeroSignalVariance
	}

	return nil
}
