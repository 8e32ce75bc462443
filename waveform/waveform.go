// SPDX-License-Identifier: MIT
// Package: meegsim/waveform
//
// waveform.go — built-in base waveform generators.
//
// Contract:
//   - generate(nSeries, times, src) -> [nSeries][len(times)]float64.
//   - Deterministic for a fixed src; no global random state touched.
//   - Each series normalized to unit sample standard deviation.
//
// Determinism policy (aligned with the coupling generators): a generator
// consumes ONLY the rand.Source it is given. Callers derive one source per
// simulated brain source from a name-keyed sub-seed.

package waveform

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/dsp"
)

// Sentinel errors for waveform generation.
var (
	// ErrBadSeriesCount indicates a request for fewer than one series.
	ErrBadSeriesCount = errors.New("waveform: at least one series required")

	// ErrTooFewSamples indicates a time vector with fewer than two points.
	ErrTooFewSamples = errors.New("waveform: at least two time points required")
)

// DefaultSlope is the spectral exponent used when noise sources do not
// specify one: power spectral density ∝ 1/f.
const DefaultSlope = 1.0

// WhiteNoise returns a generator of i.i.d. Gaussian noise, one independent
// stream per series, each normalized to unit standard deviation.
func WhiteNoise() core.WaveformFunc {
	return func(nSeries int, times []float64, src rand.Source) ([][]float64, error) {
		if err := checkShape(nSeries, times); err != nil {
			return nil, err
		}

		normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
		out := make([][]float64, nSeries)
		for i := range out {
			row := make([]float64, len(times))
			for j := range row {
				row[j] = normal.Rand()
			}
			if err := dsp.NormalizeStd(row, dsp.UnitStd); err != nil {
				return nil, fmt.Errorf("waveform: white noise series %d: %w", i, err)
			}
			out[i] = row
		}

		return out, nil
	}
}

// OneOverF returns a generator of colored noise with power spectral density
// ∝ 1/f^slope. slope = 1 gives pink noise, slope = 2 brown noise; slope = 0
// degenerates to white noise. Panics if slope < 0.
//
// Construction: white Gaussian noise is shaped in the frequency domain by
// scaling each amplitude bin with f^(-slope/2), the DC bin is dropped, and
// the result is transformed back and normalized.
func OneOverF(slope float64) core.WaveformFunc {
	if slope < 0 {
		panic("waveform: OneOverF(slope<0)")
	}

	return func(nSeries int, times []float64, src rand.Source) ([][]float64, error) {
		if err := checkShape(nSeries, times); err != nil {
			return nil, err
		}

		n := len(times)
		fft := fourier.NewFFT(n)
		normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

		out := make([][]float64, nSeries)
		for i := range out {
			row := make([]float64, n)
			for j := range row {
				row[j] = normal.Rand()
			}

			// Shape the spectrum: amplitude ∝ f^(-slope/2) so power ∝ 1/f^slope.
			coeff := fft.Coefficients(nil, row)
			coeff[0] = 0 // remove DC
			for k := 1; k < len(coeff); k++ {
				coeff[k] *= complex(1/powHalf(fft.Freq(k), slope), 0)
			}
			row = fft.Sequence(row, coeff)
			floats.Scale(1/float64(n), row)

			if err := dsp.NormalizeStd(row, dsp.UnitStd); err != nil {
				return nil, fmt.Errorf("waveform: 1/f noise series %d: %w", i, err)
			}
			out[i] = row
		}

		return out, nil
	}
}

// Narrowband returns a generator of band-limited filtered white noise within
// [fmin, fmax] Hz — the standard stand-in for an oscillation. Panics unless
// 0 < fmin < fmax (constructor validation); the Nyquist bound is checked at
// generation time once the sampling rate is known.
func Narrowband(fmin, fmax float64) core.WaveformFunc {
	if fmin <= 0 || fmax <= fmin {
		panic("waveform: Narrowband requires 0 < fmin < fmax")
	}

	return func(nSeries int, times []float64, src rand.Source) ([][]float64, error) {
		if err := checkShape(nSeries, times); err != nil {
			return nil, err
		}
		sfreq, err := dsp.SampleRate(times)
		if err != nil {
			return nil, fmt.Errorf("waveform: narrowband: %w", err)
		}

		normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
		out := make([][]float64, nSeries)
		for i := range out {
			row := make([]float64, len(times))
			for j := range row {
				row[j] = normal.Rand()
			}
			row, err = dsp.BandPass(row, sfreq, fmin, fmax)
			if err != nil {
				return nil, fmt.Errorf("waveform: narrowband series %d: %w", i, err)
			}
			if err = dsp.NormalizeStd(row, dsp.UnitStd); err != nil {
				return nil, fmt.Errorf("waveform: narrowband series %d: %w", i, err)
			}
			out[i] = row
		}

		return out, nil
	}
}

// checkShape validates the common generation preconditions.
func checkShape(nSeries int, times []float64) error {
	if nSeries < 1 {
		return fmt.Errorf("%w: got %d", ErrBadSeriesCount, nSeries)
	}
	if len(times) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSamples, len(times))
	}

	return nil
}

// powHalf computes f^(slope/2) for positive f.
func powHalf(f, slope float64) float64 {
	if slope == 0 {
		return 1
	}

	return math.Pow(f, slope/2)
}
