// SPDX-License-Identifier: MIT
// Package: meegsim/dsp
//
// filter.go — FFT-domain band-pass filtering and sampling-rate recovery.

package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// BandPass keeps the spectral content of x within [fmin, fmax] Hz and
// removes everything else, including DC when fmin > 0.
// Returns ErrBadBand unless 0 ≤ fmin < fmax ≤ sfreq/2.
func BandPass(x []float64, sfreq, fmin, fmax float64) ([]float64, error) {
	n := len(x)
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	if sfreq <= 0 || fmin < 0 || fmax <= fmin || fmax > sfreq/2 {
		return nil, fmt.Errorf("%w: [%v, %v] Hz at sfreq=%v", ErrBadBand, fmin, fmax, sfreq)
	}

	// 1. Forward real DFT: n/2+1 one-sided coefficients.
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, x)

	// 2. Zero every bin outside the band. Freq(k) is in cycles per sample.
	for k := range coeff {
		f := fft.Freq(k) * sfreq
		if f < fmin || f > fmax {
			coeff[k] = 0
		}
	}

	// 3. Inverse transform; unnormalized, so scale by 1/n.
	out := fft.Sequence(nil, coeff)
	floats.Scale(1/float64(n), out)

	return out, nil
}

// SampleRate recovers the sampling frequency (Hz) of uniformly spaced time
// points. Returns ErrTooFewSamples or ErrNotUniform on invalid input.
func SampleRate(times []float64) (float64, error) {
	if len(times) < 2 {
		return 0, ErrTooFewSamples
	}

	dt := times[1] - times[0]
	if dt <= 0 {
		return 0, ErrNotUniform
	}
	// Uniformity check against the first step, with a relative tolerance
	// absorbing float accumulation across long records.
	tol := 1e-6 * dt
	for i := 2; i < len(times); i++ {
		if math.Abs((times[i]-times[i-1])-dt) > tol {
			return 0, ErrNotUniform
		}
	}

	return 1 / dt, nil
}

// Times builds the time vector 0, 1/sfreq, ..., (n-1)/sfreq.
func Times(n int, sfreq float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / sfreq
	}

	return out
}
