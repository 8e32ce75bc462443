// SPDX-License-Identifier: MIT
// Package: meegsim/dsp
//
// analytic.go — analytic signal via the FFT Hilbert transform.
//
// The analytic signal of x is x + i·H(x): its magnitude is the amplitude
// envelope, its argument the instantaneous phase. Construction: forward
// DFT, zero the negative-frequency half, double the positive half (DC and
// Nyquist stay single), inverse DFT.
//
// Complexity: O(n log n) time, O(n) memory.

package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// AnalyticSignal returns the analytic signal of x.
// Returns ErrTooFewSamples for inputs shorter than two samples.
func AnalyticSignal(x []float64) ([]complex128, error) {
	n := len(x)
	if n < 2 {
		return nil, ErrTooFewSamples
	}

	// 1. Forward complex DFT of the real input.
	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}
	coeff := fft.Coefficients(nil, seq)

	// 2. One-sided spectrum: double strictly positive frequencies, zero the
	//    negative half. DC (k=0) and, for even n, Nyquist (k=n/2) stay as is.
	for k := 1; k < (n+1)/2; k++ {
		coeff[k] *= 2
	}
	for k := n/2 + 1; k < n; k++ {
		coeff[k] = 0
	}

	// 3. Inverse DFT; gonum's transforms are unnormalized, so scale by 1/n.
	out := fft.Sequence(nil, coeff)
	inv := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= inv
	}

	return out, nil
}

// Envelope extracts the amplitude envelope |a| of an analytic signal.
func Envelope(a []complex128) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = cmplx.Abs(v)
	}

	return out
}

// InstantaneousPhase extracts the phase angle of an analytic signal,
// wrapped to (-π, π].
func InstantaneousPhase(a []complex128) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = cmplx.Phase(v)
	}

	return out
}

// WrapPhase maps an angle to the principal interval (-π, π].
func WrapPhase(phi float64) float64 {
	wrapped := math.Mod(phi+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}

	return wrapped - math.Pi
}
