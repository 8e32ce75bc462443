package dsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/ctrltz/meegsim/dsp"
)

// sine samples A*cos(2πft + phase) at sfreq for n points.
func sine(n int, sfreq, freq, amp, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sfreq
		out[i] = amp * math.Cos(2*math.Pi*freq*t+phase)
	}

	return out
}

// TestAnalyticSignal_Cosine checks envelope and phase of a pure cosine:
// |a| ≈ A everywhere, arg(a) advances at 2πf per second.
func TestAnalyticSignal_Cosine(t *testing.T) {
	const (
		sfreq = 250.0
		freq  = 10.0
		amp   = 2.5
		n     = 2500
	)
	a, err := dsp.AnalyticSignal(sine(n, sfreq, freq, amp, 0))
	require.NoError(t, err)
	require.Len(t, a, n)

	env := dsp.Envelope(a)
	phase := dsp.InstantaneousPhase(a)

	// Skip the record edges where the DFT circularity bites.
	for i := n / 10; i < n-n/10; i++ {
		assert.InDelta(t, amp, env[i], 0.05, "envelope at sample %d", i)

		want := dsp.WrapPhase(2 * math.Pi * freq * float64(i) / sfreq)
		assert.InDelta(t, 0, dsp.WrapPhase(phase[i]-want), 0.05, "phase at sample %d", i)
	}
}

// TestAnalyticSignal_TooShort verifies the minimal-length guard.
func TestAnalyticSignal_TooShort(t *testing.T) {
	_, err := dsp.AnalyticSignal([]float64{1})
	assert.ErrorIs(t, err, dsp.ErrTooFewSamples)
}

// TestBandPass_KeepsInBand verifies that an in-band sine survives and an
// out-of-band sine is suppressed.
func TestBandPass_KeepsInBand(t *testing.T) {
	const (
		sfreq = 250.0
		n     = 2500
	)
	in := sine(n, sfreq, 10, 1, 0)  // inside [8, 12]
	out := sine(n, sfreq, 40, 1, 0) // outside
	mixed := make([]float64, n)
	for i := range mixed {
		mixed[i] = in[i] + out[i]
	}

	filtered, err := dsp.BandPass(mixed, sfreq, 8, 12)
	require.NoError(t, err)

	// Residual against the in-band component should be tiny.
	var resid, power float64
	for i := range filtered {
		d := filtered[i] - in[i]
		resid += d * d
		power += in[i] * in[i]
	}
	assert.Less(t, resid/power, 1e-6)
}

// TestBandPass_BadBand covers every violation of 0 ≤ fmin < fmax ≤ Nyquist.
func TestBandPass_BadBand(t *testing.T) {
	x := sine(100, 100, 10, 1, 0)
	cases := []struct {
		name       string
		fmin, fmax float64
	}{
		{"negative fmin", -1, 10},
		{"empty band", 10, 10},
		{"inverted band", 12, 8},
		{"above nyquist", 10, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dsp.BandPass(x, 100, tc.fmin, tc.fmax)
			assert.ErrorIs(t, err, dsp.ErrBadBand)
		})
	}
}

// TestNormalizeStd sets the sample std to an exact target.
func TestNormalizeStd(t *testing.T) {
	x := sine(1000, 250, 7, 3.7, 0.3)
	require.NoError(t, dsp.NormalizeStd(x, dsp.UnitStd))
	assert.InDelta(t, 1.0, stat.StdDev(x, nil), 1e-12)

	require.NoError(t, dsp.NormalizeStd(x, 2.5))
	assert.InDelta(t, 2.5, stat.StdDev(x, nil), 1e-12)
}

// TestNormalizeStd_ZeroVariance rejects constant series.
func TestNormalizeStd_ZeroVariance(t *testing.T) {
	x := []float64{1, 1, 1, 1}
	assert.ErrorIs(t, dsp.NormalizeStd(x, 1), dsp.ErrZeroVariance)
}

// TestSampleRate recovers sfreq from a uniform grid and rejects ragged ones.
func TestSampleRate(t *testing.T) {
	sfreq, err := dsp.SampleRate(dsp.Times(1000, 250))
	require.NoError(t, err)
	assert.InDelta(t, 250.0, sfreq, 1e-9)

	_, err = dsp.SampleRate([]float64{0})
	assert.ErrorIs(t, err, dsp.ErrTooFewSamples)

	_, err = dsp.SampleRate([]float64{0, 0.004, 0.012})
	assert.ErrorIs(t, err, dsp.ErrNotUniform)
}

// TestWrapPhase spot-checks the principal interval mapping.
func TestWrapPhase(t *testing.T) {
	assert.InDelta(t, 0, dsp.WrapPhase(2*math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, dsp.WrapPhase(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/3, dsp.WrapPhase(math.Pi/3+4*math.Pi), 1e-12)
}
