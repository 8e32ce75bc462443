package waveform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/dsp"
	"github.com/ctrltz/meegsim/waveform"
)

const (
	testSfreq   = 250.0
	testSamples = 2500
)

func testTimes() []float64 { return dsp.Times(testSamples, testSfreq) }

// bandPower sums spectral power of x within [fmin, fmax] Hz.
func bandPower(x []float64, sfreq, fmin, fmax float64) float64 {
	fft := fourier.NewFFT(len(x))
	coeff := fft.Coefficients(nil, x)
	var p float64
	for k, c := range coeff {
		f := fft.Freq(k) * sfreq
		if f >= fmin && f <= fmax {
			p += real(c)*real(c) + imag(c)*imag(c)
		}
	}

	return p
}

// checkShapeAndStd asserts the generator contract: shape and unit std.
func checkShapeAndStd(t *testing.T, gen core.WaveformFunc, nSeries int) [][]float64 {
	t.Helper()
	data, err := gen(nSeries, testTimes(), rand.NewSource(1))
	require.NoError(t, err)
	require.Len(t, data, nSeries)
	for i, row := range data {
		require.Len(t, row, testSamples)
		assert.InDelta(t, 1.0, stat.StdDev(row, nil), 1e-9, "series %d std", i)
	}

	return data
}

// TestWhiteNoise_Contract checks shape, normalization and reproducibility.
func TestWhiteNoise_Contract(t *testing.T) {
	gen := waveform.WhiteNoise()
	first := checkShapeAndStd(t, gen, 3)

	// Same seed ⇒ identical draws.
	again, err := gen(3, testTimes(), rand.NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Different seed ⇒ different draws.
	other, err := gen(3, testTimes(), rand.NewSource(2))
	require.NoError(t, err)
	assert.NotEqual(t, first[0], other[0])
}

// TestWhiteNoise_BadInput covers the shared precondition checks.
func TestWhiteNoise_BadInput(t *testing.T) {
	gen := waveform.WhiteNoise()

	_, err := gen(0, testTimes(), rand.NewSource(1))
	assert.ErrorIs(t, err, waveform.ErrBadSeriesCount)

	_, err = gen(1, []float64{0}, rand.NewSource(1))
	assert.ErrorIs(t, err, waveform.ErrTooFewSamples)
}

// TestOneOverF_SpectralSlope verifies that low frequencies carry more power
// than high frequencies, and that a steeper slope widens the gap.
func TestOneOverF_SpectralSlope(t *testing.T) {
	pink := checkShapeAndStd(t, waveform.OneOverF(1), 1)[0]
	brown := checkShapeAndStd(t, waveform.OneOverF(2), 1)[0]

	pinkRatio := bandPower(pink, testSfreq, 1, 10) / bandPower(pink, testSfreq, 50, 100)
	brownRatio := bandPower(brown, testSfreq, 1, 10) / bandPower(brown, testSfreq, 50, 100)

	assert.Greater(t, pinkRatio, 2.0, "1/f noise should favor low frequencies")
	assert.Greater(t, brownRatio, pinkRatio, "steeper slope should favor them more")
}

// TestOneOverF_PanicsOnNegativeSlope confirms constructor validation.
func TestOneOverF_PanicsOnNegativeSlope(t *testing.T) {
	assert.Panics(t, func() { waveform.OneOverF(-1) })
}

// TestNarrowband_PowerConcentration verifies that nearly all power lands in
// the requested band.
func TestNarrowband_PowerConcentration(t *testing.T) {
	row := checkShapeAndStd(t, waveform.Narrowband(8, 12), 1)[0]

	inBand := bandPower(row, testSfreq, 8, 12)
	total := bandPower(row, testSfreq, 0, testSfreq/2)
	assert.Greater(t, inBand/total, 0.99)
}

// TestNarrowband_ConstructorValidation confirms the panic policy.
func TestNarrowband_ConstructorValidation(t *testing.T) {
	assert.Panics(t, func() { waveform.Narrowband(0, 10) })
	assert.Panics(t, func() { waveform.Narrowband(12, 8) })
}

// TestNarrowband_AboveNyquist surfaces the band error at generation time.
func TestNarrowband_AboveNyquist(t *testing.T) {
	gen := waveform.Narrowband(100, 200) // Nyquist is 125 Hz at 250 Hz
	_, err := gen(1, testTimes(), rand.NewSource(1))
	assert.ErrorIs(t, err, dsp.ErrBadBand)
}
