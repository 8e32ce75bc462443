package coupling_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/ctrltz/meegsim/coupling"
	"github.com/ctrltz/meegsim/dsp"
	"github.com/ctrltz/meegsim/waveform"
)

const (
	testSfreq   = 250.0
	testSamples = 5000
)

// narrowbandParent generates a reproducible 8-12 Hz parent waveform.
func narrowbandParent(t *testing.T) []float64 {
	t.Helper()
	data, err := waveform.Narrowband(8, 12)(1, dsp.Times(testSamples, testSfreq), rand.NewSource(11))
	require.NoError(t, err)

	return data[0]
}

// phaseCoupling measures the circular mean and phase-locking value of the
// per-sample phase difference child − ratio·parent, edges trimmed.
func phaseCoupling(t *testing.T, parent, child []float64, ratio float64) (mean, plv float64) {
	t.Helper()
	pa, err := dsp.AnalyticSignal(parent)
	require.NoError(t, err)
	ca, err := dsp.AnalyticSignal(child)
	require.NoError(t, err)

	pp := dsp.InstantaneousPhase(pa)
	cp := dsp.InstantaneousPhase(ca)

	var sum complex128
	trim := len(parent) / 10
	for i := trim; i < len(parent)-trim; i++ {
		sum += cmplx.Exp(complex(0, cp[i]-ratio*pp[i]))
	}
	sum /= complex(float64(len(parent)-2*trim), 0)

	return cmplx.Phase(sum), cmplx.Abs(sum)
}

// TestConstantPhaseShift_Lag verifies the child's phase leads the parent's
// by the configured lag with near-perfect locking.
func TestConstantPhaseShift_Lag(t *testing.T) {
	parent := narrowbandParent(t)
	couple, err := coupling.ConstantPhaseShift(coupling.ConstantParams{PhaseLag: math.Pi / 3})
	require.NoError(t, err)

	child, err := couple(parent, testSfreq, nil)
	require.NoError(t, err)
	require.Len(t, child, len(parent))

	mean, plv := phaseCoupling(t, parent, child, 1)
	assert.InDelta(t, math.Pi/3, mean, 0.05)
	assert.Greater(t, plv, 0.99)
}

// TestConstantPhaseShift_Deterministic checks that the generator involves no
// randomness at all.
func TestConstantPhaseShift_Deterministic(t *testing.T) {
	parent := narrowbandParent(t)
	couple, err := coupling.ConstantPhaseShift(coupling.ConstantParams{PhaseLag: 1.0})
	require.NoError(t, err)

	first, err := couple(parent, testSfreq, rand.NewSource(1))
	require.NoError(t, err)
	second, err := couple(parent, testSfreq, rand.NewSource(999))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestConstantPhaseShift_Harmonic verifies 1:2 cross-frequency coupling:
// the child's phase tracks half the parent's phase.
func TestConstantPhaseShift_Harmonic(t *testing.T) {
	parent := narrowbandParent(t)
	couple, err := coupling.ConstantPhaseShift(coupling.ConstantParams{
		PhaseLag: 0.5,
		Harmonic: coupling.Harmonic{M: 1, N: 2},
	})
	require.NoError(t, err)

	child, err := couple(parent, testSfreq, nil)
	require.NoError(t, err)

	mean, plv := phaseCoupling(t, parent, child, 0.5)
	assert.InDelta(t, 0.5, mean, 0.05)
	assert.Greater(t, plv, 0.95)
}

// TestConstantPhaseShift_BadHarmonic rejects non-positive harmonic numbers.
func TestConstantPhaseShift_BadHarmonic(t *testing.T) {
	_, err := coupling.ConstantPhaseShift(coupling.ConstantParams{
		Harmonic: coupling.Harmonic{M: -1, N: 2},
	})
	assert.ErrorIs(t, err, coupling.ErrBadHarmonic)
}

// TestPPCVonMises_HighKappa verifies that a strong concentration locks the
// phase close to the requested lag.
func TestPPCVonMises_HighKappa(t *testing.T) {
	parent := narrowbandParent(t)
	couple, err := coupling.PPCVonMises(coupling.VonMisesParams{
		PhaseLag: math.Pi / 4,
		Kappa:    50,
		FMin:     8,
		FMax:     12,
		Envelope: coupling.EnvelopeParent,
	})
	require.NoError(t, err)

	child, err := couple(parent, testSfreq, rand.NewSource(3))
	require.NoError(t, err)
	require.Len(t, child, len(parent))

	mean, plv := phaseCoupling(t, parent, child, 1)
	assert.InDelta(t, math.Pi/4, mean, 0.15)
	assert.Greater(t, plv, 0.9)

	// Scale is preserved: child matches the parent's std.
	assert.InDelta(t, dsp.Std(parent), dsp.Std(child), 1e-9)
}

// TestPPCVonMises_ZeroKappa verifies that kappa = 0 destroys the coupling.
func TestPPCVonMises_ZeroKappa(t *testing.T) {
	parent := narrowbandParent(t)
	couple, err := coupling.PPCVonMises(coupling.VonMisesParams{
		PhaseLag: 0,
		Kappa:    0,
		FMin:     8,
		FMax:     12,
		Envelope: coupling.EnvelopeRandom,
	})
	require.NoError(t, err)

	child, err := couple(parent, testSfreq, rand.NewSource(4))
	require.NoError(t, err)

	_, plv := phaseCoupling(t, parent, child, 1)
	assert.Less(t, plv, 0.4)
}

// TestPPCVonMises_Reproducible checks the rand-source contract.
func TestPPCVonMises_Reproducible(t *testing.T) {
	parent := narrowbandParent(t)
	couple, err := coupling.PPCVonMises(coupling.VonMisesParams{
		PhaseLag: 1,
		Kappa:    2,
		FMin:     8,
		FMax:     12,
		Envelope: coupling.EnvelopeRandom,
	})
	require.NoError(t, err)

	first, err := couple(parent, testSfreq, rand.NewSource(5))
	require.NoError(t, err)
	again, err := couple(parent, testSfreq, rand.NewSource(5))
	require.NoError(t, err)
	assert.Equal(t, first, again)

	other, err := couple(parent, testSfreq, rand.NewSource(6))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

// TestPPCVonMises_Validation covers every constructor rejection.
func TestPPCVonMises_Validation(t *testing.T) {
	base := coupling.VonMisesParams{
		PhaseLag: 0, Kappa: 1, FMin: 8, FMax: 12, Envelope: coupling.EnvelopeParent,
	}

	missing := base
	missing.Envelope = 0
	_, err := coupling.PPCVonMises(missing)
	assert.ErrorIs(t, err, coupling.ErrEnvelopeMode)

	negKappa := base
	negKappa.Kappa = -1
	_, err = coupling.PPCVonMises(negKappa)
	assert.ErrorIs(t, err, coupling.ErrBadKappa)

	badBand := base
	badBand.FMin, badBand.FMax = 12, 8
	_, err = coupling.PPCVonMises(badBand)
	assert.ErrorIs(t, err, coupling.ErrBadBand)

	badHarmonic := base
	badHarmonic.Harmonic = coupling.Harmonic{M: 0, N: 3}
	_, err = coupling.PPCVonMises(badHarmonic)
	assert.ErrorIs(t, err, coupling.ErrBadHarmonic)
}
