// SPDX-License-Identifier: MIT
// Package: meegsim/coupling
//
// coupling.go — constant and probabilistic (von Mises) phase coupling.
//
// Both generators work on the analytic-signal decomposition of the parent:
// amplitude envelope × instantaneous phase. The child reuses or redraws the
// envelope and remaps the phase under the target relationship.
//
// Contract:
//   - couple(parent, sfreq, src) returns a waveform of len(parent).
//   - Deterministic for a fixed src; ConstantPhaseShift ignores src entirely.

package coupling

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/dsp"
)

// Harmonic selects n:m cross-frequency coupling: the child's phase follows
// M/N times the parent's phase. The zero value means within-frequency (1:1)
// coupling.
type Harmonic struct {
	// M is the harmonic of interest for the child.
	M int

	// N is the base-frequency harmonic of the parent.
	N int
}

// ratio resolves the phase multiplier, mapping the zero value to 1:1.
func (h Harmonic) ratio() (float64, error) {
	if h.M == 0 && h.N == 0 {
		return 1, nil
	}
	if h.M <= 0 || h.N <= 0 {
		return 0, fmt.Errorf("%w: %d:%d", ErrBadHarmonic, h.M, h.N)
	}

	return float64(h.M) / float64(h.N), nil
}

// Envelope selects the amplitude-envelope mode of the probabilistic
// generator. It must be set explicitly; there is no default.
type Envelope int

const (
	envelopeUnset Envelope = iota

	// EnvelopeParent copies the parent's amplitude envelope.
	EnvelopeParent

	// EnvelopeRandom draws a fresh band-limited amplitude envelope.
	EnvelopeRandom
)

// ConstantParams configures ConstantPhaseShift.
type ConstantParams struct {
	// PhaseLag is the fixed lag (radians) added to the parent's phase.
	PhaseLag float64

	// Harmonic optionally selects n:m coupling; zero value means 1:1.
	Harmonic Harmonic
}

// ConstantPhaseShift builds a deterministic coupling generator: the child's
// instantaneous phase equals M/N times the parent's phase plus PhaseLag, and
// the parent's amplitude envelope is reused. The rand source is accepted for
// contract consistency and ignored.
func ConstantPhaseShift(p ConstantParams) (core.CouplingFunc, error) {
	ratio, err := p.Harmonic.ratio()
	if err != nil {
		return nil, err
	}

	return func(parent []float64, _ float64, _ rand.Source) ([]float64, error) {
		a, err := dsp.AnalyticSignal(parent)
		if err != nil {
			return nil, fmt.Errorf("coupling: constant phase shift: %w", err)
		}

		out := make([]float64, len(parent))
		for i, v := range a {
			amp, ang := math.Hypot(real(v), imag(v)), math.Atan2(imag(v), real(v))
			out[i] = amp * math.Cos(ratio*ang+p.PhaseLag)
		}

		return out, nil
	}, nil
}

// VonMisesParams configures PPCVonMises.
type VonMisesParams struct {
	// PhaseLag is the circular-mean lag (radians).
	PhaseLag float64

	// Kappa is the von Mises concentration: larger values keep the
	// instantaneous lag closer to PhaseLag; zero removes the coupling.
	Kappa float64

	// FMin and FMax delimit the parent's base frequency band (Hz); the
	// intermediate waveform is band-passed to M/N times this band.
	FMin, FMax float64

	// Harmonic optionally selects n:m coupling; zero value means 1:1.
	Harmonic Harmonic

	// Envelope selects the amplitude-envelope mode. Required.
	Envelope Envelope
}

// PPCVonMises builds a probabilistic phase-coupling generator: per sample,
// the lag applied to the parent's phase is drawn from VonMises(PhaseLag,
// Kappa). The phase-shifted series is band-passed to the target band and its
// phase is recombined with the configured amplitude envelope. The child is
// rescaled to the parent's sample standard deviation.
func PPCVonMises(p VonMisesParams) (core.CouplingFunc, error) {
	ratio, err := p.Harmonic.ratio()
	if err != nil {
		return nil, err
	}
	if p.Kappa < 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadKappa, p.Kappa)
	}
	if p.FMin <= 0 || p.FMax <= p.FMin {
		return nil, fmt.Errorf("%w: [%v, %v] Hz", ErrBadBand, p.FMin, p.FMax)
	}
	if p.Envelope != EnvelopeParent && p.Envelope != EnvelopeRandom {
		return nil, ErrEnvelopeMode
	}

	return func(parent []float64, sfreq float64, src rand.Source) ([]float64, error) {
		a, err := dsp.AnalyticSignal(parent)
		if err != nil {
			return nil, fmt.Errorf("coupling: von Mises: %w", err)
		}
		amp := dsp.Envelope(a)
		ang := dsp.InstantaneousPhase(a)

		// 1. Per-sample phase lags from the circular distribution.
		rng := rand.New(src)
		draw := vonMisesSampler(p.PhaseLag, p.Kappa, rng)

		// 2. Phase-shifted intermediate, band-passed to clean the phase
		//    discontinuities the per-sample draws introduce.
		tmp := make([]float64, len(parent))
		for i := range tmp {
			tmp[i] = amp[i] * math.Cos(ratio*ang[i]+draw())
		}
		tmp, err = dsp.BandPass(tmp, sfreq, ratio*p.FMin, ratio*p.FMax)
		if err != nil {
			return nil, fmt.Errorf("coupling: von Mises: %w", err)
		}

		// 3. Keep only the cleaned phase; recombine with the envelope.
		ta, err := dsp.AnalyticSignal(tmp)
		if err != nil {
			return nil, fmt.Errorf("coupling: von Mises: %w", err)
		}
		phase := dsp.InstantaneousPhase(ta)

		env := amp
		if p.Envelope == EnvelopeRandom {
			env, err = randomEnvelope(len(parent), sfreq, ratio*p.FMin, ratio*p.FMax, rng)
			if err != nil {
				return nil, fmt.Errorf("coupling: von Mises: %w", err)
			}
		}

		out := make([]float64, len(parent))
		for i := range out {
			out[i] = env[i] * math.Cos(phase[i])
		}

		// 4. Match the parent's scale so coupling never changes power.
		if sd := dsp.Std(parent); sd > 0 {
			if err = dsp.NormalizeStd(out, sd); err != nil {
				return nil, fmt.Errorf("coupling: von Mises: %w", err)
			}
		}

		return out, nil
	}, nil
}

// randomEnvelope draws the amplitude envelope of a fresh band-limited
// Gaussian series.
func randomEnvelope(n int, sfreq, fmin, fmax float64, rng *rand.Rand) ([]float64, error) {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = normal.Rand()
	}

	noise, err := dsp.BandPass(noise, sfreq, fmin, fmax)
	if err != nil {
		return nil, err
	}
	a, err := dsp.AnalyticSignal(noise)
	if err != nil {
		return nil, err
	}

	return dsp.Envelope(a), nil
}
