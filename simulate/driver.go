// SPDX-License-Identifier: MIT
// Package: meegsim/simulate
//
// driver.go — Simulate: one pass from registered sources to a frozen
// Configuration.
//
// Ordering contract:
//   - the generation order comes from graph.Resolve, which breaks ties by
//     registration order;
//   - per-source randomness is keyed on the source NAME, so adding or
//     rewiring other sources never changes an existing source's waveform
//     under the same top seed.

package simulate

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/dsp"
	"github.com/ctrltz/meegsim/graph"
	"github.com/ctrltz/meegsim/snr"
	"github.com/ctrltz/meegsim/waveform"
)

// defaultNoiseWaveform backs noise groups that specify no waveform.
var defaultNoiseWaveform = waveform.OneOverF(1)

// entry is one realized source: the shared base waveform plus the per-vertex
// amplitude it is scaled by on export. Generated waveforms are stored at unit
// standard deviation; fixed waveforms without an explicit Std stay raw with
// all-ones amplitudes.
type entry struct {
	src  *core.Source
	locs []core.Location
	wave []float64
	std  []float64
}

// Simulate runs the driver once and freezes the result. sfreq is the sampling
// frequency in Hz, duration the length in seconds; together they must yield
// at least two samples. Any failure aborts the whole call.
func (sim *Simulator) Simulate(sfreq, duration float64, opts ...SimOption) (*Configuration, error) {
	cfg := simConfig{logger: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1. Sampling grid.
	if sfreq <= 0 || duration <= 0 {
		return nil, fmt.Errorf("%w: sfreq=%v duration=%v", ErrBadSampling, sfreq, duration)
	}
	nSamples := int(math.Round(sfreq * duration))
	if nSamples < 2 {
		return nil, fmt.Errorf("%w: %d samples", ErrBadSampling, nSamples)
	}
	times := dsp.Times(nSamples, sfreq)

	if sim.reg.NumSources() == 0 {
		return nil, ErrNoSources
	}

	// 2. Fail fast on missing prerequisites before any generation work.
	if (sim.reg.SNRRequested() || cfg.global != nil) && cfg.forward == nil {
		return nil, fmt.Errorf("%w: SNR adjustment requested", ErrForwardRequired)
	}
	plan, err := graph.Resolve(sim.reg.Names(), sim.reg.Edges())
	if err != nil {
		return nil, err
	}

	seed := cfg.seed
	if !cfg.seedSet {
		seed = uint64(time.Now().UnixNano())
	}
	cfg.logger.Debug("simulation started",
		"sources", sim.reg.NumSources(), "samples", nSamples, "seed", seed)

	// 3. Resolve per-simulation locations for selector-backed groups.
	locsByName, err := sim.resolveLocations(seed)
	if err != nil {
		return nil, err
	}

	// 4. Generate waveforms in plan order.
	entries := make(map[string]*entry, len(plan))
	for _, step := range plan {
		e, err := sim.realize(step, times, sfreq, seed, locsByName, entries)
		if err != nil {
			return nil, err
		}
		entries[step.Name] = e
	}

	// 5. Local SNR per opted-in source, then one global pass.
	order := sim.reg.Names()
	if sim.reg.SNRRequested() {
		if err := adjustLocalSNR(entries, order, cfg.forward, sfreq); err != nil {
			return nil, err
		}
	}
	if cfg.global != nil {
		if err := adjustGlobalSNR(entries, order, cfg.forward, sfreq, cfg.global, cfg.logger); err != nil {
			return nil, err
		}
	}

	cfg.logger.Debug("simulation finished")

	return &Configuration{
		sfreq:    sfreq,
		duration: duration,
		seed:     seed,
		times:    times,
		order:    order,
		entries:  entries,
		forward:  cfg.forward,
	}, nil
}

// resolveLocations maps every source name to its vertices for this run.
// Selector groups draw them with a seed derived from the group identity.
func (sim *Simulator) resolveLocations(seed uint64) (map[string][]core.Location, error) {
	out := make(map[string][]core.Location, sim.reg.NumSources())
	spaces := sim.reg.Spaces()

	for _, g := range sim.groups {
		if g.selector == nil {
			for _, name := range g.names {
				s, _ := sim.reg.Source(name)
				out[name] = s.Locations
			}

			continue
		}

		src := rand.NewSource(core.DeriveSeed(seed, g.id+"/locations"))
		locs, err := g.selector(spaces, src)
		if err != nil {
			return nil, fmt.Errorf("simulate: location selector for group %s: %w", g.id, err)
		}
		if len(locs) != len(g.names) {
			return nil, fmt.Errorf("%w: group %s wants %d, got %d",
				ErrLocationCount, g.id, len(g.names), len(locs))
		}
		for i, loc := range locs {
			if !spaces.Contains(loc) {
				return nil, fmt.Errorf("%w: %s", core.ErrVertexNotInSpace, loc)
			}
			out[g.names[i]] = []core.Location{loc}
		}
	}

	return out, nil
}

// realize produces the entry of one plan step: generator output for
// independent sources, coupling output for dependent ones.
func (sim *Simulator) realize(step graph.Step, times []float64, sfreq float64, seed uint64,
	locsByName map[string][]core.Location, entries map[string]*entry) (*entry, error) {

	s, _ := sim.reg.Source(step.Name)
	locs := locsByName[step.Name]
	src := rand.NewSource(core.DeriveSeed(seed, step.Name))
	n := len(times)

	var wave []float64
	normalize := true

	switch {
	case !step.Independent():
		parent, ok := entries[step.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: parent %q of %q not realized",
				core.ErrUnknownSource, step.Parent, step.Name)
		}
		edge, ok := sim.reg.EdgeTo(step.Name)
		if !ok {
			return nil, fmt.Errorf("%w: no edge into %q", core.ErrUnknownSource, step.Name)
		}
		out, err := edge.Couple(parent.wave, sfreq, src)
		if err != nil {
			return nil, fmt.Errorf("simulate: coupling %s→%s: %w", step.Parent, step.Name, err)
		}
		if len(out) != n {
			return nil, fmt.Errorf("%w: %s→%s returned %d samples, want %d",
				ErrCouplingShape, step.Parent, step.Name, len(out), n)
		}
		wave = out

	case s.Fixed != nil:
		if len(s.Fixed) != n {
			return nil, fmt.Errorf("%w: %q fixed waveform has %d samples, want %d",
				ErrWaveformShape, s.Name, len(s.Fixed), n)
		}
		wave = make([]float64, n)
		copy(wave, s.Fixed)
		// Fixed data is honored verbatim unless an explicit Std was set.
		normalize = s.Std != nil

	default:
		out, err := s.Waveform(1, times, src)
		if err != nil {
			return nil, fmt.Errorf("simulate: waveform of %q: %w", s.Name, err)
		}
		if len(out) != 1 || len(out[0]) != n {
			return nil, fmt.Errorf("%w: %q", ErrWaveformShape, s.Name)
		}
		wave = out[0]
	}

	if normalize {
		if err := dsp.NormalizeStd(wave, dsp.UnitStd); err != nil {
			return nil, fmt.Errorf("simulate: normalizing %q: %w", s.Name, err)
		}
	}

	std := make([]float64, len(locs))
	if s.Std != nil {
		if len(s.Std) != len(locs) {
			return nil, fmt.Errorf("%w: %q has %d Std values for %d vertices",
				core.ErrBadStd, s.Name, len(s.Std), len(locs))
		}
		copy(std, s.Std)
	} else {
		for i := range std {
			std[i] = 1
		}
	}

	return &entry{src: s, locs: locs, wave: wave, std: std}, nil
}

// adjustLocalSNR rescales every opted-in source so its band-limited power
// relative to the pooled noise power equals the squared target.
func adjustLocalSNR(entries map[string]*entry, order []string, fwd snr.Forward, sfreq float64) error {
	noiseData, noiseLocs := stack(entries, order, core.RoleNoise)
	if noiseData == nil {
		return fmt.Errorf("%w: local SNR", ErrNoNoiseSources)
	}

	for _, name := range order {
		e := entries[name]
		if e.src.SNR == nil {
			continue
		}

		band := snr.Band{FMin: e.src.SNR.FMin, FMax: e.src.SNR.FMax}
		noiseVar, err := snr.SensorSpaceVariance(noiseData, noiseLocs, fwd, sfreq, band, true)
		if err != nil {
			return fmt.Errorf("simulate: noise variance for %q: %w", name, err)
		}
		sigData, sigLocs := stackOne(e)
		sigVar, err := snr.SensorSpaceVariance(sigData, sigLocs, fwd, sfreq, band, true)
		if err != nil {
			return fmt.Errorf("simulate: signal variance for %q: %w", name, err)
		}
		factor, err := snr.AmplitudeFactor(sigVar, noiseVar, e.src.SNR.Target)
		if err != nil {
			return fmt.Errorf("simulate: local SNR for %q: %w", name, err)
		}
		floats.Scale(factor, e.std)
	}

	return nil
}

// adjustGlobalSNR rescales all signal sources at once so the summed signal
// power relative to the summed noise power equals the target. With no signal
// sources the adjustment is skipped with a warning.
func adjustGlobalSNR(entries map[string]*entry, order []string, fwd snr.Forward,
	sfreq float64, g *globalSNR, logger *slog.Logger) error {

	sigData, sigLocs := stack(entries, order, core.RoleSignal)
	if sigData == nil {
		logger.Warn("global SNR requested but no signal sources exist, skipping")

		return nil
	}
	noiseData, noiseLocs := stack(entries, order, core.RoleNoise)
	if noiseData == nil {
		return fmt.Errorf("%w: global SNR", ErrNoNoiseSources)
	}

	band := snr.Band{FMin: g.fmin, FMax: g.fmax}
	noiseVar, err := snr.SensorSpaceVariance(noiseData, noiseLocs, fwd, sfreq, band, true)
	if err != nil {
		return fmt.Errorf("simulate: global noise variance: %w", err)
	}
	sigVar, err := snr.SensorSpaceVariance(sigData, sigLocs, fwd, sfreq, band, true)
	if err != nil {
		return fmt.Errorf("simulate: global signal variance: %w", err)
	}
	factor, err := snr.GlobalFactor(sigVar, noiseVar, g.target)
	if err != nil {
		return fmt.Errorf("simulate: global SNR: %w", err)
	}

	for _, name := range order {
		e := entries[name]
		if e.src.Role == core.RoleSignal {
			floats.Scale(factor, e.std)
		}
	}

	return nil
}
