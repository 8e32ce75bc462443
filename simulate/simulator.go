// SPDX-License-Identifier: MIT
// Package: meegsim/simulate
//
// simulator.go — the builder half of the package: source group specs and the
// Simulator that accumulates them.
//
// A group registers one or more sources that share a waveform generator and,
// optionally, a location selector. The selector is re-run per simulation with
// a seed derived from the group identity, so a Simulator can be reused for
// many independent realizations.

package simulate

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ctrltz/meegsim/core"
)

// probeSeed feeds the registration-time dry run of a location selector, used
// only to learn how many sources the group contributes.
const probeSeed uint64 = 0

// PointSpec describes a group of point sources: one vertex and one waveform
// per source. Exactly one of Locations and Select must be set, and exactly
// one of Waveform and Fixed.
type PointSpec struct {
	// Locations pins each source to an explicit vertex.
	Locations []core.Location

	// Select draws the vertices anew for every simulation.
	Select core.LocationSelector

	// Waveform generates each source's activity independently.
	Waveform core.WaveformFunc

	// Fixed supplies one ready-made waveform per source, used verbatim.
	Fixed [][]float64

	// Std holds per-source amplitude targets: nil for the default (unit for
	// generated waveforms, unscaled for fixed ones), one value to broadcast,
	// or one value per source.
	Std []float64

	// SNR holds per-source local SNR targets with the same broadcast rules
	// as Std. Zero disables the adjustment for that source.
	SNR []float64

	// FMin and FMax delimit the band (Hz) for all SNR targets in the group.
	FMin, FMax float64

	// Names assigns explicit source names; empty means auto-generated.
	Names []string
}

// PatchSpec describes a group of patch sources: each patch spans several
// vertices that share one waveform. Locations are always explicit.
type PatchSpec struct {
	// Patches lists the vertices of each patch source.
	Patches [][]core.Location

	// Waveform generates each patch's shared activity.
	Waveform core.WaveformFunc

	// Fixed supplies one ready-made waveform per patch, used verbatim.
	Fixed [][]float64

	// Std holds per-patch amplitude targets (broadcast over the patch's
	// vertices): nil, one value, or one value per patch.
	Std []float64

	// VertexStd overrides Std with one target per vertex of each patch.
	VertexStd [][]float64

	// SNR holds per-patch local SNR targets; zero disables.
	SNR []float64

	// FMin and FMax delimit the band (Hz) for all SNR targets in the group.
	FMin, FMax float64

	// Names assigns explicit patch names; empty means auto-generated.
	Names []string
}

// NoiseSpec describes a group of background noise sources. Noise sources are
// pooled as the reference when local or global SNR is adjusted, and never
// carry SNR targets of their own.
type NoiseSpec struct {
	// Locations pins each noise source to an explicit vertex.
	Locations []core.Location

	// Select draws the vertices anew for every simulation.
	Select core.LocationSelector

	// Waveform generates the noise activity; nil selects 1/f noise with
	// unit slope.
	Waveform core.WaveformFunc

	// Fixed supplies one ready-made waveform per source, used verbatim.
	Fixed [][]float64

	// Std holds per-source amplitude targets with broadcast rules as above.
	Std []float64

	// Names assigns explicit source names; empty means auto-generated.
	Names []string
}

// Coupling declares one directed edge for SetCouplings.
type Coupling struct {
	From, To string
	Couple   core.CouplingFunc
}

// group ties a set of registered source names to the location selector that
// resolves their vertices at simulation time. Groups with explicit locations
// carry a nil selector.
type group struct {
	id       string
	names    []string
	selector core.LocationSelector
}

// Simulator accumulates sources and coupling edges. The zero value is not
// usable; construct with New. Not safe for concurrent use.
type Simulator struct {
	reg     *core.Registry
	groups  []group
	nSignal int // signal groups added so far, for auto-naming
	nNoise  int // noise groups added so far, for auto-naming
}

// New creates a Simulator over the given candidate source spaces.
// Returns core.ErrNoSourceSpaces if spaces has no vertices.
func New(spaces core.SourceSpaces) (*Simulator, error) {
	reg, err := core.NewRegistry(spaces)
	if err != nil {
		return nil, err
	}

	return &Simulator{reg: reg}, nil
}

// AddPointSources registers a group of point sources and returns their names
// in registration order. A rejected spec leaves the Simulator unchanged.
func (sim *Simulator) AddPointSources(spec PointSpec) ([]string, error) {
	locs, selector, err := sim.resolveGroupLocations(spec.Locations, spec.Select)
	if err != nil {
		return nil, err
	}
	n := len(locs)

	if (spec.Waveform == nil) == (spec.Fixed == nil) {
		return nil, ErrWaveformSpec
	}

	names, err := groupNames(spec.Names, fmt.Sprintf("sg%d", sim.nSignal), n)
	if err != nil {
		return nil, err
	}
	stds, err := broadcast(spec.Std, n, "Std")
	if err != nil {
		return nil, err
	}
	snrs, err := snrSpecs(spec.SNR, n, spec.FMin, spec.FMax)
	if err != nil {
		return nil, err
	}
	fixed, err := fixedRows(spec.Fixed, n)
	if err != nil {
		return nil, err
	}

	sources := make([]core.Source, n)
	for i := range sources {
		sources[i] = core.Source{
			Name:     names[i],
			Role:     core.RoleSignal,
			Waveform: spec.Waveform,
			SNR:      snrs[i],
		}
		if selector == nil {
			sources[i].Locations = []core.Location{locs[i]}
		}
		if fixed != nil {
			sources[i].Fixed = fixed[i]
		}
		if stds != nil {
			sources[i].Std = []float64{stds[i]}
		}
	}

	if err := sim.commit(fmt.Sprintf("sg%d", sim.nSignal), sources, selector); err != nil {
		return nil, err
	}
	sim.nSignal++

	return names, nil
}

// AddPatchSources registers a group of patch sources and returns their names
// in registration order.
func (sim *Simulator) AddPatchSources(spec PatchSpec) ([]string, error) {
	n := len(spec.Patches)
	if n == 0 {
		return nil, fmt.Errorf("%w: no patches", ErrLocationSpec)
	}
	for _, patch := range spec.Patches {
		if len(patch) == 0 {
			return nil, fmt.Errorf("%w: empty patch", ErrLocationSpec)
		}
	}

	if (spec.Waveform == nil) == (spec.Fixed == nil) {
		return nil, ErrWaveformSpec
	}

	names, err := groupNames(spec.Names, fmt.Sprintf("sg%d", sim.nSignal), n)
	if err != nil {
		return nil, err
	}
	stds, err := broadcast(spec.Std, n, "Std")
	if err != nil {
		return nil, err
	}
	if spec.VertexStd != nil && len(spec.VertexStd) != n {
		return nil, fmt.Errorf("%w: %d VertexStd rows for %d patches",
			ErrSpecLength, len(spec.VertexStd), n)
	}
	snrs, err := snrSpecs(spec.SNR, n, spec.FMin, spec.FMax)
	if err != nil {
		return nil, err
	}
	fixed, err := fixedRows(spec.Fixed, n)
	if err != nil {
		return nil, err
	}

	sources := make([]core.Source, n)
	for i := range sources {
		sources[i] = core.Source{
			Name:      names[i],
			Role:      core.RoleSignal,
			Locations: spec.Patches[i],
			Waveform:  spec.Waveform,
			SNR:       snrs[i],
		}
		if fixed != nil {
			sources[i].Fixed = fixed[i]
		}
		switch {
		case spec.VertexStd != nil:
			sources[i].Std = spec.VertexStd[i]
		case stds != nil:
			sd := make([]float64, len(spec.Patches[i]))
			for j := range sd {
				sd[j] = stds[i]
			}
			sources[i].Std = sd
		}
	}

	if err := sim.commit(fmt.Sprintf("sg%d", sim.nSignal), sources, nil); err != nil {
		return nil, err
	}
	sim.nSignal++

	return names, nil
}

// AddNoiseSources registers a group of background noise sources and returns
// their names in registration order. Without an explicit waveform the group
// produces 1/f noise with unit slope.
func (sim *Simulator) AddNoiseSources(spec NoiseSpec) ([]string, error) {
	locs, selector, err := sim.resolveGroupLocations(spec.Locations, spec.Select)
	if err != nil {
		return nil, err
	}
	n := len(locs)

	if spec.Waveform != nil && spec.Fixed != nil {
		return nil, ErrWaveformSpec
	}

	names, err := groupNames(spec.Names, fmt.Sprintf("ng%d", sim.nNoise), n)
	if err != nil {
		return nil, err
	}
	stds, err := broadcast(spec.Std, n, "Std")
	if err != nil {
		return nil, err
	}
	fixed, err := fixedRows(spec.Fixed, n)
	if err != nil {
		return nil, err
	}

	wf := spec.Waveform
	if wf == nil && fixed == nil {
		wf = defaultNoiseWaveform
	}

	sources := make([]core.Source, n)
	for i := range sources {
		sources[i] = core.Source{
			Name:     names[i],
			Role:     core.RoleNoise,
			Waveform: wf,
		}
		if selector == nil {
			sources[i].Locations = []core.Location{locs[i]}
		}
		if fixed != nil {
			sources[i].Fixed = fixed[i]
		}
		if stds != nil {
			sources[i].Std = []float64{stds[i]}
		}
	}

	if err := sim.commit(fmt.Sprintf("ng%d", sim.nNoise), sources, selector); err != nil {
		return nil, err
	}
	sim.nNoise++

	return names, nil
}

// SetCoupling declares that the child's waveform is derived from the parent's
// by fn. Self-coupling, unknown names and a second parent for the same child
// are rejected immediately.
func (sim *Simulator) SetCoupling(parent, child string, fn core.CouplingFunc) error {
	return sim.reg.AddCoupling(core.Edge{From: parent, To: child, Couple: fn})
}

// SetCouplings declares several edges at once, stopping at the first invalid
// one. Edges declared before the failure stay registered.
func (sim *Simulator) SetCouplings(edges []Coupling) error {
	for _, e := range edges {
		if err := sim.SetCoupling(e.From, e.To, e.Couple); err != nil {
			return err
		}
	}

	return nil
}

// NumSources returns the number of registered sources.
func (sim *Simulator) NumSources() int { return sim.reg.NumSources() }

// resolveGroupLocations enforces the Locations/Select exclusivity and, for
// selector groups, dry-runs the selector to learn the source count.
func (sim *Simulator) resolveGroupLocations(explicit []core.Location, sel core.LocationSelector) ([]core.Location, core.LocationSelector, error) {
	switch {
	case len(explicit) > 0 && sel != nil:
		return nil, nil, ErrLocationSpec
	case len(explicit) > 0:
		return explicit, nil, nil
	case sel != nil:
		probe, err := sel(sim.reg.Spaces(), rand.NewSource(probeSeed))
		if err != nil {
			return nil, nil, fmt.Errorf("simulate: location selector probe: %w", err)
		}
		if len(probe) == 0 {
			return nil, nil, fmt.Errorf("%w: selector returned no locations", ErrLocationSpec)
		}

		return probe, sel, nil
	default:
		return nil, nil, ErrLocationSpec
	}
}

// commit registers all sources of a group atomically with respect to the
// Simulator: on any failure the already-added sources of this group are not
// visible via groups, and the error reports which source failed.
func (sim *Simulator) commit(groupID string, sources []core.Source, sel core.LocationSelector) error {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		if err := sim.reg.AddSource(s); err != nil {
			return err
		}
		names = append(names, s.Name)
	}

	sim.groups = append(sim.groups, group{id: groupID, names: names, selector: sel})

	return nil
}

// groupNames validates explicit names or derives "<prefix>-s<i>" ones.
func groupNames(explicit []string, prefix string, n int) ([]string, error) {
	if explicit != nil {
		if len(explicit) != n {
			return nil, fmt.Errorf("%w: %d names for %d sources",
				ErrSpecLength, len(explicit), n)
		}
		out := make([]string, n)
		copy(out, explicit)

		return out, nil
	}

	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-s%d", prefix, i)
	}

	return out, nil
}

// broadcast expands a nil / scalar / per-source list to exactly n values.
func broadcast(vals []float64, n int, field string) ([]float64, error) {
	switch len(vals) {
	case 0:
		return nil, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = vals[0]
		}

		return out, nil
	case n:
		out := make([]float64, n)
		copy(out, vals)

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d %s values for %d sources",
			ErrSpecLength, len(vals), field, n)
	}
}

// snrSpecs builds per-source SNR specs from a broadcastable target list.
// A zero target disables the adjustment for that source.
func snrSpecs(targets []float64, n int, fmin, fmax float64) ([]*core.SNRSpec, error) {
	out := make([]*core.SNRSpec, n)
	vals, err := broadcast(targets, n, "SNR")
	if err != nil {
		return nil, err
	}
	if vals == nil {
		return out, nil
	}

	for i, t := range vals {
		if t == 0 {
			continue
		}
		if fmin <= 0 || fmax <= fmin {
			return nil, fmt.Errorf("%w: band=[%v, %v]", ErrSNRBandRequired, fmin, fmax)
		}
		out[i] = &core.SNRSpec{Target: t, FMin: fmin, FMax: fmax}
	}

	return out, nil
}

// fixedRows validates a user-supplied waveform block: one row per source.
// Row length against the sample count is checked at simulation time, when
// the duration is known.
func fixedRows(rows [][]float64, n int) ([][]float64, error) {
	if rows == nil {
		return nil, nil
	}
	if len(rows) != n {
		return nil, fmt.Errorf("%w: %d fixed waveforms for %d sources",
			ErrSpecLength, len(rows), n)
	}

	return rows, nil
}
