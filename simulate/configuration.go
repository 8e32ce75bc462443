// SPDX-License-Identifier: MIT
// Package: meegsim/simulate
//
// configuration.go — the immutable result of one Simulate call and its
// export helpers (source space and sensor space).

package simulate

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/snr"
)

// Configuration is one frozen realization: every source's waveform, locations
// and amplitudes under a single top-level seed. All accessors return copies;
// a Configuration is safe for concurrent reads.
type Configuration struct {
	sfreq    float64
	duration float64
	seed     uint64
	times    []float64
	order    []string
	entries  map[string]*entry
	forward  snr.Forward
}

// Names returns all source names in registration order.
func (c *Configuration) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)

	return out
}

// Seed returns the top-level seed that produced this realization.
func (c *Configuration) Seed() uint64 { return c.seed }

// SampleRate returns the sampling frequency in Hz.
func (c *Configuration) SampleRate() float64 { return c.sfreq }

// Duration returns the simulated length in seconds.
func (c *Configuration) Duration() float64 { return c.duration }

// Times returns the time points in seconds.
func (c *Configuration) Times() []float64 {
	out := make([]float64, len(c.times))
	copy(out, c.times)

	return out
}

// Waveform returns the named source's time course at the amplitude of its
// first vertex. Returns ErrUnknownName for names no source carries.
func (c *Configuration) Waveform(name string) ([]float64, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	out := make([]float64, len(e.wave))
	amp := 1.0
	if len(e.std) > 0 {
		amp = e.std[0]
	}
	for i, v := range e.wave {
		out[i] = amp * v
	}

	return out, nil
}

// Locations returns the named source's realized vertices.
func (c *Configuration) Locations(name string) ([]core.Location, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	out := make([]core.Location, len(e.locs))
	copy(out, e.locs)

	return out, nil
}

// Role returns the named source's role.
func (c *Configuration) Role(name string) (core.Role, error) {
	e, ok := c.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	return e.src.Role, nil
}

// SourceData exports the full simulation in source space: one row per
// distinct vertex (in first-appearance order across sources registered
// earlier first), with co-located sources summed.
func (c *Configuration) SourceData() (*mat.Dense, []core.Location) {
	var vertexOrder []core.Location
	rowOf := make(map[core.Location]int)

	for _, name := range c.order {
		for _, loc := range c.entries[name].locs {
			if _, seen := rowOf[loc]; !seen {
				rowOf[loc] = len(vertexOrder)
				vertexOrder = append(vertexOrder, loc)
			}
		}
	}

	data := mat.NewDense(len(vertexOrder), len(c.times), nil)
	for _, name := range c.order {
		e := c.entries[name]
		for j, loc := range e.locs {
			row := rowOf[loc]
			for t, v := range e.wave {
				data.Set(row, t, data.At(row, t)+e.std[j]*v)
			}
		}
	}

	return data, vertexOrder
}

// SensorData projects the simulation through a forward model. A nil fwd
// falls back to the forward passed to Simulate; if neither is available the
// export fails with ErrForwardRequired.
//
// WithSensorNoiseLevel mixes in white measurement noise drawn from a seed
// derived from the configuration seed, keeping the export reproducible.
func (c *Configuration) SensorData(fwd snr.Forward, opts ...SensorOption) (*mat.Dense, error) {
	cfg := sensorConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if fwd == nil {
		fwd = c.forward
	}
	if fwd == nil {
		return nil, fmt.Errorf("%w: sensor-space export", ErrForwardRequired)
	}

	data, locs := c.SourceData()
	projected, err := fwd.Project(locs, data)
	if err != nil {
		return nil, fmt.Errorf("simulate: sensor projection: %w", err)
	}
	if cfg.noiseLevel == 0 {
		return projected, nil
	}

	return mixSensorNoise(projected, cfg.noiseLevel, c.seed)
}

// mixSensorNoise blends white gaussian noise into the projected data. The
// noise is scaled to the brain data's mean per-sensor variance, so the blend
// sqrt(1-level)*brain + sqrt(level)*noise preserves total power on average.
func mixSensorNoise(projected *mat.Dense, level float64, seed uint64) (*mat.Dense, error) {
	nSensors, nTimes := projected.Dims()

	var meanVar float64
	for i := 0; i < nSensors; i++ {
		meanVar += stat.Variance(projected.RawRowView(i), nil)
	}
	meanVar /= float64(nSensors)

	normal := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewSource(core.DeriveSeed(seed, "sensor-noise")),
	}
	noise := mat.NewDense(nSensors, nTimes, nil)
	for i := 0; i < nSensors; i++ {
		for t := 0; t < nTimes; t++ {
			noise.Set(i, t, normal.Rand())
		}
	}

	var noiseVar float64
	for i := 0; i < nSensors; i++ {
		noiseVar += stat.Variance(noise.RawRowView(i), nil)
	}
	noiseVar /= float64(nSensors)
	if noiseVar > 0 && meanVar > 0 {
		noise.Scale(math.Sqrt(meanVar/noiseVar), noise)
	}

	out := mat.NewDense(nSensors, nTimes, nil)
	out.Scale(math.Sqrt(1-level), projected)
	noise.Scale(math.Sqrt(level), noise)
	out.Add(out, noise)

	return out, nil
}

// stack builds the stacked source-space data of all sources with the given
// role: one row per vertex per source, duplicates kept (projection is linear,
// so stacked rows and summed rows yield identical sensor data). Returns nil
// when no source has the role.
func stack(entries map[string]*entry, order []string, role core.Role) (*mat.Dense, []core.Location) {
	var names []string
	rows := 0
	for _, name := range order {
		e := entries[name]
		if e.src.Role == role {
			names = append(names, name)
			rows += len(e.locs)
		}
	}
	if rows == 0 {
		return nil, nil
	}

	nTimes := len(entries[names[0]].wave)
	data := mat.NewDense(rows, nTimes, nil)
	locs := make([]core.Location, 0, rows)
	r := 0
	for _, name := range names {
		e := entries[name]
		for j, loc := range e.locs {
			for t, v := range e.wave {
				data.Set(r, t, e.std[j]*v)
			}
			locs = append(locs, loc)
			r++
		}
	}

	return data, locs
}

// stackOne builds the stacked data of a single source.
func stackOne(e *entry) (*mat.Dense, []core.Location) {
	data := mat.NewDense(len(e.locs), len(e.wave), nil)
	locs := make([]core.Location, len(e.locs))
	for j, loc := range e.locs {
		for t, v := range e.wave {
			data.Set(j, t, e.std[j]*v)
		}
		locs[j] = loc
	}

	return data, locs
}
