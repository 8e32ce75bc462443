// SPDX-License-Identifier: MIT
// Package: meegsim/simulate
//
// options.go — functional options for Simulate and for sensor-space export.

package simulate

import (
	"io"
	"log/slog"

	"github.com/ctrltz/meegsim/snr"
)

// simConfig carries the resolved Simulate options.
type simConfig struct {
	seed    uint64
	seedSet bool
	forward snr.Forward
	global  *globalSNR
	logger  *slog.Logger
}

// globalSNR holds a requested whole-simulation SNR adjustment.
type globalSNR struct {
	target     float64
	fmin, fmax float64
}

// SimOption adjusts one aspect of a Simulate call.
// Option constructors panic on meaningless input; all runtime failures
// surface as errors from Simulate itself.
type SimOption func(*simConfig)

// WithSeed fixes the top-level random seed so the resulting Configuration
// is bit-identical across calls. Without it every call draws a fresh seed.
func WithSeed(seed uint64) SimOption {
	return func(c *simConfig) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithForward attaches a forward model, required for any SNR adjustment.
// Panics if fwd is nil.
func WithForward(fwd snr.Forward) SimOption {
	if fwd == nil {
		panic("simulate: WithForward requires a non-nil forward model")
	}
	return func(c *simConfig) { c.forward = fwd }
}

// WithGlobalSNR requests one whole-simulation SNR adjustment: the summed
// power of all signal sources relative to the summed power of all noise
// sources, measured in sensor space within [fmin, fmax].
// Panics if target is not positive or the band is not ordered.
func WithGlobalSNR(target, fmin, fmax float64) SimOption {
	if target <= 0 {
		panic("simulate: WithGlobalSNR requires a positive target")
	}
	if fmin <= 0 || fmax <= fmin {
		panic("simulate: WithGlobalSNR requires 0 < fmin < fmax")
	}
	return func(c *simConfig) {
		c.global = &globalSNR{target: target, fmin: fmin, fmax: fmax}
	}
}

// WithLogger routes driver progress and warnings to the given logger.
// The default logger discards everything. Panics if logger is nil.
func WithLogger(logger *slog.Logger) SimOption {
	if logger == nil {
		panic("simulate: WithLogger requires a non-nil logger")
	}
	return func(c *simConfig) { c.logger = logger }
}

// discardLogger is the default: driver progress goes nowhere.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SensorOption adjusts one aspect of a sensor-space export.
type SensorOption func(*sensorConfig)

type sensorConfig struct {
	noiseLevel float64
}

// WithSensorNoiseLevel mixes white measurement noise into the projected
// data: level 0 keeps the projection untouched, level 1 replaces it with
// noise entirely. The mix preserves the mean per-sensor variance.
// Panics if level is outside [0, 1].
func WithSensorNoiseLevel(level float64) SensorOption {
	if level < 0 || level > 1 {
		panic("simulate: WithSensorNoiseLevel requires a level in [0, 1]")
	}
	return func(c *sensorConfig) { c.noiseLevel = level }
}
