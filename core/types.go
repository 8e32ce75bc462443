// SPDX-License-Identifier: MIT
// Package: meegsim/core
//
// types.go — Role, Location, Source, Edge and the generator contracts.
//
// Generator contracts are plain function types (structural typing, not
// inheritance): any function with a matching signature is accepted. The
// engine validates only output length/shape, nothing else.

package core

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Role classifies a source for SNR-ratio computation only; it has no effect
// on generation mechanics.
type Role int

const (
	// RoleSignal marks a source whose power counts toward the signal side of
	// SNR ratios.
	RoleSignal Role = iota

	// RoleNoise marks a background source; noise sources are pooled when
	// local or global SNR is adjusted.
	RoleNoise
)

// String returns "signal" or "noise".
func (r Role) String() string {
	if r == RoleNoise {
		return "noise"
	}

	return "signal"
}

// Location addresses one candidate vertex: the index of a source space and
// the vertex identifier within that space. The core never interprets
// geometry; it only needs count and identity.
type Location struct {
	// Space is the index of the source space (e.g., hemisphere).
	Space int

	// Vertex is the vertex identifier within the space.
	Vertex int
}

// String renders the location as "src[i]-v".
func (l Location) String() string {
	return fmt.Sprintf("src[%d]-%d", l.Space, l.Vertex)
}

// SourceSpaces lists the candidate vertex identifiers per source space.
// It is an opaque handle: the simulation core uses it only to validate
// locations and to draw random ones.
type SourceSpaces [][]int

// NumVertices returns the total number of candidate vertices.
func (s SourceSpaces) NumVertices() int {
	total := 0
	for _, vs := range s {
		total += len(vs)
	}

	return total
}

// Contains reports whether loc addresses a candidate vertex.
func (s SourceSpaces) Contains(loc Location) bool {
	if loc.Space < 0 || loc.Space >= len(s) {
		return false
	}
	for _, v := range s[loc.Space] {
		if v == loc.Vertex {
			return true
		}
	}

	return false
}

// WaveformFunc generates nSeries base waveforms over the given time points.
// It must be deterministic for a fixed src and must not touch any global
// random state. The result has shape [nSeries][len(times)].
type WaveformFunc func(nSeries int, times []float64, src rand.Source) ([][]float64, error)

// CouplingFunc derives a new waveform from a finished parent waveform under
// a target phase relationship. The result must have the same length as the
// parent. sfreq is the sampling frequency in Hz.
type CouplingFunc func(parent []float64, sfreq float64, src rand.Source) ([]float64, error)

// LocationSelector picks source locations from the candidate spaces. It is
// re-run per simulation with a derived seed, so configurations may differ in
// location while staying reproducible for a fixed top-level seed.
type LocationSelector func(spaces SourceSpaces, src rand.Source) ([]Location, error)

// SNRSpec is an opt-in local SNR target for one source: after adjustment,
// the source's band-limited sensor power relative to the pooled noise power
// equals Target squared.
type SNRSpec struct {
	// Target is the desired amplitude SNR (> 0).
	Target float64

	// FMin and FMax delimit the frequency band (Hz) used for the power
	// estimate. Both are required.
	FMin, FMax float64
}

// Source is one named unit of simulated activity. Identity (Name) and Role
// are immutable after registration; the realized waveform lives in the
// simulation result, never here.
type Source struct {
	// Name uniquely identifies the source within a Registry.
	Name string

	// Role tags the source as signal or noise.
	Role Role

	// Locations holds the source's vertices. Point sources have exactly one;
	// patch sources have several sharing a single waveform. Empty when the
	// owning group resolves locations per simulation via a selector.
	Locations []Location

	// Waveform generates the source's activity. Nil when Fixed is set.
	Waveform WaveformFunc

	// Fixed is a user-supplied waveform used verbatim (no normalization
	// unless Std is set explicitly). Nil when Waveform is set.
	Fixed []float64

	// Std holds the per-vertex target standard deviations. A nil value means
	// "base unit" (1.0) for generated waveforms and "leave unscaled" for
	// fixed ones. Length must match the number of vertices once locations
	// are known.
	Std []float64

	// SNR is the optional local SNR target; nil disables the adjustment.
	SNR *SNRSpec
}

// Edge is a directed coupling constraint: To's waveform is derived from
// From's finished waveform by Couple. Never mutated after registration.
type Edge struct {
	// From is the parent source name.
	From string

	// To is the child source name.
	To string

	// Couple produces the child waveform from the parent waveform.
	Couple CouplingFunc
}
