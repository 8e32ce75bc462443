// SPDX-License-Identifier: MIT
// Package: meegsim/core
//
// registry.go — the mutable builder-phase container for sources and edges.
//
// Contract:
//   - AddSource/AddCoupling validate and reject invalid input immediately;
//     a rejected call leaves the Registry unchanged.
//   - The Registry owns Source and Edge records exclusively until the
//     simulation driver borrows them read-only.
//   - Iteration helpers (Names, Edges) return copies in registration order,
//     the caller-visible deterministic tie-break key for scheduling.

package core

import "fmt"

// Registry accumulates sources and coupling edges during the builder phase.
// It is not safe for concurrent use; the simulation pipeline is synchronous
// by design.
type Registry struct {
	spaces  SourceSpaces
	names   []string // registration order
	sources map[string]*Source
	edges   []Edge
	parent  map[string]string // child -> parent, fan-in guard
}

// NewRegistry creates an empty Registry over the given candidate spaces.
// Returns ErrNoSourceSpaces if spaces has no vertices.
func NewRegistry(spaces SourceSpaces) (*Registry, error) {
	if spaces.NumVertices() == 0 {
		return nil, ErrNoSourceSpaces
	}

	return &Registry{
		spaces:  spaces,
		sources: make(map[string]*Source),
		parent:  make(map[string]string),
	}, nil
}

// Spaces returns the candidate source spaces the registry was built over.
func (r *Registry) Spaces() SourceSpaces { return r.spaces }

// AddSource registers one source. Validation order:
//  1. non-empty, unused name;
//  2. a waveform specification (fixed array or generator) is present;
//  3. all explicit locations address candidate vertices;
//  4. Std values, if set, are positive and match the vertex count;
//  5. SNR target, if set, is positive with a valid band.
func (r *Registry) AddSource(s Source) error {
	// 1. Identity checks.
	if s.Name == "" {
		return ErrEmptySourceName
	}
	if _, taken := r.sources[s.Name]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateSourceName, s.Name)
	}

	// 2. Exactly one waveform specification.
	if s.Waveform == nil && s.Fixed == nil {
		return fmt.Errorf("%w: %q", ErrNoWaveform, s.Name)
	}

	// 3. Explicit locations must exist in the spaces.
	for _, loc := range s.Locations {
		if !r.spaces.Contains(loc) {
			return fmt.Errorf("%w: %s", ErrVertexNotInSpace, loc)
		}
	}

	// 4. Standard-deviation spec.
	if s.Std != nil {
		if len(s.Locations) > 0 && len(s.Std) != len(s.Locations) {
			return fmt.Errorf("%w: %d values for %d vertices",
				ErrBadStd, len(s.Std), len(s.Locations))
		}
		for _, sd := range s.Std {
			if sd <= 0 {
				return fmt.Errorf("%w: %v", ErrBadStd, sd)
			}
		}
	}

	// 5. Local SNR spec.
	if s.SNR != nil {
		if s.SNR.Target <= 0 || s.SNR.FMin < 0 || s.SNR.FMax <= s.SNR.FMin {
			return fmt.Errorf("core: invalid SNR spec for %q: target=%v band=[%v, %v]",
				s.Name, s.SNR.Target, s.SNR.FMin, s.SNR.FMax)
		}
	}

	// Commit: store a copy so later caller mutations cannot leak in.
	stored := s
	r.sources[s.Name] = &stored
	r.names = append(r.names, s.Name)

	return nil
}

// AddCoupling registers one directed coupling edge. Self-coupling, unknown
// endpoints and fan-in (a second parent for the same child) are rejected
// here, at registration time.
func (r *Registry) AddCoupling(e Edge) error {
	if e.From == e.To {
		return fmt.Errorf("%w: %q", ErrSelfCoupling, e.From)
	}
	if _, ok := r.sources[e.From]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, e.From)
	}
	if _, ok := r.sources[e.To]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, e.To)
	}
	if e.Couple == nil {
		return fmt.Errorf("core: coupling %s→%s has no generator", e.From, e.To)
	}
	if prev, ok := r.parent[e.To]; ok {
		return fmt.Errorf("%w: %q already coupled to %q, cannot add parent %q",
			ErrMultipleParents, e.To, prev, e.From)
	}

	r.parent[e.To] = e.From
	r.edges = append(r.edges, e)

	return nil
}

// Names returns all source names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)

	return out
}

// Source looks up a registered source by name.
func (r *Registry) Source(name string) (*Source, bool) {
	s, ok := r.sources[name]

	return s, ok
}

// Edges returns all coupling edges in registration order.
func (r *Registry) Edges() []Edge {
	out := make([]Edge, len(r.edges))
	copy(out, r.edges)

	return out
}

// EdgeTo returns the single incoming edge of a child source, if any.
func (r *Registry) EdgeTo(child string) (Edge, bool) {
	parent, ok := r.parent[child]
	if !ok {
		return Edge{}, false
	}
	for _, e := range r.edges {
		if e.To == child && e.From == parent {
			return e, true
		}
	}

	return Edge{}, false
}

// NumSources returns the number of registered sources.
func (r *Registry) NumSources() int { return len(r.names) }

// SNRRequested reports whether any source carries a local SNR target, in
// which case a forward model is mandatory for simulation.
func (r *Registry) SNRRequested() bool {
	for _, s := range r.sources {
		if s.SNR != nil {
			return true
		}
	}

	return false
}
