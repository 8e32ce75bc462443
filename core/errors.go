// SPDX-License-Identifier: MIT
// Package: meegsim/core
//
// errors.go — sentinel errors for the core data model.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with fmt.Errorf("...: %w", ErrX).
//   • Registration errors abort only the offending call; the Registry
//     stays valid afterwards.

package core

import "errors"

// ErrNoSourceSpaces indicates that a Registry was requested without any
// candidate source space to place sources in.
var ErrNoSourceSpaces = errors.New("core: no source spaces provided")

// ErrEmptySourceName indicates that a source was registered with an empty name.
var ErrEmptySourceName = errors.New("core: source name is empty")

// ErrDuplicateSourceName indicates that a source name is already taken.
// Usage: if errors.Is(err, ErrDuplicateSourceName) { /* rename the source */ }.
var ErrDuplicateSourceName = errors.New("core: duplicate source name")

// ErrUnknownSource indicates that a coupling edge references a name that was
// never registered as a source. Raised at edge-registration time, not
// deferred to simulation time.
var ErrUnknownSource = errors.New("core: unknown source referenced by coupling edge")

// ErrSelfCoupling indicates a coupling edge whose endpoints are the same
// source (A→A). Always rejected.
var ErrSelfCoupling = errors.New("core: self-coupling is not allowed")

// ErrMultipleParents indicates that a child source already has an incoming
// coupling edge. Each child's waveform is a deterministic function of exactly
// one parent, so fan-in is forbidden.
var ErrMultipleParents = errors.New("core: source already has a coupling parent")

// ErrVertexNotInSpace indicates a Location outside the candidate vertices of
// the registry's source spaces.
var ErrVertexNotInSpace = errors.New("core: vertex not present in source space")

// ErrNoWaveform indicates a source that carries neither a fixed waveform nor
// a waveform generator.
var ErrNoWaveform = errors.New("core: source has no waveform specification")

// ErrBadStd indicates a non-positive target standard deviation, or a
// per-vertex list whose length does not match the source's vertices.
var ErrBadStd = errors.New("core: invalid target standard deviation")

// ErrNotEnoughVertices indicates that a random-location selector was asked
// for more distinct vertices than the source spaces contain.
var ErrNotEnoughVertices = errors.New("core: not enough candidate vertices")
