// Package core defines the data model of a simulation: sources, their
// locations and roles, coupling edges, and the mutable Registry that
// collects them during the builder phase.
//
// The Registry validates aggressively at registration time so that
// structural mistakes (duplicate names, self-coupling, a second parent
// for a child, unknown edge endpoints) surface on the offending call and
// never reach waveform generation. A failed registration leaves the
// Registry unchanged and otherwise valid.
//
// The package also hosts the seed-derivation contract (DeriveSeed): every
// source draws randomness from a sub-seed keyed on the top-level seed and
// the source's stable name, never on iteration or generation order, so
// adding or removing unrelated sources does not perturb existing ones.
//
// Errors:
//
//	ErrNoSourceSpaces      - the registry needs at least one source space.
//	ErrEmptySourceName     - a source name is the empty string.
//	ErrDuplicateSourceName - a source name is already registered.
//	ErrUnknownSource       - a coupling edge references an unregistered name.
//	ErrSelfCoupling        - a coupling edge with identical endpoints.
//	ErrMultipleParents     - a child already has an incoming coupling edge.
//	ErrVertexNotInSpace    - a location is outside the candidate vertices.
//	ErrNoWaveform          - a source has neither a fixed waveform nor a generator.
//	ErrBadStd              - a target standard deviation is not positive or
//	                         does not match the number of vertices.
//	ErrNotEnoughVertices   - a random-location request exceeds the candidates.
package core
