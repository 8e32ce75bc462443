// Package graph resolves a set of pairwise coupling constraints into a
// valid waveform-generation order.
//
// Resolve computes a linear ordering of source names such that every
// coupled source appears after its single parent (topological order over
// the coupling edges), or fails:
//   - ErrCycleDetected     — the edges form a cycle; the error names the
//     sources left on the cycle.
//   - ErrMultipleParents   — a child has two incoming edges (fan-in).
//   - ErrSelfCoupling      — an edge couples a source to itself.
//   - ErrUnknownSource     — an edge endpoint was never registered.
//   - ErrDuplicateName     — the same name appears twice in the input.
//
// Determinism: ties between independent sources are broken by registration
// order (the order of the names argument), so generation order — and hence
// the sequence of random draws — is reproducible regardless of map or set
// iteration order.
//
// Algorithm: Kahn's iterative removal of zero-in-degree nodes. With the
// fan-in constraint (in-degree ≤ 1 everywhere) the ready queue stays in
// registration-plus-discovery order, and after the queue drains any node
// with nonzero residual in-degree is on a cycle, which makes diagnostics
// exact.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package graph
