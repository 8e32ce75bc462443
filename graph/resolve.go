// SPDX-License-Identifier: MIT
// Package: meegsim/graph
//
// resolve.go — coupling-graph validation and generation-order planning.
//
// Contract:
//   - Resolve(names, edges) returns a Plan covering every name exactly once,
//     with each edge's parent strictly before its child, or an error.
//   - Structural validation (fan-in, self-loops, unknown endpoints) runs
//     BEFORE ordering; cycle detection runs during ordering. No waveform
//     generation can start on an invalid graph.

package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ctrltz/meegsim/core"
)

// Sentinel errors for coupling-graph resolution.
var (
	// ErrCycleDetected indicates the coupling edges form a cycle. The wrapped
	// message names the sources left on the cyclic set.
	ErrCycleDetected = errors.New("graph: coupling cycle detected")

	// ErrMultipleParents indicates a child with two incoming coupling edges.
	ErrMultipleParents = errors.New("graph: source has multiple coupling parents")

	// ErrSelfCoupling indicates an edge whose endpoints coincide.
	ErrSelfCoupling = errors.New("graph: self-coupling is not allowed")

	// ErrUnknownSource indicates an edge endpoint absent from the name list.
	ErrUnknownSource = errors.New("graph: coupling edge references unknown source")

	// ErrDuplicateName indicates the same source name appears twice.
	ErrDuplicateName = errors.New("graph: duplicate source name")
)

// Step is one scheduled generation: an independent source draws from its
// base waveform generator; a dependent one consumes its parent's finished
// waveform through the associated coupling generator.
type Step struct {
	// Name of the source to generate.
	Name string

	// Parent is the coupling parent's name; empty for independent sources.
	Parent string
}

// Independent reports whether the step uses a base generator.
func (s Step) Independent() bool { return s.Parent == "" }

// Plan is a generation order: every step's parent appears earlier.
type Plan []Step

// Resolve validates the coupling structure over the given source names and
// produces a generation order. names must be in registration order; it is
// the deterministic tie-break key for independent sources.
func Resolve(names []string, edges []core.Edge) (Plan, error) {
	// 1. Index the nodes; registration order is positional.
	pos := make(map[string]int, len(names))
	for i, name := range names {
		if _, dup := pos[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		pos[name] = i
	}

	// 2. Structural validation before any ordering work.
	parent := make(map[string]string, len(edges))
	children := make(map[string][]string, len(edges))
	for _, e := range edges {
		if e.From == e.To {
			return nil, fmt.Errorf("%w: %q", ErrSelfCoupling, e.From)
		}
		if _, ok := pos[e.From]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, e.From)
		}
		if _, ok := pos[e.To]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, e.To)
		}
		if prev, ok := parent[e.To]; ok {
			return nil, fmt.Errorf("%w: %q has parents %q and %q",
				ErrMultipleParents, e.To, prev, e.From)
		}
		parent[e.To] = e.From
		children[e.From] = append(children[e.From], e.To)
	}

	// 3. Kahn's algorithm. Roots enter the queue in registration order;
	//    each child becomes ready the moment its single parent is emitted.
	queue := make([]string, 0, len(names))
	for _, name := range names {
		if _, coupled := parent[name]; !coupled {
			queue = append(queue, name)
		}
	}

	plan := make(Plan, 0, len(names))
	for head := 0; head < len(queue); head++ {
		name := queue[head]
		plan = append(plan, Step{Name: name, Parent: parent[name]})
		queue = append(queue, children[name]...)
	}

	// 4. A short plan means the queue drained early: the remaining nodes
	//    (those with an unemitted parent) are exactly the cyclic set.
	if len(plan) < len(names) {
		emitted := make(map[string]bool, len(plan))
		for _, step := range plan {
			emitted[step.Name] = true
		}
		var cyclic []string
		for _, name := range names {
			if !emitted[name] {
				cyclic = append(cyclic, name)
			}
		}

		return nil, fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(cyclic, ", "))
	}

	return plan, nil
}
