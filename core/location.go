// SPDX-License-Identifier: MIT
// Package: meegsim/core
//
// location.go — built-in location selectors.
//
// Determinism policy (aligned with waveform generators): selectors draw
// only from the rand.Source they are handed, never from global state.

package core

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// RandomVertices returns a LocationSelector drawing n distinct candidate
// vertices uniformly at random. Panics if n < 1 (constructor validation);
// the returned selector fails with ErrNotEnoughVertices when the spaces
// hold fewer than n candidates.
func RandomVertices(n int) LocationSelector {
	if n < 1 {
		panic("core: RandomVertices(n<1)")
	}

	return func(spaces SourceSpaces, src rand.Source) ([]Location, error) {
		// Flatten the candidates in space order for a stable index mapping.
		all := make([]Location, 0, spaces.NumVertices())
		for si, vs := range spaces {
			for _, v := range vs {
				all = append(all, Location{Space: si, Vertex: v})
			}
		}
		if n > len(all) {
			return nil, fmt.Errorf("%w: requested %d of %d", ErrNotEnoughVertices, n, len(all))
		}

		// Draw n distinct indices via a seeded permutation.
		rng := rand.New(src)
		out := make([]Location, n)
		for i, idx := range rng.Perm(len(all))[:n] {
			out[i] = all[idx]
		}

		return out, nil
	}
}

// FixedVertices returns a LocationSelector that always yields the given
// locations. Useful when mixing fixed and random location specs in one API.
func FixedVertices(locs ...Location) LocationSelector {
	if len(locs) == 0 {
		panic("core: FixedVertices with no locations")
	}
	fixed := make([]Location, len(locs))
	copy(fixed, locs)

	return func(_ SourceSpaces, _ rand.Source) ([]Location, error) {
		out := make([]Location, len(fixed))
		copy(out, fixed)

		return out, nil
	}
}
