// SPDX-License-Identifier: MIT
// Package: meegsim/coupling
//
// vonmises.go — sampling from the von Mises circular distribution.
//
// Algorithm: Best & Fisher (1979) wrapped-Cauchy rejection sampling, the
// same scheme numpy and scipy use. kappa = 0 is handled separately as the
// uniform distribution on the circle.
//
// Complexity: O(1) expected time per draw (acceptance rate ≥ ~65%).

package coupling

import (
	"math"

	"golang.org/x/exp/rand"
)

// vonMisesSampler returns a draw function for VonMises(mu, kappa) angles.
// kappa must be non-negative (validated by the caller).
func vonMisesSampler(mu, kappa float64, rng *rand.Rand) func() float64 {
	// kappa = 0: uniform phase, no coupling.
	if kappa == 0 {
		return func() float64 {
			return mu + math.Pi*(2*rng.Float64()-1)
		}
	}

	// Best-Fisher setup constants.
	tau := 1 + math.Sqrt(1+4*kappa*kappa)
	rho := (tau - math.Sqrt(2*tau)) / (2 * kappa)
	r := (1 + rho*rho) / (2 * rho)

	return func() float64 {
		for {
			// Propose from the wrapped Cauchy envelope.
			z := math.Cos(math.Pi * rng.Float64())
			f := (1 + r*z) / (r + z)
			c := kappa * (r - f)

			// Two-stage acceptance test (cheap check first).
			u2 := rng.Float64()
			if c*(2-c)-u2 > 0 || math.Log(c/u2)+1-c >= 0 {
				// Random sign, shift by the mean direction.
				theta := math.Acos(f)
				if rng.Float64() < 0.5 {
					theta = -theta
				}

				return mu + theta
			}
		}
	}
}
