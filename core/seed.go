// SPDX-License-Identifier: MIT
// Package: meegsim/core
//
// seed.go — deterministic sub-seed derivation.
//
// Reproducibility contract: every source's random draws come from a
// sub-seed derived from the top-level seed and the source's stable NAME.
// The derivation is independent of registration order, generation order
// and map iteration order, so structural changes elsewhere in the
// configuration never reseed an existing source.

package core

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// DeriveSeed hashes the top-level seed together with a stable key (usually
// a source name) into an independent sub-seed.
func DeriveSeed(seed uint64, key string) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seed)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(key)

	return d.Sum64()
}
