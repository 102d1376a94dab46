// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package pda

import "crypto/sha256"

// Hasher produces a 32-byte digest of the concatenation of parts.
// Implementations must be deterministic and safe for concurrent use.
type Hasher interface {
	Digest(parts ...[]byte) Address
}

// SHA256 is the runtime's address hash.
type SHA256 struct{}

// Digest implements Hasher.
func (SHA256) Digest(parts ...[]byte) Address {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Address
	copy(out[:], h.Sum(nil))
	return out
}
