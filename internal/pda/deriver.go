// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package pda derives and verifies program-derived addresses: deterministic
// account addresses computed from a list of seeds, a bump byte and the
// owning program id, forced off the ed25519 curve so that no private key can
// exist for them.
//
// The preimage layout, the bump scan order (255 down to 0) and the curve test
// must match the on-chain runtime byte for byte. A derivation that differs in
// any of them produces a different address, which the program later rejects
// as a seeds constraint violation.
package pda

import "fmt"

const (
	// MaxSeeds is the runtime limit on seeds per address, bump included.
	MaxSeeds = 16

	// MaxSeedLen is the runtime limit on a single encoded seed.
	MaxSeedLen = 32

	// Marker is the domain separation suffix appended after the program id.
	Marker = "ProgramDerivedAddress"
)

var markerBytes = []byte(Marker)

// Deriver computes program-derived addresses. The zero value is not usable;
// construct with NewDeriver or set both fields.
// A Deriver holds no mutable state and is safe for concurrent use.
type Deriver struct {
	Hasher Hasher
	Curve  CurveChecker
}

// NewDeriver returns a Deriver using SHA-256 and the edwards25519 curve test.
func NewDeriver() *Deriver {
	return &Deriver{Hasher: SHA256{}, Curve: Ed25519Curve{}}
}

// Candidate is one step of the bump search.
type Candidate struct {
	Bump    uint8
	Address Address
	OnCurve bool
}

// Derive scans bumps from 255 down to 0 and returns the first candidate that
// is off the curve. That first bump is the canonical one; the scan order is
// part of the contract.
func (d *Deriver) Derive(seeds []Seed, program Address) (Result, error) {
	if err := ValidateSeeds(seeds, true); err != nil {
		return Result{}, err
	}
	parts := preimage(seeds)
	for bump := 255; bump >= 0; bump-- {
		candidate := d.candidate(parts, uint8(bump), program)
		if !d.Curve.IsOnCurve(candidate) {
			return Result{Address: candidate, Bump: uint8(bump)}, nil
		}
	}
	return Result{}, ErrDerivationExhausted
}

// Verify reports whether (address, bump) is exactly the canonical derivation
// of seeds under program. A non-canonical bump is rejected even when it
// happens to produce an off-curve address of its own.
func (d *Deriver) Verify(address Address, bump uint8, seeds []Seed, program Address) bool {
	res, err := d.Derive(seeds, program)
	if err != nil {
		return false
	}
	return res.Address == address && res.Bump == bump
}

// CreateAddress hashes seeds with an explicit bump, without searching.
// It returns ErrOnCurve if the result is a valid curve point.
func (d *Deriver) CreateAddress(seeds []Seed, bump uint8, program Address) (Address, error) {
	if err := ValidateSeeds(seeds, true); err != nil {
		return Address{}, err
	}
	candidate := d.candidate(preimage(seeds), bump, program)
	if d.Curve.IsOnCurve(candidate) {
		return Address{}, fmt.Errorf("bump %d: %w", bump, ErrOnCurve)
	}
	return candidate, nil
}

// Trace returns every candidate tried by Derive, ending with the canonical
// one. All but the last entry are on-curve.
func (d *Deriver) Trace(seeds []Seed, program Address) ([]Candidate, error) {
	if err := ValidateSeeds(seeds, true); err != nil {
		return nil, err
	}
	parts := preimage(seeds)
	var trail []Candidate
	for bump := 255; bump >= 0; bump-- {
		candidate := d.candidate(parts, uint8(bump), program)
		onCurve := d.Curve.IsOnCurve(candidate)
		trail = append(trail, Candidate{Bump: uint8(bump), Address: candidate, OnCurve: onCurve})
		if !onCurve {
			return trail, nil
		}
	}
	return trail, ErrDerivationExhausted
}

// ValidateSeeds checks the seed list against the runtime limits. When
// withBump is set one seed slot is reserved for the bump byte.
func ValidateSeeds(seeds []Seed, withBump bool) error {
	if len(seeds) == 0 {
		return &InvalidInputError{Reason: "at least one seed is required", Index: -1}
	}
	limit := MaxSeeds
	if withBump {
		limit--
	}
	if len(seeds) > limit {
		return &InvalidInputError{Reason: fmt.Sprintf("%d seeds exceeds the limit of %d", len(seeds), limit), Index: -1}
	}
	for i, s := range seeds {
		if s.Len() > MaxSeedLen {
			return &InvalidInputError{Reason: fmt.Sprintf("%s seed is %d bytes, max %d", s.Kind(), s.Len(), MaxSeedLen), Index: i}
		}
	}
	return nil
}

func preimage(seeds []Seed) [][]byte {
	parts := make([][]byte, len(seeds))
	for i, s := range seeds {
		parts[i] = s.data
	}
	return parts
}

// candidate hashes seeds ++ [bump] ++ program ++ marker.
func (d *Deriver) candidate(parts [][]byte, bump uint8, program Address) Address {
	all := make([][]byte, 0, len(parts)+3)
	all = append(all, parts...)
	all = append(all, []byte{bump}, program[:], markerBytes)
	return d.Hasher.Digest(all...)
}
