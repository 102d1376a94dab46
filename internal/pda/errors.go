// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package pda

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid derivation input")

	// ErrDerivationExhausted is returned when all 256 bumps land on the curve.
	// Retrying with the same inputs exhausts again.
	ErrDerivationExhausted = errors.New("no off-curve bump found")

	// ErrOnCurve is returned by CreateAddress when the candidate is a valid
	// ed25519 public key and so cannot be a program-derived address.
	ErrOnCurve = errors.New("derived address lands on the ed25519 curve")
)

// InvalidInputError describes a rejected seed list or namespace id.
// Index is the offending seed position, or -1 when not seed specific.
type InvalidInputError struct {
	Reason string
	Index  int
}

func (e *InvalidInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: seed %d: %s", ErrInvalidInput, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
