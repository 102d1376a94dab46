// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package pda

import "filippo.io/edwards25519"

// CurveChecker decides whether a candidate address is a valid curve point,
// i.e. could have a private key behind it.
type CurveChecker interface {
	IsOnCurve(candidate Address) bool
}

// Ed25519Curve treats the 32 bytes as a compressed edwards25519 point.
type Ed25519Curve struct{}

// IsOnCurve returns true if the value decodes to a valid edwards25519 point.
// Derived addresses must not, otherwise someone could hold a key for them.
func (Ed25519Curve) IsOnCurve(candidate Address) bool {
	_, err := new(edwards25519.Point).SetBytes(candidate[:])
	return err == nil
}
