// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package pda

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AddressLen is the size of every address, program id and identity key.
const AddressLen = 32

// Address is a 32-byte account address. It is used for derived addresses,
// program ids (namespaces) and wallet identities alike.
type Address [AddressLen]byte

// ParseAddress decodes a base58 address and requires exactly 32 bytes.
func ParseAddress(s string) (Address, error) {
	var addr Address
	s = strings.TrimSpace(s)
	if s == "" {
		return addr, &InvalidInputError{Reason: "empty address", Index: -1}
	}
	b, err := base58.Decode(s)
	if err != nil {
		return addr, &InvalidInputError{Reason: fmt.Sprintf("invalid base58 address %q", s), Index: -1}
	}
	if len(b) != AddressLen {
		return addr, &InvalidInputError{Reason: fmt.Sprintf("address %q decodes to %d bytes, want %d", s, len(b), AddressLen), Index: -1}
	}
	copy(addr[:], b)
	return addr, nil
}

// MustParseAddress is ParseAddress for constants in tests and examples.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the base58 form.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Short returns the address in abbreviated "ABCD..WXYZ" form for log lines.
func (a Address) Short() string {
	s := a.String()
	if len(s) <= 12 {
		return s
	}
	return s[:4] + ".." + s[len(s)-4:]
}

// IsZero reports whether every byte is zero (the system program id).
func (a Address) IsZero() bool {
	return a == Address{}
}

// Result is a derived address together with its canonical bump.
type Result struct {
	Address Address
	Bump    uint8
}

func (r Result) String() string {
	return fmt.Sprintf("%s (bump %d)", r.Address, r.Bump)
}
