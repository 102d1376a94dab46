// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package pda

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SeedKind tags what a Seed's bytes mean.
type SeedKind int

const (
	KindLabel SeedKind = iota
	KindIdentity
	KindUint64
	KindBytes
)

func (k SeedKind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindIdentity:
		return "identity"
	case KindUint64:
		return "u64"
	case KindBytes:
		return "hex"
	default:
		return "unknown"
	}
}

// Seed is one segment of derivation input. The kind fixes the byte encoding
// so that a label and an identity can never be confused at a call site.
// Seeds are immutable; constructors copy their input.
type Seed struct {
	kind SeedKind
	data []byte
	text string
}

// Label is the UTF-8 bytes of a literal label such as "betting_account".
func Label(s string) Seed {
	return Seed{kind: KindLabel, data: []byte(s), text: s}
}

// Identity is the 32 raw bytes of a public key.
func Identity(addr Address) Seed {
	b := make([]byte, AddressLen)
	copy(b, addr[:])
	return Seed{kind: KindIdentity, data: b, text: addr.String()}
}

// Uint64LE is an 8-byte little-endian integer, the usual encoding for
// match ids and nonces in on-chain seed constraints.
func Uint64LE(n uint64) Seed {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return Seed{kind: KindUint64, data: b, text: strconv.FormatUint(n, 10)}
}

// Bytes is an opaque byte string.
func Bytes(b []byte) Seed {
	c := make([]byte, len(b))
	copy(c, b)
	return Seed{kind: KindBytes, data: c, text: hex.EncodeToString(c)}
}

// Kind returns the seed's tag.
func (s Seed) Kind() SeedKind { return s.kind }

// Len returns the encoded length in bytes.
func (s Seed) Len() int { return len(s.data) }

// Bytes returns a copy of the encoded seed.
func (s Seed) Bytes() []byte {
	c := make([]byte, len(s.data))
	copy(c, s.data)
	return c
}

// Text returns the value without the kind prefix.
func (s Seed) Text() string { return s.text }

// String renders the seed in the "kind:value" form accepted by ParseSeed.
func (s Seed) String() string {
	return s.kind.String() + ":" + s.text
}

// Equal reports whether two seeds have the same kind and bytes.
func (s Seed) Equal(o Seed) bool {
	return s.kind == o.kind && string(s.data) == string(o.data)
}

// IdentityResolver maps a symbolic identity name (the part after '@') to an address.
type IdentityResolver func(name string) (Address, bool)

// ParseSeed parses "label:<text>", "identity:<base58>", "u64:<n>" or "hex:<bytes>".
func ParseSeed(s string) (Seed, error) {
	return ParseSeedWith(s, nil)
}

// ParseSeedWith is ParseSeed with support for "identity:@name" through resolve.
func ParseSeedWith(s string, resolve IdentityResolver) (Seed, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return Seed{}, &InvalidInputError{Reason: fmt.Sprintf("seed %q must be kind:value", s), Index: -1}
	}

	switch kind {
	case "label":
		return Label(value), nil
	case "identity", "id", "pubkey":
		if name, isRef := strings.CutPrefix(value, "@"); isRef {
			if resolve == nil {
				return Seed{}, &InvalidInputError{Reason: fmt.Sprintf("identity reference %q with no identities configured", value), Index: -1}
			}
			addr, found := resolve(name)
			if !found {
				return Seed{}, &InvalidInputError{Reason: fmt.Sprintf("unknown identity %q", name), Index: -1}
			}
			return Identity(addr), nil
		}
		addr, err := ParseAddress(value)
		if err != nil {
			return Seed{}, err
		}
		return Identity(addr), nil
	case "u64":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Seed{}, &InvalidInputError{Reason: fmt.Sprintf("invalid u64 seed %q", value), Index: -1}
		}
		return Uint64LE(n), nil
	case "hex":
		b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
		if err != nil {
			return Seed{}, &InvalidInputError{Reason: fmt.Sprintf("invalid hex seed %q", value), Index: -1}
		}
		return Bytes(b), nil
	default:
		return Seed{}, &InvalidInputError{Reason: fmt.Sprintf("unknown seed kind %q", kind), Index: -1}
	}
}

// ParseSeeds parses each element with ParseSeedWith and reports the failing position.
func ParseSeeds(specs []string, resolve IdentityResolver) ([]Seed, error) {
	seeds := make([]Seed, 0, len(specs))
	for i, spec := range specs {
		seed, err := ParseSeedWith(spec, resolve)
		if err != nil {
			var inv *InvalidInputError
			if errors.As(err, &inv) {
				inv.Index = i
			}
			return nil, err
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// FormatSeeds renders seeds as a space separated list for logs and reports.
func FormatSeeds(seeds []Seed) string {
	parts := make([]string, len(seeds))
	for i, s := range seeds {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
