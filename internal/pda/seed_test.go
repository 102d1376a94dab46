// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package pda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  SeedKind
		wantBytes []byte
		wantErr   bool
	}{
		{name: "label", input: "label:betting_account", wantKind: KindLabel, wantBytes: []byte("betting_account")},
		{name: "label with colon", input: "label:a:b", wantKind: KindLabel, wantBytes: []byte("a:b")},
		{name: "identity", input: "identity:" + userA.String(), wantKind: KindIdentity, wantBytes: userA[:]},
		{name: "pubkey alias", input: "pubkey:" + userB.String(), wantKind: KindIdentity, wantBytes: userB[:]},
		{name: "u64", input: "u64:258", wantKind: KindUint64, wantBytes: []byte{2, 1, 0, 0, 0, 0, 0, 0}},
		{name: "hex", input: "hex:0xdeadbeef", wantKind: KindBytes, wantBytes: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "missing kind", input: "betting_account", wantErr: true},
		{name: "unknown kind", input: "string:betting_account", wantErr: true},
		{name: "bad identity", input: "identity:not-base58-0OIl", wantErr: true},
		{name: "short identity", input: "identity:3yZe7d", wantErr: true},
		{name: "negative u64", input: "u64:-1", wantErr: true},
		{name: "odd hex", input: "hex:abc", wantErr: true},
		{name: "unresolved reference", input: "identity:@alice", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := ParseSeed(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, seed.Kind())
			assert.Equal(t, tt.wantBytes, seed.Bytes())
		})
	}
}

func TestSeedStringRoundTrip(t *testing.T) {
	seeds := []Seed{
		Label("betting_account"),
		Identity(userA),
		Uint64LE(7),
		Bytes([]byte{1, 2, 3}),
	}
	for _, s := range seeds {
		parsed, err := ParseSeed(s.String())
		require.NoError(t, err)
		assert.True(t, s.Equal(parsed), "%s", s)
	}
}

func TestParseSeedsResolvesIdentities(t *testing.T) {
	resolve := func(name string) (Address, bool) {
		if name == "alice" {
			return userA, true
		}
		return Address{}, false
	}

	seeds, err := ParseSeeds([]string{"label:betting_account", "identity:@alice"}, resolve)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.True(t, seeds[1].Equal(Identity(userA)))

	_, err = ParseSeeds([]string{"label:betting_account", "identity:@bob"}, resolve)
	var inv *InvalidInputError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, 1, inv.Index)
}

func TestSeedBytesIsACopy(t *testing.T) {
	raw := []byte{1, 2, 3}
	s := Bytes(raw)
	raw[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, s.Bytes())

	out := s.Bytes()
	out[1] = 9
	assert.Equal(t, []byte{1, 2, 3}, s.Bytes())
}

func TestLabelVersusIdentityDiffer(t *testing.T) {
	// Passing a base58 string as a label is the classic client bug: the
	// program hashes the 32 key bytes, not the 44 character text.
	asLabel := Label(userA.String())
	asIdentity := Identity(userA)
	assert.False(t, asLabel.Equal(asIdentity))
	assert.NotEqual(t, asLabel.Len(), asIdentity.Len())
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.True(t, addr.IsZero())
	assert.Equal(t, "1111..1111", addr.Short())

	_, err = ParseAddress("")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseAddress("abc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, programP1, MustParseAddress(programP1.String()))
}
