// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package testutil provides reusable test infrastructure and utilities.
package testutil

import (
	"crypto/ed25519"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// Well-known program ids used as namespaces in tests.
var (
	ProgramP1 = pda.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	ProgramP2 = pda.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	System    = pda.Address{}
)

// TestIdentity represents a generated wallet key pair.
type TestIdentity struct {
	Address    pda.Address
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// GenerateTestIdentity derives a deterministic ed25519 wallet from name.
// The same name always yields the same key, so expected addresses are stable
// across runs.
func GenerateTestIdentity(t *testing.T, name string) *TestIdentity {
	t.Helper()

	seed := sha256.Sum256([]byte("pdaverify-test-identity/" + name))
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		t.Fatalf("unexpected public key type %T", priv.Public())
	}

	var addr pda.Address
	copy(addr[:], pub)
	return &TestIdentity{Address: addr, PublicKey: pub, PrivateKey: priv}
}

// WriteConfig writes a config.yaml into a fresh data directory and returns
// the directory.
func WriteConfig(t *testing.T, yamlText string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlText), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir
}
