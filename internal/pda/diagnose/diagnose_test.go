// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package diagnose

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

var (
	programP1 = pda.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	programP2 = pda.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	userA     = pda.SHA256{}.Digest([]byte("userA"))
)

func seedsFor(label string) []pda.Seed {
	return []pda.Seed{pda.Label(label), pda.Identity(userA)}
}

func TestExplainMatch(t *testing.T) {
	d := pda.NewDeriver()
	res, err := d.Derive(seedsFor("betting_account"), programP1)
	require.NoError(t, err)

	rep, err := Explain(d, Claim{Address: res.Address, Bump: res.Bump, HasBump: true}, seedsFor("betting_account"), programP1, Options{})
	require.NoError(t, err)
	assert.Equal(t, Match, rep.Verdict)

	rep, err = Explain(d, Claim{Address: res.Address}, seedsFor("betting_account"), programP1, Options{})
	require.NoError(t, err)
	assert.Equal(t, Match, rep.Verdict)
}

func TestExplainBumpMismatch(t *testing.T) {
	d := pda.NewDeriver()
	res, err := d.Derive(seedsFor("betting_account"), programP1)
	require.NoError(t, err)

	rep, err := Explain(d, Claim{Address: res.Address, Bump: res.Bump - 1, HasBump: true}, seedsFor("betting_account"), programP1, Options{})
	require.NoError(t, err)
	assert.Equal(t, BumpMismatch, rep.Verdict)
	assert.Equal(t, res, rep.Canonical)
}

func TestExplainNonCanonicalBump(t *testing.T) {
	d := pda.NewDeriver()
	seeds := seedsFor("betting_account")
	res, err := d.Derive(seeds, programP1)
	require.NoError(t, err)

	for b := int(res.Bump) - 1; b >= 0; b-- {
		addr, err := d.CreateAddress(seeds, uint8(b), programP1)
		if errors.Is(err, pda.ErrOnCurve) {
			continue
		}
		require.NoError(t, err)

		rep, err := Explain(d, Claim{Address: addr, Bump: uint8(b), HasBump: true}, seeds, programP1, Options{})
		require.NoError(t, err)
		assert.Equal(t, NonCanonicalBump, rep.Verdict)
		return
	}
	t.Skip("canonical bump has no off-curve bump below it")
}

func TestExplainNamespaceMismatch(t *testing.T) {
	d := pda.NewDeriver()
	seeds := seedsFor("betting_account")
	onP2, err := d.Derive(seeds, programP2)
	require.NoError(t, err)

	opts := Options{Programs: map[string]pda.Address{"current": programP1, "legacy": programP2}}
	rep, err := Explain(d, Claim{Address: onP2.Address}, seeds, programP1, opts)
	require.NoError(t, err)
	assert.Equal(t, NamespaceMismatch, rep.Verdict)
	assert.Equal(t, "legacy", rep.Program)
}

func TestExplainSeedMismatchHyphen(t *testing.T) {
	d := pda.NewDeriver()
	onChain, err := d.Derive(seedsFor("betting_account"), programP1)
	require.NoError(t, err)

	rep, err := Explain(d, Claim{Address: onChain.Address, Bump: onChain.Bump, HasBump: true}, seedsFor("betting-account"), programP1, Options{})
	require.NoError(t, err)
	assert.Equal(t, SeedMismatch, rep.Verdict)
	require.Len(t, rep.Seeds, 2)
	assert.Equal(t, "label:betting_account", rep.Seeds[0].String())

	rep, err = Explain(d, Claim{Address: onChain.Address}, seedsFor("betting-account"), programP1, Options{SkipVariants: true})
	require.NoError(t, err)
	assert.Equal(t, Unexplained, rep.Verdict)
}

func TestExplainInvalidInput(t *testing.T) {
	_, err := Explain(pda.NewDeriver(), Claim{}, nil, programP1, Options{})
	assert.ErrorIs(t, err, pda.ErrInvalidInput)
}

func TestLabelVariants(t *testing.T) {
	seeds := []pda.Seed{pda.Label("Betting-Account"), pda.Identity(userA)}
	variants := LabelVariants(seeds)

	var labels []string
	for _, v := range variants {
		require.Len(t, v, 2)
		assert.True(t, v[1].Equal(seeds[1]))
		labels = append(labels, v[0].Text())
	}
	assert.ElementsMatch(t, []string{"Betting_Account", "betting-account", "BETTING-ACCOUNT"}, labels)
	assert.Equal(t, "Betting-Account", seeds[0].Text())

	assert.Empty(t, LabelVariants([]pda.Seed{pda.Identity(userA)}))
}
