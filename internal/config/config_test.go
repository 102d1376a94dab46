// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aplane-algo/pdaverify/internal/pda"
	"github.com/aplane-algo/pdaverify/internal/testutil"
)

const sampleConfig = `
cluster: devnet
devnet_rpc_url: http://devnet.internal:8899
commitment: finalized
cache_ttl: 5s
programs:
  betting: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
  legacy: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
identities:
  house: 11111111111111111111111111111111
profiles:
  betting_account:
    program: betting
    seeds: ["label:betting_account", "identity:$user"]
  house_vault:
    program: legacy
    seeds: ["label:vault", "identity:@house", "u64:${match}"]
`

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadFromPath("")
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.Cluster)
}

func TestLoadSample(t *testing.T) {
	dir := testutil.WriteConfig(t, sampleConfig)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "finalized", cfg.Commitment)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, 256, cfg.CacheSize)

	url, err := cfg.RPCURL("devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://devnet.internal:8899", url)

	url, err = cfg.RPCURL("mainnet")
	require.NoError(t, err)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", url)

	_, err = cfg.RPCURL("betanet")
	assert.Error(t, err)

	assert.Equal(t, "betting", cfg.ProgramName(testutil.ProgramP1))
	assert.Equal(t, []string{"betting", "legacy"}, SortedKeys(cfg.Programs))
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad cluster", "cluster: betanet", "invalid cluster"},
		{"cluster not allowed", "cluster: mainnet\nclusters_allowed: [devnet]", "not in clusters_allowed"},
		{"bad allowed entry", "clusters_allowed: [moon]", "invalid cluster 'moon'"},
		{"bad commitment", "commitment: max", "invalid commitment"},
		{"negative cache", "cache_size: -1", "cache_size"},
		{"bad program", "programs:\n  p: nope", "program 'p'"},
		{"bad identity", "identities:\n  alice: 0OIl", "identity 'alice'"},
		{"profile without program", "profiles:\n  x:\n    seeds: [\"label:a\"]", "program is required"},
		{"profile unknown program", "profiles:\n  x:\n    program: ghost\n    seeds: [\"label:a\"]", "neither a configured program"},
		{"profile without seeds", "programs:\n  p: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA\nprofiles:\n  x:\n    program: p", "at least one seed"},
		{"malformed yaml", "cluster: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandProfile(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	user := testutil.GenerateTestIdentity(t, "alice")

	seeds, program, err := cfg.ExpandProfile("betting_account", map[string]string{"user": user.Address.String()})
	require.NoError(t, err)
	assert.Equal(t, testutil.ProgramP1, program)
	require.Len(t, seeds, 2)
	assert.True(t, seeds[0].Equal(pda.Label("betting_account")))
	assert.True(t, seeds[1].Equal(pda.Identity(user.Address)))

	seeds, program, err = cfg.ExpandProfile("house_vault", map[string]string{"match": "42"})
	require.NoError(t, err)
	assert.Equal(t, testutil.ProgramP2, program)
	assert.True(t, seeds[1].Equal(pda.Identity(pda.Address{})))
	assert.True(t, seeds[2].Equal(pda.Uint64LE(42)))

	_, _, err = cfg.ExpandProfile("betting_account", nil)
	assert.ErrorContains(t, err, "needs values for: user")

	_, _, err = cfg.ExpandProfile("nope", nil)
	assert.ErrorContains(t, err, "unknown profile")

	assert.Equal(t, []string{"match"}, cfg.Profiles["house_vault"].Vars())
}

func TestResolveProgram(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	addr, err := cfg.ResolveProgram("legacy")
	require.NoError(t, err)
	assert.Equal(t, testutil.ProgramP2, addr)

	addr, err = cfg.ResolveProgram(testutil.ProgramP1.String())
	require.NoError(t, err)
	assert.Equal(t, testutil.ProgramP1, addr)

	_, err = cfg.ResolveProgram("ghost")
	assert.Error(t, err)
}

func TestGetDataDir(t *testing.T) {
	assert.Equal(t, "/flag", GetDataDir("/flag"))

	t.Setenv("PDACTL_DATA", "/env")
	assert.Equal(t, "/env", GetDataDir(""))

	assert.Equal(t, filepath.Join("/env", "config.yaml"), GetConfigPath(GetDataDir("")))
	assert.Equal(t, "", GetConfigPath(""))
}

func TestParseVars(t *testing.T) {
	vars, err := ParseVars([]string{"user=abc", "match=7"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "abc", "match": "7"}, vars)

	_, err = ParseVars([]string{"novalue"})
	assert.Error(t, err)
}
