// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReference(t *testing.T) {
	var buf bytes.Buffer
	WriteReference(&buf)
	out := buf.String()

	assert.Contains(t, out, "| `cluster` | string | `devnet` |")
	assert.Contains(t, out, "| `cache_ttl` | duration | `30s` |")
	assert.Contains(t, out, "| `profiles` | map[string]Profile |")
	assert.Contains(t, out, "| `profiles.<name>.seeds` | []string |")
	assert.Contains(t, out, "`PDACTL_DEBUG`")
	assert.Contains(t, out, "`PDACTL_DATA`")
}

func TestStarterConfigIsValid(t *testing.T) {
	cfg, err := Parse([]byte(StarterConfig))
	require.NoError(t, err)

	seeds, program, err := cfg.ExpandProfile("associated_token_account", map[string]string{
		"wallet": "11111111111111111111111111111111",
		"mint":   "So11111111111111111111111111111111111111112",
	})
	require.NoError(t, err)
	assert.Len(t, seeds, 3)
	assert.Equal(t, "associated_token", cfg.ProgramName(program))
}

func TestWriteStarter(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "pdactl")

	path, err := WriteStarter(dataDir, false)
	require.NoError(t, err)
	assert.Equal(t, GetConfigPath(dataDir), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, StarterConfig, string(data))

	require.NoError(t, os.WriteFile(path, []byte("cluster: testnet\n"), 0600))
	_, err = WriteStarter(dataDir, false)
	assert.ErrorContains(t, err, "already exists")

	_, err = WriteStarter(dataDir, true)
	require.NoError(t, err)
	cfg, err := Load(dataDir)
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.Cluster)

	_, err = WriteStarter("", false)
	assert.Error(t, err)
}
