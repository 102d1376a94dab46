// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package config loads pdactl settings from <data dir>/config.yaml.
//
// Program ids, identities and RPC endpoints are only ever read from here and
// passed down explicitly, so one process can work with several namespaces.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// Supported clusters and their public RPC endpoints.
var defaultRPCURLs = map[string]string{
	"devnet":   "https://api.devnet.solana.com",
	"testnet":  "https://api.testnet.solana.com",
	"mainnet":  "https://api.mainnet-beta.solana.com",
	"localnet": "http://127.0.0.1:8899",
}

// Profile is a named seed template for a program, e.g. the betting account
// of a user: seeds ["label:betting_account", "identity:$user"].
type Profile struct {
	Program     string   `yaml:"program" description:"Program name (key of programs) or base58 id"`
	Seeds       []string `yaml:"seeds" description:"Seed specs: label:, identity:, u64:, hex:; $name placeholders are filled at run time"`
	Description string   `yaml:"description" description:"Free text shown by 'config show'"`
}

// Config holds pdactl configuration settings
type Config struct {
	Cluster         string   `yaml:"cluster" description:"Default cluster (devnet, testnet, mainnet, localnet)" default:"devnet"`
	ClustersAllowed []string `yaml:"clusters_allowed" description:"Restrict allowed clusters (empty = all)" default:"[]"`

	// Per-cluster RPC endpoints; empty means the public default
	DevnetRPCURL   string `yaml:"devnet_rpc_url" description:"Devnet JSON-RPC URL"`
	TestnetRPCURL  string `yaml:"testnet_rpc_url" description:"Testnet JSON-RPC URL"`
	MainnetRPCURL  string `yaml:"mainnet_rpc_url" description:"Mainnet JSON-RPC URL"`
	LocalnetRPCURL string `yaml:"localnet_rpc_url" description:"Local validator JSON-RPC URL"`

	Commitment string        `yaml:"commitment" description:"processed, confirmed or finalized" default:"confirmed"`
	CacheSize  int           `yaml:"cache_size" description:"Account lookup cache entries (0 disables)" default:"256"`
	CacheTTL   time.Duration `yaml:"cache_ttl" description:"Account lookup cache lifetime" default:"30s"`

	Programs   map[string]string  `yaml:"programs" description:"Named program ids (base58)"`
	Identities map[string]string  `yaml:"identities" description:"Named wallet public keys (base58)"`
	Profiles   map[string]Profile `yaml:"profiles" description:"Named seed templates"`
}

// DefaultConfig returns the default configuration for runtime use.
func DefaultConfig() Config {
	return Config{
		Cluster:         "devnet",
		ClustersAllowed: []string{},
		Commitment:      "confirmed",
		CacheSize:       256,
		CacheTTL:        30 * time.Second,
		Programs:        map[string]string{},
		Identities:      map[string]string{},
		Profiles:        map[string]Profile{},
	}
}

// DefaultDataDir is the data directory used when neither flag nor env var is set.
const DefaultDataDir = "~/.pdactl"

// DataDirEnv names the environment variable holding the data directory.
const DataDirEnv = "PDACTL_DATA"

// GetDataDir returns the data directory.
// Resolution order: --data-dir flag > PDACTL_DATA env var > ~/.pdactl
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv(DataDirEnv); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pdactl")
}

// GetConfigPath returns the path to the config file in the data directory.
// Returns empty string if dataDir is empty.
func GetConfigPath(dataDir string) string {
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, "config.yaml")
}

// Load loads configuration from config.yaml in the data directory.
// A missing file yields the defaults.
func Load(dataDir string) (Config, error) {
	return LoadFromPath(GetConfigPath(dataDir))
}

// LoadFromPath loads configuration from the specified path.
// If path is empty or the file doesn't exist, returns default config.
func LoadFromPath(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML onto the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	if config.Cluster == "" {
		config.Cluster = defaults.Cluster
	}
	if config.Commitment == "" {
		config.Commitment = defaults.Commitment
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.Programs == nil {
		config.Programs = map[string]string{}
	}
	if config.Identities == nil {
		config.Identities = map[string]string{}
	}
	if config.Profiles == nil {
		config.Profiles = map[string]Profile{}
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks cluster names, commitment, and that every program and
// identity decodes to a 32-byte address.
func (c *Config) Validate() error {
	if _, ok := defaultRPCURLs[c.Cluster]; !ok {
		return fmt.Errorf("invalid cluster '%s' in config (must be devnet, testnet, mainnet or localnet)", c.Cluster)
	}
	for _, n := range c.ClustersAllowed {
		if _, ok := defaultRPCURLs[n]; !ok {
			return fmt.Errorf("invalid cluster '%s' in clusters_allowed", n)
		}
	}
	if !c.IsClusterAllowed(c.Cluster) {
		return fmt.Errorf("cluster '%s' is not in clusters_allowed %v", c.Cluster, c.ClustersAllowed)
	}

	switch c.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment '%s' (must be processed, confirmed or finalized)", c.Commitment)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative")
	}

	for name, id := range c.Programs {
		if _, err := pda.ParseAddress(id); err != nil {
			return fmt.Errorf("program '%s': %w", name, err)
		}
	}
	for name, id := range c.Identities {
		if _, err := pda.ParseAddress(id); err != nil {
			return fmt.Errorf("identity '%s': %w", name, err)
		}
	}
	for name, p := range c.Profiles {
		if p.Program == "" {
			return fmt.Errorf("profile '%s': program is required", name)
		}
		if _, err := c.ResolveProgram(p.Program); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
		if len(p.Seeds) == 0 {
			return fmt.Errorf("profile '%s': at least one seed is required", name)
		}
	}
	return nil
}

// IsClusterAllowed checks if the given cluster may be used
func (c *Config) IsClusterAllowed(cluster string) bool {
	if len(c.ClustersAllowed) == 0 {
		return true
	}
	for _, n := range c.ClustersAllowed {
		if n == cluster {
			return true
		}
	}
	return false
}

// RPCURL returns the endpoint for cluster, falling back to its public default.
func (c *Config) RPCURL(cluster string) (string, error) {
	def, ok := defaultRPCURLs[cluster]
	if !ok {
		return "", fmt.Errorf("invalid cluster: %s", cluster)
	}
	if !c.IsClusterAllowed(cluster) {
		return "", fmt.Errorf("cluster '%s' is not in clusters_allowed %v", cluster, c.ClustersAllowed)
	}
	var configured string
	switch cluster {
	case "devnet":
		configured = c.DevnetRPCURL
	case "testnet":
		configured = c.TestnetRPCURL
	case "mainnet":
		configured = c.MainnetRPCURL
	case "localnet":
		configured = c.LocalnetRPCURL
	}
	if configured != "" {
		return configured, nil
	}
	return def, nil
}

// ResolveProgram accepts a configured program name or a literal base58 id.
func (c *Config) ResolveProgram(nameOrID string) (pda.Address, error) {
	if id, ok := c.Programs[nameOrID]; ok {
		return pda.ParseAddress(id)
	}
	addr, err := pda.ParseAddress(nameOrID)
	if err != nil {
		return pda.Address{}, fmt.Errorf("'%s' is neither a configured program nor a valid address", nameOrID)
	}
	return addr, nil
}

// ResolveIdentity looks up a named identity. It matches pda.IdentityResolver.
func (c *Config) ResolveIdentity(name string) (pda.Address, bool) {
	id, ok := c.Identities[name]
	if !ok {
		return pda.Address{}, false
	}
	addr, err := pda.ParseAddress(id)
	if err != nil {
		return pda.Address{}, false
	}
	return addr, true
}

// ProgramAddresses returns every configured program, keyed by name.
func (c *Config) ProgramAddresses() map[string]pda.Address {
	out := make(map[string]pda.Address, len(c.Programs))
	for name, id := range c.Programs {
		if addr, err := pda.ParseAddress(id); err == nil {
			out[name] = addr
		}
	}
	return out
}

// ProgramName returns the configured name for addr, or "" if unnamed.
func (c *Config) ProgramName(addr pda.Address) string {
	for name, a := range c.ProgramAddresses() {
		if a == addr {
			return name
		}
	}
	return ""
}

// SortedKeys returns map keys in order, for stable display.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
