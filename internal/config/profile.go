// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

// ExpandProfile fills the $name placeholders of a profile's seeds from vars
// and parses the result. Identity references (identity:@name) resolve
// through the configured identities.
func (c *Config) ExpandProfile(name string, vars map[string]string) ([]pda.Seed, pda.Address, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, pda.Address{}, fmt.Errorf("unknown profile '%s'", name)
	}
	program, err := c.ResolveProgram(p.Program)
	if err != nil {
		return nil, pda.Address{}, fmt.Errorf("profile '%s': %w", name, err)
	}

	specs := make([]string, len(p.Seeds))
	var missing []string
	for i, spec := range p.Seeds {
		specs[i] = os.Expand(spec, func(key string) string {
			v, ok := vars[key]
			if !ok {
				missing = append(missing, key)
			}
			return v
		})
	}
	if len(missing) > 0 {
		return nil, pda.Address{}, fmt.Errorf("profile '%s' needs values for: %s", name, strings.Join(missing, ", "))
	}

	seeds, err := pda.ParseSeeds(specs, c.ResolveIdentity)
	if err != nil {
		return nil, pda.Address{}, fmt.Errorf("profile '%s': %w", name, err)
	}
	return seeds, program, nil
}

// Vars lists the placeholders a profile expects, in order of first use.
func (p Profile) Vars() []string {
	seen := map[string]bool{}
	var out []string
	for _, spec := range p.Seeds {
		os.Expand(spec, func(key string) string {
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
			return ""
		})
	}
	return out
}

// ParseVars turns "key=value" pairs into a map.
func ParseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid variable %q (want key=value)", pair)
		}
		vars[k] = v
	}
	return vars, nil
}
