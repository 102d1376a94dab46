// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/pdaverify/internal/config"
	"github.com/aplane-algo/pdaverify/internal/pda"
	"github.com/aplane-algo/pdaverify/internal/pda/diagnose"
)

// targetFlags selects the seeds and program of a derivation, either from a
// configured profile or from --program plus positional seeds.
type targetFlags struct {
	profile string
	program string
	vars    []string
}

func (t *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.profile, "profile", "p", "", "Seed profile from config.yaml")
	cmd.Flags().StringVarP(&t.program, "program", "P", "", "Program name from config.yaml or base58 program id")
	cmd.Flags().StringArrayVar(&t.vars, "var", nil, "Profile placeholder value as key=value (repeatable)")
}

func (t *targetFlags) resolve(cfg config.Config, args []string) ([]pda.Seed, pda.Address, error) {
	if t.profile != "" {
		if len(args) > 0 {
			return nil, pda.Address{}, fmt.Errorf("seeds come from profile '%s'; do not also pass positional seeds", t.profile)
		}
		vars, err := config.ParseVars(t.vars)
		if err != nil {
			return nil, pda.Address{}, err
		}
		seeds, program, err := cfg.ExpandProfile(t.profile, vars)
		if err != nil {
			return nil, pda.Address{}, err
		}
		if t.program != "" {
			// Overriding the program is how a namespace mismatch is reproduced.
			program, err = cfg.ResolveProgram(t.program)
			if err != nil {
				return nil, pda.Address{}, err
			}
		}
		return seeds, program, nil
	}

	if t.program == "" {
		return nil, pda.Address{}, fmt.Errorf("either --profile or --program is required")
	}
	program, err := cfg.ResolveProgram(t.program)
	if err != nil {
		return nil, pda.Address{}, err
	}
	seeds, err := pda.ParseSeeds(args, cfg.ResolveIdentity)
	if err != nil {
		return nil, pda.Address{}, err
	}
	if len(seeds) == 0 {
		return nil, pda.Address{}, &pda.InvalidInputError{Reason: "at least one seed is required", Index: -1}
	}
	return seeds, program, nil
}

// claimFlags carries an address and optional bump to check against.
type claimFlags struct {
	address string
	bump    int
}

func (c *claimFlags) register(cmd *cobra.Command, required bool) {
	cmd.Flags().StringVarP(&c.address, "address", "a", "", "Claimed derived address (base58)")
	cmd.Flags().IntVarP(&c.bump, "bump", "b", -1, "Claimed bump (0-255)")
	if required {
		_ = cmd.MarkFlagRequired("address")
	}
}

// claim returns nil when no address was given.
func (c *claimFlags) claim() (*diagnose.Claim, error) {
	if c.address == "" {
		if c.bump >= 0 {
			return nil, fmt.Errorf("--bump requires --address")
		}
		return nil, nil
	}
	addr, err := pda.ParseAddress(c.address)
	if err != nil {
		return nil, err
	}
	cl := &diagnose.Claim{Address: addr}
	if c.bump >= 0 {
		if c.bump > 255 {
			return nil, fmt.Errorf("bump %d out of range 0-255", c.bump)
		}
		cl.Bump = uint8(c.bump)
		cl.HasBump = true
	}
	return cl, nil
}
