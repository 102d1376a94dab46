// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aplane-algo/pdaverify/internal/pda"
)

func newDeriveCmd(a *app) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "derive [seed...]",
		Short: "Derive the canonical address and bump",
		Example: `  pdactl derive -P betting label:betting_account identity:@alice
  pdactl derive -p betting_account --var user=7xKX...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.currentConfig()
			seeds, program, err := target.resolve(cfg, args)
			if err != nil {
				return err
			}
			res, err := a.deriver.Derive(seeds, program)
			if err != nil {
				return err
			}
			a.logger().Debug("derive",
				zap.String("seeds", pda.FormatSeeds(seeds)),
				zap.Stringer("program", program))

			p := a.printer(cmd.OutOrStdout())
			p.Field("program", programLabel(cfg.ProgramName(program), program))
			p.Field("seeds", pda.FormatSeeds(seeds))
			p.Field("address", res.Address.String())
			p.Field("bump", fmt.Sprintf("%d", res.Bump))
			return nil
		},
	}
	target.register(cmd)
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var target targetFlags
	var claim claimFlags
	cmd := &cobra.Command{
		Use:   "verify --address ADDR --bump N [seed...]",
		Short: "Check a claimed address and bump against the canonical derivation",
		Long: `verify performs the same check the program runs for a seeds constraint:
the address and bump must both equal the canonical derivation. A bump that
is not canonical is rejected even if it yields an off-curve address.
Exit status is 2 on mismatch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.currentConfig()
			seeds, program, err := target.resolve(cfg, args)
			if err != nil {
				return err
			}
			cl, err := claim.claim()
			if err != nil {
				return err
			}
			if cl == nil || !cl.HasBump {
				return fmt.Errorf("--address and --bump are required for verify; use diagnose for an address alone")
			}

			p := a.printer(cmd.OutOrStdout())
			if a.deriver.Verify(cl.Address, cl.Bump, seeds, program) {
				p.OK("%s bump %d verifies for [%s] under %s", cl.Address, cl.Bump, pda.FormatSeeds(seeds), program)
				return nil
			}

			res, err := a.deriver.Derive(seeds, program)
			if err != nil {
				return err
			}
			a.logger().Warn("verification mismatch",
				zap.String("seeds", pda.FormatSeeds(seeds)),
				zap.Stringer("program", program),
				zap.Stringer("claimed", cl.Address),
				zap.Uint8("claimed_bump", cl.Bump))
			p.Fail("%s bump %d does not verify", cl.Address, cl.Bump)
			p.Field("canonical", res.String())
			p.Dim("run 'pdactl diagnose' with the same arguments for an explanation")
			return errMismatch
		},
	}
	target.register(cmd)
	claim.register(cmd, true)
	_ = cmd.MarkFlagRequired("bump")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "inspect [seed...]",
		Short: "Show every bump tried and the seed bytes hashed",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, program, err := target.resolve(a.currentConfig(), args)
			if err != nil {
				return err
			}
			if err := pda.ValidateSeeds(seeds, true); err != nil {
				return err
			}
			trail, err := a.deriver.Trace(seeds, program)

			p := a.printer(cmd.OutOrStdout())
			p.Heading("Seeds")
			for i, s := range seeds {
				p.Field(fmt.Sprintf("[%d]", i), fmt.Sprintf("%-8s %2d bytes  %x", s.Kind(), s.Len(), s.Bytes()))
			}
			p.Field("program", program.String())
			p.Field("marker", pda.Marker)
			_, _ = fmt.Fprintln(p.Writer())

			p.Heading("Bumps")
			for _, c := range trail {
				if c.OnCurve {
					p.Dim("%3d  %-44s  on curve", c.Bump, c.Address)
				} else {
					p.OK("%3d  %-44s  canonical", c.Bump, c.Address)
				}
			}
			return err
		},
	}
	target.register(cmd)
	return cmd
}

func programLabel(name string, addr pda.Address) string {
	if name == "" {
		return addr.String()
	}
	return fmt.Sprintf("%s (%s)", addr, name)
}
