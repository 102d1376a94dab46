// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"github.com/spf13/cobra"

	"github.com/aplane-algo/pdaverify/internal/pda"
	"github.com/aplane-algo/pdaverify/internal/pda/diagnose"
)

func newDiagnoseCmd(a *app) *cobra.Command {
	var target targetFlags
	var claim claimFlags
	var noVariants bool
	cmd := &cobra.Command{
		Use:   "diagnose --address ADDR [--bump N] [seed...]",
		Short: "Explain why an address does not match the derivation",
		Long: `diagnose compares a claimed address (for example the one an on-chain
"seeds constraint violated" error reports) with the canonical derivation and
tests a few bounded hypotheses: wrong bump, another configured program, or a
respelled label (hyphen vs underscore, case). Exit status is 2 unless the
claim matches.`,
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
			if cl == nil {
				return errMissingAddress
			}

			rep, err := diagnose.Explain(a.deriver, *cl, seeds, program, diagnose.Options{
				Programs:     cfg.ProgramAddresses(),
				SkipVariants: noVariants,
			})
			if err != nil {
				return err
			}
			printDiagnosis(a, cmd, rep)
			if rep.Verdict != diagnose.Match {
				return errMismatch
			}
			return nil
		},
	}
	target.register(cmd)
	claim.register(cmd, true)
	cmd.Flags().BoolVar(&noVariants, "no-variants", false, "Do not try respelled labels")
	return cmd
}

func printDiagnosis(a *app, cmd *cobra.Command, rep diagnose.Report) {
	p := a.printer(cmd.OutOrStdout())
	if rep.Verdict == diagnose.Match {
		p.OK("%s", rep.Detail)
	} else {
		p.Fail("%s: %s", rep.Verdict, rep.Detail)
	}
	p.Field("claimed", rep.Claim.Address.String())
	p.Field("canonical", rep.Canonical.String())
	if rep.Program != "" {
		p.Field("program", rep.Program)
	}
	if len(rep.Seeds) > 0 {
		p.Field("seeds", pda.FormatSeeds(rep.Seeds))
	}
}
