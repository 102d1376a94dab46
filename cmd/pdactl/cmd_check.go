// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/pdaverify/internal/accounts"
	"github.com/aplane-algo/pdaverify/internal/preflight"
)

var errMissingAddress = errors.New("--address is required")

func newCheckCmd(a *app) *cobra.Command {
	var target targetFlags
	var claim claimFlags
	cmd := &cobra.Command{
		Use:   "check [seed...]",
		Short: "Derive, verify an optional claim, and look the account up on the cluster",
		Long: `check is the preflight run before submitting a transaction that references a
derived account. It reports one of:
  ready        account exists and is owned by the program
  needs-init   no account at the derived address yet
  wrong-owner  an account exists but another program owns it
  mismatch     the claimed address/bump does not verify (exit status 2)`,
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
			lookup, err := a.accountLookup()
			if err != nil {
				return err
			}

			checker := &preflight.Checker{Deriver: a.deriver, Lookup: lookup, Log: a.logger()}
			rep, err := checker.Run(cmd.Context(), preflight.Request{
				Seeds:       seeds,
				Program:     program,
				Claim:       cl,
				AltPrograms: cfg.ProgramAddresses(),
			})
			if err != nil {
				return err
			}

			p := a.printer(cmd.OutOrStdout())
			p.Field("cluster", a.activeCluster())
			p.Field("address", rep.Derived.Address.String())
			p.Field("bump", fmt.Sprintf("%d", rep.Derived.Bump))

			switch rep.Status {
			case preflight.StatusReady:
				p.OK("ready: owned by %s, %s SOL, %d data bytes", programLabel(cfg.ProgramName(program), program), rep.Account.SOL(), rep.Account.DataLen)
			case preflight.StatusNeedsInit:
				p.Warn("needs-init: no account at %s", rep.Derived.Address)
				// Initialization usually follows; the next check must ask the node.
				if cached, ok := lookup.(*accounts.Cached); ok {
					cached.Forget(rep.Derived.Address)
				}
			case preflight.StatusWrongOwner:
				p.Fail("wrong-owner: owned by %s, expected %s", rep.Account.Owner, program)
			case preflight.StatusMismatch:
				printDiagnosis(a, cmd, *rep.Diagnosis)
				return errMismatch
			}
			return nil
		},
	}
	target.register(cmd)
	claim.register(cmd, false)
	return cmd
}
