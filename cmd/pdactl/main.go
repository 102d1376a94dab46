// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Command pdactl derives, verifies and diagnoses program-derived addresses
// and checks the accounts behind them on a cluster.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/pdaverify/internal/version"
)

func main() {
	a := newApp()
	root := newRootCmd(a)
	err := root.Execute()
	_ = a.logger().Sync()
	if err != nil {
		if errors.Is(err, errMismatch) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Commands annotated with configNotNeeded run without reading config.yaml.
const (
	annotationConfig = "config"
	configNotNeeded  = "not-needed"
)

// newRootCmd builds a fresh command tree bound to a. The shell builds one
// per input line so flag values never leak between lines.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pdactl",
		Short: "Derive, verify and diagnose program-derived addresses",
		Long: `pdactl computes program-derived addresses exactly as the on-chain runtime
does, verifies claimed (address, bump) pairs, explains mismatches, and checks
whether the derived account exists and who owns it.

Seeds are written as kind:value:
  label:betting_account      UTF-8 label bytes
  identity:<base58>          32 raw public key bytes (identity:@name from config)
  u64:42                     8-byte little-endian integer
  hex:deadbeef               raw bytes`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := a.saveFlags()
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := a.applyFlags(f); err != nil {
			return err
		}
		if cmd.Annotations[annotationConfig] == configNotNeeded {
			return nil
		}
		return a.load()
	}

	root.PersistentFlags().StringVarP(&f.dataDir, "data-dir", "d", f.dataDir, "Data directory (or set PDACTL_DATA)")
	root.PersistentFlags().StringVarP(&f.cluster, "cluster", "c", f.cluster, "Cluster: devnet, testnet, mainnet, localnet")
	root.PersistentFlags().StringVar(&f.rpcURL, "rpc-url", f.rpcURL, "Override the JSON-RPC endpoint")
	root.PersistentFlags().BoolVar(&f.debug, "debug", f.debug, "Enable debug logging (or set PDACTL_DEBUG)")
	root.PersistentFlags().BoolVar(&f.noColor, "no-color", f.noColor, "Disable colored output")

	root.AddCommand(
		newDeriveCmd(a),
		newVerifyCmd(a),
		newInspectCmd(a),
		newDiagnoseCmd(a),
		newCheckCmd(a),
		newConfigCmd(a),
		newShellCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfig: configNotNeeded},
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pdactl %s\n", version.String())
		},
	}
}
