// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/pdaverify/internal/config"
	"github.com/aplane-algo/pdaverify/internal/version"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayConfig(a, cmd)
			return nil
		},
	})
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config.yaml into the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteStarter(a.dataDir(), force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	// Must work when the existing config does not parse.
	initCmd.Annotations = map[string]string{annotationConfig: configNotNeeded}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config.yaml")
	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath(a.dataDir()))
		},
	})
	return cmd
}

// displayConfig prints the current configuration
func displayConfig(a *app, cmd *cobra.Command) {
	cfg := a.currentConfig()
	dataDir := a.dataDir()
	p := a.printer(cmd.OutOrStdout())

	p.Heading("Current Configuration")
	p.Field("version", version.String())
	p.Field("data dir", dataDir)
	p.Field("file", config.GetConfigPath(dataDir))
	p.Field("cluster", a.activeCluster())
	if len(cfg.ClustersAllowed) > 0 {
		p.Field("allowed", strings.Join(cfg.ClustersAllowed, ", "))
	} else {
		p.Field("allowed", "all clusters")
	}
	if url, err := cfg.RPCURL(a.activeCluster()); err == nil {
		if override := a.rpcURLOverride(); override != "" {
			url = override + " (flag)"
		}
		p.Field("rpc", url)
	}
	p.Field("commit", cfg.Commitment)
	p.Field("cache", fmt.Sprintf("%d entries, %s", cfg.CacheSize, cfg.CacheTTL))

	for _, name := range config.SortedKeys(cfg.Programs) {
		p.Field("program", fmt.Sprintf("%-16s %s", name, cfg.Programs[name]))
	}
	for _, name := range config.SortedKeys(cfg.Identities) {
		p.Field("identity", fmt.Sprintf("%-16s %s", name, cfg.Identities[name]))
	}
	for _, name := range config.SortedKeys(cfg.Profiles) {
		prof := cfg.Profiles[name]
		line := fmt.Sprintf("%-16s %s [%s]", name, prof.Program, strings.Join(prof.Seeds, " "))
		if vars := prof.Vars(); len(vars) > 0 {
			line += " needs " + strings.Join(vars, ", ")
		}
		p.Field("profile", line)
		if prof.Description != "" {
			p.Dim("           %s", prof.Description)
		}
	}
}
