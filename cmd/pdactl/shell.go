// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aplane-algo/pdaverify/cmd/pdactl/internal/repl"
	"github.com/aplane-algo/pdaverify/internal/config"
)

func newShellCmd(a *app) *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell with history, completion and config auto-reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			dataDir := a.dataDir()
			if !noWatch && dataDir != "" {
				reload := func() error { return a.reload(dataDir) }
				stop, err := startConfigWatcher(ctx, config.GetConfigPath(dataDir), reload, a.logger())
				if err != nil {
					a.logger().Warn("config auto-reload disabled", zap.Error(err))
				} else {
					defer stop()
				}
			}
			return runShell(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload config.yaml when it changes")
	return cmd
}

const shellHelp = `Commands: derive, verify, inspect, diagnose, check, config show
Shell:    reload (re-read config.yaml), help, quit
Flags work as on the command line, e.g.
  derive -P betting label:betting_account identity:@alice`

func runShell(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	a.mu.Lock()
	a.inShell = true
	a.mu.Unlock()

	_, _ = fmt.Fprintln(out, "pdactl shell - type 'help' for commands or 'quit' to exit")

	if f, ok := in.(*os.File); ok && f == os.Stdin {
		homeDir, _ := os.UserHomeDir()
		rl, err := readline.NewEx(&readline.Config{
			Prompt:            prompt(a),
			HistoryFile:       filepath.Join(homeDir, ".pdactl_history"),
			HistoryLimit:      1000,
			AutoComplete:      repl.NewCompleter(completionNames(a)),
			InterruptPrompt:   "^C",
			EOFPrompt:         "exit",
			HistorySearchFold: true,
		})
		if err == nil {
			defer func() { _ = rl.Close() }()
			for {
				rl.SetPrompt(prompt(a))
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) {
						if len(line) == 0 {
							_, _ = fmt.Fprintln(out, "Use 'quit' or 'exit' to exit")
						}
						continue
					}
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}
				if done := runShellLine(ctx, a, line, out); done {
					return nil
				}
			}
		}
		_, _ = fmt.Fprintf(out, "Failed to create readline instance, falling back to basic input: %v\n", err)
	}

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, prompt(a))
		if !scanner.Scan() {
			return scanner.Err()
		}
		if done := runShellLine(ctx, a, scanner.Text(), out); done {
			return nil
		}
	}
}

// runShellLine executes one line and reports whether the shell should exit.
func runShellLine(ctx context.Context, a *app, line string, out io.Writer) bool {
	name, args := repl.ParseCommand(line)
	switch {
	case name == "":
		return false
	case repl.IsExit(name):
		return true
	case name == "help":
		_, _ = fmt.Fprintln(out, shellHelp)
		return false
	case name == "reload":
		if err := a.reload(a.dataDir()); err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		} else {
			_, _ = fmt.Fprintln(out, "config reloaded")
		}
		return false
	case name == "shell":
		_, _ = fmt.Fprintln(out, "already in the shell")
		return false
	}

	// Flags given on one line must not carry over to the next.
	defer a.restoreFlags(a.saveFlags())

	root := newRootCmd(a)
	root.SetArgs(append([]string{name}, args...))
	root.SetOut(out)
	root.SetErr(out)
	if err := root.ExecuteContext(ctx); err != nil && !errors.Is(err, errMismatch) {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
	}
	return false
}

func prompt(a *app) string {
	return fmt.Sprintf("pdactl:%s> ", a.activeCluster())
}

func completionNames(a *app) repl.Names {
	return repl.Names{
		Profiles:   func() []string { return config.SortedKeys(a.currentConfig().Profiles) },
		Programs:   func() []string { return config.SortedKeys(a.currentConfig().Programs) },
		Identities: func() []string { return config.SortedKeys(a.currentConfig().Identities) },
	}
}
