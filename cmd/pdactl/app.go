// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/aplane-algo/pdaverify/internal/accounts"
	"github.com/aplane-algo/pdaverify/internal/config"
	"github.com/aplane-algo/pdaverify/internal/display"
	"github.com/aplane-algo/pdaverify/internal/logging"
	"github.com/aplane-algo/pdaverify/internal/pda"
)

// errMismatch marks a verification that ran but did not match. main exits
// with status 2 for it so scripts can tell it apart from usage errors.
var errMismatch = errors.New("verification mismatch")

// errShellFlag rejects flags that only take effect when the process starts.
var errShellFlag = errors.New("--data-dir and --debug cannot be changed inside the shell; restart pdactl")

// flagState holds the persistent flags. Each command tree parses into its
// own copy, which is applied to the app under mu before the command runs.
type flagState struct {
	dataDir string
	cluster string
	rpcURL  string
	debug   bool
	noColor bool
}

// app is the state shared by all commands of one process, including every
// line run inside the shell.
type app struct {
	mu      sync.RWMutex
	flags   flagState
	inShell bool
	loaded  bool
	cfg     config.Config
	log     *zap.Logger
	deriver *pda.Deriver
	lookup  accounts.Lookup
	// lookupURL is the endpoint lookup was built for.
	lookupURL string
}

func newApp() *app {
	return &app{deriver: pda.NewDeriver()}
}

func (a *app) saveFlags() flagState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flags
}

func (a *app) restoreFlags(f flagState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flags = f
}

// applyFlags installs the flags parsed for one command. Inside the shell
// the data directory and log level are fixed by the shell's own start.
func (a *app) applyFlags(f flagState) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inShell && (f.dataDir != a.flags.dataDir || f.debug != a.flags.debug) {
		return errShellFlag
	}
	a.flags = f
	return nil
}

func (a *app) dataDir() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return config.GetDataDir(a.flags.dataDir)
}

func (a *app) rpcURLOverride() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flags.rpcURL
}

// load reads config and builds the logger once per process. The shell
// calls reload when the config file changes.
func (a *app) load() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return nil
	}
	if a.log == nil {
		a.log = logging.New(logging.DebugRequested(a.flags.debug))
	}
	cfg, err := config.Load(config.GetDataDir(a.flags.dataDir))
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.lookup = nil
	a.loaded = true
	return nil
}

// reload re-reads config.yaml from dataDir. On failure the previous config
// stays in effect.
func (a *app) reload(dataDir string) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.lookup = nil
	a.loaded = true
	return nil
}

func (a *app) currentConfig() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

func (a *app) logger() *zap.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return logging.OrNop(a.log)
}

// activeCluster is the --cluster flag or the configured default.
func (a *app) activeCluster() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.flags.cluster != "" {
		return a.flags.cluster
	}
	return a.cfg.Cluster
}

// accountLookup builds the RPC lookup on first use and again whenever the
// endpoint changes. The cluster is checked against clusters_allowed even
// when --rpc-url overrides its endpoint.
func (a *app) accountLookup() (accounts.Lookup, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cluster := a.flags.cluster
	if cluster == "" {
		cluster = a.cfg.Cluster
	}
	url, err := a.cfg.RPCURL(cluster)
	if err != nil {
		return nil, err
	}
	if a.flags.rpcURL != "" {
		url = a.flags.rpcURL
	}
	if a.lookup != nil && a.lookupURL == url {
		return a.lookup, nil
	}
	rpcLookup, err := accounts.NewRPC(url, a.cfg.Commitment, a.log)
	if err != nil {
		return nil, fmt.Errorf("rpc for %s: %w", cluster, err)
	}
	logging.OrNop(a.log).Debug("rpc lookup ready", zap.String("cluster", cluster), zap.String("url", url))
	a.lookup = accounts.NewCached(rpcLookup, a.cfg.CacheSize, a.cfg.CacheTTL)
	a.lookupURL = url
	return a.lookup, nil
}

// printer returns a display.Printer on w, colored only for a real terminal.
func (a *app) printer(w io.Writer) *display.Printer {
	a.mu.RLock()
	noColor := a.flags.noColor
	a.mu.RUnlock()

	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = display.SupportsColor(f)
	}
	return display.NewPrinter(w, color)
}
