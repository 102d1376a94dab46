// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package repl

import (
	"sort"

	"github.com/chzyer/readline"
)

// Names supplies the configured names offered for completion. It is called
// on every completion so a reloaded config is picked up.
type Names struct {
	Profiles   func() []string
	Programs   func() []string
	Identities func() []string
}

// seedPrefixes are the kinds accepted by pda.ParseSeed.
var seedPrefixes = []string{"label:", "identity:", "u64:", "hex:"}

func (n Names) seedSuggestions(string) []string {
	out := append([]string(nil), seedPrefixes...)
	if n.Identities != nil {
		for _, id := range n.Identities() {
			out = append(out, "identity:@"+id)
		}
	}
	return out
}

func call(f func() []string) func(string) []string {
	return func(string) []string {
		if f == nil {
			return nil
		}
		names := f()
		sort.Strings(names)
		return names
	}
}

func targetItems(n Names) []readline.PrefixCompleterInterface {
	return []readline.PrefixCompleterInterface{
		readline.PcItem("--profile", readline.PcItemDynamic(call(n.Profiles))),
		readline.PcItem("--program", readline.PcItemDynamic(call(n.Programs))),
		readline.PcItem("--var"),
		readline.PcItemDynamic(n.seedSuggestions),
	}
}

// NewCompleter builds the shell's tab completer.
func NewCompleter(n Names) readline.AutoCompleter {
	withClaim := append(targetItems(n), readline.PcItem("--address"), readline.PcItem("--bump"))
	return readline.NewPrefixCompleter(
		readline.PcItem("derive", targetItems(n)...),
		readline.PcItem("inspect", targetItems(n)...),
		readline.PcItem("verify", withClaim...),
		readline.PcItem("diagnose", withClaim...),
		readline.PcItem("check", withClaim...),
		readline.PcItem("config", readline.PcItem("show"), readline.PcItem("path"), readline.PcItem("init")),
		readline.PcItem("version"),
		readline.PcItem("reload"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
