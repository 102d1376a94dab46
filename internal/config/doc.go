// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package config

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/aplane-algo/pdaverify/internal/fsutil"
	"github.com/aplane-algo/pdaverify/internal/logging"
)

// EnvVar documents an environment variable read by pdactl.
type EnvVar struct {
	Name        string
	Description string
}

// EnvVars lists every environment variable pdactl reads.
var EnvVars = []EnvVar{
	{DataDirEnv, "Data directory (config.yaml); overridden by -d"},
	{logging.DebugEnv, "Set to any value to enable debug logging"},
	{"NO_COLOR", "Set to any value to disable colored output"},
}

// WriteReference writes a markdown reference of config.yaml generated from
// the struct tags of Config and Profile.
func WriteReference(w io.Writer) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format+"\n", args...) }

	p("# Configuration Reference")
	p("")
	p("Auto-generated from Go struct tags. Do not edit manually.")
	p("")
	p("---")
	p("")
	p("## config.yaml")
	p("")
	p("File: `config.yaml` in the pdactl data directory (`-d`, `%s` or `%s`)", DataDirEnv, DefaultDataDir)
	p("")
	writeStructTable(w, reflect.TypeOf(Config{}), "")
	p("")
	p("### Profile entries")
	p("")
	writeStructTable(w, reflect.TypeOf(Profile{}), "profiles.<name>")
	p("")
	p("## Environment Variables")
	p("")
	p("| Variable | Description |")
	p("|----------|-------------|")
	for _, env := range EnvVars {
		p("| `%s` | %s |", env.Name, env.Description)
	}
}

func writeStructTable(w io.Writer, t reflect.Type, prefix string) {
	_, _ = fmt.Fprintln(w, "| Field | Type | Default | Description |")
	_, _ = fmt.Fprintln(w, "|-------|------|---------|-------------|")

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		fieldName := strings.Split(tag, ",")[0]
		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		desc := field.Tag.Get("description")
		if desc == "" {
			desc = "(no description)"
		}

		def := field.Tag.Get("default")
		switch def {
		case "":
			def = "(none)"
		case `""`:
			def = "(empty string)"
		}

		_, _ = fmt.Fprintf(w, "| `%s` | %s | `%s` | %s |\n", fieldName, formatType(field.Type), def, desc)
	}
}

func formatType(t reflect.Type) string {
	if t.PkgPath() == "time" && t.Name() == "Duration" {
		return "duration"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Map:
		return "map[" + formatType(t.Key()) + "]" + formatType(t.Elem())
	case reflect.Struct:
		return t.Name()
	default:
		return t.String()
	}
}

// StarterConfig is written by 'pdactl config init'.
const StarterConfig = `# pdactl configuration. See 'go run ./cmd/configdoc' for every field.
cluster: devnet
commitment: confirmed
cache_size: 256
cache_ttl: 30s

# Program ids used as derivation namespaces.
programs:
  token: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
  associated_token: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL

# Wallets referenced from seeds as identity:@name.
identities: {}

# Seed templates; $name placeholders are filled with --var name=value.
profiles:
  associated_token_account:
    program: associated_token
    seeds: ["identity:$wallet", "identity:TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", "identity:$mint"]
    description: Associated token account of a wallet for a mint
`

// WriteStarter creates dataDir if needed and writes StarterConfig to its
// config.yaml. An existing file is kept unless overwrite is set.
func WriteStarter(dataDir string, overwrite bool) (string, error) {
	if dataDir == "" {
		return "", fmt.Errorf("no data directory (use -d or set %s)", DataDirEnv)
	}
	path := GetConfigPath(dataDir)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := fsutil.MkdirAll(dataDir); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, []byte(StarterConfig)); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
