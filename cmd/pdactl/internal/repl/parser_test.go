// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package repl

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCmd  string
		wantArgs []string
	}{
		{
			name:     "simple command",
			input:    "reload",
			wantCmd:  "reload",
			wantArgs: nil,
		},
		{
			name:     "command with args",
			input:    "derive -P betting label:betting_account identity:@alice",
			wantCmd:  "derive",
			wantArgs: []string{"-P", "betting", "label:betting_account", "identity:@alice"},
		},
		{
			name:     "quoted label with spaces",
			input:    `derive -P betting "label:betting account"`,
			wantCmd:  "derive",
			wantArgs: []string{"-P", "betting", "label:betting account"},
		},
		{
			name:     "empty quoted label",
			input:    `derive -P betting label:x ""`,
			wantCmd:  "derive",
			wantArgs: []string{"-P", "betting", "label:x", ""},
		},
		{
			name:     "empty input",
			input:    "",
			wantCmd:  "",
			wantArgs: nil,
		},
		{
			name:     "whitespace only",
			input:    "   \t  ",
			wantCmd:  "",
			wantArgs: nil,
		},
		{
			name:     "multiple spaces between args",
			input:    "verify   -a   ADDR",
			wantCmd:  "verify",
			wantArgs: []string{"-a", "ADDR"},
		},
		{
			name:     "tabs as separators",
			input:    "check\t-p\tvault",
			wantCmd:  "check",
			wantArgs: []string{"-p", "vault"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseCommand(tt.input)
			if cmd != tt.wantCmd {
				t.Errorf("ParseCommand() cmd = %v, want %v", cmd, tt.wantCmd)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("ParseCommand() args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestIsExit(t *testing.T) {
	for _, cmd := range []string{"quit", "exit", "q"} {
		if !IsExit(cmd) {
			t.Errorf("IsExit(%q) = false", cmd)
		}
	}
	if IsExit("derive") {
		t.Error("IsExit(derive) = true")
	}
}
