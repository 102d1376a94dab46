// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package repl holds the line handling for the pdactl shell.
package repl

import "strings"

// ParseCommand parses command line, handling quoted strings
func ParseCommand(input string) (string, []string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	for i := 0; i < len(input); i++ {
		ch := input[i]

		switch ch {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if inQuotes {
				current.WriteByte(ch)
			} else if current.Len() > 0 || quoted {
				parts = append(parts, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 || quoted {
		parts = append(parts, current.String())
	}

	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], nil
	}
	return parts[0], parts[1:]
}

// IsExit reports whether the command ends the shell.
func IsExit(cmd string) bool {
	switch cmd {
	case "quit", "exit", "q":
		return true
	}
	return false
}
