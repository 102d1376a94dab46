// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleterTopLevel(t *testing.T) {
	c := NewCompleter(Names{})

	got, offset := c.Do([]rune("der"), 3)
	assert.Equal(t, 3, offset)
	assert.Equal(t, [][]rune{[]rune("ive ")}, got)
}

func TestSeedSuggestionsIncludeIdentities(t *testing.T) {
	n := Names{Identities: func() []string { return []string{"alice"} }}
	got := n.seedSuggestions("")
	assert.Contains(t, got, "label:")
	assert.Contains(t, got, "identity:@alice")
}
