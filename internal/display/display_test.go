// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Field("address", "abc")
	p.OK("verified %d", 1)
	p.Fail("mismatch")
	p.Warn("careful")
	p.Heading("Trace")

	assert.Equal(t, "address:   abc\n✓ verified 1\n✗ mismatch\n! careful\nTrace\n=====\n", buf.String())
	assert.NotContains(t, buf.String(), "\033[")
}

func TestColorPrinterKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	p.OK("verified")
	assert.Contains(t, buf.String(), "verified")
	assert.Contains(t, buf.String(), "✓")
}
