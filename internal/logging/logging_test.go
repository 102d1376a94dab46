// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)
	log.Debug("hidden")
	log.Info("shown", zap.String("program", "betting"))
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"program": "betting"`)

	buf.Reset()
	log = NewWithWriter(&buf, true)
	log.Debug("visible")
	_ = log.Sync()
	assert.Contains(t, buf.String(), "visible")
}

func TestDebugRequested(t *testing.T) {
	t.Setenv(DebugEnv, "")
	assert.False(t, DebugRequested(false))
	assert.True(t, DebugRequested(true))

	t.Setenv(DebugEnv, "1")
	assert.True(t, DebugRequested(false))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
