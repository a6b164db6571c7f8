// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatkit/flatkit/internal/log"
)

func TestStdLoggerWritesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewStdLogger(&buf)

	require.NoError(t, logger.Log(log.LevelInfo, "msg", "hello", "n", 3))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "n=3")
}

func TestStdLoggerPadsOddKeyvals(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewStdLogger(&buf)

	require.NoError(t, logger.Log(log.LevelWarn, "msg"))
	assert.Contains(t, buf.String(), "msg=MISSING_VALUE")
}

func TestFilterDropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	filtered := log.NewFilter(log.NewStdLogger(&buf), log.FilterLevel(log.LevelError))

	require.NoError(t, filtered.Log(log.LevelDebug, "msg", "dropped"))
	require.NoError(t, filtered.Log(log.LevelInfo, "msg", "dropped too"))
	assert.Empty(t, buf.String())

	require.NoError(t, filtered.Log(log.LevelError, "msg", "kept"))
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestFilterDefaultsToDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	filtered := log.NewFilter(log.NewStdLogger(&buf))

	require.NoError(t, filtered.Log(log.LevelDebug, "msg", "shown"))
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestHelperFormatsMessages(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(log.NewStdLogger(&buf))

	h.Infof("loaded %d files", 3)
	assert.Contains(t, buf.String(), "msg=loaded 3 files")
}

func TestHelperRespectsUnderlyingFilter(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(log.NewFilter(log.NewStdLogger(&buf), log.FilterLevel(log.LevelError)))

	h.Debugf("ignored")
	assert.Empty(t, buf.String())

	h.Errorf("boom: %v", "reason")
	assert.Contains(t, buf.String(), "msg=boom: reason")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", log.LevelDebug.String())
	assert.Equal(t, "ERROR", log.LevelError.String())
	assert.Equal(t, "UNKNOWN", log.Level(99).String())
}
