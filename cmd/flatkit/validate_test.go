// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs rootCmd with args, collecting whatever cobra writes through
// its own out/err writers into a fresh buffer (runValidate prints to
// os.Stdout/os.Stderr directly, so its report does not land there). It
// resets package state first so test cases don't bleed into each other
// (includeDirs is a package-level flag var bound by cobra).
func execRoot(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	includeDirs = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), err
}

func writeSchema(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateCommandOKPathExitsZero(t *testing.T) {
	path := writeSchema(t, "root.fbs", `
struct Vec3 {
  x: float;
  y: float;
  z: float;
}

table Monster {
  pos: Vec3;
  hp: int16;
}
`)

	_, err := execRoot(t, "validate", path)
	require.NoError(t, err, "a well-formed schema must exit zero")
}

func TestValidateCommandErrorPathExitsNonZero(t *testing.T) {
	path := writeSchema(t, "root.fbs", `include "missing.fbs";`)

	_, err := execRoot(t, "validate", path)
	require.Error(t, err, "an unresolvable include must exit non-zero")
}

func TestValidateCommandMissingFileExitsNonZero(t *testing.T) {
	_, err := execRoot(t, "validate", filepath.Join(t.TempDir(), "nope.fbs"))
	assert.Error(t, err)
}
