// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatkit/flatkit/schema"
	"github.com/flatkit/flatkit/schema/lexparse"
)

func newMemLoader(t *testing.T, files map[string]string) *schema.Loader {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return &schema.Loader{FS: fs, Parse: lexparse.Parse}
}

func TestLoaderResolvesDiamondIncludesOnce(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"/root.fbs":  `include "a.fbs"; include "b.fbs";`,
		"/a.fbs":     `include "common.fbs";`,
		"/b.fbs":     `include "common.fbs";`,
		"/common.fbs": `struct Vec3 { x: float; y: float; z: float; }`,
	})

	tree, err := loader.Load("/root.fbs")
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Len(), "common.fbs must be parsed exactly once despite two include paths")
}

func TestLoaderSelfReferencingIncludeTerminates(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"/root.fbs": `include "root.fbs";`,
	})

	tree, err := loader.Load("/root.fbs")
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
}

func TestLoaderMissingIncludeFails(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"/root.fbs": `include "missing.fbs";`,
	})

	_, err := loader.Load("/root.fbs")
	require.Error(t, err)
	var notFound *schema.FileNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing.fbs", notFound.Path)
}

func TestLoaderSearchesIncludeDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/root.fbs", []byte(`include "common.fbs";`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/shared/common.fbs", []byte(`struct Empty {}`), 0o644))

	loader := &schema.Loader{FS: fs, Parse: lexparse.Parse, IncludeDirs: []string{"/shared"}}
	tree, err := loader.Load("/proj/root.fbs")
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
}

func TestLoaderPropagatesParseError(t *testing.T) {
	loader := newMemLoader(t, map[string]string{
		"/root.fbs": `table T { f int32; }`,
	})

	_, err := loader.Load("/root.fbs")
	require.Error(t, err)
	var perr *schema.ParseError
	assert.ErrorAs(t, err, &perr)
}
