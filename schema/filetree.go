// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

// FileTree is a canonical root path, the root value, and every transitively
// included file keyed by its canonical path. Includes are deduplicated by
// canonical path: a diamond or self-referencing include graph contributes
// exactly one entry per distinct file.
type FileTree[T any] struct {
	RootPath string
	Root     T
	Files    map[string]T
	// Order lists every canonical path in the order it was first loaded
	// (root first, then includes in depth-first declared order). Passes
	// that must preserve source order across files iterate this, not Files
	// (a map has no stable iteration order of its own).
	Order []string
}

// NewFileTree builds a FileTree with the root already inserted into Files.
func NewFileTree[T any](rootPath string, root T) *FileTree[T] {
	return &FileTree[T]{
		RootPath: rootPath,
		Root:     root,
		Files:    map[string]T{rootPath: root},
		Order:    []string{rootPath},
	}
}

// Add inserts a newly-loaded file into the tree, appending it to Order.
// Callers must only call this for paths not already present.
func (t *FileTree[T]) Add(path string, value T) {
	t.Files[path] = value
	t.Order = append(t.Order, path)
}

// All returns every value in the tree, root first, then includes in load
// order.
func (t *FileTree[T]) All() []T {
	out := make([]T, 0, len(t.Order))
	for _, p := range t.Order {
		out = append(out, t.Files[p])
	}
	return out
}

// Len returns the number of distinct canonical files in the tree.
func (t *FileTree[T]) Len() int { return len(t.Files) }
