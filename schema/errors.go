// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

import "fmt"

// ParseError reports a syntax error at a specific position in a schema
// source file.
type ParseError struct {
	File    string
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Message)
}

// FileNotFound reports that an `include` directive could not be resolved
// against the importing file's directory or any supplied include directory.
type FileNotFound struct {
	Path          string
	SearchedDirs  []string
}

func (e *FileNotFound) Error() string {
	return fmt.Sprintf("include %q not found (searched: %v)", e.Path, e.SearchedDirs)
}
