// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package validate runs the four ordered semantic-validation passes
// (enums, structs, tables, unions) over a parsed schema.FileTree, producing
// a fully typed, layout-resolved Schema or the first error encountered. The
// package is pure: given the same input it always produces the same
// output, performing no I/O.
package validate

import "strings"

// Context is the dotted error-context path ("Namespace.Type.field.subfield")
// threaded through every validation step and prefixed onto every emitted
// message. It is passed explicitly down the call chain, never held in
// package-level state, so the validator stays free of ambient mutable state.
type Context []string

// Push returns a new Context with seg appended, leaving the receiver
// untouched.
func (c Context) Push(seg string) Context {
	out := make(Context, len(c), len(c)+1)
	copy(out, c)
	return append(out, seg)
}

// String renders the context as a dotted path, or "" for the empty context.
func (c Context) String() string {
	return strings.Join(c, ".")
}
