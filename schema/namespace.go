// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package schema is the typed representation of a schema as parsed: the
// syntax model shared by the loader, validator, and lexer/parser. Values in
// this package are created once by the parser and never mutated afterwards.
package schema

import "strings"

// Namespace is an ordered sequence of identifier segments. The empty
// sequence denotes the root namespace.
type Namespace []string

// Root is the empty namespace.
func Root() Namespace { return nil }

// String renders the namespace as dot-joined segments ("" for the root).
func (n Namespace) String() string {
	return strings.Join(n, ".")
}

// Join appends a namespace to the receiver, returning a new namespace.
func (n Namespace) Join(other Namespace) Namespace {
	out := make(Namespace, 0, len(n)+len(other))
	out = append(out, n...)
	out = append(out, other...)
	return out
}

// Parent returns the namespace with its last segment removed, and false if
// the receiver is already the root.
func (n Namespace) Parent() (Namespace, bool) {
	if len(n) == 0 {
		return nil, false
	}
	return n[:len(n)-1], true
}

// Qualify joins a namespace and an identifier with ".".
func Qualify(ns Namespace, name string) string {
	if len(ns) == 0 {
		return name
	}
	return ns.String() + "." + name
}

// ParseNamespace splits a dotted namespace string ("a.b.c") into segments.
// An empty string yields the root namespace.
func ParseNamespace(s string) Namespace {
	if s == "" {
		return nil
	}
	return Namespace(strings.Split(s, "."))
}

// Equal reports whether two namespaces have identical segments.
func (n Namespace) Equal(other Namespace) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}
