// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

// Well-known metadata attribute names recognised by the validator. Any other
// attribute name is an opaque user attribute and is carried through
// unvalidated.
const (
	AttrID          = "id"
	AttrDeprecated  = "deprecated"
	AttrRequired    = "required"
	AttrForceAlign  = "force_align"
	AttrBitFlags    = "bit_flags"
)

// Metadata is the parenthesised attribute list attached to a declaration or
// field: `(id: 3, deprecated)`. A present-but-valueless attribute (e.g.
// `deprecated`) maps to a LiteralNone value.
type Metadata map[string]Literal

// Has reports whether name is present in the metadata, regardless of value.
func (m Metadata) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m[name]
	return ok
}

// Get returns the literal for name and whether it was present.
func (m Metadata) Get(name string) (Literal, bool) {
	if m == nil {
		return Literal{}, false
	}
	v, ok := m[name]
	return v, ok
}

// Int returns the integer value of a metadata attribute, or ok=false if
// absent or not an integer literal.
func (m Metadata) Int(name string) (int64, bool) {
	v, ok := m.Get(name)
	if !ok || v.Kind != LiteralInt {
		return 0, false
	}
	return v.Int, true
}
