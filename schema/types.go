// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

// ScalarKind enumerates the primitive scalar spellings of spec §6.
type ScalarKind uint8

const (
	ScalarInvalid ScalarKind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Bool
)

// IsInteger reports whether the scalar kind is one of the eight integer
// primitives (the set enum underlying types are restricted to).
func (k ScalarKind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// Signed reports whether an integer scalar kind is signed.
func (k ScalarKind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// Size returns the scalar's byte width on the wire.
func (k ScalarKind) Size() uint32 {
	switch k {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	}
	return 0
}

// String names the scalar kind the way it is spelled in schema source.
func (k ScalarKind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Bool:
		return "bool"
	}
	return "<invalid scalar>"
}

// ScalarFromName maps a schema type keyword to its ScalarKind, or
// ScalarInvalid if name does not name a scalar.
func ScalarFromName(name string) ScalarKind {
	switch name {
	case "int8":
		return Int8
	case "int16":
		return Int16
	case "int32", "int":
		return Int32
	case "int64", "long":
		return Int64
	case "uint8", "ubyte", "byte":
		return Uint8
	case "uint16", "ushort":
		return Uint16
	case "uint32", "uint":
		return Uint32
	case "uint64", "ulong":
		return Uint64
	case "float", "float32":
		return Float32
	case "double", "float64":
		return Float64
	case "bool":
		return Bool
	}
	return ScalarInvalid
}

// TypeRef is a raw, not-yet-resolved type reference as written in schema
// source: either a scalar, a string, a qualified reference to an
// enum/struct/table/union declared elsewhere, or a vector of any of those
// (vectors never nest — `[[T]]` is not legal).
type TypeRef struct {
	Scalar   ScalarKind // ScalarInvalid unless this is a scalar type
	IsString bool
	// Ref is the dotted reference text for an enum/struct/table/union type,
	// e.g. "Vec3" or "Other.Ns.Type". Empty for scalar/string types.
	Ref string
	// Vector, if true, means this TypeRef describes `[inner]` where inner is
	// everything else in this struct with Vector forced false.
	Vector bool
}

// IsScalar reports whether the (non-vector) type names a scalar.
func (t TypeRef) IsScalar() bool { return t.Scalar != ScalarInvalid }

// Element returns the TypeRef with Vector cleared, describing a single
// vector element.
func (t TypeRef) Element() TypeRef {
	e := t
	e.Vector = false
	return e
}

// String renders the type reference the way it would appear in source.
func (t TypeRef) String() string {
	inner := t.Ref
	if t.IsString {
		inner = "string"
	} else if t.IsScalar() {
		inner = t.Scalar.String()
	}
	if t.Vector {
		return "[" + inner + "]"
	}
	return inner
}
