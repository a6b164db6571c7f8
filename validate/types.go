// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import "github.com/flatkit/flatkit/schema"

// TypeKind tags the concrete semantic type a FieldType describes.
type TypeKind uint8

const (
	KindScalar TypeKind = iota // includes bool/float/double, see schema.ScalarKind
	KindEnum
	KindStruct
	KindTable
	KindUnion
	KindString
)

// FieldType is a validated, resolved field type: the closed
// TableFieldType/struct-field-type set of spec §3, plus a Vector flag for
// table fields (struct fields never set Vector — vectors are rejected by
// struct validation).
type FieldType struct {
	Kind   TypeKind
	Scalar schema.ScalarKind // valid when Kind == KindScalar
	Enum   *ValidatedEnum    // valid when Kind == KindEnum
	Struct *ValidatedStruct  // valid when Kind == KindStruct
	// TableName/UnionName are qualified names; tables/unions are referenced
	// by name only (no embedded layout — both are offset-indirected, so
	// their own internal layout never affects the referencing field).
	TableName string
	UnionName string
	Vector    bool
}

// Size returns the element's on-wire size for struct-field layout purposes.
// Only valid for the scalar/enum/struct kinds structs are allowed to use.
func (t FieldType) Size() uint32 {
	switch t.Kind {
	case KindScalar:
		return t.Scalar.Size()
	case KindEnum:
		return t.Enum.Underlying.Size()
	case KindStruct:
		return t.Struct.Size
	}
	return 0
}

// Align returns the element's natural alignment for struct-field layout.
func (t FieldType) Align() uint32 {
	switch t.Kind {
	case KindScalar:
		return t.Scalar.Size()
	case KindEnum:
		return t.Enum.Underlying.Size()
	case KindStruct:
		return t.Struct.Align
	}
	return 0
}

// EnumVariant is a validated (identifier, integer value) pair.
type EnumVariant struct {
	Name  string
	Value int64
}

// ValidatedEnum is a fully validated enum: ascending, in-range, unique
// variants over a fixed integer underlying type.
type ValidatedEnum struct {
	Name       string // qualified
	Underlying schema.ScalarKind
	Variants   []EnumVariant
}

// VariantByValue finds the variant with the given numeric value.
func (e *ValidatedEnum) VariantByValue(v int64) (EnumVariant, bool) {
	for _, variant := range e.Variants {
		if variant.Value == v {
			return variant, true
		}
	}
	return EnumVariant{}, false
}

// VariantByName finds the variant with the given identifier.
func (e *ValidatedEnum) VariantByName(name string) (EnumVariant, bool) {
	for _, variant := range e.Variants {
		if variant.Name == name {
			return variant, true
		}
	}
	return EnumVariant{}, false
}

// StructField is one field of a validated struct, in declaration order.
type StructField struct {
	Name    string
	Type    FieldType
	Padding uint32
}

// ValidatedStruct is a fully validated, fixed-layout struct.
type ValidatedStruct struct {
	Name   string // qualified
	Align  uint32
	Size   uint32
	Fields []StructField
}

// TableField is one field of a validated table, in ascending-slot order.
type TableField struct {
	Name       string
	Type       FieldType
	Slot       int // the field's own slot (the value slot, for union/vector-of-union)
	Deprecated bool
	Required   bool
	// Default* hold the field's default; only meaningful for scalar/bool/
	// float/enum kinds. EnumDefault names the zero/explicit default variant.
	HasDefault  bool
	DefaultInt  int64
	DefaultFlt  float64
	DefaultBool bool
	EnumDefault string
}

// IsUnionLike reports whether the field occupies two consecutive slots (a
// union, or a vector-of-unions).
func (f TableField) IsUnionLike() bool {
	return f.Type.Kind == KindUnion
}

// TypeSlot returns the slot holding this field's u8 type tag, valid only
// when IsUnionLike is true: it always immediately precedes the value slot.
func (f TableField) TypeSlot() int { return f.Slot - 1 }

// ValidatedTable is a fully validated table, fields in ascending slot order.
type ValidatedTable struct {
	Name   string // qualified
	Fields []TableField
}

// UnionVariant is one validated union variant; the implicit NONE variant is
// Variants[0] with Tag 0 and an empty TableName.
type UnionVariant struct {
	Name      string
	TableName string // qualified name of the referenced table; empty for NONE
	Tag       int
}

// ValidatedUnion is a fully validated union: an implicit NONE at tag 0,
// followed by the declared variants at tags 1..N in declaration order.
type ValidatedUnion struct {
	Name     string // qualified
	Variants []UnionVariant
}

// VariantByTag finds the variant with the given tag.
func (u *ValidatedUnion) VariantByTag(tag int) (UnionVariant, bool) {
	for _, v := range u.Variants {
		if v.Tag == tag {
			return v, true
		}
	}
	return UnionVariant{}, false
}

// Schema is the fully validated, layout-resolved output of the validator:
// four lists, each keyed by qualified name.
type Schema struct {
	Enums   map[string]*ValidatedEnum
	Structs map[string]*ValidatedStruct
	Tables  map[string]*ValidatedTable
	Unions  map[string]*ValidatedUnion
}
