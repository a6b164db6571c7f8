// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatkit/flatkit/schema"
	"github.com/flatkit/flatkit/schema/lexparse"
	"github.com/flatkit/flatkit/validate"
)

// mustTree parses src as the sole file of a single-file FileTree, the
// common case every pass is exercised against (cross-namespace resolution
// tests build a multi-file tree explicitly).
func mustTree(t *testing.T, src string) *schema.FileTree[*schema.Schema] {
	t.Helper()
	s, err := lexparse.Parse("t.fbs", src)
	require.NoError(t, err)
	return schema.NewFileTree[*schema.Schema]("t.fbs", s)
}

func TestValidateEnumsAscendingAndImplicit(t *testing.T) {
	tree := mustTree(t, `enum Color : byte { Red = 0, Green, Blue = 5 }`)
	schemaOut, err := validate.Validate(tree)
	require.NoError(t, err)

	color := schemaOut.Enums["Color"]
	require.NotNil(t, color)
	require.Len(t, color.Variants, 3)
	assert.Equal(t, int64(0), color.Variants[0].Value)
	assert.Equal(t, int64(1), color.Variants[1].Value)
	assert.Equal(t, int64(5), color.Variants[2].Value)
}

func TestValidateEnumsRejectsNonAscending(t *testing.T) {
	tree := mustTree(t, `enum Color : byte { Red = 5, Green = 2 }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	var serr *validate.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "ascending")
}

func TestValidateEnumsRejectsOutOfRange(t *testing.T) {
	tree := mustTree(t, `enum Small : byte { A = 1000 }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestValidateEnumsRejectsNonIntegerUnderlying(t *testing.T) {
	tree := mustTree(t, `enum Bad : float { A = 1 }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of the eight integer primitives")
}

func TestValidateEnumsRejectsBitFlags(t *testing.T) {
	tree := mustTree(t, `enum Flags : byte (bit_flags) { A = 0 }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bit_flags is not supported")
}

func TestValidateStructLayoutAndPadding(t *testing.T) {
	src := `
struct Vec3 {
	x: float;
	y: float;
	z: float;
}
struct Mixed {
	a: byte;
	b: int32;
}
`
	tree := mustTree(t, src)
	out, err := validate.Validate(tree)
	require.NoError(t, err)

	vec3 := out.Structs["Vec3"]
	require.NotNil(t, vec3)
	assert.Equal(t, uint32(4), vec3.Align)
	assert.Equal(t, uint32(12), vec3.Size)

	mixed := out.Structs["Mixed"]
	require.NotNil(t, mixed)
	assert.Equal(t, uint32(4), mixed.Align)
	assert.Equal(t, uint32(8), mixed.Size) // byte + 3 pad + int32
	assert.Equal(t, uint32(3), mixed.Fields[0].Padding)
}

func TestValidateStructEnumFieldUsesUnderlyingWidth(t *testing.T) {
	src := `
enum BigID : int64 { First = 0 }
struct Tagged {
	flag: byte;
	id: BigID;
}
`
	tree := mustTree(t, src)
	out, err := validate.Validate(tree)
	require.NoError(t, err)

	tagged := out.Structs["Tagged"]
	require.NotNil(t, tagged)
	// BigID's underlying type is 8 bytes wide: the struct must align/size to
	// 8, not the 3/4 an underlying-width-insensitive formula would produce.
	assert.Equal(t, uint32(8), tagged.Align)
	assert.Equal(t, uint32(16), tagged.Size) // byte + 7 pad + 8-byte enum
	assert.Equal(t, uint32(7), tagged.Fields[0].Padding)
}

func TestValidateStructRejectsVectorField(t *testing.T) {
	tree := mustTree(t, `struct Bad { xs: [int32]; }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be vectors")
}

func TestValidateStructRejectsCycle(t *testing.T) {
	src := `
struct A { b: B; }
struct B { a: A; }
`
	tree := mustTree(t, src)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic dependency")
}

func TestValidateStructRejectsTableReference(t *testing.T) {
	src := `
table T { f: int32; }
struct S { t: T; }
`
	tree := mustTree(t, src)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reference tables or unions")
}

func TestValidateTableSlotAssignment(t *testing.T) {
	src := `
table Monster {
	name: string (required);
	hp: int32 = 100;
	inventory: [ubyte];
}
`
	tree := mustTree(t, src)
	out, err := validate.Validate(tree)
	require.NoError(t, err)

	m := out.Tables["Monster"]
	require.NotNil(t, m)
	require.Len(t, m.Fields, 3)
	assert.Equal(t, 0, m.Fields[0].Slot)
	assert.True(t, m.Fields[0].Required)
	assert.Equal(t, 1, m.Fields[1].Slot)
	assert.True(t, m.Fields[1].HasDefault)
	assert.Equal(t, int64(100), m.Fields[1].DefaultInt)
	assert.Equal(t, 2, m.Fields[2].Slot)
}

func TestValidateTableUnionOccupiesTwoSlots(t *testing.T) {
	src := `
table Weapon { damage: int32; }
union Equipment { Weapon }
table Monster {
	hp: int32;
	equipment: Equipment;
}
`
	tree := mustTree(t, src)
	out, err := validate.Validate(tree)
	require.NoError(t, err)

	m := out.Tables["Monster"]
	require.NotNil(t, m)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, 0, m.Fields[0].Slot)
	eq := m.Fields[1]
	assert.True(t, eq.IsUnionLike())
	assert.Equal(t, 2, eq.Slot)
	assert.Equal(t, 1, eq.TypeSlot())
}

func TestValidateTableRejectsRequiredOnScalar(t *testing.T) {
	tree := mustTree(t, `table T { f: int32 (required); }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only legal on non-scalar")
}

func TestValidateTableRejectsDefaultOnNonScalar(t *testing.T) {
	tree := mustTree(t, `table T { f: string = "x"; }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only legal on scalar")
}

func TestValidateTableExplicitIDGapFails(t *testing.T) {
	tree := mustTree(t, `
table T {
	a: int32 (id: 0);
	b: int32 (id: 2);
}
`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id must be previous id + 1")
}

func TestValidateTableExplicitIDReordersFields(t *testing.T) {
	tree := mustTree(t, `
table T {
	b: int32 (id: 1);
	a: int32 (id: 0);
}
`)
	out, err := validate.Validate(tree)
	require.NoError(t, err)
	fields := out.Tables["T"].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Name)
	assert.Equal(t, "b", fields[1].Name)
}

func TestValidateUnionImplicitNoneAndTags(t *testing.T) {
	src := `
table Weapon { damage: int32; }
table Armor { defense: int32; }
union Equipped { Weapon, Shield: Armor }
`
	tree := mustTree(t, src)
	out, err := validate.Validate(tree)
	require.NoError(t, err)

	u := out.Unions["Equipped"]
	require.NotNil(t, u)
	require.Len(t, u.Variants, 3)
	assert.Equal(t, "NONE", u.Variants[0].Name)
	assert.Equal(t, 0, u.Variants[0].Tag)
	assert.Equal(t, "Weapon", u.Variants[1].Name)
	assert.Equal(t, 1, u.Variants[1].Tag)
	assert.Equal(t, "Shield", u.Variants[2].Name)
	assert.Equal(t, "Armor", u.Variants[2].TableName)
	assert.Equal(t, 2, u.Variants[2].Tag)
}

func TestValidateUnionRejectsNonTableVariant(t *testing.T) {
	src := `
struct Vec3 { x: float; y: float; z: float; }
union Bad { Vec3 }
`
	tree := mustTree(t, src)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a table")
}

func TestValidateCrossNamespaceResolution(t *testing.T) {
	root := `
namespace Outer;
include "inner.fbs";
table Monster { equipment: Inner.Sword; }
`
	inner := `
namespace Outer.Inner;
table Sword { damage: int32; }
`
	rootSchema, err := lexparse.Parse("root.fbs", root)
	require.NoError(t, err)
	innerSchema, err := lexparse.Parse("inner.fbs", inner)
	require.NoError(t, err)

	tree := schema.NewFileTree[*schema.Schema]("root.fbs", rootSchema)
	tree.Add("inner.fbs", innerSchema)

	out, err := validate.Validate(tree)
	require.NoError(t, err)
	m := out.Tables["Outer.Monster"]
	require.NotNil(t, m)
	require.Len(t, m.Fields, 1)
	assert.Equal(t, validate.KindTable, m.Fields[0].Type.Kind)
	assert.Equal(t, "Outer.Inner.Sword", m.Fields[0].Type.TableName)
}

func TestValidateUnknownTypeReferenceReportsCandidates(t *testing.T) {
	tree := mustTree(t, `table T { f: Nonexistent; }`)
	_, err := validate.Validate(tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type reference")
}
