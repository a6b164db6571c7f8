// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lexparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatkit/flatkit/schema"
)

const monsterSchema = `
namespace Game.Sample;

enum Color : byte { Red = 0, Green, Blue = 5 }

struct Vec3 {
	x: float;
	y: float;
	z: float;
}

table Monster {
	pos: Vec3;
	name: string (required);
	hp: int32 = 100;
	color: Color = Blue;
	inventory: [ubyte];
}

union Equipped { Weapon, Armor: Monster }

root_type Monster;
file_identifier "MONS";
`

func TestParseFullSchema(t *testing.T) {
	s, err := Parse("monster.fbs", monsterSchema)
	require.NoError(t, err)
	require.Len(t, s.Decls, 7)

	assert.Equal(t, schema.DeclNamespace, s.Decls[0].Kind)
	assert.Equal(t, "Game.Sample", s.Decls[0].Namespace.NS.String())

	enum := s.Decls[1].Enum
	require.NotNil(t, enum)
	assert.Equal(t, "Color", enum.Name)
	require.Len(t, enum.Variants, 3)
	assert.True(t, enum.Variants[0].HasValue)
	assert.Equal(t, int64(0), enum.Variants[0].Value)
	assert.False(t, enum.Variants[1].HasValue)
	assert.True(t, enum.Variants[2].HasValue)
	assert.Equal(t, int64(5), enum.Variants[2].Value)

	str := s.Decls[2].Struct
	require.NotNil(t, str)
	require.Len(t, str.Fields, 3)
	assert.Equal(t, "x", str.Fields[0].Name)

	tbl := s.Decls[3].Table
	require.NotNil(t, tbl)
	require.Len(t, tbl.Fields, 5)

	nameField := tbl.Fields[1]
	assert.Equal(t, "name", nameField.Name)
	assert.True(t, nameField.Type.IsString)
	_, hasRequired := nameField.Meta["required"]
	assert.True(t, hasRequired)

	hpField := tbl.Fields[2]
	assert.True(t, hpField.HasDefault)
	assert.Equal(t, int64(100), hpField.Default.Int)

	invField := tbl.Fields[4]
	assert.True(t, invField.Type.Vector)

	union := s.Decls[4].Union
	require.NotNil(t, union)
	require.Len(t, union.Variants, 2)
	assert.Equal(t, "Weapon", union.Variants[0].Ref)
	assert.Equal(t, "Armor", union.Variants[1].Name)
	assert.Equal(t, "Monster", union.Variants[1].Ref)

	assert.Equal(t, schema.DeclRootType, s.Decls[5].Kind)
	assert.Equal(t, "Monster", s.Decls[5].RootType.Ref)

	assert.Equal(t, schema.DeclFileIdentifier, s.Decls[6].Kind)
	assert.Equal(t, "MONS", s.Decls[6].FileIdent.ID)
}

func TestParseIncludeAndFileExtension(t *testing.T) {
	src := `
include "common.fbs";
file_extension "bin";
`
	s, err := Parse("f.fbs", src)
	require.NoError(t, err)
	require.Len(t, s.Decls, 2)
	assert.Equal(t, "common.fbs", s.Decls[0].Include.Path)
	assert.Equal(t, []string{"common.fbs"}, s.Includes())
	assert.Equal(t, "bin", s.Decls[1].FileExtension.Ext)
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse("bad.fbs", "table T { f int32; }")
	require.Error(t, err)
	var perr *schema.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.fbs", perr.File)
}

func TestParseUnknownDeclarationKeyword(t *testing.T) {
	_, err := Parse("f.fbs", "widget Monster {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown declaration keyword")
}
