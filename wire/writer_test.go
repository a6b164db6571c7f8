// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderScalarDefaultElision(t *testing.T) {
	b := NewBuilder(0)
	b.StartTable(2)
	b.PrependUint8Slot(0, 5, 5)      // equals default: must be elided
	b.PrependUint32Slot(1, 42, 100) // differs from default: must be encoded
	tbl := b.EndTable()
	b.Finish(tbl, nil)

	root, err := Decode(b.Bytes())
	require.NoError(t, err)

	off, err := root.Offset(0)
	require.NoError(t, err)
	assert.Zero(t, off, "default-valued field must not be encoded")

	got, err := root.GetUint32(1, 100)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)
}

func TestBuilderStringAndVector(t *testing.T) {
	b := NewBuilder(0)
	name := b.CreateString("widget")

	b.StartVector(4, 3, 4)
	b.PrependInt32(30)
	b.PrependInt32(20)
	b.PrependInt32(10)
	nums := b.EndVector(3)

	b.StartTable(2)
	b.PrependUOffsetSlot(0, name)
	b.PrependUOffsetSlot(1, nums)
	tbl := b.EndTable()
	b.Finish(tbl, nil)

	root, err := Decode(b.Bytes())
	require.NoError(t, err)

	gotName, err := root.GetString(0, "name", true)
	require.NoError(t, err)
	assert.Equal(t, "widget", gotName)

	vec, ok, err := root.GetVector(1, "nums", true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, int(vec.Len))
	v0, err := vec.Int32(0)
	require.NoError(t, err)
	v1, err := vec.Int32(1)
	require.NoError(t, err)
	v2, err := vec.Int32(2)
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 20, 30}, []int32{v0, v1, v2})
}

func TestBuilderNestedTable(t *testing.T) {
	b := NewBuilder(0)

	b.StartTable(1)
	b.PrependUint32Slot(0, 7, 0)
	child := b.EndTable()

	b.StartTable(1)
	b.PrependUOffsetSlot(0, child)
	parent := b.EndTable()
	b.Finish(parent, nil)

	root, err := Decode(b.Bytes())
	require.NoError(t, err)

	childTbl, ok, err := root.GetTable(0, "child", true)
	require.NoError(t, err)
	require.True(t, ok)

	v, err := childTbl.GetUint32(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestBuilderStruct(t *testing.T) {
	b := NewBuilder(0)

	sw := NewStructWriter(8)
	sw.PutInt32(0, 11)
	sw.PutInt32(4, -22)
	structOff := b.PrependStruct(sw, 4)

	b.StartTable(1)
	b.PrependStructSlot(0, structOff)
	tbl := b.EndTable()
	b.Finish(tbl, nil)

	root, err := Decode(b.Bytes())
	require.NoError(t, err)

	sv, ok, err := root.GetStruct(0, "point", true)
	require.NoError(t, err)
	require.True(t, ok)

	x, err := sv.Int32(0)
	require.NoError(t, err)
	y, err := sv.Int32(4)
	require.NoError(t, err)
	assert.Equal(t, int32(11), x)
	assert.Equal(t, int32(-22), y)
}

func TestBuilderUnion(t *testing.T) {
	const monsterTag uint8 = 2

	b := NewBuilder(0)
	b.StartTable(1)
	b.PrependUint32Slot(0, 99, 0)
	value := b.EndTable()

	b.StartTable(2)
	b.PrependUint8Slot(0, monsterTag, 0)
	b.PrependUOffsetSlot(1, value)
	tbl := b.EndTable()
	b.Finish(tbl, nil)

	root, err := Decode(b.Bytes())
	require.NoError(t, err)

	u, err := root.GetUnion(0, 1, "payload", true)
	require.NoError(t, err)
	assert.Equal(t, monsterTag, u.Tag)

	classified := u.Classify(monsterTag)
	got, ok := classified.(Union)
	require.True(t, ok)
	n, err := got.Value.GetUint32(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(99), n)

	unknown := u.Classify(uint8(9))
	_, ok = unknown.(UnionUnknown)
	assert.True(t, ok)
}

func TestEndTableCheckedMissingRequired(t *testing.T) {
	b := NewBuilder(0)
	b.StartTable(1)
	_, err := b.EndTableChecked([]RequiredSlot{{Index: 0, FieldPath: "Widget.name"}})
	require.Error(t, err)

	var missing *MissingRequired
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Widget.name", missing.FieldPath)
}

func TestEndTableCheckedPresent(t *testing.T) {
	b := NewBuilder(0)
	name := b.CreateString("ok")
	b.StartTable(1)
	b.PrependUOffsetSlot(0, name)
	tbl, err := b.EndTableChecked([]RequiredSlot{{Index: 0, FieldPath: "Widget.name"}})
	require.NoError(t, err)
	b.Finish(tbl, nil)

	root, err := Decode(b.Bytes())
	require.NoError(t, err)
	got, err := root.GetString(0, "name", true)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

// TestVtableDedup builds two tables with an identical field-presence
// pattern and confirms they share one vtable, the point of the whole
// indirection.
func TestVtableDedup(t *testing.T) {
	b := NewBuilder(0)

	b.StartTable(2)
	b.PrependUint32Slot(0, 1, 0)
	b.PrependUint32Slot(1, 2, 0)
	first := b.EndTable()

	b.StartTable(2)
	b.PrependUint32Slot(0, 3, 0)
	b.PrependUint32Slot(1, 4, 0)
	second := b.EndTable()

	cur := b.Offset()
	firstTbl := Table{Buf: b.buf[b.head:], Pos: cur - first}
	secondTbl := Table{Buf: b.buf[b.head:], Pos: cur - second}

	v1, err := firstTbl.vtablePos()
	require.NoError(t, err)
	v2, err := secondTbl.vtablePos()
	require.NoError(t, err)
	assert.Equal(t, v1, v2, "identical vtable content must be deduplicated")
}

func TestFileIdentifier(t *testing.T) {
	b := NewBuilder(0)
	b.StartTable(1)
	b.PrependUint32Slot(0, 1, 0)
	tbl := b.EndTable()
	ident := [4]byte{'F', 'L', 'K', '1'}
	b.Finish(tbl, &ident)

	assert.True(t, CheckFileIdentifier(b.Bytes(), ident))
	assert.False(t, CheckFileIdentifier(b.Bytes(), [4]byte{'X', 'X', 'X', 'X'}))
}
