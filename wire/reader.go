// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"os"
	"unicode/utf8"

	mmap "github.com/edsrzf/mmap-go"
)

// vtableHeaderSize is the two leading u16 fields every vtable carries: its
// own byte size, then the byte size of the table it describes.
const vtableHeaderSize = 4

// Table is a handle onto an encoded table: the buffer plus the absolute
// byte position of the table's first byte (where the vtable soffset lives).
// Table is a value type; copying it is cheap and safe, same as a slice
// header.
type Table struct {
	Buf []byte
	Pos uint32
}

// Decode roots a Table at the standard location: a single leading uoffset
// at byte 0 pointing forward to the root table.
func Decode(buf []byte) (Table, error) {
	if len(buf) < 4 {
		return Table{}, &MalformedBuffer{Reason: "buffer shorter than the root offset"}
	}
	root, err := readUint32(buf, 0)
	if err != nil {
		return Table{}, err
	}
	if uint64(root) >= uint64(len(buf)) {
		return Table{}, &MalformedBuffer{Reason: "root offset points outside the buffer"}
	}
	return Table{Buf: buf, Pos: root}, nil
}

// MappedFile is a root Table backed by a memory-mapped file. Callers must
// call Close when done with it to release the mapping and the descriptor.
type MappedFile struct {
	Root Table
	data mmap.MMap
	f    *os.File
}

// DecodeFile memory-maps path read-only and decodes a root Table from it;
// the Table aliases the mapping directly, a true zero-copy decode.
func DecodeFile(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	root, err := Decode(data)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	return &MappedFile{Root: root, data: data, f: f}, nil
}

// Close unmaps the file and closes its descriptor.
func (m *MappedFile) Close() error {
	if err := m.data.Unmap(); err != nil {
		m.f.Close()
		return err
	}
	return m.f.Close()
}

// CheckFileIdentifier reports whether buf carries the given 4-byte file
// identifier at its conventional location (bytes 4..8, immediately after the
// root offset).
func CheckFileIdentifier(buf []byte, ident [4]byte) bool {
	if len(buf) < 8 {
		return false
	}
	return buf[4] == ident[0] && buf[5] == ident[1] && buf[6] == ident[2] && buf[7] == ident[3]
}

// vtablePos resolves the table's vtable location by following the signed
// soffset stored at t.Pos backward.
func (t Table) vtablePos() (uint32, error) {
	soff, err := readInt32(t.Buf, t.Pos)
	if err != nil {
		return 0, err
	}
	vpos := int64(t.Pos) - int64(soff)
	if vpos < 0 || vpos+vtableHeaderSize > int64(len(t.Buf)) {
		return 0, &MalformedBuffer{Reason: "vtable offset points outside the buffer"}
	}
	return uint32(vpos), nil
}

// VtableInfo resolves t's vtable and reports its absolute byte position,
// its own encoded byte size, and the number of field slots it describes.
// Exported for tools that inspect a buffer without a schema (no generated
// accessor knows the field count in advance).
func (t Table) VtableInfo() (vtablePos uint32, vtableSize uint16, numSlots uint16, err error) {
	vpos, err := t.vtablePos()
	if err != nil {
		return 0, 0, 0, err
	}
	vsize, err := readUint16(t.Buf, vpos)
	if err != nil {
		return 0, 0, 0, err
	}
	if vsize < vtableHeaderSize {
		return 0, 0, 0, &MalformedBuffer{Reason: "vtable byte size smaller than its own header"}
	}
	return vpos, vsize, (vsize - vtableHeaderSize) / 2, nil
}

// Offset resolves slot to an absolute buffer position, or 0 if the field is
// absent (either the vtable is too short to mention this slot, or the
// recorded offset is the explicit zero sentinel).
func (t Table) Offset(slot VOffset) (uint32, error) {
	vpos, err := t.vtablePos()
	if err != nil {
		return 0, err
	}
	vsize, err := readUint16(t.Buf, vpos)
	if err != nil {
		return 0, err
	}
	if vsize < vtableHeaderSize {
		return 0, &MalformedBuffer{Reason: "vtable byte size smaller than its own header"}
	}
	numSlots := (vsize - vtableHeaderSize) / 2
	if slot >= numSlots {
		return 0, nil
	}
	entryPos := vpos + vtableHeaderSize + uint32(slot)*2
	rel, err := readUint16(t.Buf, entryPos)
	if err != nil {
		return 0, err
	}
	if rel == 0 {
		return 0, nil
	}
	return t.Pos + uint32(rel), nil
}

// indirect follows the forward uoffset stored at off (string/vector/table
// fields store a pointer-like offset rather than their data inline).
func (t Table) indirect(off uint32) (uint32, error) {
	rel, err := readUint32(t.Buf, off)
	if err != nil {
		return 0, err
	}
	target := uint64(off) + uint64(rel)
	if target > uint64(len(t.Buf)) {
		return 0, &MalformedBuffer{Reason: "indirect offset points outside the buffer"}
	}
	return uint32(target), nil
}

func scalarGet[T any](t Table, slot VOffset, def T, read func([]byte, uint32) (T, error)) (T, error) {
	off, err := t.Offset(slot)
	if err != nil {
		return def, err
	}
	if off == 0 {
		return def, nil
	}
	return read(t.Buf, off)
}

func (t Table) GetInt8(slot VOffset, def int8) (int8, error)     { return scalarGet(t, slot, def, readInt8) }
func (t Table) GetInt16(slot VOffset, def int16) (int16, error)  { return scalarGet(t, slot, def, readInt16) }
func (t Table) GetInt32(slot VOffset, def int32) (int32, error)  { return scalarGet(t, slot, def, readInt32) }
func (t Table) GetInt64(slot VOffset, def int64) (int64, error)  { return scalarGet(t, slot, def, readInt64) }
func (t Table) GetUint8(slot VOffset, def uint8) (uint8, error)  { return scalarGet(t, slot, def, readUint8) }
func (t Table) GetUint16(slot VOffset, def uint16) (uint16, error) {
	return scalarGet(t, slot, def, readUint16)
}
func (t Table) GetUint32(slot VOffset, def uint32) (uint32, error) {
	return scalarGet(t, slot, def, readUint32)
}
func (t Table) GetUint64(slot VOffset, def uint64) (uint64, error) {
	return scalarGet(t, slot, def, readUint64)
}
func (t Table) GetFloat32(slot VOffset, def float32) (float32, error) {
	return scalarGet(t, slot, def, readFloat32)
}
func (t Table) GetFloat64(slot VOffset, def float64) (float64, error) {
	return scalarGet(t, slot, def, readFloat64)
}
func (t Table) GetBool(slot VOffset, def bool) (bool, error) { return scalarGet(t, slot, def, readBool) }

// GetString reads a string field. If the field is absent, it returns "" and
// (if required is true) a *MissingField error.
func (t Table) GetString(slot VOffset, name string, required bool) (string, error) {
	off, err := t.Offset(slot)
	if err != nil {
		return "", err
	}
	if off == 0 {
		if required {
			return "", &MissingField{Name: name}
		}
		return "", nil
	}
	pos, err := t.indirect(off)
	if err != nil {
		return "", err
	}
	length, err := readUint32(t.Buf, pos)
	if err != nil {
		return "", err
	}
	start := pos + 4
	end := uint64(start) + uint64(length)
	if end > uint64(len(t.Buf)) {
		return "", &MalformedBuffer{Reason: "string extends past end of buffer"}
	}
	data := t.Buf[start:end]
	if !utf8.Valid(data) {
		return "", utf8Error(data)
	}
	return string(data), nil
}

func utf8Error(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			b := byte(0)
			if i < len(data) {
				b = data[i]
			}
			return &Utf8Error{Reason: "invalid encoding", OffendingByte: b}
		}
		i += size
	}
	return &Utf8Error{Reason: "invalid encoding"}
}

// GetTable reads a table-valued field, returning ok=false if absent.
func (t Table) GetTable(slot VOffset, name string, required bool) (Table, bool, error) {
	off, err := t.Offset(slot)
	if err != nil {
		return Table{}, false, err
	}
	if off == 0 {
		if required {
			return Table{}, false, &MissingField{Name: name}
		}
		return Table{}, false, nil
	}
	pos, err := t.indirect(off)
	if err != nil {
		return Table{}, false, err
	}
	return Table{Buf: t.Buf, Pos: pos}, true, nil
}

// StructView is a handle onto a struct's inline bytes, embedded directly in
// its containing table or vector (never offset-indirected).
type StructView struct {
	Buf []byte
	Pos uint32
}

// GetStruct reads a struct-valued field. Struct fields are stored inline: the
// vtable slot's recorded offset, added to the table's own position, is the
// struct's first byte, with no further indirection.
func (t Table) GetStruct(slot VOffset, name string, required bool) (StructView, bool, error) {
	off, err := t.Offset(slot)
	if err != nil {
		return StructView{}, false, err
	}
	if off == 0 {
		if required {
			return StructView{}, false, &MissingField{Name: name}
		}
		return StructView{}, false, nil
	}
	return StructView{Buf: t.Buf, Pos: off}, true, nil
}

func (s StructView) Int8(off uint32) (int8, error)     { return readInt8(s.Buf, s.Pos+off) }
func (s StructView) Int16(off uint32) (int16, error)   { return readInt16(s.Buf, s.Pos+off) }
func (s StructView) Int32(off uint32) (int32, error)   { return readInt32(s.Buf, s.Pos+off) }
func (s StructView) Int64(off uint32) (int64, error)   { return readInt64(s.Buf, s.Pos+off) }
func (s StructView) Uint8(off uint32) (uint8, error)   { return readUint8(s.Buf, s.Pos+off) }
func (s StructView) Uint16(off uint32) (uint16, error) { return readUint16(s.Buf, s.Pos+off) }
func (s StructView) Uint32(off uint32) (uint32, error) { return readUint32(s.Buf, s.Pos+off) }
func (s StructView) Uint64(off uint32) (uint64, error) { return readUint64(s.Buf, s.Pos+off) }
func (s StructView) Float32(off uint32) (float32, error) { return readFloat32(s.Buf, s.Pos+off) }
func (s StructView) Float64(off uint32) (float64, error) { return readFloat64(s.Buf, s.Pos+off) }
func (s StructView) Bool(off uint32) (bool, error)       { return readBool(s.Buf, s.Pos+off) }

// Nested returns a StructView for a nested struct field at a byte offset
// within s, for struct-in-struct fields.
func (s StructView) Nested(off uint32) StructView { return StructView{Buf: s.Buf, Pos: s.Pos + off} }

// Vector is a handle onto a vector's elements: Pos is the address of element
// 0 (immediately after the u32 length prefix).
type Vector struct {
	Buf []byte
	Pos uint32
	Len uint32
}

// GetVector reads a vector-valued field, returning ok=false if absent.
func (t Table) GetVector(slot VOffset, name string, required bool) (Vector, bool, error) {
	off, err := t.Offset(slot)
	if err != nil {
		return Vector{}, false, err
	}
	if off == 0 {
		if required {
			return Vector{}, false, &MissingField{Name: name}
		}
		return Vector{}, false, nil
	}
	pos, err := t.indirect(off)
	if err != nil {
		return Vector{}, false, err
	}
	length, err := readUint32(t.Buf, pos)
	if err != nil {
		return Vector{}, false, err
	}
	return Vector{Buf: t.Buf, Pos: pos + 4, Len: length}, true, nil
}

func (v Vector) checkIndex(i int) uint32 {
	if i < 0 || uint32(i) >= v.Len {
		panic(fmt.Sprintf("wire: vector index %d out of range (len %d)", i, v.Len))
	}
	return v.Pos + uint32(i)
}

func (v Vector) Int8(i int) (int8, error)   { return readInt8(v.Buf, v.checkIndex(i)) }
func (v Vector) Uint8(i int) (uint8, error) { return readUint8(v.Buf, v.checkIndex(i)) }
func (v Vector) Bool(i int) (bool, error)   { return readBool(v.Buf, v.checkIndex(i)) }

func (v Vector) elemPos(i int, width uint32) uint32 {
	return v.Pos + uint32(i)*width
}

func (v Vector) Int16(i int) (int16, error) {
	v.checkIndex(i)
	return readInt16(v.Buf, v.elemPos(i, 2))
}
func (v Vector) Uint16(i int) (uint16, error) {
	v.checkIndex(i)
	return readUint16(v.Buf, v.elemPos(i, 2))
}
func (v Vector) Int32(i int) (int32, error) {
	v.checkIndex(i)
	return readInt32(v.Buf, v.elemPos(i, 4))
}
func (v Vector) Uint32(i int) (uint32, error) {
	v.checkIndex(i)
	return readUint32(v.Buf, v.elemPos(i, 4))
}
func (v Vector) Float32(i int) (float32, error) {
	v.checkIndex(i)
	return readFloat32(v.Buf, v.elemPos(i, 4))
}
func (v Vector) Int64(i int) (int64, error) {
	v.checkIndex(i)
	return readInt64(v.Buf, v.elemPos(i, 8))
}
func (v Vector) Uint64(i int) (uint64, error) {
	v.checkIndex(i)
	return readUint64(v.Buf, v.elemPos(i, 8))
}
func (v Vector) Float64(i int) (float64, error) {
	v.checkIndex(i)
	return readFloat64(v.Buf, v.elemPos(i, 8))
}

// Struct returns element i as an inline StructView of the given byte size
// (vector-of-struct elements are packed inline with no indirection, same as
// struct-valued table fields).
func (v Vector) Struct(i int, size uint32) StructView {
	return StructView{Buf: v.Buf, Pos: v.elemPos(i, size)}
}

// String returns element i of a vector of strings, each stored as an
// offset-indirected string.
func (v Vector) String(i int) (string, error) {
	v.checkIndex(i)
	pos := v.elemPos(i, 4)
	rel, err := readUint32(v.Buf, pos)
	if err != nil {
		return "", err
	}
	strPos := pos + rel
	length, err := readUint32(v.Buf, strPos)
	if err != nil {
		return "", err
	}
	start := strPos + 4
	end := uint64(start) + uint64(length)
	if end > uint64(len(v.Buf)) {
		return "", &MalformedBuffer{Reason: "string extends past end of buffer"}
	}
	data := v.Buf[start:end]
	if !utf8.Valid(data) {
		return "", utf8Error(data)
	}
	return string(data), nil
}

// Table returns element i of a vector of tables, each stored as an
// offset-indirected table.
func (v Vector) Table(i int) (Table, error) {
	v.checkIndex(i)
	pos := v.elemPos(i, 4)
	rel, err := readUint32(v.Buf, pos)
	if err != nil {
		return Table{}, err
	}
	return Table{Buf: v.Buf, Pos: pos + rel}, nil
}

// Union is a single union value: Tag 0 means NONE and Value is the zero
// Table. GetUnion rejects a nonzero Tag whose value slot is absent as
// malformed; the Builder itself does not check the pairing, so writing the
// tag and the value together is up to the caller.
type Union struct {
	Tag   uint8
	Value Table
}

// Classify reports u itself if its Tag is one of known, or an UnionUnknown
// wrapping the Tag otherwise. Generated code supplies its own variant tags;
// this lets a reader skip variants added to the schema after the buffer was
// written instead of failing to decode.
func (u Union) Classify(known ...uint8) any {
	for _, k := range known {
		if k == u.Tag {
			return u
		}
	}
	return UnionUnknown{Tag: u.Tag}
}

// GetUnion reads a (type, value) slot pair. typeSlot must be valueSlot-1.
func (t Table) GetUnion(typeSlot, valueSlot VOffset, name string, required bool) (Union, error) {
	tag, err := t.GetUint8(typeSlot, 0)
	if err != nil {
		return Union{}, err
	}
	if tag == 0 {
		if required {
			return Union{}, &MissingField{Name: name}
		}
		return Union{Tag: 0}, nil
	}
	off, err := t.Offset(valueSlot)
	if err != nil {
		return Union{}, err
	}
	if off == 0 {
		return Union{}, &MalformedBuffer{Reason: "union value absent for a nonzero type tag"}
	}
	pos, err := t.indirect(off)
	if err != nil {
		return Union{}, err
	}
	return Union{Tag: tag, Value: Table{Buf: t.Buf, Pos: pos}}, nil
}

// UnionVector is a vector-of-unions field: two parallel vectors of equal
// length, a u8 type vector and a table-offset value vector.
type UnionVector struct {
	Types  Vector
	Values Vector
}

// GetUnionVector reads a vector-of-unions field pair. typeSlot must be
// valueSlot-1, same convention as GetUnion.
func (t Table) GetUnionVector(typeSlot, valueSlot VOffset, name string, required bool) (UnionVector, bool, error) {
	typesOff, err := t.Offset(typeSlot)
	if err != nil {
		return UnionVector{}, false, err
	}
	valuesOff, err := t.Offset(valueSlot)
	if err != nil {
		return UnionVector{}, false, err
	}
	if typesOff == 0 && valuesOff == 0 {
		if required {
			return UnionVector{}, false, &MissingField{Name: name}
		}
		return UnionVector{}, false, nil
	}
	if typesOff == 0 || valuesOff == 0 {
		return UnionVector{}, false, &MalformedBuffer{Reason: "union vector type/value slots disagree on presence"}
	}

	typesPos, err := t.indirect(typesOff)
	if err != nil {
		return UnionVector{}, false, err
	}
	typesLen, err := readUint32(t.Buf, typesPos)
	if err != nil {
		return UnionVector{}, false, err
	}
	valuesPos, err := t.indirect(valuesOff)
	if err != nil {
		return UnionVector{}, false, err
	}
	valuesLen, err := readUint32(t.Buf, valuesPos)
	if err != nil {
		return UnionVector{}, false, err
	}
	if typesLen != valuesLen {
		return UnionVector{}, false, &MalformedBuffer{Reason: "union vector type/value length mismatch"}
	}

	uv := UnionVector{
		Types:  Vector{Buf: t.Buf, Pos: typesPos + 4, Len: typesLen},
		Values: Vector{Buf: t.Buf, Pos: valuesPos + 4, Len: valuesLen},
	}
	return uv, true, nil
}

// At returns union element i: tag 0 is NONE with a zero Table.
func (uv UnionVector) At(i int) (Union, error) {
	tag, err := uv.Types.Uint8(i)
	if err != nil {
		return Union{}, err
	}
	if tag == 0 {
		return Union{Tag: 0}, nil
	}
	tbl, err := uv.Values.Table(i)
	if err != nil {
		return Union{}, err
	}
	return Union{Tag: tag, Value: tbl}, nil
}

// Len reports the number of (type, value) pairs.
func (uv UnionVector) Len() int { return int(uv.Types.Len) }
