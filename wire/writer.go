// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import "math"

const defaultInitialBuilderSize = 1024

// Builder assembles a buffer back-to-front: every value is fully written,
// and its position known, before anything that references it begins, so a
// forward offset is always computable at the point it is written. Data
// occupies buf[head:]; Prep grows the buffer (doubling) and pads for
// alignment before each write.
type Builder struct {
	buf      []byte
	head     uint32
	minAlign uint32
	reg      *vtableRegistry

	nested           bool
	tableFieldsStart uint32
	vtable           []uint32

	finished bool
}

// NewBuilder allocates a Builder with an initial scratch capacity; 0 selects
// a reasonable default. The capacity only affects how many times the buffer
// needs to grow, never correctness.
func NewBuilder(initialSize int) *Builder {
	if initialSize <= 0 {
		initialSize = defaultInitialBuilderSize
	}
	return &Builder{
		buf:      make([]byte, initialSize),
		head:     uint32(initialSize),
		minAlign: 1,
		reg:      newVtableRegistry(),
	}
}

// Offset reports the number of bytes written so far. It is the position
// handle used throughout this package to refer to an already-finished
// object (string, vector, table, or struct) from something written later.
func (b *Builder) Offset() uint32 { return uint32(len(b.buf)) - b.head }

func (b *Builder) growByteBuffer() {
	oldLen := uint32(len(b.buf))
	if oldLen >= 1<<31 {
		panic("wire: buffer grown past the maximum representable offset")
	}
	newLen := oldLen * 2
	newBuf := make([]byte, newLen)
	copy(newBuf[newLen-oldLen:], b.buf)
	b.head += newLen - oldLen
	b.buf = newBuf
}

// Prep aligns the write cursor so that the next `size` bytes, followed by
// `additionalBytes` more, end on a `size`-byte boundary, growing the buffer
// first if there is not enough room. additionalBytes lets a caller reserve
// alignment for a value it has not written yet (e.g. a vector's elements,
// prepended after the vector is Prep'd for its length field).
func (b *Builder) Prep(size, additionalBytes uint32) {
	if size > b.minAlign {
		b.minAlign = size
	}
	mask := size - 1
	alignSize := (^(uint32(len(b.buf)) - b.head + additionalBytes) + 1) & mask
	for b.head < alignSize+size+additionalBytes {
		b.growByteBuffer()
	}
	b.pad(alignSize)
}

func (b *Builder) pad(n uint32) {
	for i := uint32(0); i < n; i++ {
		b.head--
		b.buf[b.head] = 0
	}
}

func (b *Builder) PlaceUint8(v uint8)   { b.head--; writeUint8(b.buf, b.head, v) }
func (b *Builder) PlaceUint16(v uint16) { b.head -= 2; writeUint16(b.buf, b.head, v) }
func (b *Builder) PlaceUint32(v uint32) { b.head -= 4; writeUint32(b.buf, b.head, v) }
func (b *Builder) PlaceUint64(v uint64) { b.head -= 8; writeUint64(b.buf, b.head, v) }
func (b *Builder) PlaceInt8(v int8)     { b.PlaceUint8(uint8(v)) }
func (b *Builder) PlaceInt16(v int16)   { b.PlaceUint16(uint16(v)) }
func (b *Builder) PlaceInt32(v int32)   { b.PlaceUint32(uint32(v)) }
func (b *Builder) PlaceInt64(v int64)   { b.PlaceUint64(uint64(v)) }
func (b *Builder) PlaceFloat32(v float32) { b.PlaceUint32(math.Float32bits(v)) }
func (b *Builder) PlaceFloat64(v float64) { b.PlaceUint64(math.Float64bits(v)) }
func (b *Builder) PlaceBool(v bool) {
	if v {
		b.PlaceUint8(1)
	} else {
		b.PlaceUint8(0)
	}
}

func (b *Builder) PrependUint8(v uint8)   { b.Prep(1, 0); b.PlaceUint8(v) }
func (b *Builder) PrependUint16(v uint16) { b.Prep(2, 0); b.PlaceUint16(v) }
func (b *Builder) PrependUint32(v uint32) { b.Prep(4, 0); b.PlaceUint32(v) }
func (b *Builder) PrependUint64(v uint64) { b.Prep(8, 0); b.PlaceUint64(v) }
func (b *Builder) PrependInt8(v int8)     { b.Prep(1, 0); b.PlaceInt8(v) }
func (b *Builder) PrependInt16(v int16)   { b.Prep(2, 0); b.PlaceInt16(v) }
func (b *Builder) PrependInt32(v int32)   { b.Prep(4, 0); b.PlaceInt32(v) }
func (b *Builder) PrependInt64(v int64)   { b.Prep(8, 0); b.PlaceInt64(v) }
func (b *Builder) PrependFloat32(v float32) { b.Prep(4, 0); b.PlaceFloat32(v) }
func (b *Builder) PrependFloat64(v float64) { b.Prep(8, 0); b.PlaceFloat64(v) }
func (b *Builder) PrependBool(v bool)       { b.Prep(1, 0); b.PlaceBool(v) }

// PrependUOffset writes a forward uoffset pointing at target, an Offset()
// value captured earlier when the target object finished being written.
func (b *Builder) PrependUOffset(target uint32) {
	b.Prep(4, 0)
	if target > b.Offset() {
		panic("wire: offset target was not written before the field referencing it")
	}
	b.PlaceUint32(b.Offset() - target + 4)
}

// CreateString writes a length-prefixed UTF-8 string with its trailing nul,
// returning its Offset().
func (b *Builder) CreateString(s string) uint32 { return b.CreateByteString([]byte(s)) }

// CreateByteString is CreateString for raw bytes already known to be valid
// UTF-8, avoiding a string conversion.
func (b *Builder) CreateByteString(data []byte) uint32 {
	b.Prep(4, uint32(len(data))+1)
	b.PlaceUint8(0) // trailing nul, for C interop; not counted in length
	b.head -= uint32(len(data))
	copy(b.buf[b.head:], data)
	b.PlaceUint32(uint32(len(data)))
	return b.Offset()
}

func (b *Builder) assertNotNested() {
	if b.nested {
		panic("wire: an object is already being built; finish it before starting another")
	}
}

func (b *Builder) assertNested() {
	if !b.nested {
		panic("wire: no object is currently being built")
	}
}

// StartVector prepares to prepend count elements of elemSize bytes each,
// aligned to the larger of 4 and alignment. Elements must be prepended in
// reverse order (last element first) via the matching PrependX calls, then
// closed with EndVector.
func (b *Builder) StartVector(elemSize, count, alignment uint32) {
	b.assertNotNested()
	b.nested = true
	if alignment < 4 {
		alignment = 4
	}
	total := elemSize * count
	b.Prep(4, total)
	b.Prep(alignment, total)
}

// EndVector writes the u32 length prefix and returns the vector's Offset().
func (b *Builder) EndVector(count uint32) uint32 {
	b.assertNested()
	b.nested = false
	b.PlaceUint32(count)
	return b.Offset()
}

// StartTable begins a table with numFields vtable slots (0-indexed).
func (b *Builder) StartTable(numFields int) {
	b.assertNotNested()
	b.nested = true
	b.vtable = make([]uint32, numFields)
	b.tableFieldsStart = b.Offset()
}

func (b *Builder) slot(i int) { b.vtable[i] = b.Offset() }

// PrependUint8Slot etc. write a scalar field only if it differs from its
// schema default, implementing the format's default-value elision.

func (b *Builder) PrependUint8Slot(i int, v, def uint8) {
	if v != def {
		b.PrependUint8(v)
		b.slot(i)
	}
}
func (b *Builder) PrependUint16Slot(i int, v, def uint16) {
	if v != def {
		b.PrependUint16(v)
		b.slot(i)
	}
}
func (b *Builder) PrependUint32Slot(i int, v, def uint32) {
	if v != def {
		b.PrependUint32(v)
		b.slot(i)
	}
}
func (b *Builder) PrependUint64Slot(i int, v, def uint64) {
	if v != def {
		b.PrependUint64(v)
		b.slot(i)
	}
}
func (b *Builder) PrependInt8Slot(i int, v, def int8) {
	if v != def {
		b.PrependInt8(v)
		b.slot(i)
	}
}
func (b *Builder) PrependInt16Slot(i int, v, def int16) {
	if v != def {
		b.PrependInt16(v)
		b.slot(i)
	}
}
func (b *Builder) PrependInt32Slot(i int, v, def int32) {
	if v != def {
		b.PrependInt32(v)
		b.slot(i)
	}
}
func (b *Builder) PrependInt64Slot(i int, v, def int64) {
	if v != def {
		b.PrependInt64(v)
		b.slot(i)
	}
}
func (b *Builder) PrependFloat32Slot(i int, v, def float32) {
	if v != def {
		b.PrependFloat32(v)
		b.slot(i)
	}
}
func (b *Builder) PrependFloat64Slot(i int, v, def float64) {
	if v != def {
		b.PrependFloat64(v)
		b.slot(i)
	}
}
func (b *Builder) PrependBoolSlot(i int, v, def bool) {
	if v != def {
		b.PrependBool(v)
		b.slot(i)
	}
}

// PrependUOffsetSlot records a reference field (string/vector/table/union
// value) already written at target; absent fields simply never call this.
func (b *Builder) PrependUOffsetSlot(i int, target uint32) {
	b.PrependUOffset(target)
	b.slot(i)
}

// PrependStructSlot places an inline struct field. Struct fields, unlike
// string/table/vector fields, are never offset-indirected: their bytes are
// written directly as part of the containing table, so nothing may be
// prepended between finishing the struct and calling this.
func (b *Builder) PrependStructSlot(i int, structOffset uint32) {
	if structOffset != b.Offset() {
		panic("wire: a struct field must be written immediately before its slot is recorded")
	}
	b.slot(i)
}

// RequiredSlot names a vtable slot that a schema marks required, for
// EndTableChecked to verify was actually written.
type RequiredSlot struct {
	Index     int
	FieldPath string
}

// EndTableChecked is EndTable plus a check that every field named in
// required was written, failing with MissingRequired for the first one that
// was not. Generated accessor code calls this instead of EndTable for
// tables that declare required reference fields.
func (b *Builder) EndTableChecked(required []RequiredSlot) (uint32, error) {
	for _, r := range required {
		if r.Index >= len(b.vtable) || b.vtable[r.Index] == 0 {
			b.nested = false
			b.vtable = nil
			return 0, &MissingRequired{FieldPath: r.FieldPath}
		}
	}
	return b.EndTable(), nil
}

// EndTable closes the table, writes (or reuses, if byte-identical to one
// already emitted) its vtable, and returns the table's Offset().
func (b *Builder) EndTable() uint32 {
	b.assertNested()

	b.PrependInt32(0) // soffset placeholder, patched below once the vtable position is known
	tablePos := b.Offset()

	n := len(b.vtable)
	for n > 0 && b.vtable[n-1] == 0 {
		n--
	}
	vtableLen := uint32(vtableHeaderSize + n*2)

	content := make([]byte, vtableLen)
	writeUint16(content, 0, uint16(vtableLen))
	writeUint16(content, 2, uint16(tablePos-b.tableFieldsStart))
	for i := 0; i < n; i++ {
		var voff uint16
		if b.vtable[i] != 0 {
			voff = uint16(tablePos - b.vtable[i])
		}
		writeUint16(content, uint32(vtableHeaderSize+i*2), voff)
	}

	vtablePos, ok := b.reg.intern(content)
	if !ok {
		b.Prep(2, vtableLen)
		b.head -= vtableLen
		copy(b.buf[b.head:], content)
		vtablePos = b.Offset()
		b.reg.record(content, vtablePos)
	}

	// Locate the placeholder from tablePos rather than a saved head index:
	// Prep above may have grown (and so moved) the buffer.
	writeInt32(b.buf, uint32(len(b.buf))-tablePos, int32(vtablePos)-int32(tablePos))

	b.vtable = nil
	b.nested = false
	return tablePos
}

// StructWriter assembles a fixed-size struct's bytes in forward order,
// mirroring the validated struct layout (field offsets and padding) that
// accessor code computes from the schema.
type StructWriter struct {
	buf []byte
}

// NewStructWriter allocates a zero-filled scratch buffer of the given size
// (the validated struct's total byte size, padding included).
func NewStructWriter(size uint32) *StructWriter { return &StructWriter{buf: make([]byte, size)} }

func (w *StructWriter) PutInt8(off uint32, v int8)     { writeInt8(w.buf, off, v) }
func (w *StructWriter) PutInt16(off uint32, v int16)   { writeInt16(w.buf, off, v) }
func (w *StructWriter) PutInt32(off uint32, v int32)   { writeInt32(w.buf, off, v) }
func (w *StructWriter) PutInt64(off uint32, v int64)   { writeInt64(w.buf, off, v) }
func (w *StructWriter) PutUint8(off uint32, v uint8)   { writeUint8(w.buf, off, v) }
func (w *StructWriter) PutUint16(off uint32, v uint16) { writeUint16(w.buf, off, v) }
func (w *StructWriter) PutUint32(off uint32, v uint32) { writeUint32(w.buf, off, v) }
func (w *StructWriter) PutUint64(off uint32, v uint64) { writeUint64(w.buf, off, v) }
func (w *StructWriter) PutFloat32(off uint32, v float32) { writeFloat32(w.buf, off, v) }
func (w *StructWriter) PutFloat64(off uint32, v float64) { writeFloat64(w.buf, off, v) }
func (w *StructWriter) PutBool(off uint32, v bool)       { writeBool(w.buf, off, v) }

// PutNested copies an already-built nested struct's bytes in at off, for
// struct-in-struct fields.
func (w *StructWriter) PutNested(off uint32, nested *StructWriter) {
	copy(w.buf[off:], nested.buf)
}

// Bytes returns the struct's assembled byte content.
func (w *StructWriter) Bytes() []byte { return w.buf }

// PrependStruct writes a pre-assembled struct as a contiguous block, aligned
// to align, and returns its Offset() (pass this straight to
// PrependStructSlot, with nothing else prepended in between).
func (b *Builder) PrependStruct(w *StructWriter, align uint32) uint32 {
	b.Prep(align, uint32(len(w.buf)))
	b.head -= uint32(len(w.buf))
	copy(b.buf[b.head:], w.buf)
	return b.Offset()
}

// Finish roots the buffer at rootTable (an Offset() captured from its
// EndTable call), optionally stamping a 4-byte file identifier immediately
// after the root offset, and pads the whole buffer to the builder's largest
// alignment. It must be called exactly once; Bytes is only valid afterward.
func (b *Builder) Finish(rootTable uint32, fileIdentifier *[4]byte) {
	if b.finished {
		panic("wire: Finish called twice")
	}
	prefix := uint32(4)
	if fileIdentifier != nil {
		prefix += 4
	}
	b.Prep(b.minAlign, prefix)

	if fileIdentifier != nil {
		for i := 3; i >= 0; i-- {
			b.PlaceUint8(fileIdentifier[i])
		}
	}
	b.PrependUOffset(rootTable)
	b.finished = true
}

// Bytes returns the finished buffer. Valid only after Finish.
func (b *Builder) Bytes() []byte {
	if !b.finished {
		panic("wire: Bytes called before Finish")
	}
	return b.buf[b.head:]
}
