// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package wire implements the on-wire contract: a zero-copy reader and a
// bit-exact writer for the little-endian, vtable-based buffer format. The
// package never imports schema or validate — generated (or hand-written)
// accessor code supplies slot numbers, defaults, and sizes; wire only knows
// how to get bytes in and out of a buffer safely.
package wire

import (
	"encoding/binary"
	"math"
)

// UOffset is a forward, unsigned byte offset from the address of the offset
// field itself: the root offset at byte 0 (so, from the start of the
// buffer) and string/vector/table/union indirection.
type UOffset = uint32

// SOffset is a signed byte offset, used only for the table-to-vtable link.
// A freshly written vtable sits before its table; a deduplicated vtable
// reused by a later table sits after it, so the sign varies.
type SOffset = int32

// VOffset is an unsigned 16-bit byte offset within a vtable or a table.
type VOffset = uint16

// readUint8 through readFloat64 are bounds-checked little-endian reads: each
// returns MalformedBuffer if off, or off plus the field width, falls outside
// buf. Mirrors the bounds-first style of a disassembler reading directly out
// of a mapped image: check before touching a byte, never trust the offset.
func readUint8(buf []byte, off uint32) (uint8, error) {
	if uint64(off)+1 > uint64(len(buf)) {
		return 0, &MalformedBuffer{Reason: "read past end of buffer (u8)"}
	}
	return buf[off], nil
}

func readUint16(buf []byte, off uint32) (uint16, error) {
	if uint64(off)+2 > uint64(len(buf)) {
		return 0, &MalformedBuffer{Reason: "read past end of buffer (u16)"}
	}
	return binary.LittleEndian.Uint16(buf[off:]), nil
}

func readUint32(buf []byte, off uint32) (uint32, error) {
	if uint64(off)+4 > uint64(len(buf)) {
		return 0, &MalformedBuffer{Reason: "read past end of buffer (u32)"}
	}
	return binary.LittleEndian.Uint32(buf[off:]), nil
}

func readUint64(buf []byte, off uint32) (uint64, error) {
	if uint64(off)+8 > uint64(len(buf)) {
		return 0, &MalformedBuffer{Reason: "read past end of buffer (u64)"}
	}
	return binary.LittleEndian.Uint64(buf[off:]), nil
}

func readInt8(buf []byte, off uint32) (int8, error) {
	v, err := readUint8(buf, off)
	return int8(v), err
}

func readInt16(buf []byte, off uint32) (int16, error) {
	v, err := readUint16(buf, off)
	return int16(v), err
}

func readInt32(buf []byte, off uint32) (int32, error) {
	v, err := readUint32(buf, off)
	return int32(v), err
}

func readInt64(buf []byte, off uint32) (int64, error) {
	v, err := readUint64(buf, off)
	return int64(v), err
}

func readFloat32(buf []byte, off uint32) (float32, error) {
	v, err := readUint32(buf, off)
	return math.Float32frombits(v), err
}

func readFloat64(buf []byte, off uint32) (float64, error) {
	v, err := readUint64(buf, off)
	return math.Float64frombits(v), err
}

func readBool(buf []byte, off uint32) (bool, error) {
	v, err := readUint8(buf, off)
	return v != 0, err
}

// writeUint8 through writeFloat64 write a little-endian value at a position
// already known to be in bounds (the writer pre-sizes its buffer, so these
// never fail).
func writeUint8(buf []byte, off uint32, v uint8)   { buf[off] = v }
func writeUint16(buf []byte, off uint32, v uint16) { binary.LittleEndian.PutUint16(buf[off:], v) }
func writeUint32(buf []byte, off uint32, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }
func writeUint64(buf []byte, off uint32, v uint64) { binary.LittleEndian.PutUint64(buf[off:], v) }

func writeInt8(buf []byte, off uint32, v int8)   { writeUint8(buf, off, uint8(v)) }
func writeInt16(buf []byte, off uint32, v int16) { writeUint16(buf, off, uint16(v)) }
func writeInt32(buf []byte, off uint32, v int32) { writeUint32(buf, off, uint32(v)) }
func writeInt64(buf []byte, off uint32, v int64) { writeUint64(buf, off, uint64(v)) }

func writeFloat32(buf []byte, off uint32, v float32) { writeUint32(buf, off, math.Float32bits(v)) }
func writeFloat64(buf []byte, off uint32, v float64) { writeUint64(buf, off, math.Float64bits(v)) }

func writeBool(buf []byte, off uint32, v bool) {
	if v {
		writeUint8(buf, off, 1)
	} else {
		writeUint8(buf, off, 0)
	}
}
