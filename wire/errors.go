// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

import "fmt"

// MalformedBuffer is returned when a read would go beyond the buffer, an
// offset is impossible (negative, or pointing outside the buffer), or a
// union's type/value slots are inconsistent.
type MalformedBuffer struct {
	Reason string
}

func (e *MalformedBuffer) Error() string { return fmt.Sprintf("malformed buffer: %s", e.Reason) }

// MissingField is returned when a required reference field (string, vector,
// table, struct, or union) is absent from an encoded table.
type MissingField struct {
	Name string
}

func (e *MissingField) Error() string { return fmt.Sprintf("missing required field %q", e.Name) }

// Utf8Error is returned when a string field's bytes are not valid UTF-8.
type Utf8Error struct {
	Reason        string
	OffendingByte byte
}

func (e *Utf8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte 0x%02x: %s", e.OffendingByte, e.Reason)
}

// MissingRequired is returned by the writer's Finish when a schema-required
// reference field was never set on a table.
type MissingRequired struct {
	FieldPath string
}

func (e *MissingRequired) Error() string {
	return fmt.Sprintf("required field %q was not set", e.FieldPath)
}

// UnionUnknown is not an error: it is the value a Union/UnionVector element
// classifies to when its type tag does not appear in the caller-supplied
// set of known tags, preserving forward compatibility with schemas that
// added variants after this buffer was written.
type UnionUnknown struct {
	Tag uint8
}

func (u UnionUnknown) String() string { return fmt.Sprintf("unknown union tag %d", u.Tag) }
