// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

// vtableRegistry deduplicates vtables by byte content: tables with identical
// field layouts (same fields set, same voffsets) share one vtable, which is
// the whole point of the vtable indirection.
type vtableRegistry struct {
	// seen maps a vtable's rendered bytes to its position (in Builder.Offset
	// units) once written to the buffer.
	seen map[string]uint32
}

func newVtableRegistry() *vtableRegistry {
	return &vtableRegistry{seen: map[string]uint32{}}
}

// intern returns the position of an already-written vtable with identical
// bytes, or false if none exists yet.
func (r *vtableRegistry) intern(content []byte) (uint32, bool) {
	pos, ok := r.seen[string(content)]
	return pos, ok
}

func (r *vtableRegistry) record(content []byte, pos uint32) {
	r.seen[string(content)] = pos
}
