// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wire

// Fuzz is a legacy go-fuzz harness: feed it arbitrary bytes and it reports
// whether they decode as a well-formed buffer. Decode alone can't walk
// fields it doesn't know the shape of, so this also exercises the root
// table's vtable by probing every slot it declares.
func Fuzz(data []byte) int {
	t, err := Decode(data)
	if err != nil {
		return 0
	}

	_, _, numSlots, err := t.VtableInfo()
	if err != nil {
		return 0
	}
	for slot := VOffset(0); slot < numSlots; slot++ {
		if _, err := t.Offset(slot); err != nil {
			return 0
		}
	}
	return 1
}
