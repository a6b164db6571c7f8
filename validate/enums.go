// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import (
	"github.com/flatkit/flatkit/schema"
)

// scalarRange returns the representable [min, max] range of an integer
// scalar kind. uint64's true maximum exceeds int64's range; schema integer
// literals are parsed as int64, so its max is reported as math.MaxInt64,
// which is the largest value this implementation can represent anyway.
func scalarRange(k schema.ScalarKind) (min, max int64) {
	switch k {
	case schema.Int8:
		return -128, 127
	case schema.Int16:
		return -32768, 32767
	case schema.Int32:
		return -2147483648, 2147483647
	case schema.Int64:
		return -9223372036854775808, 9223372036854775807
	case schema.Uint8:
		return 0, 255
	case schema.Uint16:
		return 0, 65535
	case schema.Uint32:
		return 0, 4294967295
	case schema.Uint64:
		return 0, 9223372036854775807
	}
	return 0, 0
}

// ValidateEnums is pass 1: validates every enum declaration in raw,
// returning the qualified-name-keyed validated enum table.
func ValidateEnums(raw *RawSymbols) (map[string]*ValidatedEnum, error) {
	out := map[string]*ValidatedEnum{}
	for _, e := range raw.Enums {
		qn := schema.Qualify(e.NS, e.Decl.Name)
		ctx := Context{qn}

		if e.Decl.Meta.Has(schema.AttrBitFlags) {
			return nil, errUnsupportedBitFlags(ctx)
		}
		if !e.Decl.Underlying.IsInteger() {
			return nil, newErr(ctx, "enum underlying type %q must be one of the eight integer primitives", e.Decl.Underlying.String())
		}
		if len(e.Decl.Variants) == 0 {
			return nil, newErr(ctx, "enum must declare at least one variant")
		}

		seen := map[string]bool{}
		variants := make([]EnumVariant, 0, len(e.Decl.Variants))
		var last int64
		for i, v := range e.Decl.Variants {
			if seen[v.Name] {
				return nil, errDuplicateIdentifier(ctx, "enum variant", v.Name)
			}
			seen[v.Name] = true

			var val int64
			switch {
			case v.HasValue:
				val = v.Value
			case i == 0:
				val = 0
			default:
				val = last + 1
			}
			if i > 0 && val <= last {
				return nil, errNotAscending(ctx, v.Name, val, last)
			}
			lo, hi := scalarRange(e.Decl.Underlying)
			if val < lo || val > hi {
				return nil, errOutOfRange(ctx, v.Name, val, e.Decl.Underlying.String())
			}
			variants = append(variants, EnumVariant{Name: v.Name, Value: val})
			last = val
		}

		out[qn] = &ValidatedEnum{Name: qn, Underlying: e.Decl.Underlying, Variants: variants}
	}
	return out, nil
}
