// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import (
	"strings"

	"github.com/flatkit/flatkit/schema"
)

// ValidateUnions is pass 4: every variant must resolve to a validated
// table; the implicit NONE variant occupies tag 0, declared variants follow
// at tags 1..N in declaration order.
func ValidateUnions(raw *RawSymbols, tables map[string]*ValidatedTable) (map[string]*ValidatedUnion, error) {
	out := map[string]*ValidatedUnion{}
	for _, u := range raw.Unions {
		qn := schema.Qualify(u.NS, u.Decl.Name)
		ctx := Context{qn}

		seen := map[string]bool{"NONE": true}
		variants := []UnionVariant{{Name: "NONE", Tag: 0}}
		tag := 1
		for _, v := range u.Decl.Variants {
			kind, fqn, candidates, found := raw.Resolve(u.NS, v.Ref)
			if !found {
				return nil, errUnknownType(ctx, v.Ref, candidates)
			}
			if kind != schema.DeclTable {
				label := v.Name
				if label == "" {
					label = v.Ref
				}
				return nil, errUnionOfNonTable(ctx, label, v.Ref)
			}
			if _, ok := tables[fqn]; !ok {
				return nil, errUnionOfNonTable(ctx, v.Ref, v.Ref)
			}

			name := v.Name
			if name == "" {
				name = strings.ReplaceAll(fqn, ".", "_")
			}
			if seen[name] {
				return nil, errDuplicateIdentifier(ctx, "union variant", name)
			}
			seen[name] = true

			variants = append(variants, UnionVariant{Name: name, TableName: fqn, Tag: tag})
			tag++
		}

		out[qn] = &ValidatedUnion{Name: qn, Variants: variants}
	}
	return out, nil
}
