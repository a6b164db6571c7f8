// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import "github.com/flatkit/flatkit/schema"

func isPow2(x uint32) bool { return x != 0 && x&(x-1) == 0 }

func roundUp(x, align uint32) uint32 {
	if align == 0 {
		return x
	}
	if rem := x % align; rem != 0 {
		return x + align - rem
	}
	return x
}

// ValidateStructs is pass 2: a cycle check (phase A) followed by memoised
// validated emission with full layout computation (phase B).
func ValidateStructs(raw *RawSymbols, enums map[string]*ValidatedEnum) (map[string]*ValidatedStruct, error) {
	nsByQN := map[string]schema.Namespace{}
	for _, d := range raw.Structs {
		nsByQN[schema.Qualify(d.NS, d.Decl.Name)] = d.NS
	}

	if err := checkStructCycles(raw, nsByQN); err != nil {
		return nil, err
	}

	memo := map[string]*ValidatedStruct{}
	out := map[string]*ValidatedStruct{}
	for _, d := range raw.Structs {
		qn := schema.Qualify(d.NS, d.Decl.Name)
		vs, err := validateStruct(qn, raw, nsByQN, enums, memo)
		if err != nil {
			return nil, err
		}
		out[qn] = vs
	}
	return out, nil
}

// checkStructCycles is phase A: a depth-first traversal from every struct
// following struct-typed fields, with a visited stack of qualified names.
// Enum-typed fields terminate the traversal without descending further.
func checkStructCycles(raw *RawSymbols, nsByQN map[string]schema.Namespace) error {
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var chain []string

	var visit func(qn string) error
	visit = func(qn string) error {
		if visited[qn] {
			return nil
		}
		if onStack[qn] {
			idx := 0
			for i, c := range chain {
				if c == qn {
					idx = i
					break
				}
			}
			cyc := append(append([]string{}, chain[idx:]...), qn)
			return errCyclicStruct(Context{qn}, cyc)
		}
		onStack[qn] = true
		chain = append(chain, qn)
		defer func() {
			onStack[qn] = false
			chain = chain[:len(chain)-1]
		}()

		decl := raw.structByQN[qn]
		ns := nsByQN[qn]
		for _, f := range decl.Fields {
			if f.Type.Vector || f.Type.IsString || f.Type.IsScalar() {
				continue
			}
			kind, fqn, _, found := raw.Resolve(ns, f.Type.Ref)
			if !found {
				continue // unknown-type error is reported by phase B
			}
			switch kind {
			case schema.DeclStruct:
				if err := visit(fqn); err != nil {
					return err
				}
			default:
				// enum terminates descent; table/union is a phase-B error.
			}
		}
		visited[qn] = true
		return nil
	}

	for _, d := range raw.Structs {
		qn := schema.Qualify(d.NS, d.Decl.Name)
		if err := visit(qn); err != nil {
			return err
		}
	}
	return nil
}

type resolvedStructField struct {
	name string
	ft   FieldType
}

// validateStruct is phase B for a single struct, memoised by qualified name
// so mutual struct-to-struct references are each validated exactly once.
func validateStruct(qn string, raw *RawSymbols, nsByQN map[string]schema.Namespace, enums map[string]*ValidatedEnum, memo map[string]*ValidatedStruct) (*ValidatedStruct, error) {
	if vs, ok := memo[qn]; ok {
		return vs, nil
	}
	decl := raw.structByQN[qn]
	ns := nsByQN[qn]
	ctx := Context{qn}

	for _, f := range decl.Fields {
		if f.Meta.Has(schema.AttrDeprecated) || f.Meta.Has(schema.AttrRequired) || f.Meta.Has(schema.AttrID) {
			return nil, newErr(ctx.Push(f.Name), "struct fields cannot carry deprecated, required, or id attributes")
		}
	}

	if len(decl.Fields) == 0 {
		return nil, newErr(ctx, "struct must declare at least one field")
	}

	fields := make([]resolvedStructField, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		fctx := ctx.Push(f.Name)
		if f.Type.Vector {
			return nil, newErr(fctx, "struct fields cannot be vectors")
		}
		if f.Type.IsString {
			return nil, newErr(fctx, "struct fields cannot be strings")
		}
		var ft FieldType
		if f.Type.IsScalar() {
			ft = FieldType{Kind: KindScalar, Scalar: f.Type.Scalar}
		} else {
			kind, fqn, candidates, found := raw.Resolve(ns, f.Type.Ref)
			if !found {
				return nil, errUnknownType(fctx, f.Type.Ref, candidates)
			}
			switch kind {
			case schema.DeclEnum:
				ft = FieldType{Kind: KindEnum, Enum: enums[fqn]}
			case schema.DeclStruct:
				nested, err := validateStruct(fqn, raw, nsByQN, enums, memo)
				if err != nil {
					return nil, err
				}
				ft = FieldType{Kind: KindStruct, Struct: nested}
			default:
				return nil, newErr(fctx, "struct fields cannot reference tables or unions")
			}
		}
		fields = append(fields, resolvedStructField{name: f.Name, ft: ft})
	}

	var natural uint32 = 1
	for _, rf := range fields {
		if a := rf.ft.Align(); a > natural {
			natural = a
		}
	}
	align := natural
	if fa, ok := decl.Meta.Int(schema.AttrForceAlign); ok {
		if fa < int64(natural) || fa > 16 || !isPow2(uint32(fa)) {
			return nil, errInvalidForceAlign(ctx, fa, natural)
		}
		align = uint32(fa)
	}

	validated := make([]StructField, len(fields))
	var s uint32
	for i, rf := range fields {
		sz := rf.ft.Size()
		if i < len(fields)-1 {
			s += sz
			pad := roundUp(s, fields[i+1].ft.Align()) - s
			validated[i] = StructField{Name: rf.name, Type: rf.ft, Padding: pad}
			s += pad
		} else {
			pad := roundUp(s+sz, align) - (s + sz)
			validated[i] = StructField{Name: rf.name, Type: rf.ft, Padding: pad}
			s += sz + pad
		}
	}

	vs := &ValidatedStruct{Name: qn, Align: align, Size: s, Fields: validated}
	memo[qn] = vs
	return vs, nil
}
