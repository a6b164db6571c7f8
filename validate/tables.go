// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import (
	"sort"

	"github.com/flatkit/flatkit/schema"
)

type preparedTableField struct {
	name       string
	ft         FieldType
	deprecated bool
	required   bool
	hasDefault bool
	defaultInt int64
	defaultFlt float64
	defaultBool bool
	enumDefault string
	id         int64
	hasID      bool
}

// ValidateTables is pass 3: duplicate-field check, per-field type/default
// validation, and slot assignment (including the union/vector-of-union
// two-slot rule of spec §4.3).
func ValidateTables(raw *RawSymbols, enums map[string]*ValidatedEnum, structs map[string]*ValidatedStruct) (map[string]*ValidatedTable, error) {
	out := map[string]*ValidatedTable{}
	for _, d := range raw.Tables {
		qn := schema.Qualify(d.NS, d.Decl.Name)
		vt, err := validateTable(qn, d.NS, d.Decl, raw, enums, structs)
		if err != nil {
			return nil, err
		}
		out[qn] = vt
	}
	return out, nil
}

func validateTable(qn string, ns schema.Namespace, decl *schema.TableDecl, raw *RawSymbols, enums map[string]*ValidatedEnum, structs map[string]*ValidatedStruct) (*ValidatedTable, error) {
	ctx := Context{qn}

	seen := map[string]bool{}
	for _, f := range decl.Fields {
		if seen[f.Name] {
			return nil, errDuplicateIdentifier(ctx, "table field", f.Name)
		}
		seen[f.Name] = true
	}

	prep := make([]preparedTableField, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		fctx := ctx.Push(f.Name)
		ft, err := resolveTableFieldType(fctx, ns, f.Type, raw, enums, structs)
		if err != nil {
			return nil, err
		}

		p := preparedTableField{name: f.Name, ft: ft}
		p.deprecated = f.Meta.Has(schema.AttrDeprecated)
		requiredAttr := f.Meta.Has(schema.AttrRequired)
		if id, ok := f.Meta.Int(schema.AttrID); ok {
			p.hasID = true
			p.id = id
		}

		scalarField := !ft.Vector && (ft.Kind == KindScalar || ft.Kind == KindEnum)
		if requiredAttr {
			if scalarField {
				return nil, errNonScalarRequired(fctx, f.Name)
			}
			p.required = true
		}

		if f.HasDefault && !scalarField {
			return nil, errDefaultOnNonScalar(fctx, f.Name)
		}
		if err := fillDefault(fctx, f, ft, scalarField, enums, &p); err != nil {
			return nil, err
		}

		prep = append(prep, p)
	}

	anyID, allID := false, true
	for _, p := range prep {
		if p.hasID {
			anyID = true
		} else {
			allID = false
		}
	}
	if anyID && !allID {
		return nil, errMissingIDOnSomeFields(ctx)
	}
	if anyID {
		sort.SliceStable(prep, func(i, j int) bool { return prep[i].id < prep[j].id })
	}

	fields := make([]TableField, len(prep))
	last := -1
	for i, p := range prep {
		unionLike := p.ft.Kind == KindUnion
		var slot int
		if unionLike {
			slot = last + 2
		} else {
			slot = last + 1
		}
		if anyID {
			if p.id != int64(slot) {
				if unionLike {
					return nil, errUnionIDGap(ctx, p.name, p.id, int64(slot))
				}
				return nil, errPlainIDGap(ctx, p.name, p.id, int64(slot))
			}
		}
		last = slot
		fields[i] = TableField{
			Name: p.name, Type: p.ft, Slot: slot, Deprecated: p.deprecated, Required: p.required,
			HasDefault: p.hasDefault, DefaultInt: p.defaultInt, DefaultFlt: p.defaultFlt,
			DefaultBool: p.defaultBool, EnumDefault: p.enumDefault,
		}
	}

	return &ValidatedTable{Name: qn, Fields: fields}, nil
}

func resolveTableFieldType(ctx Context, ns schema.Namespace, t schema.TypeRef, raw *RawSymbols, enums map[string]*ValidatedEnum, structs map[string]*ValidatedStruct) (FieldType, error) {
	base := t.Element()
	var ft FieldType
	switch {
	case base.IsScalar():
		ft = FieldType{Kind: KindScalar, Scalar: base.Scalar}
	case base.IsString:
		ft = FieldType{Kind: KindString}
	default:
		kind, fqn, candidates, found := raw.Resolve(ns, base.Ref)
		if !found {
			return FieldType{}, errUnknownType(ctx, base.Ref, candidates)
		}
		switch kind {
		case schema.DeclEnum:
			ft = FieldType{Kind: KindEnum, Enum: enums[fqn]}
		case schema.DeclStruct:
			ft = FieldType{Kind: KindStruct, Struct: structs[fqn]}
		case schema.DeclTable:
			ft = FieldType{Kind: KindTable, TableName: fqn}
		case schema.DeclUnion:
			ft = FieldType{Kind: KindUnion, UnionName: fqn}
		}
	}
	ft.Vector = t.Vector
	return ft, nil
}

// fillDefault resolves a field's default value (explicit or implicit zero),
// validating it against spec §4.3's rules.
func fillDefault(ctx Context, f schema.Field, ft FieldType, scalarField bool, enums map[string]*ValidatedEnum, p *preparedTableField) error {
	if !scalarField {
		return nil
	}
	p.hasDefault = true

	if ft.Kind == KindEnum {
		enum := ft.Enum
		if f.HasDefault {
			switch f.Default.Kind {
			case schema.LiteralInt:
				v, ok := enum.VariantByValue(f.Default.Int)
				if !ok {
					return errInvalidLiteral(ctx, f.Name, "default value does not match any enum variant")
				}
				p.enumDefault = v.Name
			case schema.LiteralIdent:
				v, ok := enum.VariantByName(f.Default.Str)
				if !ok {
					return errInvalidLiteral(ctx, f.Name, "default references an unknown enum variant")
				}
				p.enumDefault = v.Name
			default:
				return errInvalidLiteral(ctx, f.Name, "enum default must be a number or variant identifier")
			}
			return nil
		}
		v, ok := enum.VariantByValue(0)
		if !ok {
			return errUnknownDefaultVariant(ctx, f.Name, enum.Name)
		}
		p.enumDefault = v.Name
		return nil
	}

	if ft.Scalar == schema.Bool {
		if f.HasDefault {
			if f.Default.Kind != schema.LiteralBool {
				return errInvalidLiteral(ctx, f.Name, "bool default must be true or false")
			}
			p.defaultBool = f.Default.Bool
		}
		return nil
	}

	if ft.Scalar == schema.Float32 || ft.Scalar == schema.Float64 {
		if f.HasDefault {
			switch f.Default.Kind {
			case schema.LiteralFloat:
				p.defaultFlt = f.Default.Flt
			case schema.LiteralInt:
				p.defaultFlt = float64(f.Default.Int)
			default:
				return errInvalidLiteral(ctx, f.Name, "float default must be a number literal")
			}
		}
		return nil
	}

	// integer scalar
	if f.HasDefault {
		if f.Default.Kind != schema.LiteralInt {
			return errInvalidLiteral(ctx, f.Name, "integer default must be an integer literal")
		}
		lo, hi := scalarRange(ft.Scalar)
		if f.Default.Int < lo || f.Default.Int > hi {
			return errInvalidLiteral(ctx, f.Name, "default value is not representable in the field's integer type")
		}
		p.defaultInt = f.Default.Int
	}
	return nil
}
