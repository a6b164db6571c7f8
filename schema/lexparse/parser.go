// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lexparse

import (
	"fmt"
	"strconv"

	"github.com/flatkit/flatkit/schema"
)

// Parse tokenises and parses src (from the named file) into a *schema.Schema.
// On the first syntax error it returns a *schema.ParseError.
func Parse(file, src string) (*schema.Schema, error) {
	toks, err := Tokenize(file, src)
	if err != nil {
		if le, ok := err.(*lexError); ok {
			return nil, &schema.ParseError{File: le.file, Line: le.line, Col: le.col, Message: le.msg}
		}
		return nil, err
	}
	p := &parser{file: file, toks: toks}
	s, perr := p.parseSchema()
	if perr != nil {
		return nil, perr
	}
	return s, nil
}

type parser struct {
	file string
	toks []Token
	pos  int
}

func (p *parser) cur() Token  { return p.toks[p.pos] }
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errf(format string, args ...any) *schema.ParseError {
	t := p.cur()
	return &schema.ParseError{File: p.file, Line: t.Line, Col: t.Col, Message: fmt.Sprintf(format, args...)}
}

// expectPunct consumes a punctuation token matching s or returns a ParseError.
func (p *parser) expectPunct(s string) error {
	t := p.cur()
	if t.Kind != TokPunct || t.Text != s {
		return p.errf("expected %q, got %q", s, t.String())
	}
	p.advance()
	return nil
}

func (p *parser) atPunct(s string) bool {
	t := p.cur()
	return t.Kind == TokPunct && t.Text == s
}

func (p *parser) expectIdent() (string, error) {
	t := p.cur()
	if t.Kind != TokIdent {
		return "", p.errf("expected identifier, got %q", t.String())
	}
	p.advance()
	return t.Text, nil
}

// dottedIdent parses `a.b.c` as a single dotted reference string.
func (p *parser) dottedIdent() (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	out := first
	for p.atPunct(".") {
		p.advance()
		next, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		out += "." + next
	}
	return out, nil
}

func (p *parser) parseSchema() (*schema.Schema, error) {
	s := &schema.Schema{Path: p.file}
	for p.cur().Kind != TokEOF {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		s.Decls = append(s.Decls, d)
	}
	return s, nil
}

func (p *parser) parseDecl() (schema.Decl, error) {
	t := p.cur()
	if t.Kind != TokIdent {
		return schema.Decl{}, p.errf("expected a declaration keyword, got %q", t.String())
	}
	switch t.Text {
	case "namespace":
		return p.parseNamespace()
	case "enum":
		return p.parseEnum()
	case "struct":
		return p.parseStruct()
	case "table":
		return p.parseTable()
	case "union":
		return p.parseUnion()
	case "root_type":
		return p.parseRootType()
	case "file_identifier":
		return p.parseFileIdentifier()
	case "file_extension":
		return p.parseFileExtension()
	case "attribute":
		return p.parseAttribute()
	case "include":
		return p.parseInclude()
	default:
		return schema.Decl{}, p.errf("unknown declaration keyword %q", t.Text)
	}
}

func (p *parser) parseNamespace() (schema.Decl, error) {
	pos := p.pos1()
	p.advance() // "namespace"
	name, err := p.dottedIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclNamespace, Namespace: &schema.NamespaceDecl{
		NS: schema.ParseNamespace(name), Pos: pos,
	}}, nil
}

func (p *parser) pos1() schema.Pos {
	t := p.cur()
	return schema.Pos{File: p.file, Line: t.Line, Col: t.Col}
}

func (p *parser) parseInclude() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	t := p.cur()
	if t.Kind != TokString {
		return schema.Decl{}, p.errf("expected a string path after include")
	}
	p.advance()
	if err := p.expectPunct(";"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclInclude, Include: &schema.IncludeDecl{Path: t.Decoded, Pos: pos}}, nil
}

func (p *parser) parseRootType() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	ref, err := p.dottedIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	if err := p.expectPunct(";"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclRootType, RootType: &schema.RootTypeDecl{Ref: ref, Pos: pos}}, nil
}

func (p *parser) parseFileIdentifier() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	t := p.cur()
	if t.Kind != TokString {
		return schema.Decl{}, p.errf("expected a string after file_identifier")
	}
	p.advance()
	if err := p.expectPunct(";"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclFileIdentifier, FileIdent: &schema.FileIdentifierDecl{ID: t.Decoded, Pos: pos}}, nil
}

func (p *parser) parseFileExtension() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	t := p.cur()
	if t.Kind != TokString {
		return schema.Decl{}, p.errf("expected a string after file_extension")
	}
	p.advance()
	if err := p.expectPunct(";"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclFileExtension, FileExtension: &schema.FileExtensionDecl{Ext: t.Decoded, Pos: pos}}, nil
}

func (p *parser) parseAttribute() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	t := p.cur()
	if t.Kind != TokString {
		return schema.Decl{}, p.errf("expected a string after attribute")
	}
	p.advance()
	if err := p.expectPunct(";"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclAttribute, Attribute: &schema.AttributeDecl{Name: t.Decoded, Pos: pos}}, nil
}

// parseMetadata parses an optional trailing `(key: value, key2, ...)` list.
func (p *parser) parseMetadata() (schema.Metadata, error) {
	if !p.atPunct("(") {
		return nil, nil
	}
	p.advance()
	meta := schema.Metadata{}
	for !p.atPunct(")") {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if p.atPunct(":") {
			p.advance()
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			meta[name] = lit
		} else {
			meta[name] = schema.NoneLiteral()
		}
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return meta, nil
}

func (p *parser) parseLiteral() (schema.Literal, error) {
	t := p.cur()
	switch t.Kind {
	case TokInt:
		p.advance()
		v, err := strconv.ParseInt(t.Text, 0, 64)
		if err != nil {
			return schema.Literal{}, p.errf("invalid integer literal %q: %v", t.Text, err)
		}
		return schema.IntLiteral(v), nil
	case TokFloat:
		p.advance()
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return schema.Literal{}, p.errf("invalid float literal %q: %v", t.Text, err)
		}
		return schema.FloatLiteral(v), nil
	case TokString:
		p.advance()
		return schema.StringLiteral(t.Decoded), nil
	case TokIdent:
		p.advance()
		if t.Text == "true" {
			return schema.BoolLiteral(true), nil
		}
		if t.Text == "false" {
			return schema.BoolLiteral(false), nil
		}
		return schema.IdentLiteral(t.Text), nil
	default:
		return schema.Literal{}, p.errf("expected a literal value, got %q", t.String())
	}
}

// parseType parses a type reference: a scalar keyword, "string", "[T]", or
// a dotted identifier naming an enum/struct/table/union.
func (p *parser) parseType() (schema.TypeRef, error) {
	if p.atPunct("[") {
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return schema.TypeRef{}, err
		}
		if inner.Vector {
			return schema.TypeRef{}, p.errf("nested vector types are not legal")
		}
		if err := p.expectPunct("]"); err != nil {
			return schema.TypeRef{}, err
		}
		inner.Vector = true
		return inner, nil
	}
	name, err := p.dottedIdent()
	if err != nil {
		return schema.TypeRef{}, err
	}
	if name == "string" {
		return schema.TypeRef{IsString: true}, nil
	}
	if sc := schema.ScalarFromName(name); sc != schema.ScalarInvalid {
		return schema.TypeRef{Scalar: sc}, nil
	}
	return schema.TypeRef{Ref: name}, nil
}

func (p *parser) parseEnum() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	name, err := p.expectIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	if err := p.expectPunct(":"); err != nil {
		return schema.Decl{}, err
	}
	typeName, err := p.expectIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	meta, err := p.parseMetadata()
	if err != nil {
		return schema.Decl{}, err
	}
	if err := p.expectPunct("{"); err != nil {
		return schema.Decl{}, err
	}
	var variants []schema.EnumVariant
	for !p.atPunct("}") {
		vpos := p.pos1()
		vname, err := p.expectIdent()
		if err != nil {
			return schema.Decl{}, err
		}
		v := schema.EnumVariant{Name: vname, Pos: vpos}
		if p.atPunct("=") {
			p.advance()
			lit, err := p.parseLiteral()
			if err != nil {
				return schema.Decl{}, err
			}
			if lit.Kind != schema.LiteralInt {
				return schema.Decl{}, p.errf("enum variant value must be an integer literal")
			}
			v.HasValue = true
			v.Value = lit.Int
		}
		variants = append(variants, v)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclEnum, Enum: &schema.EnumDecl{
		Name: name, Underlying: schema.ScalarFromName(typeName), Variants: variants, Meta: meta, Pos: pos,
	}}, nil
}

func (p *parser) parseFieldList() ([]schema.Field, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var fields []schema.Field
	for !p.atPunct("}") {
		fpos := p.pos1()
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		ftype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		f := schema.Field{Name: fname, Type: ftype, Pos: fpos}
		if p.atPunct("=") {
			p.advance()
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			f.Default = lit
			f.HasDefault = true
		}
		meta, err := p.parseMetadata()
		if err != nil {
			return nil, err
		}
		f.Meta = meta
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *parser) parseStruct() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	name, err := p.expectIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	meta, err := p.parseMetadata()
	if err != nil {
		return schema.Decl{}, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclStruct, Struct: &schema.StructDecl{Name: name, Fields: fields, Meta: meta, Pos: pos}}, nil
}

func (p *parser) parseTable() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	name, err := p.expectIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	meta, err := p.parseMetadata()
	if err != nil {
		return schema.Decl{}, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclTable, Table: &schema.TableDecl{Name: name, Fields: fields, Meta: meta, Pos: pos}}, nil
}

func (p *parser) parseUnion() (schema.Decl, error) {
	pos := p.pos1()
	p.advance()
	name, err := p.expectIdent()
	if err != nil {
		return schema.Decl{}, err
	}
	meta, err := p.parseMetadata()
	if err != nil {
		return schema.Decl{}, err
	}
	if err := p.expectPunct("{"); err != nil {
		return schema.Decl{}, err
	}
	var variants []schema.UnionVariant
	for !p.atPunct("}") {
		vpos := p.pos1()
		first, err := p.dottedIdent()
		if err != nil {
			return schema.Decl{}, err
		}
		v := schema.UnionVariant{Pos: vpos}
		if p.atPunct(":") {
			p.advance()
			ref, err := p.dottedIdent()
			if err != nil {
				return schema.Decl{}, err
			}
			v.Name = first
			v.Ref = ref
		} else {
			v.Ref = first
		}
		variants = append(variants, v)
		if p.atPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return schema.Decl{}, err
	}
	return schema.Decl{Kind: schema.DeclUnion, Union: &schema.UnionDecl{Name: name, Variants: variants, Meta: meta, Pos: pos}}, nil
}
