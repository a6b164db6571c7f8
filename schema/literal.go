// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

import "fmt"

// LiteralKind tags the concrete type a Literal holds.
type LiteralKind uint8

const (
	// LiteralNone marks an attribute present without a value, e.g. `deprecated`.
	LiteralNone LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralBool
	// LiteralIdent covers enum-variant-as-default and similar bare identifiers.
	LiteralIdent
)

// Literal is a single scalar value as it appeared in schema source: an
// attribute value, a field default, or an enum variant's explicit value.
type Literal struct {
	Kind LiteralKind
	Int  int64
	Flt  float64
	Str  string
	Bool bool
}

// NoneLiteral is the value of an attribute written without `: value`.
func NoneLiteral() Literal { return Literal{Kind: LiteralNone} }

// IntLiteral builds an integer literal.
func IntLiteral(v int64) Literal { return Literal{Kind: LiteralInt, Int: v} }

// FloatLiteral builds a floating-point literal.
func FloatLiteral(v float64) Literal { return Literal{Kind: LiteralFloat, Flt: v} }

// StringLiteral builds a string literal.
func StringLiteral(v string) Literal { return Literal{Kind: LiteralString, Str: v} }

// BoolLiteral builds a boolean literal.
func BoolLiteral(v bool) Literal { return Literal{Kind: LiteralBool, Bool: v} }

// IdentLiteral builds a bare-identifier literal (e.g. an enum variant name
// used as a field default).
func IdentLiteral(v string) Literal { return Literal{Kind: LiteralIdent, Str: v} }

// String renders the literal for error messages.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralNone:
		return "<none>"
	case LiteralInt:
		return fmt.Sprintf("%d", l.Int)
	case LiteralFloat:
		return fmt.Sprintf("%g", l.Flt)
	case LiteralString:
		return fmt.Sprintf("%q", l.Str)
	case LiteralBool:
		return fmt.Sprintf("%t", l.Bool)
	case LiteralIdent:
		return l.Str
	default:
		return "<invalid literal>"
	}
}
