// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import "fmt"

// SchemaError is the single error taxonomy the validator surfaces. Context
// is a dotted path ("Namespace.Type.field.subfield"); Message is one of the
// classes spec §6 enumerates.
type SchemaError struct {
	Context string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return fmt.Sprintf("[%s]: %s", e.Context, e.Message)
}

func newErr(ctx Context, format string, args ...any) *SchemaError {
	return &SchemaError{Context: ctx.String(), Message: fmt.Sprintf(format, args...)}
}

func errDuplicateIdentifier(ctx Context, kind, name string) *SchemaError {
	return newErr(ctx, "duplicate %s identifier %q", kind, name)
}

func errNotAscending(ctx Context, name string, value, last int64) *SchemaError {
	return newErr(ctx, "variant %q value %d must be ascending (previous value %d)", name, value, last)
}

func errOutOfRange(ctx Context, name string, value int64, underlying string) *SchemaError {
	return newErr(ctx, "variant %q value %d out of range for underlying type %s", name, value, underlying)
}

func errNonScalarRequired(ctx Context, field string) *SchemaError {
	return newErr(ctx, "field %q: required is only legal on non-scalar field types", field)
}

func errDefaultOnNonScalar(ctx Context, field string) *SchemaError {
	return newErr(ctx, "field %q: default values are only legal on scalar, bool, float, or enum fields", field)
}

func errUnknownDefaultVariant(ctx Context, field, enumName string) *SchemaError {
	return newErr(ctx, "field %q: enum %s has no variant with value 0; an explicit default is required", field, enumName)
}

func errUnknownType(ctx Context, ref string, candidates []string) *SchemaError {
	return newErr(ctx, "unknown type reference %q (searched namespaces: %v)", ref, candidates)
}

func errUnionOfNonTable(ctx Context, variant, ref string) *SchemaError {
	return newErr(ctx, "union variant %q references %q, which is not a table", variant, ref)
}

func errCyclicStruct(ctx Context, chain []string) *SchemaError {
	return newErr(ctx, "cyclic dependency [%s]", joinArrow(chain))
}

func errInvalidForceAlign(ctx Context, value int64, natural uint32) *SchemaError {
	return newErr(ctx, "force_align %d must be a power of two in [%d, 16]", value, natural)
}

func errUnsupportedBitFlags(ctx Context) *SchemaError {
	return newErr(ctx, "bit_flags is not supported")
}

func errUnionIDGap(ctx Context, field string, got, want int64) *SchemaError {
	return newErr(ctx, "field %q: union/vector-of-union id must be previous id + 2 (got %d, want %d)", field, got, want)
}

func errPlainIDGap(ctx Context, field string, got, want int64) *SchemaError {
	return newErr(ctx, "field %q: id must be previous id + 1 (got %d, want %d)", field, got, want)
}

func errMissingIDOnSomeFields(ctx Context) *SchemaError {
	return newErr(ctx, "either every field must carry an id attribute, or none may")
}

func errInvalidLiteral(ctx Context, field, reason string) *SchemaError {
	return newErr(ctx, "field %q: %s", field, reason)
}

func joinArrow(chain []string) string {
	out := ""
	for i, c := range chain {
		if i > 0 {
			out += " -> "
		}
		out += c
	}
	return out
}
