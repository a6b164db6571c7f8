// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schema

// Pos is a source position, used by parse errors and (optionally) carried
// by declarations for better validator diagnostics.
type Pos struct {
	File string
	Line int
	Col  int
}

// DeclKind tags the concrete declaration variant held by a Decl.
type DeclKind uint8

const (
	DeclNamespace DeclKind = iota
	DeclEnum
	DeclStruct
	DeclTable
	DeclUnion
	DeclRootType
	DeclFileExtension
	DeclFileIdentifier
	DeclAttribute
	DeclInclude
)

// EnumVariant is one `Name = value` (or bare `Name`) entry in an enum body.
type EnumVariant struct {
	Name string
	// HasValue is true if an explicit integer literal followed `=`.
	HasValue bool
	Value    int64
	Pos      Pos
}

// EnumDecl is a raw, unvalidated `enum` declaration.
type EnumDecl struct {
	Name     string
	Underlying ScalarKind
	Variants []EnumVariant
	Meta     Metadata
	Pos      Pos
}

// Field is a raw, unvalidated struct/table field.
type Field struct {
	Name    string
	Type    TypeRef
	Default Literal
	HasDefault bool
	Meta    Metadata
	Pos     Pos
}

// StructDecl is a raw, unvalidated `struct` declaration.
type StructDecl struct {
	Name   string
	Fields []Field
	Meta   Metadata
	Pos    Pos
}

// TableDecl is a raw, unvalidated `table` declaration.
type TableDecl struct {
	Name   string
	Fields []Field
	Meta   Metadata
	Pos    Pos
}

// UnionVariant is one entry of a union body: a bare type reference, or
// `Name: Type.Ref` giving an explicit variant identifier.
type UnionVariant struct {
	Name     string // explicit name, or "" to derive from Ref
	Ref      string
	Pos      Pos
}

// UnionDecl is a raw, unvalidated `union` declaration.
type UnionDecl struct {
	Name     string
	Variants []UnionVariant
	Meta     Metadata
	Pos      Pos
}

// NamespaceDecl marks all subsequent declarations (until the next
// NamespaceDecl) as belonging to NS.
type NamespaceDecl struct {
	NS  Namespace
	Pos Pos
}

// RootTypeDecl names the schema's root table type.
type RootTypeDecl struct {
	Ref string
	Pos Pos
}

// FileExtensionDecl declares the conventional file extension for encoded
// buffers of this schema, e.g. `file_extension "bin";`.
type FileExtensionDecl struct {
	Ext string
	Pos Pos
}

// FileIdentifierDecl declares the exactly-4-byte file identifier placed
// after the root uoffset, e.g. `file_identifier "MONS";`.
type FileIdentifierDecl struct {
	ID  string
	Pos Pos
}

// AttributeDecl declares a custom attribute name as legal to use elsewhere
// in the schema, e.g. `attribute "priority";`.
type AttributeDecl struct {
	Name string
	Pos  Pos
}

// IncludeDecl names another schema file to load and merge, e.g.
// `include "common.fbs";`.
type IncludeDecl struct {
	Path string
	Pos  Pos
}

// Decl is a single top-level declaration in a parsed schema file. Exactly
// one of the typed fields is non-nil/valid, selected by Kind.
type Decl struct {
	Kind DeclKind

	Namespace     *NamespaceDecl
	Enum          *EnumDecl
	Struct        *StructDecl
	Table         *TableDecl
	Union         *UnionDecl
	RootType      *RootTypeDecl
	FileExtension *FileExtensionDecl
	FileIdent     *FileIdentifierDecl
	Attribute     *AttributeDecl
	Include       *IncludeDecl
}

// Schema is a single parsed file: an ordered list of declarations.
// Namespace declarations are positional — every subsequent declaration in
// the list belongs to the most recently preceding NamespaceDecl's namespace
// (the root namespace if none has appeared yet).
type Schema struct {
	Path  string // canonical path of the file this was parsed from
	Decls []Decl
}

// Includes returns the include paths named by this file, in declared order.
func (s *Schema) Includes() []string {
	var out []string
	for _, d := range s.Decls {
		if d.Kind == DeclInclude {
			out = append(out, d.Include.Path)
		}
	}
	return out
}

// namespaceAt returns the namespace in effect at declaration index i (the
// most recent preceding NamespaceDecl, or the root namespace).
func (s *Schema) namespaceAt(i int) Namespace {
	ns := Root()
	for j := 0; j < i; j++ {
		if s.Decls[j].Kind == DeclNamespace {
			ns = s.Decls[j].Namespace.NS
		}
	}
	return ns
}

// NamespacedEnums returns every enum declaration in the file paired with
// its effective namespace.
func (s *Schema) NamespacedEnums() []NamespacedDecl[*EnumDecl] {
	var out []NamespacedDecl[*EnumDecl]
	for i, d := range s.Decls {
		if d.Kind == DeclEnum {
			out = append(out, NamespacedDecl[*EnumDecl]{NS: s.namespaceAt(i), Decl: d.Enum, File: s.Path})
		}
	}
	return out
}

// NamespacedStructs returns every struct declaration paired with its
// effective namespace.
func (s *Schema) NamespacedStructs() []NamespacedDecl[*StructDecl] {
	var out []NamespacedDecl[*StructDecl]
	for i, d := range s.Decls {
		if d.Kind == DeclStruct {
			out = append(out, NamespacedDecl[*StructDecl]{NS: s.namespaceAt(i), Decl: d.Struct, File: s.Path})
		}
	}
	return out
}

// NamespacedTables returns every table declaration paired with its
// effective namespace.
func (s *Schema) NamespacedTables() []NamespacedDecl[*TableDecl] {
	var out []NamespacedDecl[*TableDecl]
	for i, d := range s.Decls {
		if d.Kind == DeclTable {
			out = append(out, NamespacedDecl[*TableDecl]{NS: s.namespaceAt(i), Decl: d.Table, File: s.Path})
		}
	}
	return out
}

// NamespacedUnions returns every union declaration paired with its
// effective namespace.
func (s *Schema) NamespacedUnions() []NamespacedDecl[*UnionDecl] {
	var out []NamespacedDecl[*UnionDecl]
	for i, d := range s.Decls {
		if d.Kind == DeclUnion {
			out = append(out, NamespacedDecl[*UnionDecl]{NS: s.namespaceAt(i), Decl: d.Union, File: s.Path})
		}
	}
	return out
}

// NamespacedDecl pairs a raw declaration with the namespace it belongs to
// and the file it was declared in — the "declaring namespace" the spec's
// SymbolTable pairs every element with.
type NamespacedDecl[T any] struct {
	NS   Namespace
	Decl T
	File string
}

// QualifiedName returns "NS.Name" for a declaration that carries a Name
// field reachable through the generic parameter; callers pass the name
// directly since Go generics cannot reach into T.Name uniformly.
func (n NamespacedDecl[T]) QualifiedName(name string) string {
	return Qualify(n.NS, name)
}
