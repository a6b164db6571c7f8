// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import (
	"strings"

	"github.com/flatkit/flatkit/schema"
)

// RawSymbols indexes every raw (unvalidated) declaration in a FileTree by
// qualified name, across all four kinds and every file in the tree — the
// "four lists... each element paired with its declaring namespace" of
// spec §3's SymbolTable, at its raw (pre-validation) stage.
type RawSymbols struct {
	Enums   []schema.NamespacedDecl[*schema.EnumDecl]
	Structs []schema.NamespacedDecl[*schema.StructDecl]
	Tables  []schema.NamespacedDecl[*schema.TableDecl]
	Unions  []schema.NamespacedDecl[*schema.UnionDecl]

	enumByQN   map[string]*schema.EnumDecl
	structByQN map[string]*schema.StructDecl
	tableByQN  map[string]*schema.TableDecl
	unionByQN  map[string]*schema.UnionDecl
}

// BuildRawSymbols walks tree in load order (root, then includes depth
// first) and indexes every declaration it finds.
func BuildRawSymbols(tree *schema.FileTree[*schema.Schema]) *RawSymbols {
	r := &RawSymbols{
		enumByQN:   map[string]*schema.EnumDecl{},
		structByQN: map[string]*schema.StructDecl{},
		tableByQN:  map[string]*schema.TableDecl{},
		unionByQN:  map[string]*schema.UnionDecl{},
	}
	for _, path := range tree.Order {
		s := tree.Files[path]
		for _, e := range s.NamespacedEnums() {
			r.Enums = append(r.Enums, e)
			r.enumByQN[schema.Qualify(e.NS, e.Decl.Name)] = e.Decl
		}
		for _, d := range s.NamespacedStructs() {
			r.Structs = append(r.Structs, d)
			r.structByQN[schema.Qualify(d.NS, d.Decl.Name)] = d.Decl
		}
		for _, d := range s.NamespacedTables() {
			r.Tables = append(r.Tables, d)
			r.tableByQN[schema.Qualify(d.NS, d.Decl.Name)] = d.Decl
		}
		for _, d := range s.NamespacedUnions() {
			r.Unions = append(r.Unions, d)
			r.unionByQN[schema.Qualify(d.NS, d.Decl.Name)] = d.Decl
		}
	}
	return r
}

// splitRef splits a dotted reference "P.Q.X" into its namespace prefix
// ("P.Q") and final identifier ("X"). A bare "X" yields an empty prefix.
func splitRef(ref string) (prefix schema.Namespace, name string) {
	segs := strings.Split(ref, ".")
	name = segs[len(segs)-1]
	if len(segs) > 1 {
		prefix = schema.Namespace(segs[:len(segs)-1])
	}
	return prefix, name
}

// prefixShorten enumerates candidate namespaces by shortening ns from the
// full namespace down to the root, e.g. a.b.c -> [a.b.c, a.b, a, <root>].
func prefixShorten(ns schema.Namespace) []schema.Namespace {
	out := make([]schema.Namespace, 0, len(ns)+1)
	for i := len(ns); i >= 0; i-- {
		out = append(out, ns[:i])
	}
	return out
}

// Resolve implements the cross-namespace type reference resolution
// algorithm of spec §4.2: given the current namespace and a (possibly
// qualified) reference, it enumerates candidate namespaces by
// prefix-shortening the current namespace, and for each candidate searches
// enums, structs, tables, unions (in that order) across every file in the
// tree. The first match wins.
func (r *RawSymbols) Resolve(cur schema.Namespace, ref string) (kind schema.DeclKind, qualified string, candidates []string, found bool) {
	prefix, name := splitRef(ref)
	for _, c := range prefixShorten(cur) {
		full := c.Join(prefix)
		candidates = append(candidates, full.String())
		qn := schema.Qualify(full, name)
		if _, ok := r.enumByQN[qn]; ok {
			return schema.DeclEnum, qn, candidates, true
		}
		if _, ok := r.structByQN[qn]; ok {
			return schema.DeclStruct, qn, candidates, true
		}
		if _, ok := r.tableByQN[qn]; ok {
			return schema.DeclTable, qn, candidates, true
		}
		if _, ok := r.unionByQN[qn]; ok {
			return schema.DeclUnion, qn, candidates, true
		}
	}
	return 0, "", candidates, false
}
