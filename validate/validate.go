// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package validate

import "github.com/flatkit/flatkit/schema"

// Validate runs the four ordered passes (enums, structs, tables, unions)
// over tree and returns the fully validated Schema, or the first
// *SchemaError encountered. The pass order is
// load-bearing: structs need validated enums for enum-typed fields; tables
// need validated enums and structs; unions need validated tables.
func Validate(tree *schema.FileTree[*schema.Schema]) (*Schema, error) {
	raw := BuildRawSymbols(tree)

	enums, err := ValidateEnums(raw)
	if err != nil {
		return nil, err
	}
	structs, err := ValidateStructs(raw, enums)
	if err != nil {
		return nil, err
	}
	tables, err := ValidateTables(raw, enums, structs)
	if err != nil {
		return nil, err
	}
	unions, err := ValidateUnions(raw, tables)
	if err != nil {
		return nil, err
	}

	return &Schema{Enums: enums, Structs: structs, Tables: tables, Unions: unions}, nil
}
