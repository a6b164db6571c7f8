// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flatkit/flatkit/schema"
	"github.com/flatkit/flatkit/schema/lexparse"
	"github.com/flatkit/flatkit/validate"
)

var includeDirs []string

var validateCmd = &cobra.Command{
	Use:   "validate <schema-file>",
	Short: "Load a schema and every file it includes, then run semantic validation",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringSliceVarP(&includeDirs, "include", "I", nil,
		"additional directory to search when resolving include directives (repeatable)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	loader := schema.NewLoader(lexparse.Parse, includeDirs)

	tree, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flatkit: %v\n", err)
		return err
	}

	s, err := validate.Validate(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flatkit: %v\n", err)
		return err
	}

	fmt.Printf("OK: %s (%d file(s)): %d enum(s), %d struct(s), %d table(s), %d union(s)\n",
		path, len(tree.Files), len(s.Enums), len(s.Structs), len(s.Tables), len(s.Unions))
	return nil
}
