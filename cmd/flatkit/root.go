// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flatkit",
	Short: "flatkit loads, validates and inspects flatkit schemas and buffers",
	Long: `flatkit is a schema compiler front-end and wire-format inspector:

  flatkit validate schema.fbs     load a schema and its includes, run every
                                   semantic pass, and report the first error
  flatkit inspect buffer.bin       memory-map an encoded buffer and dump a
    --vtable-offset N               table's vtable layout; defaults to the
                                   root table, or targets the table at byte
                                   offset N
  flatkit version                  print the build version
`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}
