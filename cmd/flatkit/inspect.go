// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flatkit/flatkit/wire"
)

var vtableOffset int64

var inspectCmd = &cobra.Command{
	Use:   "inspect <buffer-file>",
	Short: "Memory-map an encoded buffer and dump a table's vtable layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Int64Var(&vtableOffset, "vtable-offset", -1,
		"byte offset of the table whose vtable to dump (defaults to the root table)")
}

// runInspect has no generated accessor code to lean on (the schema that
// produced the buffer is not known to the CLI), so it walks vtable slots
// directly: for each slot it asks wire.Table.Offset and prints whatever
// bytes live there as a raw hex dump. That is honest about what a slot
// without a schema can tell you. --vtable-offset lets the caller target any
// table in the buffer, not just the root, by giving its absolute byte
// position directly.
func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	mapped, err := wire.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("mapping %s: %w", path, err)
	}
	defer mapped.Close()

	tbl := mapped.Root
	if vtableOffset >= 0 {
		tbl = wire.Table{Buf: mapped.Root.Buf, Pos: uint32(vtableOffset)}
	} else if len(tbl.Buf) >= 8 {
		var identBuf [4]byte
		copy(identBuf[:], tbl.Buf[4:8])
		fmt.Printf("identifier bytes: %q (%s)\n", identBuf, hex.EncodeToString(identBuf[:]))
	}
	fmt.Printf("table at byte offset %d\n", tbl.Pos)

	vpos, vsize, numSlots, err := tbl.VtableInfo()
	if err != nil {
		return fmt.Errorf("resolving vtable: %w", err)
	}
	fmt.Printf("vtable at byte offset %d, size %d, %d slot(s)\n", vpos, vsize, numSlots)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "slot\tabsolute offset\tpresent\tfirst 8 bytes")
	for slot := wire.VOffset(0); slot < numSlots; slot++ {
		off, err := tbl.Offset(slot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "slot %d: %v\n", slot, err)
			break
		}
		if off == 0 {
			fmt.Fprintf(tw, "%d\t-\tabsent\t-\n", slot)
			continue
		}
		end := off + 8
		if end > uint32(len(tbl.Buf)) {
			end = uint32(len(tbl.Buf))
		}
		fmt.Fprintf(tw, "%d\t%d\tpresent\t%s\n", slot, off, hex.EncodeToString(tbl.Buf[off:end]))
	}
	return tw.Flush()
}
