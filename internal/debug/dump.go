// Package debug provides text dumps of emulator state for troubleshooting.
package debug

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// HexDump writes a conventional hex dump of data to w, addressing lines
// from base.
func HexDump(w io.Writer, base uint16, data []uint8) {
	for offset := 0; offset < len(data); offset += 16 {
		end := offset + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(w, "%04X:", int(base)+offset)
		for _, b := range data[offset:end] {
			fmt.Fprintf(w, " %02X", b)
		}
		fmt.Fprintln(w)
	}
}

// DumpPPU writes the PPU address space and OAM as hex dumps.
func DumpPPU(w io.Writer, vram [0x4000]uint8, oam [0x100]uint8) {
	fmt.Fprintln(w, "== PPU address space ==")
	HexDump(w, 0x0000, vram[:])
	fmt.Fprintln(w, "== OAM ==")
	HexDump(w, 0x0000, oam[:])
}

// DumpState pretty-prints any component's internal state.
func DumpState(w io.Writer, label string, state interface{}) {
	fmt.Fprintf(w, "== %s ==\n", label)
	spew.Fdump(w, state)
}
