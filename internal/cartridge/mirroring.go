package cartridge

// MirrorMode represents nametable mirroring mode
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreenLow
	MirrorSingleScreenHigh
	MirrorFourScreen
)

// String returns a readable mode name for logging.
func (m MirrorMode) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleScreenLow:
		return "single-screen low"
	case MirrorSingleScreenHigh:
		return "single-screen high"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// ResolveMirroring maps a PPU address in $2000-$3EFF to an offset into the
// cartridge's nametable VRAM according to the active mirroring mode. The
// result is always in [0, 0x1000); modes other than four-screen only ever
// produce offsets in [0, 0x800).
//
// Addresses in $3000-$3EFF mirror down by $1000 before mode resolution.
func ResolveMirroring(mode MirrorMode, address uint16) uint16 {
	address &= 0x0FFF                // $3000-$3EFF mirrors $2000-$2EFF
	nametable := (address >> 10) & 3 // which logical nametable (0-3)
	offset := address & 0x3FF        // offset within the nametable

	switch mode {
	case MirrorHorizontal:
		// $2000/$2400 share the low 1KB, $2800/$2C00 share the high 1KB
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset

	case MirrorVertical:
		// $2000/$2800 share the low 1KB, $2400/$2C00 share the high 1KB
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset

	case MirrorSingleScreenLow:
		return offset

	case MirrorSingleScreenHigh:
		return 0x400 + offset

	case MirrorFourScreen:
		// Each nametable has its own 1KB (requires the full 4KB VRAM)
		return nametable*0x400 + offset

	default:
		return offset
	}
}
