package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMirroringHorizontal(t *testing.T) {
	// $2000 and $2400 share the low 1KB
	assert.Equal(t, ResolveMirroring(MirrorHorizontal, 0x2000), ResolveMirroring(MirrorHorizontal, 0x2400))
	// $2800 and $2C00 share the high 1KB
	assert.Equal(t, ResolveMirroring(MirrorHorizontal, 0x2800), ResolveMirroring(MirrorHorizontal, 0x2C00))
	assert.Equal(t, uint16(0x000), ResolveMirroring(MirrorHorizontal, 0x2000))
	assert.Equal(t, uint16(0x400), ResolveMirroring(MirrorHorizontal, 0x2800))
	assert.NotEqual(t,
		ResolveMirroring(MirrorHorizontal, 0x2000),
		ResolveMirroring(MirrorHorizontal, 0x2800))
}

func TestResolveMirroringVertical(t *testing.T) {
	assert.Equal(t, ResolveMirroring(MirrorVertical, 0x2000), ResolveMirroring(MirrorVertical, 0x2800))
	assert.Equal(t, ResolveMirroring(MirrorVertical, 0x2400), ResolveMirroring(MirrorVertical, 0x2C00))
	assert.Equal(t, uint16(0x000), ResolveMirroring(MirrorVertical, 0x2000))
	assert.Equal(t, uint16(0x400), ResolveMirroring(MirrorVertical, 0x2400))
}

func TestResolveMirroringSingleScreen(t *testing.T) {
	for _, base := range []uint16{0x2000, 0x2400, 0x2800, 0x2C00} {
		assert.Equal(t, uint16(0x123), ResolveMirroring(MirrorSingleScreenLow, base+0x123))
		assert.Equal(t, uint16(0x523), ResolveMirroring(MirrorSingleScreenHigh, base+0x123))
	}
}

func TestResolveMirroringFourScreen(t *testing.T) {
	// Four-screen passes the raw 12-bit offset through
	assert.Equal(t, uint16(0x000), ResolveMirroring(MirrorFourScreen, 0x2000))
	assert.Equal(t, uint16(0x400), ResolveMirroring(MirrorFourScreen, 0x2400))
	assert.Equal(t, uint16(0x800), ResolveMirroring(MirrorFourScreen, 0x2800))
	assert.Equal(t, uint16(0xC00), ResolveMirroring(MirrorFourScreen, 0x2C00))
}

func TestResolveMirrors3000Range(t *testing.T) {
	// $3000-$3EFF mirrors down by $1000 for every mode
	modes := []MirrorMode{
		MirrorHorizontal, MirrorVertical,
		MirrorSingleScreenLow, MirrorSingleScreenHigh, MirrorFourScreen,
	}
	for _, mode := range modes {
		for addr := uint16(0x2000); addr < 0x2F00; addr += 0x101 {
			assert.Equal(t, ResolveMirroring(mode, addr), ResolveMirroring(mode, addr+0x1000),
				"mode %v addr %04X", mode, addr)
		}
	}
}

func TestResolveOffsetsInRange(t *testing.T) {
	modes := []MirrorMode{MirrorHorizontal, MirrorVertical, MirrorSingleScreenLow, MirrorSingleScreenHigh}
	for _, mode := range modes {
		for addr := uint16(0x2000); addr < 0x3F00; addr++ {
			offset := ResolveMirroring(mode, addr)
			assert.Less(t, offset, uint16(0x800), "mode %v addr %04X", mode, addr)
		}
	}
	for addr := uint16(0x2000); addr < 0x3F00; addr++ {
		assert.Less(t, ResolveMirroring(MirrorFourScreen, addr), uint16(0x1000))
	}
}
