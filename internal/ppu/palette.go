package ppu

// Palette RAM (32 bytes, PPU-owned) and the fixed master palette.

// paletteIndex folds a $3F00-$3FFF address into the 32-byte palette RAM,
// with $3F10/$3F14/$3F18/$3F1C mirroring their background counterparts.
func paletteIndex(address uint16) uint16 {
	index := address & 0x1F
	if index == 0x10 || index == 0x14 || index == 0x18 || index == 0x1C {
		index &= 0x0F
	}
	return index
}

func (p *PPU) paletteRead(address uint16) uint8 {
	return p.paletteRAM[paletteIndex(address)]
}

// paletteWrite stores a palette entry; entries always read back masked to
// 6 bits.
func (p *PPU) paletteWrite(address uint16, value uint8) {
	p.paletteRAM[paletteIndex(address)] = value & 0x3F
}

// masterPalette is the 2C02 NTSC palette in packed ARGB.
var masterPalette = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0600, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0C9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36AFF, 0xFFFE6ECC, 0xFFFE8170, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFFC0DFFF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFEC4EA, 0xFFFECCC5, 0xFFF7D8A5,
	0xFFE4E594, 0xFFCFF29B, 0xFFBEFBB3, 0xFFB8F8D8, 0xFFB8F8F8, 0xFF000000, 0xFF000000, 0xFF000000,
}

// paletteRGB converts a 6-bit palette entry to a packed ARGB pixel.
func paletteRGB(color uint8) uint32 {
	return masterPalette[color&0x3F]
}
