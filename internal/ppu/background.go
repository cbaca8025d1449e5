package ppu

// Background fetch pipeline. Over a rendering scanline the PPU performs
// 8-dot fetch groups (nametable, attribute, pattern low, pattern high),
// shifting the pattern and attribute registers each dot and reloading them
// at dots 9, 17, ..., 257 and during the 321-336 prefetch.

func (p *PPU) backgroundCycle(preLine bool) {
	if (p.dot >= 2 && p.dot <= 257) || (p.dot >= 322 && p.dot <= 337) {
		p.shiftBackground()
	}

	if (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336) {
		switch (p.dot - 1) % 8 {
		case 0:
			p.reloadShifters()
			p.ntByte = p.busRead(0x2000 | p.v&0x0FFF)
		case 2:
			p.fetchAttribute()
		case 4:
			p.tileLo = p.busRead(p.tileAddress())
		case 6:
			p.tileHi = p.busRead(p.tileAddress() + 8)
		case 7:
			p.incrementX()
		}
	}

	if p.dot == 256 {
		p.incrementY()
	}
	if p.dot == 257 {
		p.reloadShifters()
		p.copyX()
	}
	if p.dot == 337 || p.dot == 339 {
		// Unused nametable fetches at the end of the line
		p.busRead(0x2000 | p.v&0x0FFF)
	}
	if preLine && p.dot >= 280 && p.dot <= 304 {
		p.copyY()
	}
}

// tileAddress computes the pattern table address of the current tile row
// from the fetched nametable byte and fine Y.
func (p *PPU) tileAddress() uint16 {
	base := uint16(0)
	if p.ctrl&0x10 != 0 {
		base = 0x1000
	}
	fineY := (p.v >> 12) & 0x7
	return base + uint16(p.ntByte)*16 + fineY
}

// fetchAttribute reads the attribute byte for the tile at v and extracts the
// 2-bit palette index of its quadrant.
func (p *PPU) fetchAttribute() {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	attr := p.busRead(addr)
	if p.v&0x0040 != 0 { // coarse Y bit 1
		attr >>= 4
	}
	if p.v&0x0002 != 0 { // coarse X bit 1
		attr >>= 2
	}
	p.atBits = attr & 0x3
}

func (p *PPU) shiftBackground() {
	p.patternShift[0] <<= 1
	p.patternShift[1] <<= 1
	p.attrShift[0] = p.attrShift[0]<<1 | p.attrLatch[0]
	p.attrShift[1] = p.attrShift[1]<<1 | p.attrLatch[1]
}

// reloadShifters moves the fetched tile into the low byte of the pattern
// shifters and latches its palette bits for the attribute shifters.
func (p *PPU) reloadShifters() {
	p.patternShift[0] = p.patternShift[0]&0xFF00 | uint16(p.tileLo)
	p.patternShift[1] = p.patternShift[1]&0xFF00 | uint16(p.tileHi)
	p.attrLatch[0] = p.atBits & 1
	p.attrLatch[1] = p.atBits >> 1
}

// Loopy VRAM address helpers.

// incrementX steps coarse X, wrapping into the adjacent horizontal nametable.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY steps fine Y, rolling over into coarse Y and the vertical
// nametable at row 29.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &^= 0x7000
		y := (p.v & 0x03E0) >> 5
		switch y {
		case 29:
			y = 0
			p.v ^= 0x0800
		case 31:
			y = 0
		default:
			y++
		}
		p.v = p.v&^0x03E0 | y<<5
	}
}

// copyX copies the horizontal bits from t to v (coarse X and nametable X).
func (p *PPU) copyX() {
	p.v = p.v&0xFBE0 | p.t&0x041F
}

// copyY copies the vertical bits from t to v (fine Y, coarse Y, nametable Y).
func (p *PPU) copyY() {
	p.v = p.v&0x841F | p.t&0x7BE0
}
