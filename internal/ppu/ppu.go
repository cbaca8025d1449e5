// Package ppu implements the Picture Processing Unit (2C02) as a 341-dot by
// 262-scanline state machine: background fetch pipeline, sprite evaluation,
// pixel multiplexer, register interface and VBlank/NMI generation.
package ppu

// Cartridge is the PPU's view of the cartridge address bus: pattern tables
// at $0000-$1FFF and nametables at $2000-$3EFF. Palette RAM is owned by the
// PPU itself and never reaches the cartridge.
type Cartridge interface {
	PPURead(address uint16) uint8
	PPUWrite(address uint16, value uint8)
}

// spriteUnit holds one of the eight per-scanline sprite output units: the
// fetched pattern pair, the attribute latch and the X position.
type spriteUnit struct {
	patternLo uint8
	patternHi uint8
	attr      uint8
	x         uint8
	index     uint8 // original OAM index, for sprite-0 hit
}

// PPU represents the 2C02.
type PPU struct {
	// CPU-visible registers
	ctrl    uint8 // $2000 PPUCTRL
	mask    uint8 // $2001 PPUMASK
	oamAddr uint8 // $2003 OAMADDR

	// Status flags ($2002)
	vblank         bool
	sprite0Hit     bool
	spriteOverflow bool

	// Internal VRAM address registers
	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address (15 bits)
	x uint8  // fine X scroll (3 bits)
	w bool   // write toggle

	// $2007 read buffer
	readBuffer uint8

	// Register-port open bus: the last byte driven by the CPU
	openBus uint8

	// Memories
	cart       Cartridge
	oam        [256]uint8
	secondary  [32]uint8
	paletteRAM [32]uint8

	// Timing
	dot      int // 0-340
	scanline int // 0-261; 261 is the pre-render line
	frame    uint64
	oddFrame bool

	// Background pipeline
	ntByte       uint8
	atBits       uint8 // 2-bit palette for the fetched tile
	tileLo       uint8
	tileHi       uint8
	patternShift [2]uint16 // pattern plane shift registers
	attrShift    [2]uint8  // palette attribute shift registers
	attrLatch    [2]uint8  // reload bits feeding the attribute shifters

	// Sprite pipeline
	sprites     [8]spriteUnit
	spriteCount int

	// Output
	frameBuffer   [256 * 240]uint32
	frameComplete bool

	// Callbacks into the orchestrator
	nmiCallback func()
}

// New creates a PPU. The cartridge is attached with SetCartridge.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// SetCartridge attaches the cartridge PPU bus.
func (p *PPU) SetCartridge(cart Cartridge) {
	p.cart = cart
}

// SetNMICallback registers the handler invoked on NMI assertion.
func (p *PPU) SetNMICallback(callback func()) {
	p.nmiCallback = callback
}

// Reset returns the PPU to its power-on state.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.oamAddr = 0
	p.vblank = false
	p.sprite0Hit = false
	p.spriteOverflow = false
	p.v, p.t, p.x = 0, 0, 0
	p.w = false
	p.readBuffer = 0
	p.dot = 0
	p.scanline = 261
	p.frame = 0
	p.oddFrame = false
	p.spriteCount = 0
	p.frameComplete = false

	for i := range p.frameBuffer {
		p.frameBuffer[i] = paletteRGB(0x0F)
	}
	// Backdrop entries default to black
	for i := 0; i < 32; i += 4 {
		p.paletteRAM[i] = 0x0F
	}
}

// renderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) renderingEnabled() bool {
	return p.mask&0x18 != 0
}

// advance moves the dot/scanline counters one position, including the
// odd-frame skip of the pre-render line's last dot.
func (p *PPU) advance() {
	if p.renderingEnabled() && p.oddFrame && p.scanline == 261 && p.dot == 339 {
		p.dot = 0
		p.scanline = 0
		p.frame++
		p.oddFrame = !p.oddFrame
		return
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
		}
	}
}

// Step advances the PPU by one dot.
func (p *PPU) Step() {
	p.advance()

	visibleLine := p.scanline < 240
	preLine := p.scanline == 261

	if p.renderingEnabled() && (visibleLine || preLine) {
		// The shifters advance first; the pixel for this dot is sampled from
		// their post-shift state.
		p.backgroundCycle(preLine)
		if visibleLine && p.dot >= 1 && p.dot <= 256 {
			p.renderPixel()
		}
		p.spriteCycle(visibleLine)
	}

	// VBlank begins at dot 1 of scanline 241. The frame-complete latch is
	// raised here so the host can blit and poll input.
	if p.scanline == 241 && p.dot == 1 {
		p.vblank = true
		p.frameComplete = true
		if p.ctrl&0x80 != 0 && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	// The pre-render line clears the frame status flags at dot 1
	if preLine && p.dot == 1 {
		p.vblank = false
		p.sprite0Hit = false
		p.spriteOverflow = false
	}
}

// FrameComplete reports whether a frame finished since the last call and
// clears the latch.
func (p *PPU) FrameComplete() bool {
	done := p.frameComplete
	p.frameComplete = false
	return done
}

// FrameBuffer returns the 256x240 packed-pixel output of the last frame.
func (p *PPU) FrameBuffer() *[256 * 240]uint32 {
	return &p.frameBuffer
}

// Frame returns the frame counter.
func (p *PPU) Frame() uint64 {
	return p.frame
}

// Scanline returns the current scanline (0-261).
func (p *PPU) Scanline() int {
	return p.scanline
}

// Dot returns the current dot (0-340).
func (p *PPU) Dot() int {
	return p.dot
}

// WriteOAM stores one byte into OAM, used by the $4014 DMA engine.
func (p *PPU) WriteOAM(address uint8, value uint8) {
	p.oam[address] = value
}

// DumpState copies the full PPU address space and OAM for debugging: pattern
// tables and nametables are read through the cartridge without clocking
// mapper address watchers, palette RAM is the PPU's own.
func (p *PPU) DumpState() (vram [0x4000]uint8, oam [0x100]uint8) {
	type peeker interface {
		PPUPeek(address uint16) uint8
	}

	read := func(addr uint16) uint8 {
		if p.cart == nil {
			return 0
		}
		if pk, ok := p.cart.(peeker); ok {
			return pk.PPUPeek(addr)
		}
		return p.cart.PPURead(addr)
	}

	for addr := 0; addr < 0x3F00; addr++ {
		vram[addr] = read(uint16(addr))
	}
	for addr := 0x3F00; addr < 0x4000; addr++ {
		vram[addr] = p.paletteRead(uint16(addr))
	}
	copy(oam[:], p.oam[:])
	return vram, oam
}

// busRead reads the PPU address space below the palette window.
func (p *PPU) busRead(address uint16) uint8 {
	if p.cart == nil {
		return 0
	}
	return p.cart.PPURead(address & 0x3FFF)
}

func (p *PPU) busWrite(address uint16, value uint8) {
	if p.cart != nil {
		p.cart.PPUWrite(address&0x3FFF, value)
	}
}
