package cartridge

// CPUBus is the cartridge side of the CPU address bus. The MMU routes
// $4020-$FFFF here: PRG RAM at $6000-$7FFF and banked PRG ROM at $8000-$FFFF.
// The cycles argument carries the current CPU cycle for mappers whose
// behavior depends on write timing (MMC1 ignores back-to-back writes on
// consecutive cycles).
type CPUBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8, cycles uint64)
}

// PPUBus is the cartridge side of the PPU address bus. The PPU routes
// $0000-$1FFF (pattern tables) and $2000-$3EFF (nametables, via the mirroring
// resolver into cartridge-owned VRAM) here. Palette RAM ($3F00-$3FFF) is
// serviced by the PPU itself and never reaches this bus.
//
// CPUWrite is how mappers observe CPU writes to $8000-$FFFF that reconfigure
// CHR banking or nametable mirroring (MMC1, CNROM, MMC3).
type PPUBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8, cycles uint64)
	CPUWrite(address uint16, value uint8, cycles uint64)
}

// irqSource is implemented by mapper chips that generate interrupts (MMC3's
// scanline counter).
type irqSource interface {
	IRQPending() bool
}

// bankedROM is a byte array viewed through equal-sized switchable windows.
// It is the building block for both PRG ($8000-$FFFF) and CHR ($0000-$1FFF)
// banking: a mapper sets which bank each window exposes and reads index
// through the window table. Bank numbers are reduced modulo the total bank
// count so any register value yields an in-range ROM offset.
type bankedROM struct {
	data       []uint8
	windowSize int
	base       uint16 // bus address of window 0
	offsets    []int  // byte offset into data per window
}

func newBankedROM(data []uint8, windowSize int, base uint16, span int) *bankedROM {
	b := &bankedROM{
		data:       data,
		windowSize: windowSize,
		base:       base,
		offsets:    make([]int, span/windowSize),
	}
	for i := range b.offsets {
		b.setWindow(i, i)
	}
	return b
}

// banks returns the total number of banks of this chip's window size.
func (b *bankedROM) banks() int {
	return len(b.data) / b.windowSize
}

// setWindow points the given window at bank, reduced modulo the bank count.
func (b *bankedROM) setWindow(window, bank int) {
	n := b.banks()
	if n == 0 {
		return
	}
	bank %= n
	if bank < 0 {
		bank += n
	}
	b.offsets[window] = bank * b.windowSize
}

func (b *bankedROM) read(address uint16) uint8 {
	rel := int(address - b.base)
	return b.data[b.offsets[rel/b.windowSize]+rel%b.windowSize]
}

func (b *bankedROM) write(address uint16, value uint8) {
	rel := int(address - b.base)
	b.data[b.offsets[rel/b.windowSize]+rel%b.windowSize] = value
}

// nametableRAM is the cartridge-owned VRAM backing the four logical
// nametables. Only 2KB is used outside four-screen mode.
type nametableRAM struct {
	mode MirrorMode
	data [0x1000]uint8
}

func (n *nametableRAM) read(address uint16) uint8 {
	return n.data[ResolveMirroring(n.mode, address)]
}

func (n *nametableRAM) write(address uint16, value uint8) {
	n.data[ResolveMirroring(n.mode, address)] = value
}

// chrMemory is the PPU-side pattern table circuit shared by all mappers:
// banked CHR ROM or RAM at $0000-$1FFF plus the nametable VRAM at
// $2000-$3EFF. Mappers embed it and add their CPUWrite banking logic.
type chrMemory struct {
	chr      *bankedROM
	writable bool // CHR RAM variants accept writes
	vram     nametableRAM
}

func newCHRMemory(chrROM []uint8, windowSize int, mirror MirrorMode) chrMemory {
	writable := false
	if len(chrROM) == 0 {
		// CHR RAM: 8KB of writable pattern memory
		chrROM = make([]uint8, 0x2000)
		writable = true
	}
	c := chrMemory{
		chr:      newBankedROM(chrROM, windowSize, 0x0000, 0x2000),
		writable: writable,
	}
	c.vram.mode = mirror
	return c
}

func (c *chrMemory) Read(address uint16) uint8 {
	if address < 0x2000 {
		return c.chr.read(address)
	}
	return c.vram.read(address)
}

// Peek reads without mapper side effects; embedded by every CHR chip.
func (c *chrMemory) Peek(address uint16) uint8 {
	if address < 0x2000 {
		return c.chr.read(address)
	}
	return c.vram.read(address)
}

func (c *chrMemory) Write(address uint16, value uint8, cycles uint64) {
	if address < 0x2000 {
		if c.writable {
			c.chr.write(address, value)
		}
		return
	}
	c.vram.write(address, value)
}

// prgMemory is the CPU-side cartridge circuit shared by all mappers: banked
// PRG ROM at $8000-$FFFF plus optional 8KB PRG RAM at $6000-$7FFF.
type prgMemory struct {
	rom *bankedROM
	ram []uint8 // nil when the cartridge carries no PRG RAM
}

func newPRGMemory(prgROM []uint8, windowSize int, withRAM bool) prgMemory {
	p := prgMemory{rom: newBankedROM(prgROM, windowSize, 0x8000, 0x8000)}
	if withRAM {
		p.ram = make([]uint8, 0x2000)
	}
	return p
}

func (p *prgMemory) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		return p.rom.read(address)
	case address >= 0x6000 && p.ram != nil:
		return p.ram[address-0x6000]
	default:
		return 0
	}
}

// writeRAM stores into PRG RAM when the address falls in $6000-$7FFF.
// Write-protect bits (MMC1/MMC3) are not enforced.
func (p *prgMemory) writeRAM(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 && p.ram != nil {
		p.ram[address-0x6000] = value
	}
}
