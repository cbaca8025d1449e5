package cartridge

// MMC3 (mapper 4) splits PRG into four 8KB windows and CHR into a mix of two
// 2KB and four 1KB windows. A bank-select register at $8000 (even) latches
// which of eight bank targets the next write to $8001 (odd) updates, plus the
// PRG and CHR arrangement bits. $A000 (even) controls mirroring. The IRQ
// registers at $C000-$FFFF drive a scanline counter clocked by rising edges
// of PPU address line A12.
type mmc3PRG struct {
	prgMemory
	bankSelect uint8
	// true: $C000 swappable, $8000 fixed to the second-to-last bank
	highSwappable bool
	r6, r7        uint8
}

type mmc3CHR struct {
	chrMemory
	bankSelect uint8
	// true: 2KB pairs at $1000-$1FFF, 1KB banks at $0000-$0FFF
	high2KB bool
	regs    [6]uint8 // r0/r1: 2KB pairs, r2-r5: 1KB banks

	// Scanline IRQ state, clocked by A12 rising edges during rendering.
	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqFlag    bool
	lastA12    bool
}

func newMMC3(prgROM, chrROM []uint8, h Header) (CPUBus, PPUBus) {
	prg := &mmc3PRG{
		prgMemory: newPRGMemory(prgROM, 0x2000, true),
		r6:        0,
		r7:        1,
	}
	prg.updateWindows()

	chr := &mmc3CHR{
		chrMemory: newCHRMemory(chrROM, 0x400, h.Mirror),
		regs:      [6]uint8{0, 2, 4, 5, 6, 7},
	}
	chr.updateWindows()

	return prg, chr
}

func (m *mmc3PRG) Write(address uint16, value uint8, cycles uint64) {
	switch {
	case address < 0x8000:
		m.writeRAM(address, value)
	case address < 0xA000:
		if address&1 == 0 {
			m.bankSelect = value & 0x07
			m.highSwappable = value&0x40 != 0
		} else {
			switch m.bankSelect {
			case 6:
				m.r6 = value
			case 7:
				m.r7 = value
			}
		}
		m.updateWindows()
	default:
		// $A000-$FFFF: mirroring, RAM protect and IRQ registers live on the
		// CHR side; RAM write-protect is not enforced
	}
}

func (m *mmc3PRG) updateWindows() {
	last := m.rom.banks() - 1
	if m.highSwappable {
		m.rom.setWindow(0, last-1)
		m.rom.setWindow(2, int(m.r6))
	} else {
		m.rom.setWindow(0, int(m.r6))
		m.rom.setWindow(2, last-1)
	}
	m.rom.setWindow(1, int(m.r7))
	m.rom.setWindow(3, last)
}

// Read observes A12 for the IRQ counter before fetching pattern data.
func (m *mmc3CHR) Read(address uint16) uint8 {
	if address < 0x2000 {
		m.watchA12(address)
	}
	return m.chrMemory.Read(address)
}

func (m *mmc3CHR) Write(address uint16, value uint8, cycles uint64) {
	if address < 0x2000 {
		m.watchA12(address)
	}
	m.chrMemory.Write(address, value, cycles)
}

// watchA12 clocks the scanline counter on each rising edge of PPU A12. With
// the standard $0000/$1000 pattern table split this fires once per visible
// scanline while rendering.
func (m *mmc3CHR) watchA12(address uint16) {
	a12 := address&0x1000 != 0
	if a12 && !m.lastA12 {
		if m.irqCounter == 0 || m.irqReload {
			m.irqCounter = m.irqLatch
			m.irqReload = false
		} else {
			m.irqCounter--
		}
		if m.irqCounter == 0 && m.irqEnabled {
			m.irqFlag = true
		}
	}
	m.lastA12 = a12
}

func (m *mmc3CHR) CPUWrite(address uint16, value uint8, cycles uint64) {
	switch {
	case address < 0xA000:
		if address&1 == 0 {
			m.bankSelect = value & 0x07
			m.high2KB = value&0x80 != 0
		} else {
			switch m.bankSelect {
			case 0, 1:
				// 2KB targets ignore the low bank bit
				m.regs[m.bankSelect] = value &^ 1
			case 2, 3, 4, 5:
				m.regs[m.bankSelect] = value
			}
		}
		m.updateWindows()
	case address < 0xC000:
		if address&1 == 0 && m.vram.mode != MirrorFourScreen {
			if value&1 == 0 {
				m.vram.mode = MirrorVertical
			} else {
				m.vram.mode = MirrorHorizontal
			}
		}
	case address < 0xE000:
		if address&1 == 0 {
			m.irqLatch = value
		} else {
			m.irqReload = true
			m.irqCounter = 0
		}
	default:
		if address&1 == 0 {
			m.irqEnabled = false
			m.irqFlag = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3CHR) updateWindows() {
	pair0 := int(m.regs[0])
	pair1 := int(m.regs[1])
	if m.high2KB {
		m.chr.setWindow(0, int(m.regs[2]))
		m.chr.setWindow(1, int(m.regs[3]))
		m.chr.setWindow(2, int(m.regs[4]))
		m.chr.setWindow(3, int(m.regs[5]))
		m.chr.setWindow(4, pair0)
		m.chr.setWindow(5, pair0+1)
		m.chr.setWindow(6, pair1)
		m.chr.setWindow(7, pair1+1)
	} else {
		m.chr.setWindow(0, pair0)
		m.chr.setWindow(1, pair0+1)
		m.chr.setWindow(2, pair1)
		m.chr.setWindow(3, pair1+1)
		m.chr.setWindow(4, int(m.regs[2]))
		m.chr.setWindow(5, int(m.regs[3]))
		m.chr.setWindow(6, int(m.regs[4]))
		m.chr.setWindow(7, int(m.regs[5]))
	}
}

// IRQPending reports whether the scanline counter is asserting the IRQ line.
func (m *mmc3CHR) IRQPending() bool {
	return m.irqFlag
}
