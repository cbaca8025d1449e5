package cartridge

// UxROM (mappers 2 and 94) switches a single 16KB PRG bank at $8000-$BFFF on
// any write to $8000-$FFFF; $C000-$FFFF is fixed to the last bank. CHR is a
// single fixed 8KB bank, usually CHR RAM.
type uxromPRG struct {
	prgMemory
}

type uxromCHR struct {
	chrMemory
}

func newUxROM(prgROM, chrROM []uint8, h Header) (CPUBus, PPUBus) {
	prg := &uxromPRG{prgMemory: newPRGMemory(prgROM, 0x4000, false)}
	prg.rom.setWindow(1, prg.rom.banks()-1)
	chr := &uxromCHR{chrMemory: newCHRMemory(chrROM, 0x2000, h.Mirror)}
	return prg, chr
}

func (m *uxromPRG) Write(address uint16, value uint8, cycles uint64) {
	if address >= 0x8000 {
		m.rom.setWindow(0, int(value))
	}
}

func (m *uxromCHR) CPUWrite(address uint16, value uint8, cycles uint64) {
	// No CHR banking on UxROM
}
