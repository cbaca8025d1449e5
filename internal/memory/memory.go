// Package memory implements the CPU-side memory map (MMU) for the NES.
package memory

// PPUInterface is the PPU register window at $2000-$3FFF.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the APU register window.
type APUInterface interface {
	ReadStatus() uint8
	WriteRegister(address uint16, value uint8)
}

// InputInterface is the controller port pair at $4016/$4017.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the cartridge CPU bus at $4020-$FFFF. Writes carry
// the current CPU cycle for mappers whose behavior depends on write timing.
type CartridgeInterface interface {
	CPURead(address uint16) uint8
	CPUWrite(address uint16, value uint8, cycles uint64)
}

// Memory dispatches every CPU bus access to its target. Exactly one byte is
// transferred per call.
type Memory struct {
	// Internal RAM (2KB, mirrored through $1FFF)
	ram [0x800]uint8

	ppu   PPUInterface
	apu   APUInterface
	input InputInterface
	cart  CartridgeInterface

	// dmaCallback fires on writes to $4014 (OAM DMA)
	dmaCallback func(page uint8)

	// cycleSource supplies the current CPU cycle for cartridge writes
	cycleSource func() uint64

	// Last value driven onto the bus; unmapped reads return it
	openBusValue uint8
}

// New creates the MMU. The cartridge is attached later with SetCartridge.
func New(ppu PPUInterface, apu APUInterface, input InputInterface) *Memory {
	return &Memory{
		ppu:   ppu,
		apu:   apu,
		input: input,
	}
}

// SetCartridge attaches the cartridge CPU bus.
func (m *Memory) SetCartridge(cart CartridgeInterface) {
	m.cart = cart
}

// SetDMACallback registers the handler for $4014 writes.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// SetCycleSource registers the provider of the current CPU cycle count.
func (m *Memory) SetCycleSource(source func() uint64) {
	m.cycleSource = source
}

// Read reads one byte from the CPU address space.
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		// PPU registers, mirrored every 8 bytes
		value = m.ppu.ReadRegister(0x2000 + address&0x0007)

	case address < 0x4020:
		switch address {
		case 0x4015:
			value = m.apu.ReadStatus()
		case 0x4016, 0x4017:
			value = m.input.Read(address)
		default:
			// Write-only and disabled test registers read as open bus
			value = m.openBusValue
		}

	case address < 0x6000:
		// Cartridge expansion area; nothing maps it here, reads float
		value = m.openBusValue

	default:
		// $6000-$FFFF: cartridge PRG RAM and PRG ROM
		if m.cart != nil {
			value = m.cart.CPURead(address)
		} else {
			value = m.openBusValue
		}
	}

	m.openBusValue = value
	return value
}

// Write writes one byte to the CPU address space.
func (m *Memory) Write(address uint16, value uint8) {
	m.openBusValue = value

	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppu.WriteRegister(0x2000+address&0x0007, value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			}
		case address == 0x4016:
			m.input.Write(address, value)
		case address <= 0x4013 || address == 0x4015 || address == 0x4017:
			m.apu.WriteRegister(address, value)
		default:
			// $4018-$401F: disabled test registers
		}

	default:
		if m.cart != nil {
			m.cart.CPUWrite(address, value, m.cycles())
		}
	}
}

func (m *Memory) cycles() uint64 {
	if m.cycleSource == nil {
		return 0
	}
	return m.cycleSource()
}

// Peek reads without the open-bus side effect, for debug dumps and traces.
func (m *Memory) Peek(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]
	case address >= 0x4020 && m.cart != nil:
		return m.cart.CPURead(address)
	default:
		return m.openBusValue
	}
}
