// Package bus wires the NES components together and drives the interlocked
// CPU/PPU clocks: every CPU cycle is preceded by three PPU dots, and NMI
// edges raised by the PPU are sampled by the CPU at instruction boundaries.
package bus

import (
	"io"

	"famigo/internal/apu"
	"famigo/internal/cartridge"
	"famigo/internal/cpu"
	"famigo/internal/input"
	"famigo/internal/memory"
	"famigo/internal/ppu"
)

// Bus connects all NES components together.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.State

	cart *cartridge.Cartridge

	// OAM DMA stall: remaining CPU cycles during which only the PPU runs
	dmaStall uint64
}

// New creates a console with no cartridge inserted.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewState(),
	}

	b.Memory = memory.New(b.PPU, b.APU, b.Input)
	b.CPU = cpu.New(b.Memory)

	b.PPU.SetNMICallback(b.CPU.TriggerNMI)
	b.Memory.SetDMACallback(b.startOAMDMA)
	b.Memory.SetCycleSource(b.CPU.Cycles)

	return b
}

// Load parses a ROM image and inserts the cartridge, then resets the
// console. Load is the only fallible entry point; after it succeeds,
// stepping never errors.
func (b *Bus) Load(r io.Reader) error {
	cart, err := cartridge.Load(r)
	if err != nil {
		return err
	}
	b.insert(cart)
	return nil
}

// LoadFile loads a .nes file or zip archive from disk.
func (b *Bus) LoadFile(path string) error {
	cart, err := cartridge.LoadFile(path)
	if err != nil {
		return err
	}
	b.insert(cart)
	return nil
}

func (b *Bus) insert(cart *cartridge.Cartridge) {
	b.cart = cart
	b.Memory.SetCartridge(cart)
	b.PPU.SetCartridge(cart)
	b.Reset()
}

// Cartridge returns the inserted cartridge, or nil.
func (b *Bus) Cartridge() *cartridge.Cartridge {
	return b.cart
}

// Reset resets every component to its power-on state.
func (b *Bus) Reset() {
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()
	b.CPU.Reset()
	b.dmaStall = 0
}

// Step advances the console by one CPU cycle: three PPU dots, then either a
// stalled DMA cycle or one CPU cycle, then the APU. Interrupt lines are
// re-sampled so the CPU sees them at its next instruction boundary.
func (b *Bus) Step() {
	b.PPU.Step()
	b.PPU.Step()
	b.PPU.Step()

	if b.dmaStall > 0 {
		b.dmaStall--
	} else {
		b.CPU.Step()
	}

	b.APU.Step()

	irq := b.APU.IRQPending()
	if b.cart != nil {
		irq = irq || b.cart.IRQPending()
	}
	b.CPU.SetIRQ(irq)
}

// StepFrame runs until the PPU reports the frame complete.
func (b *Bus) StepFrame() {
	for !b.PPU.FrameComplete() {
		b.Step()
	}
}

// FrameComplete reports whether a frame finished since the last call.
func (b *Bus) FrameComplete() bool {
	return b.PPU.FrameComplete()
}

// FrameBuffer returns the PPU's 256x240 packed-pixel output.
func (b *Bus) FrameBuffer() *[256 * 240]uint32 {
	return b.PPU.FrameBuffer()
}

// SetButton updates one button on controller 1 or 2.
func (b *Bus) SetButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// DumpPPU returns the PPU address space and OAM for debugging.
func (b *Bus) DumpPPU() (vram [0x4000]uint8, oam [0x100]uint8) {
	return b.PPU.DumpState()
}

// startOAMDMA services a $4014 write: 256 bytes are copied from CPU page
// (value << 8) into OAM while the CPU stalls for 513 cycles, 514 when the
// write lands on an odd CPU cycle.
func (b *Bus) startOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		b.PPU.WriteOAM(uint8(i), b.Memory.Read(base+i))
	}

	b.dmaStall += 513
	if b.CPU.Cycles()%2 == 1 {
		b.dmaStall++
	}
}
