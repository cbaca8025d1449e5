package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busAccess records one bus transaction for timing assertions.
type busAccess struct {
	write bool
	addr  uint16
	value uint8
}

// testBus is a flat 64KB memory that logs every access.
type testBus struct {
	mem      [0x10000]uint8
	accesses []busAccess
}

func (b *testBus) Read(address uint16) uint8 {
	v := b.mem[address]
	b.accesses = append(b.accesses, busAccess{addr: address, value: v})
	return v
}

func (b *testBus) Write(address uint16, value uint8) {
	b.mem[address] = value
	b.accesses = append(b.accesses, busAccess{write: true, addr: address, value: value})
}

func (b *testBus) writes() []busAccess {
	var out []busAccess
	for _, a := range b.accesses {
		if a.write {
			out = append(out, a)
		}
	}
	return out
}

// newTestCPU builds a CPU with the program at $8000 and the reset vector
// pointing at it.
func newTestCPU(t *testing.T, program ...uint8) (*CPU, *testBus) {
	t.Helper()
	bus := &testBus{}
	copy(bus.mem[0x8000:], program)
	bus.mem[resetVector] = 0x00
	bus.mem[resetVector+1] = 0x80
	c := New(bus)
	c.Reset()
	bus.accesses = nil
	return c, bus
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU(t)
	assert.Equal(t, uint16(0x8000), c.PC)
	assert.Equal(t, uint8(0xFD), c.SP)
	assert.Equal(t, uint8(0), c.A)
	assert.True(t, c.I)
	assert.Equal(t, uint64(7), c.Cycles())
	assert.Equal(t, uint8(0x24), c.status(false)&0x2F)
}

func TestImmediateLoads(t *testing.T) {
	c, _ := newTestCPU(t, 0xA9, 0x00, 0xA2, 0x80, 0xA0, 0x7F)

	assert.Equal(t, uint64(2), c.StepInstruction())
	assert.True(t, c.Z)
	assert.False(t, c.N)

	assert.Equal(t, uint64(2), c.StepInstruction())
	assert.Equal(t, uint8(0x80), c.X)
	assert.True(t, c.N)

	assert.Equal(t, uint64(2), c.StepInstruction())
	assert.Equal(t, uint8(0x7F), c.Y)
	assert.False(t, c.N)
}

func TestAddressingModeCycleCounts(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   func(*CPU, *testBus)
		cycles  uint64
	}{
		{"LDA zp", []uint8{0xA5, 0x10}, nil, 3},
		{"LDA zp,X", []uint8{0xB5, 0x10}, nil, 4},
		{"LDA abs", []uint8{0xAD, 0x00, 0x02}, nil, 4},
		{"LDA abs,X same page", []uint8{0xBD, 0x00, 0x02},
			func(c *CPU, b *testBus) { c.X = 0x01 }, 4},
		{"LDA abs,X page cross", []uint8{0xBD, 0xFF, 0x02},
			func(c *CPU, b *testBus) { c.X = 0x01 }, 5},
		{"STA abs,X never saves the cycle", []uint8{0x9D, 0x00, 0x02},
			func(c *CPU, b *testBus) { c.X = 0x01 }, 5},
		{"INC abs,X", []uint8{0xFE, 0x00, 0x02},
			func(c *CPU, b *testBus) { c.X = 0x01 }, 7},
		{"LDA (zp,X)", []uint8{0xA1, 0x20},
			func(c *CPU, b *testBus) { c.X = 0x04; b.mem[0x24] = 0x00; b.mem[0x25] = 0x02 }, 6},
		{"LDA (zp),Y same page", []uint8{0xB1, 0x20},
			func(c *CPU, b *testBus) { c.Y = 0x01; b.mem[0x20] = 0x00; b.mem[0x21] = 0x02 }, 5},
		{"LDA (zp),Y page cross", []uint8{0xB1, 0x20},
			func(c *CPU, b *testBus) { c.Y = 0x01; b.mem[0x20] = 0xFF; b.mem[0x21] = 0x02 }, 6},
		{"STA (zp),Y always 6", []uint8{0x91, 0x20},
			func(c *CPU, b *testBus) { c.Y = 0x01; b.mem[0x20] = 0x00; b.mem[0x21] = 0x02 }, 6},
		{"JMP abs", []uint8{0x4C, 0x00, 0x90}, nil, 3},
		{"JMP ind", []uint8{0x6C, 0x00, 0x02}, nil, 5},
		{"JSR", []uint8{0x20, 0x00, 0x90}, nil, 6},
		{"PHA", []uint8{0x48}, nil, 3},
		{"PLA", []uint8{0x68}, nil, 4},
		{"NOP", []uint8{0xEA}, nil, 2},
		{"BRK", []uint8{0x00}, nil, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestCPU(t, tt.program...)
			if tt.setup != nil {
				tt.setup(c, bus)
			}
			assert.Equal(t, tt.cycles, c.StepInstruction())
		})
	}
}

func TestBusTransactionsMatchCycles(t *testing.T) {
	// Every cycle is one bus access except the documented internal cycles.
	c, bus := newTestCPU(t, 0xBD, 0xFF, 0x02) // LDA $02FF,X with page cross
	c.X = 0x01
	cycles := c.StepInstruction()
	assert.Equal(t, uint64(5), cycles)
	assert.Len(t, bus.accesses, 5)
}

func TestPageCrossDummyRead(t *testing.T) {
	// The wrong-high-byte read must be visible on the bus.
	c, bus := newTestCPU(t, 0xBD, 0xFF, 0x02)
	c.X = 0x01
	c.StepInstruction()
	// accesses: opcode, lo, hi, dummy $0200, real $0300
	require.Len(t, bus.accesses, 5)
	assert.Equal(t, uint16(0x0200), bus.accesses[3].addr)
	assert.Equal(t, uint16(0x0300), bus.accesses[4].addr)
}

func TestRMWWritesTwice(t *testing.T) {
	c, bus := newTestCPU(t, 0xE6, 0x10) // INC $10
	bus.mem[0x10] = 0x41
	c.StepInstruction()

	writes := bus.writes()
	require.Len(t, writes, 2)
	assert.Equal(t, busAccess{write: true, addr: 0x10, value: 0x41}, writes[0])
	assert.Equal(t, busAccess{write: true, addr: 0x10, value: 0x42}, writes[1])
	assert.Equal(t, uint8(0x42), bus.mem[0x10])
}

func TestBranchCycles(t *testing.T) {
	// BNE not taken: 2 cycles
	c, _ := newTestCPU(t, 0xD0, 0x10)
	c.Z = true
	assert.Equal(t, uint64(2), c.StepInstruction())

	// Taken, same page: 3 cycles
	c, _ = newTestCPU(t, 0xD0, 0x10)
	c.Z = false
	assert.Equal(t, uint64(3), c.StepInstruction())
	assert.Equal(t, uint16(0x8012), c.PC)

	// Taken, crossing into the previous page: 4 cycles
	c, _ = newTestCPU(t, 0xD0, 0xF0)
	c.Z = false
	assert.Equal(t, uint64(4), c.StepInstruction())
	assert.Equal(t, uint16(0x7FF2), c.PC)
}

func TestJMPIndirectPageBug(t *testing.T) {
	c, bus := newTestCPU(t, 0x6C, 0xFF, 0x02)
	bus.mem[0x02FF] = 0x34
	bus.mem[0x0300] = 0x99 // must not be used
	bus.mem[0x0200] = 0x12 // wraps within the page
	c.StepInstruction()
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestADCFlagMatrix(t *testing.T) {
	tests := []struct {
		a, operand uint8
		carryIn    bool
		result     uint8
		c, v, n, z bool
	}{
		{0x01, 0x01, false, 0x02, false, false, false, false},
		{0x50, 0x50, false, 0xA0, false, true, true, false},
		{0xFF, 0x01, false, 0x00, true, false, false, true},
		{0x80, 0x80, false, 0x00, true, true, false, true},
		{0x7F, 0x00, true, 0x80, false, true, true, false},
	}

	for _, tt := range tests {
		c, _ := newTestCPU(t, 0x69, tt.operand)
		c.A = tt.a
		c.C = tt.carryIn
		c.StepInstruction()
		assert.Equal(t, tt.result, c.A, "A for %02X+%02X", tt.a, tt.operand)
		assert.Equal(t, tt.c, c.C, "C for %02X+%02X", tt.a, tt.operand)
		assert.Equal(t, tt.v, c.V, "V for %02X+%02X", tt.a, tt.operand)
		assert.Equal(t, tt.n, c.N, "N for %02X+%02X", tt.a, tt.operand)
		assert.Equal(t, tt.z, c.Z, "Z for %02X+%02X", tt.a, tt.operand)
	}
}

func TestSBCUsesBorrow(t *testing.T) {
	c, _ := newTestCPU(t, 0xE9, 0x01) // SBC #$01
	c.A = 0x03
	c.C = true
	c.StepInstruction()
	assert.Equal(t, uint8(0x02), c.A)
	assert.True(t, c.C)

	c, _ = newTestCPU(t, 0xE9, 0x05)
	c.A = 0x03
	c.C = true
	c.StepInstruction()
	assert.Equal(t, uint8(0xFE), c.A)
	assert.False(t, c.C)
}

func TestStackRoundTrip(t *testing.T) {
	c, bus := newTestCPU(t, 0x48, 0x68) // PHA, PLA
	c.A = 0x5A
	c.StepInstruction()
	assert.Equal(t, uint8(0x5A), bus.mem[0x01FD])
	assert.Equal(t, uint8(0xFC), c.SP)

	c.A = 0x00
	c.StepInstruction()
	assert.Equal(t, uint8(0x5A), c.A)
	assert.Equal(t, uint8(0xFD), c.SP)
}

func TestPHPSetsBreakBitInCopy(t *testing.T) {
	c, bus := newTestCPU(t, 0x08) // PHP
	c.StepInstruction()
	pushed := bus.mem[0x01FD]
	assert.Equal(t, uint8(0x30), pushed&0x30, "pushed copy carries bits 5 and 4")
}

func TestJSRRTS(t *testing.T) {
	c, _ := newTestCPU(t, 0x20, 0x00, 0x90) // JSR $9000
	c.StepInstruction()
	assert.Equal(t, uint16(0x9000), c.PC)

	// RTS at the subroutine returns past the JSR operand
	c.bus.(*testBus).mem[0x9000] = 0x60
	c.StepInstruction()
	assert.Equal(t, uint16(0x8003), c.PC)
}

func TestBRKAndRTI(t *testing.T) {
	c, bus := newTestCPU(t, 0x00, 0xFF) // BRK (+ padding byte)
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90
	c.StepInstruction()

	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.I)
	// Pushed P copy has B set
	assert.Equal(t, uint8(0x10), bus.mem[0x01FB]&0x10)

	bus.mem[0x9000] = 0x40 // RTI
	c.StepInstruction()
	assert.Equal(t, uint16(0x8002), c.PC, "BRK returns past its padding byte")
}

func TestNMIServicedAtBoundary(t *testing.T) {
	c, bus := newTestCPU(t, 0xEA, 0xEA)
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0x95
	c.StepInstruction()
	c.TriggerNMI()
	cycles := c.StepInstruction()
	assert.Equal(t, uint64(7), cycles)
	assert.Equal(t, uint16(0x9500), c.PC)
	// Pushed status copy must have B clear
	assert.Equal(t, uint8(0x00), bus.mem[0x01FB]&0x10)
}

func TestIRQMaskedByInterruptDisable(t *testing.T) {
	c, bus := newTestCPU(t, 0xEA, 0xEA)
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x96

	c.SetIRQ(true)
	c.StepInstruction() // I is set after reset, IRQ held off
	assert.Equal(t, uint16(0x8001), c.PC)

	c.I = false
	c.StepInstruction()
	assert.Equal(t, uint16(0x9600), c.PC)
}

func TestNMIHijacksBRK(t *testing.T) {
	c, bus := newTestCPU(t, 0x00, 0xFF)
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0x95

	c.Step() // fetch BRK
	c.TriggerNMI()
	for !c.InstructionBoundary() {
		c.Step()
	}
	assert.Equal(t, uint16(0x9500), c.PC, "BRK redirected to the NMI vector")
}

func TestUndocumentedOpcodes(t *testing.T) {
	t.Run("LAX loads A and X", func(t *testing.T) {
		c, bus := newTestCPU(t, 0xA7, 0x10)
		bus.mem[0x10] = 0xC3
		c.StepInstruction()
		assert.Equal(t, uint8(0xC3), c.A)
		assert.Equal(t, uint8(0xC3), c.X)
		assert.True(t, c.N)
	})

	t.Run("SAX stores A AND X", func(t *testing.T) {
		c, bus := newTestCPU(t, 0x87, 0x10)
		c.A = 0xF0
		c.X = 0x3C
		c.StepInstruction()
		assert.Equal(t, uint8(0x30), bus.mem[0x10])
	})

	t.Run("DCP decrements then compares", func(t *testing.T) {
		c, bus := newTestCPU(t, 0xC7, 0x10)
		bus.mem[0x10] = 0x41
		c.A = 0x40
		c.StepInstruction()
		assert.Equal(t, uint8(0x40), bus.mem[0x10])
		assert.True(t, c.Z)
		assert.True(t, c.C)
	})

	t.Run("ISC increments then subtracts", func(t *testing.T) {
		c, bus := newTestCPU(t, 0xE7, 0x10)
		bus.mem[0x10] = 0x01
		c.A = 0x05
		c.C = true
		c.StepInstruction()
		assert.Equal(t, uint8(0x02), bus.mem[0x10])
		assert.Equal(t, uint8(0x03), c.A)
	})

	t.Run("SLO shifts then ORs", func(t *testing.T) {
		c, bus := newTestCPU(t, 0x07, 0x10)
		bus.mem[0x10] = 0x81
		c.A = 0x01
		c.StepInstruction()
		assert.Equal(t, uint8(0x02), bus.mem[0x10])
		assert.Equal(t, uint8(0x03), c.A)
		assert.True(t, c.C)
	})

	t.Run("AXS sets X to A&X minus operand", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xCB, 0x02)
		c.A = 0x0F
		c.X = 0x07
		c.StepInstruction()
		assert.Equal(t, uint8(0x05), c.X)
		assert.True(t, c.C)
	})

	t.Run("undocumented NOPs consume their operand", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x04, 0x10) // NOP zp
		assert.Equal(t, uint64(3), c.StepInstruction())
		assert.Equal(t, uint16(0x8002), c.PC)

		c, _ = newTestCPU(t, 0x1C, 0xFF, 0x02) // NOP abs,X with page cross
		c.X = 1
		assert.Equal(t, uint64(5), c.StepInstruction())
	})

	t.Run("JAM halts the CPU", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x02, 0xA9, 0x42)
		c.StepInstruction()
		pc := c.PC
		for i := 0; i < 10; i++ {
			c.Step()
		}
		assert.Equal(t, pc, c.PC, "a jammed CPU makes no progress")
		assert.Equal(t, uint8(0x00), c.A)
	})
}

func TestOpcodeTableComplete(t *testing.T) {
	for op := 0; op < 256; op++ {
		e := &opcodeTable[op]
		assert.NotEmpty(t, e.name, "opcode %02X has no entry", op)
		assert.NotZero(t, e.cycles, "opcode %02X has no cycle count", op)
	}
}

func TestAccumulatorShifts(t *testing.T) {
	c, _ := newTestCPU(t, 0x0A) // ASL A
	c.A = 0x81
	assert.Equal(t, uint64(2), c.StepInstruction())
	assert.Equal(t, uint8(0x02), c.A)
	assert.True(t, c.C)

	c, _ = newTestCPU(t, 0x6A) // ROR A
	c.A = 0x01
	c.C = true
	c.StepInstruction()
	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.C)
	assert.True(t, c.N)
}

func TestZeroPageIndexedWraps(t *testing.T) {
	c, bus := newTestCPU(t, 0xB5, 0xF0) // LDA $F0,X
	c.X = 0x20
	bus.mem[0x10] = 0x77 // $F0+$20 wraps to $10
	c.StepInstruction()
	assert.Equal(t, uint8(0x77), c.A)
}

// TestCountdownLoop runs a small real program end to end: multiply 10 by 3
// through repeated addition.
func TestCountdownLoop(t *testing.T) {
	program := []uint8{
		0xA2, 0x0A, // LDX #10
		0x8E, 0x00, 0x00, // STX $0000
		0xA2, 0x03, // LDX #3
		0x8E, 0x01, 0x00, // STX $0001
		0xAC, 0x00, 0x00, // LDY $0000
		0xA9, 0x00, // LDA #0
		0x18,             // CLC
		0x6D, 0x01, 0x00, // ADC $0001
		0x88,       // DEY
		0xD0, 0xFA, // BNE -6
		0x8D, 0x02, 0x00, // STA $0002
	}
	c, bus := newTestCPU(t, program...)
	for i := 0; i < 200; i++ {
		c.StepInstruction()
		if c.PC >= 0x8000+uint16(len(program)) {
			break
		}
	}
	assert.Equal(t, uint8(30), bus.mem[0x0002])
	assert.Equal(t, uint8(30), c.A)
	assert.Equal(t, uint8(0), c.Y)
}
