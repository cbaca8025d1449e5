package cpu

// Addressing modes
type Mode int

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// opKind classifies an opcode for pipeline compilation: it decides the dummy
// reads, the page-cross penalty rule and the closing bus traffic.
type opKind uint8

const (
	kindRead opKind = iota
	kindWrite
	kindRMW
	kindImplied
	kindAccumulator
	kindBranch
	kindJmpAbs
	kindJmpInd
	kindJSR
	kindRTS
	kindRTI
	kindBRK
	kindPush
	kindPull
	kindJAM
)

// opcode is one slot of the static 256-entry instruction table.
type opcode struct {
	name   string
	mode   Mode
	kind   opKind
	cycles uint8 // canonical count, before page-cross/branch penalties

	exec   func(*CPU, uint8)        // read class: consume the operand
	store  func(*CPU, uint16) uint8 // write class: produce the byte to store
	modify func(*CPU, uint8) uint8  // RMW and accumulator class
	cond   func(*CPU) bool          // branch class
}

// Name returns the mnemonic of the given opcode byte.
func Name(op uint8) string {
	return opcodeTable[op].name
}

// CanonicalCycles returns the base cycle count of the given opcode byte.
func CanonicalCycles(op uint8) uint8 {
	return opcodeTable[op].cycles
}

func rd(name string, mode Mode, cycles uint8, exec func(*CPU, uint8)) opcode {
	return opcode{name: name, mode: mode, kind: kindRead, cycles: cycles, exec: exec}
}

func wr(name string, mode Mode, cycles uint8, store func(*CPU, uint16) uint8) opcode {
	return opcode{name: name, mode: mode, kind: kindWrite, cycles: cycles, store: store}
}

func rw(name string, mode Mode, cycles uint8, modify func(*CPU, uint8) uint8) opcode {
	return opcode{name: name, mode: mode, kind: kindRMW, cycles: cycles, modify: modify}
}

func im(name string, exec func(*CPU, uint8)) opcode {
	return opcode{name: name, mode: Implied, kind: kindImplied, cycles: 2, exec: exec}
}

func ac(name string, modify func(*CPU, uint8) uint8) opcode {
	return opcode{name: name, mode: Accumulator, kind: kindAccumulator, cycles: 2, modify: modify}
}

func br(name string, cond func(*CPU) bool) opcode {
	return opcode{name: name, mode: Relative, kind: kindBranch, cycles: 2, cond: cond}
}

func jam() opcode {
	return opcode{name: "JAM", mode: Implied, kind: kindJAM, cycles: 2}
}

// opcodeTable is the full 256-slot instruction table: the 151 documented
// opcodes plus the commonly emulated undocumented ones. Cycle counts follow
// the Mesen/nestest references.
var opcodeTable = [256]opcode{
	0x00: {name: "BRK", mode: Implied, kind: kindBRK, cycles: 7},
	0x01: rd("ORA", IndexedIndirect, 6, (*CPU).ora),
	0x02: jam(),
	0x03: rw("SLO", IndexedIndirect, 8, (*CPU).slo),
	0x04: rd("NOP", ZeroPage, 3, (*CPU).nopRead),
	0x05: rd("ORA", ZeroPage, 3, (*CPU).ora),
	0x06: rw("ASL", ZeroPage, 5, (*CPU).asl),
	0x07: rw("SLO", ZeroPage, 5, (*CPU).slo),
	0x08: {name: "PHP", mode: Implied, kind: kindPush, cycles: 3,
		store: func(c *CPU, _ uint16) uint8 { return c.status(true) }},
	0x09: rd("ORA", Immediate, 2, (*CPU).ora),
	0x0A: ac("ASL", (*CPU).asl),
	0x0B: rd("ANC", Immediate, 2, (*CPU).anc),
	0x0C: rd("NOP", Absolute, 4, (*CPU).nopRead),
	0x0D: rd("ORA", Absolute, 4, (*CPU).ora),
	0x0E: rw("ASL", Absolute, 6, (*CPU).asl),
	0x0F: rw("SLO", Absolute, 6, (*CPU).slo),

	0x10: br("BPL", func(c *CPU) bool { return !c.N }),
	0x11: rd("ORA", IndirectIndexed, 5, (*CPU).ora),
	0x12: jam(),
	0x13: rw("SLO", IndirectIndexed, 8, (*CPU).slo),
	0x14: rd("NOP", ZeroPageX, 4, (*CPU).nopRead),
	0x15: rd("ORA", ZeroPageX, 4, (*CPU).ora),
	0x16: rw("ASL", ZeroPageX, 6, (*CPU).asl),
	0x17: rw("SLO", ZeroPageX, 6, (*CPU).slo),
	0x18: im("CLC", func(c *CPU, _ uint8) { c.C = false }),
	0x19: rd("ORA", AbsoluteY, 4, (*CPU).ora),
	0x1A: im("NOP", (*CPU).nopRead),
	0x1B: rw("SLO", AbsoluteY, 7, (*CPU).slo),
	0x1C: rd("NOP", AbsoluteX, 4, (*CPU).nopRead),
	0x1D: rd("ORA", AbsoluteX, 4, (*CPU).ora),
	0x1E: rw("ASL", AbsoluteX, 7, (*CPU).asl),
	0x1F: rw("SLO", AbsoluteX, 7, (*CPU).slo),

	0x20: {name: "JSR", mode: Absolute, kind: kindJSR, cycles: 6},
	0x21: rd("AND", IndexedIndirect, 6, (*CPU).and),
	0x22: jam(),
	0x23: rw("RLA", IndexedIndirect, 8, (*CPU).rla),
	0x24: rd("BIT", ZeroPage, 3, (*CPU).bit),
	0x25: rd("AND", ZeroPage, 3, (*CPU).and),
	0x26: rw("ROL", ZeroPage, 5, (*CPU).rol),
	0x27: rw("RLA", ZeroPage, 5, (*CPU).rla),
	0x28: {name: "PLP", mode: Implied, kind: kindPull, cycles: 4,
		exec: func(c *CPU, v uint8) { c.setStatus(v) }},
	0x29: rd("AND", Immediate, 2, (*CPU).and),
	0x2A: ac("ROL", (*CPU).rol),
	0x2B: rd("ANC", Immediate, 2, (*CPU).anc),
	0x2C: rd("BIT", Absolute, 4, (*CPU).bit),
	0x2D: rd("AND", Absolute, 4, (*CPU).and),
	0x2E: rw("ROL", Absolute, 6, (*CPU).rol),
	0x2F: rw("RLA", Absolute, 6, (*CPU).rla),

	0x30: br("BMI", func(c *CPU) bool { return c.N }),
	0x31: rd("AND", IndirectIndexed, 5, (*CPU).and),
	0x32: jam(),
	0x33: rw("RLA", IndirectIndexed, 8, (*CPU).rla),
	0x34: rd("NOP", ZeroPageX, 4, (*CPU).nopRead),
	0x35: rd("AND", ZeroPageX, 4, (*CPU).and),
	0x36: rw("ROL", ZeroPageX, 6, (*CPU).rol),
	0x37: rw("RLA", ZeroPageX, 6, (*CPU).rla),
	0x38: im("SEC", func(c *CPU, _ uint8) { c.C = true }),
	0x39: rd("AND", AbsoluteY, 4, (*CPU).and),
	0x3A: im("NOP", (*CPU).nopRead),
	0x3B: rw("RLA", AbsoluteY, 7, (*CPU).rla),
	0x3C: rd("NOP", AbsoluteX, 4, (*CPU).nopRead),
	0x3D: rd("AND", AbsoluteX, 4, (*CPU).and),
	0x3E: rw("ROL", AbsoluteX, 7, (*CPU).rol),
	0x3F: rw("RLA", AbsoluteX, 7, (*CPU).rla),

	0x40: {name: "RTI", mode: Implied, kind: kindRTI, cycles: 6},
	0x41: rd("EOR", IndexedIndirect, 6, (*CPU).eor),
	0x42: jam(),
	0x43: rw("SRE", IndexedIndirect, 8, (*CPU).sre),
	0x44: rd("NOP", ZeroPage, 3, (*CPU).nopRead),
	0x45: rd("EOR", ZeroPage, 3, (*CPU).eor),
	0x46: rw("LSR", ZeroPage, 5, (*CPU).lsr),
	0x47: rw("SRE", ZeroPage, 5, (*CPU).sre),
	0x48: {name: "PHA", mode: Implied, kind: kindPush, cycles: 3,
		store: func(c *CPU, _ uint16) uint8 { return c.A }},
	0x49: rd("EOR", Immediate, 2, (*CPU).eor),
	0x4A: ac("LSR", (*CPU).lsr),
	0x4B: rd("ALR", Immediate, 2, (*CPU).alr),
	0x4C: {name: "JMP", mode: Absolute, kind: kindJmpAbs, cycles: 3},
	0x4D: rd("EOR", Absolute, 4, (*CPU).eor),
	0x4E: rw("LSR", Absolute, 6, (*CPU).lsr),
	0x4F: rw("SRE", Absolute, 6, (*CPU).sre),

	0x50: br("BVC", func(c *CPU) bool { return !c.V }),
	0x51: rd("EOR", IndirectIndexed, 5, (*CPU).eor),
	0x52: jam(),
	0x53: rw("SRE", IndirectIndexed, 8, (*CPU).sre),
	0x54: rd("NOP", ZeroPageX, 4, (*CPU).nopRead),
	0x55: rd("EOR", ZeroPageX, 4, (*CPU).eor),
	0x56: rw("LSR", ZeroPageX, 6, (*CPU).lsr),
	0x57: rw("SRE", ZeroPageX, 6, (*CPU).sre),
	0x58: im("CLI", func(c *CPU, _ uint8) { c.I = false }),
	0x59: rd("EOR", AbsoluteY, 4, (*CPU).eor),
	0x5A: im("NOP", (*CPU).nopRead),
	0x5B: rw("SRE", AbsoluteY, 7, (*CPU).sre),
	0x5C: rd("NOP", AbsoluteX, 4, (*CPU).nopRead),
	0x5D: rd("EOR", AbsoluteX, 4, (*CPU).eor),
	0x5E: rw("LSR", AbsoluteX, 7, (*CPU).lsr),
	0x5F: rw("SRE", AbsoluteX, 7, (*CPU).sre),

	0x60: {name: "RTS", mode: Implied, kind: kindRTS, cycles: 6},
	0x61: rd("ADC", IndexedIndirect, 6, (*CPU).adc),
	0x62: jam(),
	0x63: rw("RRA", IndexedIndirect, 8, (*CPU).rra),
	0x64: rd("NOP", ZeroPage, 3, (*CPU).nopRead),
	0x65: rd("ADC", ZeroPage, 3, (*CPU).adc),
	0x66: rw("ROR", ZeroPage, 5, (*CPU).ror),
	0x67: rw("RRA", ZeroPage, 5, (*CPU).rra),
	0x68: {name: "PLA", mode: Implied, kind: kindPull, cycles: 4,
		exec: func(c *CPU, v uint8) { c.A = v; c.setZN(v) }},
	0x69: rd("ADC", Immediate, 2, (*CPU).adc),
	0x6A: ac("ROR", (*CPU).ror),
	0x6B: rd("ARR", Immediate, 2, (*CPU).arr),
	0x6C: {name: "JMP", mode: Indirect, kind: kindJmpInd, cycles: 5},
	0x6D: rd("ADC", Absolute, 4, (*CPU).adc),
	0x6E: rw("ROR", Absolute, 6, (*CPU).ror),
	0x6F: rw("RRA", Absolute, 6, (*CPU).rra),

	0x70: br("BVS", func(c *CPU) bool { return c.V }),
	0x71: rd("ADC", IndirectIndexed, 5, (*CPU).adc),
	0x72: jam(),
	0x73: rw("RRA", IndirectIndexed, 8, (*CPU).rra),
	0x74: rd("NOP", ZeroPageX, 4, (*CPU).nopRead),
	0x75: rd("ADC", ZeroPageX, 4, (*CPU).adc),
	0x76: rw("ROR", ZeroPageX, 6, (*CPU).ror),
	0x77: rw("RRA", ZeroPageX, 6, (*CPU).rra),
	0x78: im("SEI", func(c *CPU, _ uint8) { c.I = true }),
	0x79: rd("ADC", AbsoluteY, 4, (*CPU).adc),
	0x7A: im("NOP", (*CPU).nopRead),
	0x7B: rw("RRA", AbsoluteY, 7, (*CPU).rra),
	0x7C: rd("NOP", AbsoluteX, 4, (*CPU).nopRead),
	0x7D: rd("ADC", AbsoluteX, 4, (*CPU).adc),
	0x7E: rw("ROR", AbsoluteX, 7, (*CPU).ror),
	0x7F: rw("RRA", AbsoluteX, 7, (*CPU).rra),

	0x80: rd("NOP", Immediate, 2, (*CPU).nopRead),
	0x81: wr("STA", IndexedIndirect, 6, (*CPU).sta),
	0x82: rd("NOP", Immediate, 2, (*CPU).nopRead),
	0x83: wr("SAX", IndexedIndirect, 6, (*CPU).sax),
	0x84: wr("STY", ZeroPage, 3, (*CPU).sty),
	0x85: wr("STA", ZeroPage, 3, (*CPU).sta),
	0x86: wr("STX", ZeroPage, 3, (*CPU).stx),
	0x87: wr("SAX", ZeroPage, 3, (*CPU).sax),
	0x88: im("DEY", func(c *CPU, _ uint8) { c.Y--; c.setZN(c.Y) }),
	0x89: rd("NOP", Immediate, 2, (*CPU).nopRead),
	0x8A: im("TXA", func(c *CPU, _ uint8) { c.A = c.X; c.setZN(c.A) }),
	0x8B: rd("XAA", Immediate, 2, (*CPU).xaa),
	0x8C: wr("STY", Absolute, 4, (*CPU).sty),
	0x8D: wr("STA", Absolute, 4, (*CPU).sta),
	0x8E: wr("STX", Absolute, 4, (*CPU).stx),
	0x8F: wr("SAX", Absolute, 4, (*CPU).sax),

	0x90: br("BCC", func(c *CPU) bool { return !c.C }),
	0x91: wr("STA", IndirectIndexed, 6, (*CPU).sta),
	0x92: jam(),
	0x93: wr("AHX", IndirectIndexed, 6, (*CPU).ahx),
	0x94: wr("STY", ZeroPageX, 4, (*CPU).sty),
	0x95: wr("STA", ZeroPageX, 4, (*CPU).sta),
	0x96: wr("STX", ZeroPageY, 4, (*CPU).stx),
	0x97: wr("SAX", ZeroPageY, 4, (*CPU).sax),
	0x98: im("TYA", func(c *CPU, _ uint8) { c.A = c.Y; c.setZN(c.A) }),
	0x99: wr("STA", AbsoluteY, 5, (*CPU).sta),
	0x9A: im("TXS", func(c *CPU, _ uint8) { c.SP = c.X }),
	0x9B: wr("TAS", AbsoluteY, 5, (*CPU).tas),
	0x9C: wr("SHY", AbsoluteX, 5, (*CPU).shy),
	0x9D: wr("STA", AbsoluteX, 5, (*CPU).sta),
	0x9E: wr("SHX", AbsoluteY, 5, (*CPU).shx),
	0x9F: wr("AHX", AbsoluteY, 5, (*CPU).ahx),

	0xA0: rd("LDY", Immediate, 2, (*CPU).ldy),
	0xA1: rd("LDA", IndexedIndirect, 6, (*CPU).lda),
	0xA2: rd("LDX", Immediate, 2, (*CPU).ldx),
	0xA3: rd("LAX", IndexedIndirect, 6, (*CPU).lax),
	0xA4: rd("LDY", ZeroPage, 3, (*CPU).ldy),
	0xA5: rd("LDA", ZeroPage, 3, (*CPU).lda),
	0xA6: rd("LDX", ZeroPage, 3, (*CPU).ldx),
	0xA7: rd("LAX", ZeroPage, 3, (*CPU).lax),
	0xA8: im("TAY", func(c *CPU, _ uint8) { c.Y = c.A; c.setZN(c.Y) }),
	0xA9: rd("LDA", Immediate, 2, (*CPU).lda),
	0xAA: im("TAX", func(c *CPU, _ uint8) { c.X = c.A; c.setZN(c.X) }),
	0xAB: rd("LAX", Immediate, 2, (*CPU).lax),
	0xAC: rd("LDY", Absolute, 4, (*CPU).ldy),
	0xAD: rd("LDA", Absolute, 4, (*CPU).lda),
	0xAE: rd("LDX", Absolute, 4, (*CPU).ldx),
	0xAF: rd("LAX", Absolute, 4, (*CPU).lax),

	0xB0: br("BCS", func(c *CPU) bool { return c.C }),
	0xB1: rd("LDA", IndirectIndexed, 5, (*CPU).lda),
	0xB2: jam(),
	0xB3: rd("LAX", IndirectIndexed, 5, (*CPU).lax),
	0xB4: rd("LDY", ZeroPageX, 4, (*CPU).ldy),
	0xB5: rd("LDA", ZeroPageX, 4, (*CPU).lda),
	0xB6: rd("LDX", ZeroPageY, 4, (*CPU).ldx),
	0xB7: rd("LAX", ZeroPageY, 4, (*CPU).lax),
	0xB8: im("CLV", func(c *CPU, _ uint8) { c.V = false }),
	0xB9: rd("LDA", AbsoluteY, 4, (*CPU).lda),
	0xBA: im("TSX", func(c *CPU, _ uint8) { c.X = c.SP; c.setZN(c.X) }),
	0xBB: rd("LAS", AbsoluteY, 4, (*CPU).las),
	0xBC: rd("LDY", AbsoluteX, 4, (*CPU).ldy),
	0xBD: rd("LDA", AbsoluteX, 4, (*CPU).lda),
	0xBE: rd("LDX", AbsoluteY, 4, (*CPU).ldx),
	0xBF: rd("LAX", AbsoluteY, 4, (*CPU).lax),

	0xC0: rd("CPY", Immediate, 2, (*CPU).cpy),
	0xC1: rd("CMP", IndexedIndirect, 6, (*CPU).cmp),
	0xC2: rd("NOP", Immediate, 2, (*CPU).nopRead),
	0xC3: rw("DCP", IndexedIndirect, 8, (*CPU).dcp),
	0xC4: rd("CPY", ZeroPage, 3, (*CPU).cpy),
	0xC5: rd("CMP", ZeroPage, 3, (*CPU).cmp),
	0xC6: rw("DEC", ZeroPage, 5, (*CPU).dec),
	0xC7: rw("DCP", ZeroPage, 5, (*CPU).dcp),
	0xC8: im("INY", func(c *CPU, _ uint8) { c.Y++; c.setZN(c.Y) }),
	0xC9: rd("CMP", Immediate, 2, (*CPU).cmp),
	0xCA: im("DEX", func(c *CPU, _ uint8) { c.X--; c.setZN(c.X) }),
	0xCB: rd("AXS", Immediate, 2, (*CPU).axs),
	0xCC: rd("CPY", Absolute, 4, (*CPU).cpy),
	0xCD: rd("CMP", Absolute, 4, (*CPU).cmp),
	0xCE: rw("DEC", Absolute, 6, (*CPU).dec),
	0xCF: rw("DCP", Absolute, 6, (*CPU).dcp),

	0xD0: br("BNE", func(c *CPU) bool { return !c.Z }),
	0xD1: rd("CMP", IndirectIndexed, 5, (*CPU).cmp),
	0xD2: jam(),
	0xD3: rw("DCP", IndirectIndexed, 8, (*CPU).dcp),
	0xD4: rd("NOP", ZeroPageX, 4, (*CPU).nopRead),
	0xD5: rd("CMP", ZeroPageX, 4, (*CPU).cmp),
	0xD6: rw("DEC", ZeroPageX, 6, (*CPU).dec),
	0xD7: rw("DCP", ZeroPageX, 6, (*CPU).dcp),
	0xD8: im("CLD", func(c *CPU, _ uint8) { c.D = false }),
	0xD9: rd("CMP", AbsoluteY, 4, (*CPU).cmp),
	0xDA: im("NOP", (*CPU).nopRead),
	0xDB: rw("DCP", AbsoluteY, 7, (*CPU).dcp),
	0xDC: rd("NOP", AbsoluteX, 4, (*CPU).nopRead),
	0xDD: rd("CMP", AbsoluteX, 4, (*CPU).cmp),
	0xDE: rw("DEC", AbsoluteX, 7, (*CPU).dec),
	0xDF: rw("DCP", AbsoluteX, 7, (*CPU).dcp),

	0xE0: rd("CPX", Immediate, 2, (*CPU).cpx),
	0xE1: rd("SBC", IndexedIndirect, 6, (*CPU).sbc),
	0xE2: rd("NOP", Immediate, 2, (*CPU).nopRead),
	0xE3: rw("ISC", IndexedIndirect, 8, (*CPU).isc),
	0xE4: rd("CPX", ZeroPage, 3, (*CPU).cpx),
	0xE5: rd("SBC", ZeroPage, 3, (*CPU).sbc),
	0xE6: rw("INC", ZeroPage, 5, (*CPU).inc),
	0xE7: rw("ISC", ZeroPage, 5, (*CPU).isc),
	0xE8: im("INX", func(c *CPU, _ uint8) { c.X++; c.setZN(c.X) }),
	0xE9: rd("SBC", Immediate, 2, (*CPU).sbc),
	0xEA: im("NOP", (*CPU).nopRead),
	0xEB: rd("SBC", Immediate, 2, (*CPU).sbc),
	0xEC: rd("CPX", Absolute, 4, (*CPU).cpx),
	0xED: rd("SBC", Absolute, 4, (*CPU).sbc),
	0xEE: rw("INC", Absolute, 6, (*CPU).inc),
	0xEF: rw("ISC", Absolute, 6, (*CPU).isc),

	0xF0: br("BEQ", func(c *CPU) bool { return c.Z }),
	0xF1: rd("SBC", IndirectIndexed, 5, (*CPU).sbc),
	0xF2: jam(),
	0xF3: rw("ISC", IndirectIndexed, 8, (*CPU).isc),
	0xF4: rd("NOP", ZeroPageX, 4, (*CPU).nopRead),
	0xF5: rd("SBC", ZeroPageX, 4, (*CPU).sbc),
	0xF6: rw("INC", ZeroPageX, 6, (*CPU).inc),
	0xF7: rw("ISC", ZeroPageX, 6, (*CPU).isc),
	0xF8: im("SED", func(c *CPU, _ uint8) { c.D = true }),
	0xF9: rd("SBC", AbsoluteY, 4, (*CPU).sbc),
	0xFA: im("NOP", (*CPU).nopRead),
	0xFB: rw("ISC", AbsoluteY, 7, (*CPU).isc),
	0xFC: rd("NOP", AbsoluteX, 4, (*CPU).nopRead),
	0xFD: rd("SBC", AbsoluteX, 4, (*CPU).sbc),
	0xFE: rw("INC", AbsoluteX, 7, (*CPU).inc),
	0xFF: rw("ISC", AbsoluteX, 7, (*CPU).isc),
}
