package cpu

// This file compiles an opcode into its per-cycle micro-op program. The
// sequences follow the documented 6502 bus traffic: every cycle performs one
// read or write except the internal cycles noted inline (set-PC and
// increment-PC); branch resolution cycles perform dummy reads.

// compile schedules the remaining cycles of the instruction whose opcode was
// fetched this cycle.
func (c *CPU) compile(o *opcode) {
	switch o.kind {
	case kindImplied:
		c.enqueue(func(c *CPU) {
			c.read(c.PC) // throwaway read of the next byte
			o.exec(c, 0)
		})

	case kindAccumulator:
		c.enqueue(func(c *CPU) {
			c.read(c.PC)
			c.A = o.modify(c, c.A)
		})

	case kindPush:
		c.enqueue(
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.push(o.store(c, 0)) },
		)

	case kindPull:
		c.enqueue(
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.peekStack() },
			func(c *CPU) { o.exec(c, c.pull()) },
		)

	case kindJmpAbs:
		c.enqueue(
			func(c *CPU) { c.lo = c.read(c.PC); c.PC++ },
			func(c *CPU) { c.PC = uint16(c.read(c.PC))<<8 | uint16(c.lo) },
		)

	case kindJmpInd:
		c.enqueue(
			func(c *CPU) { c.pointer = c.read(c.PC); c.PC++ },
			func(c *CPU) { c.hi = c.read(c.PC); c.PC++ },
			func(c *CPU) {
				c.addr = uint16(c.hi)<<8 | uint16(c.pointer)
				c.lo = c.read(c.addr)
			},
			func(c *CPU) {
				// Documented 6502 bug: the high byte is fetched from the same
				// page as the low byte, the carry is not propagated.
				bugged := uint16(c.hi)<<8 | uint16(c.pointer+1)
				c.PC = uint16(c.read(bugged))<<8 | uint16(c.lo)
			},
		)

	case kindJSR:
		c.enqueue(
			func(c *CPU) { c.lo = c.read(c.PC); c.PC++ },
			func(c *CPU) { c.hi = c.read(c.PC); c.PC++ },
			func(c *CPU) { c.push(uint8((c.PC - 1) >> 8)) },
			func(c *CPU) { c.push(uint8(c.PC - 1)) },
			// Internal cycle: load PC from the latched target.
			func(c *CPU) { c.PC = uint16(c.hi)<<8 | uint16(c.lo) },
		)

	case kindRTS:
		c.enqueue(
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.peekStack() },
			func(c *CPU) { c.lo = c.pull() },
			func(c *CPU) { c.PC = uint16(c.pull())<<8 | uint16(c.lo) },
			// Internal cycle: step past the JSR operand.
			func(c *CPU) { c.PC++ },
		)

	case kindRTI:
		c.enqueue(
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.peekStack() },
			func(c *CPU) { c.setStatus(c.pull()) },
			func(c *CPU) { c.lo = c.pull() },
			func(c *CPU) { c.PC = uint16(c.pull())<<8 | uint16(c.lo) },
		)

	case kindBRK:
		c.compileBRK()

	case kindBranch:
		c.enqueue(func(c *CPU) {
			operand := c.read(c.PC)
			c.PC++
			if !o.cond(c) {
				return
			}
			c.addr = c.PC + uint16(int8(operand))
			c.extend(func(c *CPU) {
				c.read(c.PC)
				if c.addr&0xFF00 == c.PC&0xFF00 {
					c.PC = c.addr
					return
				}
				c.extend(func(c *CPU) {
					// Wrong-page dummy read while the high byte is fixed up
					c.read(c.PC&0xFF00 | c.addr&0x00FF)
					c.PC = c.addr
				})
			})
		})

	case kindJAM:
		c.enqueue(func(c *CPU) {
			c.read(c.PC)
			c.halted = true
		})

	default:
		c.compileOperand(o)
	}
}

// compileBRK schedules the 7-cycle BRK sequence. An NMI asserted during the
// pushes hijacks the vector fetch.
func (c *CPU) compileBRK() {
	vector := uint16(irqVector)
	c.enqueue(
		func(c *CPU) { c.read(c.PC); c.PC++ }, // padding byte
		func(c *CPU) { c.push(uint8(c.PC >> 8)) },
		func(c *CPU) { c.push(uint8(c.PC)) },
		func(c *CPU) { c.push(c.status(true)) },
		func(c *CPU) {
			if c.nmiPending {
				c.nmiPending = false
				vector = nmiVector
			}
			c.lo = c.read(vector)
			c.I = true
		},
		func(c *CPU) { c.PC = uint16(c.read(vector+1))<<8 | uint16(c.lo) },
	)
}

// Tail micro-ops shared by every addressing mode: once c.addr holds the
// effective address, the instruction class decides the closing bus traffic.

func opFinalRead(o *opcode) microOp {
	return func(c *CPU) { o.exec(c, c.read(c.addr)) }
}

func opFinalWrite(o *opcode) microOp {
	return func(c *CPU) { c.write(c.addr, o.store(c, c.addr)) }
}

func opRMWRead(c *CPU) {
	c.value = c.read(c.addr)
}

func opRMWDummyWrite(c *CPU) {
	// RMW writes twice: first the unmodified byte
	c.write(c.addr, c.value)
}

func opRMWWrite(o *opcode) microOp {
	return func(c *CPU) { c.write(c.addr, o.modify(c, c.value)) }
}

// tail returns the closing micro-ops for the instruction class.
func (c *CPU) tail(o *opcode) []microOp {
	switch o.kind {
	case kindWrite:
		return []microOp{opFinalWrite(o)}
	case kindRMW:
		return []microOp{opRMWRead, opRMWDummyWrite, opRMWWrite(o)}
	default:
		return []microOp{opFinalRead(o)}
	}
}

// compileOperand schedules the addressing-mode cycles for read, write and
// read-modify-write instructions.
func (c *CPU) compileOperand(o *opcode) {
	switch o.mode {
	case Immediate:
		c.enqueue(func(c *CPU) {
			v := c.read(c.PC)
			c.PC++
			o.exec(c, v)
		})

	case ZeroPage:
		c.enqueue(func(c *CPU) {
			c.addr = uint16(c.read(c.PC))
			c.PC++
		})
		c.extend(c.tail(o)...)

	case ZeroPageX:
		c.compileZeroPageIndexed(o, func(c *CPU) uint8 { return c.X })

	case ZeroPageY:
		c.compileZeroPageIndexed(o, func(c *CPU) uint8 { return c.Y })

	case Absolute:
		c.enqueue(
			func(c *CPU) { c.lo = c.read(c.PC); c.PC++ },
			func(c *CPU) {
				c.hi = c.read(c.PC)
				c.PC++
				c.addr = uint16(c.hi)<<8 | uint16(c.lo)
			},
		)
		c.extend(c.tail(o)...)

	case AbsoluteX:
		c.compileAbsoluteIndexed(o, func(c *CPU) uint8 { return c.X })

	case AbsoluteY:
		c.compileAbsoluteIndexed(o, func(c *CPU) uint8 { return c.Y })

	case IndexedIndirect: // (zp,X)
		c.enqueue(
			func(c *CPU) { c.pointer = c.read(c.PC); c.PC++ },
			func(c *CPU) { c.read(uint16(c.pointer)) }, // dummy read of the raw pointer
			func(c *CPU) { c.lo = c.read(uint16(c.pointer + c.X)) },
			func(c *CPU) {
				c.hi = c.read(uint16(c.pointer + c.X + 1))
				c.addr = uint16(c.hi)<<8 | uint16(c.lo)
			},
		)
		c.extend(c.tail(o)...)

	case IndirectIndexed: // (zp),Y
		c.enqueue(
			func(c *CPU) { c.pointer = c.read(c.PC); c.PC++ },
			func(c *CPU) { c.lo = c.read(uint16(c.pointer)) },
			func(c *CPU) { c.hi = c.read(uint16(c.pointer + 1)) },
			c.indexedPenaltyCycle(o, func(c *CPU) uint8 { return c.Y }),
		)
	}
}

func (c *CPU) compileZeroPageIndexed(o *opcode, index func(*CPU) uint8) {
	c.enqueue(
		func(c *CPU) { c.lo = c.read(c.PC); c.PC++ },
		func(c *CPU) {
			c.read(uint16(c.lo)) // dummy read of the unindexed address
			c.addr = uint16(c.lo + index(c))
		},
	)
	c.extend(c.tail(o)...)
}

func (c *CPU) compileAbsoluteIndexed(o *opcode, index func(*CPU) uint8) {
	c.enqueue(
		func(c *CPU) { c.lo = c.read(c.PC); c.PC++ },
		func(c *CPU) { c.hi = c.read(c.PC); c.PC++ },
		c.indexedPenaltyCycle(o, index),
	)
}

// indexedPenaltyCycle is the cycle after both address bytes are known. It
// reads with the un-carried high byte; for a read instruction that did not
// cross a page this *is* the operand read, otherwise it is the visible dummy
// read and the remaining cycles are appended. Write and RMW instructions
// always take the penalty path.
func (c *CPU) indexedPenaltyCycle(o *opcode, index func(*CPU) uint8) microOp {
	return func(c *CPU) {
		base := uint16(c.hi)<<8 | uint16(c.lo)
		correct := base + uint16(index(c))
		first := uint16(c.hi)<<8 | uint16(c.lo+index(c))

		if o.kind == kindRead && first == correct {
			o.exec(c, c.read(correct))
			return
		}

		c.read(first)
		c.addr = correct
		c.extend(c.tail(o)...)
	}
}
