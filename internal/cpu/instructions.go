package cpu

// Instruction semantics. Read-class methods take the fetched operand,
// write-class methods return the byte to store (the address parameter is
// used by the unstable high-byte stores), and RMW methods transform the
// byte read from memory.

func (c *CPU) lda(v uint8) {
	c.A = v
	c.setZN(v)
}

func (c *CPU) ldx(v uint8) {
	c.X = v
	c.setZN(v)
}

func (c *CPU) ldy(v uint8) {
	c.Y = v
	c.setZN(v)
}

// lax loads A and X together (undocumented).
func (c *CPU) lax(v uint8) {
	c.A = v
	c.X = v
	c.setZN(v)
}

// las ANDs memory with SP and fans the result out to A, X and SP.
func (c *CPU) las(v uint8) {
	v &= c.SP
	c.A = v
	c.X = v
	c.SP = v
	c.setZN(v)
}

func (c *CPU) sta(_ uint16) uint8 { return c.A }
func (c *CPU) stx(_ uint16) uint8 { return c.X }
func (c *CPU) sty(_ uint16) uint8 { return c.Y }

// sax stores A AND X without touching flags (undocumented).
func (c *CPU) sax(_ uint16) uint8 { return c.A & c.X }

// The unstable high-byte stores AND their value with the high byte of the
// target address plus one.
func (c *CPU) shx(addr uint16) uint8 { return c.X & (uint8(addr>>8) + 1) }
func (c *CPU) shy(addr uint16) uint8 { return c.Y & (uint8(addr>>8) + 1) }
func (c *CPU) ahx(addr uint16) uint8 { return c.A & c.X & (uint8(addr>>8) + 1) }

func (c *CPU) tas(addr uint16) uint8 {
	c.SP = c.A & c.X
	return c.SP & (uint8(addr>>8) + 1)
}

func (c *CPU) adc(v uint8) {
	result := uint16(c.A) + uint16(v)
	if c.C {
		result++
	}
	// Overflow when the operands agree in sign but the result does not
	c.V = (uint16(c.A)^result)&(uint16(v)^result)&0x80 != 0
	c.C = result > 0xFF
	c.A = uint8(result)
	c.setZN(c.A)
}

// sbc is add-with-carry of the operand's complement; the Decimal flag is
// ignored on the 2A03.
func (c *CPU) sbc(v uint8) {
	c.adc(^v)
}

func (c *CPU) compare(register, v uint8) {
	c.C = register >= v
	c.setZN(register - v)
}

func (c *CPU) cmp(v uint8) { c.compare(c.A, v) }
func (c *CPU) cpx(v uint8) { c.compare(c.X, v) }
func (c *CPU) cpy(v uint8) { c.compare(c.Y, v) }

func (c *CPU) and(v uint8) {
	c.A &= v
	c.setZN(c.A)
}

func (c *CPU) ora(v uint8) {
	c.A |= v
	c.setZN(c.A)
}

func (c *CPU) eor(v uint8) {
	c.A ^= v
	c.setZN(c.A)
}

func (c *CPU) bit(v uint8) {
	c.Z = c.A&v == 0
	c.V = v&0x40 != 0
	c.N = v&0x80 != 0
}

// anc is AND with the carry mirroring the negative flag (undocumented).
func (c *CPU) anc(v uint8) {
	c.and(v)
	c.C = c.N
}

// alr is AND followed by LSR on the accumulator (undocumented).
func (c *CPU) alr(v uint8) {
	c.A &= v
	c.A = c.lsr(c.A)
}

// arr is AND followed by ROR with carry and overflow taken from bits 6 and 5
// of the rotated result (undocumented).
func (c *CPU) arr(v uint8) {
	t := c.A & v
	result := t >> 1
	if c.C {
		result |= 0x80
	}
	c.C = result&0x40 != 0
	c.V = (result>>6)&1 != (result>>5)&1
	c.A = result
	c.setZN(c.A)
}

// xaa is highly unstable on hardware; the commonly emulated behavior ORs the
// magic constant $EE into A before the AND chain.
func (c *CPU) xaa(v uint8) {
	c.A = (c.A | 0xEE) & c.X & v
	c.setZN(c.A)
}

// axs sets X to (A AND X) minus the operand, with carry as in CMP.
func (c *CPU) axs(v uint8) {
	t := c.A & c.X
	c.C = t >= v
	c.X = t - v
	c.setZN(c.X)
}

// nopRead consumes the operand of the multi-byte NOP variants.
func (c *CPU) nopRead(_ uint8) {}

func (c *CPU) asl(v uint8) uint8 {
	c.C = v&0x80 != 0
	v <<= 1
	c.setZN(v)
	return v
}

func (c *CPU) lsr(v uint8) uint8 {
	c.C = v&0x01 != 0
	v >>= 1
	c.setZN(v)
	return v
}

func (c *CPU) rol(v uint8) uint8 {
	carry := c.C
	c.C = v&0x80 != 0
	v <<= 1
	if carry {
		v |= 0x01
	}
	c.setZN(v)
	return v
}

func (c *CPU) ror(v uint8) uint8 {
	carry := c.C
	c.C = v&0x01 != 0
	v >>= 1
	if carry {
		v |= 0x80
	}
	c.setZN(v)
	return v
}

func (c *CPU) inc(v uint8) uint8 {
	v++
	c.setZN(v)
	return v
}

func (c *CPU) dec(v uint8) uint8 {
	v--
	c.setZN(v)
	return v
}

// The undocumented RMW combos shift/step the memory byte and fold the result
// into the accumulator in the same instruction.

func (c *CPU) slo(v uint8) uint8 {
	r := c.asl(v)
	c.ora(r)
	return r
}

func (c *CPU) rla(v uint8) uint8 {
	r := c.rol(v)
	c.and(r)
	return r
}

func (c *CPU) sre(v uint8) uint8 {
	r := c.lsr(v)
	c.eor(r)
	return r
}

func (c *CPU) rra(v uint8) uint8 {
	r := c.ror(v)
	c.adc(r)
	return r
}

func (c *CPU) dcp(v uint8) uint8 {
	r := v - 1
	c.compare(c.A, r)
	return r
}

func (c *CPU) isc(v uint8) uint8 {
	r := v + 1
	c.sbc(r)
	return r
}
