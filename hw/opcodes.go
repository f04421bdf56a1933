package hw

import (
	"fami/emu/log"
)

// opkind selects the execution engine driving an instruction. Most opcodes
// fall into one of the generic read/write/modify shapes; the rest have
// their own cycle sequence.
type opkind uint8

const (
	kImp opkind = iota
	kAcc
	kRead
	kWrite
	kRMW
	kBr
	kJSR
	kRTS
	kRTI
	kJmpAbs
	kJmpInd
	kBRK
	kPush
	kPull
	kKIL
)

type opdef struct {
	name string
	kind opkind
	mode amode

	rd  func(*CPU, uint8)       // kRead, kPull: consume the operand
	wr  func(*CPU) uint8        // kWrite, kPush: produce the value to store
	rmw func(*CPU, uint8) uint8 // kRMW, kAcc: transform the value
	imp func(*CPU)              // kImp

	// kBr: branch taken when the flag state equals want.
	flag P
	want bool
}

func rd(name string, m amode, f func(*CPU, uint8)) opdef {
	return opdef{name: name, kind: kRead, mode: m, rd: f}
}

func wr(name string, m amode, f func(*CPU) uint8) opdef {
	return opdef{name: name, kind: kWrite, mode: m, wr: f}
}

func rmw(name string, m amode, f func(*CPU, uint8) uint8) opdef {
	return opdef{name: name, kind: kRMW, mode: m, rmw: f}
}

func acc(name string, f func(*CPU, uint8) uint8) opdef {
	return opdef{name: name, kind: kAcc, rmw: f}
}

func imp(name string, f func(*CPU)) opdef {
	return opdef{name: name, kind: kImp, imp: f}
}

func br(name string, flag P, want bool) opdef {
	return opdef{name: name, kind: kBr, flag: flag, want: want}
}

// execCycle runs one cycle of the instruction in flight, past its fetch.
func (c *CPU) execCycle() {
	d := &opsTable[c.ir]

	switch d.kind {
	case kImp:
		c.read8(c.PC)
		d.imp(c)
		c.endInstr()

	case kAcc:
		c.read8(c.PC)
		c.A = d.rmw(c, c.A)
		c.endInstr()

	case kRead:
		if v, ok := c.readOperand(d.mode); ok {
			d.rd(c, v)
			c.endInstr()
		}

	case kWrite:
		if addr, ok := c.writeTarget(d.mode); ok {
			c.write8(addr, d.wr(c))
			c.endInstr()
		}

	case kRMW:
		c.rmwCycle(d)

	case kBr:
		c.branchCycle(d)

	default:
		c.specialCycle(d)
	}
}

// specialCycle runs the instructions with a cycle sequence of their own:
// stack and flow control, plus KIL.
func (c *CPU) specialCycle(d *opdef) {
	switch d.kind {
	case kJSR:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.read8(0x0100 + uint16(c.SP))
		case t4:
			// PC points at the target high byte: the address pushed
			// is the return address minus one, as RTS expects.
			c.push8(hibyte(c.PC))
		case t5:
			c.push8(lobyte(c.PC))
		case t6:
			c.n = c.read8(c.PC)
			c.PC = word(c.m, c.n)
			c.endInstr()
		default:
			c.badCycle()
		}

	case kRTS:
		switch c.cycle {
		case t2:
			c.read8(c.PC)
		case t3:
			c.read8(0x0100 + uint16(c.SP))
		case t4:
			c.m = c.pull8()
		case t5:
			c.n = c.pull8()
			c.PC = word(c.m, c.n)
		case t6:
			c.read8(c.PC)
			c.PC++
			c.endInstr()
		default:
			c.badCycle()
		}

	case kRTI:
		switch c.cycle {
		case t2:
			c.read8(c.PC)
		case t3:
			c.read8(0x0100 + uint16(c.SP))
		case t4:
			c.P = P(c.pull8()).SetBreak(false).SetUnused(true)
		case t5:
			c.m = c.pull8()
		case t6:
			c.n = c.pull8()
			c.PC = word(c.m, c.n)
			c.endInstr()
		default:
			c.badCycle()
		}

	case kJmpAbs:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.n = c.read8(c.PC)
			c.PC = word(c.m, c.n)
			c.endInstr()
		default:
			c.badCycle()
		}

	case kJmpInd:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.n = c.read8(c.PC)
			c.PC++
		case t4:
			c.q = c.read8(word(c.m, c.n))
		case t5:
			// The pointer high byte does not carry: a pointer at
			// $xxFF reads its high byte from $xx00.
			hi := c.read8(word(c.m+1, c.n))
			c.PC = word(c.q, hi)
			c.endInstr()
		default:
			c.badCycle()
		}

	case kBRK:
		switch c.cycle {
		case t2:
			// BRK skips a padding byte.
			c.read8(c.PC)
			c.PC++
		case t3:
			c.push8(hibyte(c.PC))
		case t4:
			c.push8(lobyte(c.PC))
		case t5:
			c.push8(uint8(c.P.SetBreak(true).SetUnused(true)))
		case t6:
			c.m = c.read8(IRQVector)
			c.P = c.P.SetIntDisable(true)
		case t7:
			c.n = c.read8(IRQVector + 1)
			c.PC = word(c.m, c.n)
			c.endInstr()
		default:
			c.badCycle()
		}

	case kPush:
		switch c.cycle {
		case t2:
			c.read8(c.PC)
		case t3:
			c.push8(d.wr(c))
			c.endInstr()
		default:
			c.badCycle()
		}

	case kPull:
		switch c.cycle {
		case t2:
			c.read8(c.PC)
		case t3:
			c.read8(0x0100 + uint16(c.SP))
		case t4:
			d.rd(c, c.pull8())
			c.endInstr()
		default:
			c.badCycle()
		}

	case kKIL:
		c.read8(c.PC)
		c.halted = true
		log.ModCPU.WarnZ("KIL opcode, CPU jammed").
			Hex8("op", c.ir).
			Hex16("PC", c.PC-1).
			End()
		c.endInstr()

	default:
		c.badCycle()
	}
}

// Read operations.

func lda(c *CPU, v uint8) { c.setA(v) }
func ldx(c *CPU, v uint8) { c.setX(v) }
func ldy(c *CPU, v uint8) { c.setY(v) }

func and(c *CPU, v uint8) { c.setA(c.A & v) }
func ora(c *CPU, v uint8) { c.setA(c.A | v) }
func eor(c *CPU, v uint8) { c.setA(c.A ^ v) }

func adc(c *CPU, v uint8) { c.adc(v) }
func sbc(c *CPU, v uint8) { c.sbc(v) }

func cmp(c *CPU, v uint8) { c.compare(c.A, v) }
func cpx(c *CPU, v uint8) { c.compare(c.X, v) }
func cpy(c *CPU, v uint8) { c.compare(c.Y, v) }

func bit(c *CPU, v uint8) {
	c.P.checkZ(c.A & v)
	c.P = c.P.SetN(v&0x80 != 0)
	c.P = c.P.SetV(v&0x40 != 0)
}

func nopr(c *CPU, v uint8) {}

// Unofficial reads.

func lax(c *CPU, v uint8) {
	c.setA(v)
	c.X = v
}

func anc(c *CPU, v uint8) {
	c.setA(c.A & v)
	c.P = c.P.SetC(c.P.Negative())
}

func alr(c *CPU, v uint8) {
	t := c.A & v
	c.P = c.P.SetC(t&1 != 0)
	c.setA(t >> 1)
}

func arr(c *CPU, v uint8) {
	t := (c.A&v)>>1 | b2u8(c.P.Carry())<<7
	c.setA(t)
	c.P = c.P.SetC(t&0x40 != 0)
	c.P = c.P.SetV((t>>6^t>>5)&1 != 0)
}

func axs(c *CPU, v uint8) {
	t := c.A & c.X
	c.P = c.P.SetC(t >= v)
	c.X = t - v
	c.P.checkNZ(c.X)
}

func xaa(c *CPU, v uint8) {
	c.setA(c.X & v)
}

func las(c *CPU, v uint8) {
	t := v & c.SP
	c.SP = t
	c.X = t
	c.setA(t)
}

// Write operations.

func sta(c *CPU) uint8 { return c.A }
func stx(c *CPU) uint8 { return c.X }
func sty(c *CPU) uint8 { return c.Y }

// Unofficial writes. The &(high+1) terms model the value corruption these
// opcodes exhibit on hardware; c.n holds the effective address high byte
// at the write cycle.

func sax(c *CPU) uint8 { return c.A & c.X }
func ahx(c *CPU) uint8 { return c.A & c.X & (c.n + 1) }
func shx(c *CPU) uint8 { return c.X & (c.n + 1) }
func shy(c *CPU) uint8 { return c.Y & (c.n + 1) }

func tas(c *CPU) uint8 {
	c.SP = c.A & c.X
	return c.SP & (c.n + 1)
}

// Modify operations, shared by the accumulator and memory forms.

func asl(c *CPU, v uint8) uint8 {
	c.P = c.P.SetC(v&0x80 != 0)
	v <<= 1
	c.P.checkNZ(v)
	return v
}

func lsr(c *CPU, v uint8) uint8 {
	c.P = c.P.SetC(v&1 != 0)
	v >>= 1
	c.P.checkNZ(v)
	return v
}

func rol(c *CPU, v uint8) uint8 {
	carry := b2u8(c.P.Carry())
	c.P = c.P.SetC(v&0x80 != 0)
	v = v<<1 | carry
	c.P.checkNZ(v)
	return v
}

func ror(c *CPU, v uint8) uint8 {
	carry := b2u8(c.P.Carry())
	c.P = c.P.SetC(v&1 != 0)
	v = v>>1 | carry<<7
	c.P.checkNZ(v)
	return v
}

func inc(c *CPU, v uint8) uint8 {
	v++
	c.P.checkNZ(v)
	return v
}

func dec(c *CPU, v uint8) uint8 {
	v--
	c.P.checkNZ(v)
	return v
}

// Unofficial modify operations, combining a shift with an ALU step.

func slo(c *CPU, v uint8) uint8 {
	v = asl(c, v)
	c.setA(c.A | v)
	return v
}

func sre(c *CPU, v uint8) uint8 {
	v = lsr(c, v)
	c.setA(c.A ^ v)
	return v
}

func rla(c *CPU, v uint8) uint8 {
	v = rol(c, v)
	c.setA(c.A & v)
	return v
}

func rra(c *CPU, v uint8) uint8 {
	v = ror(c, v)
	c.adc(v)
	return v
}

func isc(c *CPU, v uint8) uint8 {
	v++
	c.sbc(v)
	return v
}

func dcp(c *CPU, v uint8) uint8 {
	v--
	c.compare(c.A, v)
	return v
}

// Implied operations.

func tax(c *CPU) { c.setX(c.A) }
func tay(c *CPU) { c.setY(c.A) }
func txa(c *CPU) { c.setA(c.X) }
func tya(c *CPU) { c.setA(c.Y) }
func tsx(c *CPU) { c.setX(c.SP) }
func txs(c *CPU) { c.SP = c.X }

func inx(c *CPU) { c.setX(c.X + 1) }
func iny(c *CPU) { c.setY(c.Y + 1) }
func dex(c *CPU) { c.setX(c.X - 1) }
func dey(c *CPU) { c.setY(c.Y - 1) }

func clc(c *CPU) { c.P = c.P.SetC(false) }
func sec(c *CPU) { c.P = c.P.SetC(true) }
func cli(c *CPU) { c.P = c.P.SetIntDisable(false) }
func sei(c *CPU) { c.P = c.P.SetIntDisable(true) }
func cld(c *CPU) { c.P = c.P.SetD(false) }
func sed(c *CPU) { c.P = c.P.SetD(true) }
func clv(c *CPU) { c.P = c.P.SetV(false) }

func nop(c *CPU) {}

// Stack register transfers.

func pha(c *CPU) uint8 { return c.A }
func php(c *CPU) uint8 { return uint8(c.P.SetBreak(true).SetUnused(true)) }

func pla(c *CPU, v uint8) { c.setA(v) }
func plp(c *CPU, v uint8) { c.P = P(v).SetBreak(false).SetUnused(true) }

var opsTable = [256]opdef{
	0x00: {name: "BRK", kind: kBRK},
	0x01: rd("ORA", modeIzx, ora),
	0x02: {name: "KIL", kind: kKIL},
	0x03: rmw("SLO", modeIzx, slo),
	0x04: rd("NOP", modeZpg, nopr),
	0x05: rd("ORA", modeZpg, ora),
	0x06: rmw("ASL", modeZpg, asl),
	0x07: rmw("SLO", modeZpg, slo),
	0x08: {name: "PHP", kind: kPush, wr: php},
	0x09: rd("ORA", modeImm, ora),
	0x0A: acc("ASL", asl),
	0x0B: rd("ANC", modeImm, anc),
	0x0C: rd("NOP", modeAbs, nopr),
	0x0D: rd("ORA", modeAbs, ora),
	0x0E: rmw("ASL", modeAbs, asl),
	0x0F: rmw("SLO", modeAbs, slo),

	0x10: br("BPL", Negative, false),
	0x11: rd("ORA", modeIzy, ora),
	0x12: {name: "KIL", kind: kKIL},
	0x13: rmw("SLO", modeIzy, slo),
	0x14: rd("NOP", modeZpx, nopr),
	0x15: rd("ORA", modeZpx, ora),
	0x16: rmw("ASL", modeZpx, asl),
	0x17: rmw("SLO", modeZpx, slo),
	0x18: imp("CLC", clc),
	0x19: rd("ORA", modeAby, ora),
	0x1A: imp("NOP", nop),
	0x1B: rmw("SLO", modeAby, slo),
	0x1C: rd("NOP", modeAbx, nopr),
	0x1D: rd("ORA", modeAbx, ora),
	0x1E: rmw("ASL", modeAbx, asl),
	0x1F: rmw("SLO", modeAbx, slo),

	0x20: {name: "JSR", kind: kJSR},
	0x21: rd("AND", modeIzx, and),
	0x22: {name: "KIL", kind: kKIL},
	0x23: rmw("RLA", modeIzx, rla),
	0x24: rd("BIT", modeZpg, bit),
	0x25: rd("AND", modeZpg, and),
	0x26: rmw("ROL", modeZpg, rol),
	0x27: rmw("RLA", modeZpg, rla),
	0x28: {name: "PLP", kind: kPull, rd: plp},
	0x29: rd("AND", modeImm, and),
	0x2A: acc("ROL", rol),
	0x2B: rd("ANC", modeImm, anc),
	0x2C: rd("BIT", modeAbs, bit),
	0x2D: rd("AND", modeAbs, and),
	0x2E: rmw("ROL", modeAbs, rol),
	0x2F: rmw("RLA", modeAbs, rla),

	0x30: br("BMI", Negative, true),
	0x31: rd("AND", modeIzy, and),
	0x32: {name: "KIL", kind: kKIL},
	0x33: rmw("RLA", modeIzy, rla),
	0x34: rd("NOP", modeZpx, nopr),
	0x35: rd("AND", modeZpx, and),
	0x36: rmw("ROL", modeZpx, rol),
	0x37: rmw("RLA", modeZpx, rla),
	0x38: imp("SEC", sec),
	0x39: rd("AND", modeAby, and),
	0x3A: imp("NOP", nop),
	0x3B: rmw("RLA", modeAby, rla),
	0x3C: rd("NOP", modeAbx, nopr),
	0x3D: rd("AND", modeAbx, and),
	0x3E: rmw("ROL", modeAbx, rol),
	0x3F: rmw("RLA", modeAbx, rla),

	0x40: {name: "RTI", kind: kRTI},
	0x41: rd("EOR", modeIzx, eor),
	0x42: {name: "KIL", kind: kKIL},
	0x43: rmw("SRE", modeIzx, sre),
	0x44: rd("NOP", modeZpg, nopr),
	0x45: rd("EOR", modeZpg, eor),
	0x46: rmw("LSR", modeZpg, lsr),
	0x47: rmw("SRE", modeZpg, sre),
	0x48: {name: "PHA", kind: kPush, wr: pha},
	0x49: rd("EOR", modeImm, eor),
	0x4A: acc("LSR", lsr),
	0x4B: rd("ALR", modeImm, alr),
	0x4C: {name: "JMP", kind: kJmpAbs},
	0x4D: rd("EOR", modeAbs, eor),
	0x4E: rmw("LSR", modeAbs, lsr),
	0x4F: rmw("SRE", modeAbs, sre),

	0x50: br("BVC", Overflow, false),
	0x51: rd("EOR", modeIzy, eor),
	0x52: {name: "KIL", kind: kKIL},
	0x53: rmw("SRE", modeIzy, sre),
	0x54: rd("NOP", modeZpx, nopr),
	0x55: rd("EOR", modeZpx, eor),
	0x56: rmw("LSR", modeZpx, lsr),
	0x57: rmw("SRE", modeZpx, sre),
	0x58: imp("CLI", cli),
	0x59: rd("EOR", modeAby, eor),
	0x5A: imp("NOP", nop),
	0x5B: rmw("SRE", modeAby, sre),
	0x5C: rd("NOP", modeAbx, nopr),
	0x5D: rd("EOR", modeAbx, eor),
	0x5E: rmw("LSR", modeAbx, lsr),
	0x5F: rmw("SRE", modeAbx, sre),

	0x60: {name: "RTS", kind: kRTS},
	0x61: rd("ADC", modeIzx, adc),
	0x62: {name: "KIL", kind: kKIL},
	0x63: rmw("RRA", modeIzx, rra),
	0x64: rd("NOP", modeZpg, nopr),
	0x65: rd("ADC", modeZpg, adc),
	0x66: rmw("ROR", modeZpg, ror),
	0x67: rmw("RRA", modeZpg, rra),
	0x68: {name: "PLA", kind: kPull, rd: pla},
	0x69: rd("ADC", modeImm, adc),
	0x6A: acc("ROR", ror),
	0x6B: rd("ARR", modeImm, arr),
	0x6C: {name: "JMP", kind: kJmpInd},
	0x6D: rd("ADC", modeAbs, adc),
	0x6E: rmw("ROR", modeAbs, ror),
	0x6F: rmw("RRA", modeAbs, rra),

	0x70: br("BVS", Overflow, true),
	0x71: rd("ADC", modeIzy, adc),
	0x72: {name: "KIL", kind: kKIL},
	0x73: rmw("RRA", modeIzy, rra),
	0x74: rd("NOP", modeZpx, nopr),
	0x75: rd("ADC", modeZpx, adc),
	0x76: rmw("ROR", modeZpx, ror),
	0x77: rmw("RRA", modeZpx, rra),
	0x78: imp("SEI", sei),
	0x79: rd("ADC", modeAby, adc),
	0x7A: imp("NOP", nop),
	0x7B: rmw("RRA", modeAby, rra),
	0x7C: rd("NOP", modeAbx, nopr),
	0x7D: rd("ADC", modeAbx, adc),
	0x7E: rmw("ROR", modeAbx, ror),
	0x7F: rmw("RRA", modeAbx, rra),

	0x80: rd("NOP", modeImm, nopr),
	0x81: wr("STA", modeIzx, sta),
	0x82: rd("NOP", modeImm, nopr),
	0x83: wr("SAX", modeIzx, sax),
	0x84: wr("STY", modeZpg, sty),
	0x85: wr("STA", modeZpg, sta),
	0x86: wr("STX", modeZpg, stx),
	0x87: wr("SAX", modeZpg, sax),
	0x88: imp("DEY", dey),
	0x89: rd("NOP", modeImm, nopr),
	0x8A: imp("TXA", txa),
	0x8B: rd("XAA", modeImm, xaa),
	0x8C: wr("STY", modeAbs, sty),
	0x8D: wr("STA", modeAbs, sta),
	0x8E: wr("STX", modeAbs, stx),
	0x8F: wr("SAX", modeAbs, sax),

	0x90: br("BCC", Carry, false),
	0x91: wr("STA", modeIzy, sta),
	0x92: {name: "KIL", kind: kKIL},
	0x93: wr("AHX", modeIzy, ahx),
	0x94: wr("STY", modeZpx, sty),
	0x95: wr("STA", modeZpx, sta),
	0x96: wr("STX", modeZpy, stx),
	0x97: wr("SAX", modeZpy, sax),
	0x98: imp("TYA", tya),
	0x99: wr("STA", modeAby, sta),
	0x9A: imp("TXS", txs),
	0x9B: wr("TAS", modeAby, tas),
	0x9C: wr("SHY", modeAbx, shy),
	0x9D: wr("STA", modeAbx, sta),
	0x9E: wr("SHX", modeAby, shx),
	0x9F: wr("AHX", modeAby, ahx),

	0xA0: rd("LDY", modeImm, ldy),
	0xA1: rd("LDA", modeIzx, lda),
	0xA2: rd("LDX", modeImm, ldx),
	0xA3: rd("LAX", modeIzx, lax),
	0xA4: rd("LDY", modeZpg, ldy),
	0xA5: rd("LDA", modeZpg, lda),
	0xA6: rd("LDX", modeZpg, ldx),
	0xA7: rd("LAX", modeZpg, lax),
	0xA8: imp("TAY", tay),
	0xA9: rd("LDA", modeImm, lda),
	0xAA: imp("TAX", tax),
	0xAB: rd("LAX", modeImm, lax),
	0xAC: rd("LDY", modeAbs, ldy),
	0xAD: rd("LDA", modeAbs, lda),
	0xAE: rd("LDX", modeAbs, ldx),
	0xAF: rd("LAX", modeAbs, lax),

	0xB0: br("BCS", Carry, true),
	0xB1: rd("LDA", modeIzy, lda),
	0xB2: {name: "KIL", kind: kKIL},
	0xB3: rd("LAX", modeIzy, lax),
	0xB4: rd("LDY", modeZpx, ldy),
	0xB5: rd("LDA", modeZpx, lda),
	0xB6: rd("LDX", modeZpy, ldx),
	0xB7: rd("LAX", modeZpy, lax),
	0xB8: imp("CLV", clv),
	0xB9: rd("LDA", modeAby, lda),
	0xBA: imp("TSX", tsx),
	0xBB: rd("LAS", modeAby, las),
	0xBC: rd("LDY", modeAbx, ldy),
	0xBD: rd("LDA", modeAbx, lda),
	0xBE: rd("LDX", modeAby, ldx),
	0xBF: rd("LAX", modeAby, lax),

	0xC0: rd("CPY", modeImm, cpy),
	0xC1: rd("CMP", modeIzx, cmp),
	0xC2: rd("NOP", modeImm, nopr),
	0xC3: rmw("DCP", modeIzx, dcp),
	0xC4: rd("CPY", modeZpg, cpy),
	0xC5: rd("CMP", modeZpg, cmp),
	0xC6: rmw("DEC", modeZpg, dec),
	0xC7: rmw("DCP", modeZpg, dcp),
	0xC8: imp("INY", iny),
	0xC9: rd("CMP", modeImm, cmp),
	0xCA: imp("DEX", dex),
	0xCB: rd("AXS", modeImm, axs),
	0xCC: rd("CPY", modeAbs, cpy),
	0xCD: rd("CMP", modeAbs, cmp),
	0xCE: rmw("DEC", modeAbs, dec),
	0xCF: rmw("DCP", modeAbs, dcp),

	0xD0: br("BNE", Zero, false),
	0xD1: rd("CMP", modeIzy, cmp),
	0xD2: {name: "KIL", kind: kKIL},
	0xD3: rmw("DCP", modeIzy, dcp),
	0xD4: rd("NOP", modeZpx, nopr),
	0xD5: rd("CMP", modeZpx, cmp),
	0xD6: rmw("DEC", modeZpx, dec),
	0xD7: rmw("DCP", modeZpx, dcp),
	0xD8: imp("CLD", cld),
	0xD9: rd("CMP", modeAby, cmp),
	0xDA: imp("NOP", nop),
	0xDB: rmw("DCP", modeAby, dcp),
	0xDC: rd("NOP", modeAbx, nopr),
	0xDD: rd("CMP", modeAbx, cmp),
	0xDE: rmw("DEC", modeAbx, dec),
	0xDF: rmw("DCP", modeAbx, dcp),

	0xE0: rd("CPX", modeImm, cpx),
	0xE1: rd("SBC", modeIzx, sbc),
	0xE2: rd("NOP", modeImm, nopr),
	0xE3: rmw("ISC", modeIzx, isc),
	0xE4: rd("CPX", modeZpg, cpx),
	0xE5: rd("SBC", modeZpg, sbc),
	0xE6: rmw("INC", modeZpg, inc),
	0xE7: rmw("ISC", modeZpg, isc),
	0xE8: imp("INX", inx),
	0xE9: rd("SBC", modeImm, sbc),
	0xEA: imp("NOP", nop),
	0xEB: rd("SBC", modeImm, sbc),
	0xEC: rd("CPX", modeAbs, cpx),
	0xED: rd("SBC", modeAbs, sbc),
	0xEE: rmw("INC", modeAbs, inc),
	0xEF: rmw("ISC", modeAbs, isc),

	0xF0: br("BEQ", Zero, true),
	0xF1: rd("SBC", modeIzy, sbc),
	0xF2: {name: "KIL", kind: kKIL},
	0xF3: rmw("ISC", modeIzy, isc),
	0xF4: rd("NOP", modeZpx, nopr),
	0xF5: rd("SBC", modeZpx, sbc),
	0xF6: rmw("INC", modeZpx, inc),
	0xF7: rmw("ISC", modeZpx, isc),
	0xF8: imp("SED", sed),
	0xF9: rd("SBC", modeAby, sbc),
	0xFA: imp("NOP", nop),
	0xFB: rmw("ISC", modeAby, isc),
	0xFC: rd("NOP", modeAbx, nopr),
	0xFD: rd("SBC", modeAbx, sbc),
	0xFE: rmw("INC", modeAbx, inc),
	0xFF: rmw("ISC", modeAbx, isc),
}

// unstableOps lists the opcodes whose behavior varies between individual
// consoles; the emulation picks one common behavior.
var unstableOps = [...]uint8{0x8B, 0x93, 0x9B, 0x9C, 0x9E, 0x9F, 0xAB}

func isUnstable(op uint8) bool {
	for _, u := range unstableOps {
		if u == op {
			return true
		}
	}
	return false
}
