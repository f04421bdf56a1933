package hw

// amode is the addressing mode of an instruction, driving the
// operand-access state machine that runs between the opcode fetch and the
// instruction's data cycle.
type amode uint8

const (
	modeNone amode = iota
	modeImm
	modeZpg
	modeZpx
	modeZpy
	modeAbs
	modeAbx
	modeAby
	modeIzx
	modeIzy
)

// index returns the register added by the mode's indexing step.
func (c *CPU) index(m amode) uint8 {
	switch m {
	case modeZpx, modeAbx, modeIzx:
		return c.X
	default:
		return c.Y
	}
}

// addIndex adds the index register to the effective address low byte,
// recording the carry for the deferred high-byte fix.
func (c *CPU) addIndex(m amode) {
	idx := c.index(m)
	c.carry = int(c.m)+int(idx) > 0xFF
	c.m += idx
}

// fixAddr performs the dummy read at the unfixed address and corrects the
// high byte. Returns false when no fix was needed and the access at
// word(m, n) is already the real one.
func (c *CPU) fixAddr() bool {
	if !c.carry {
		return false
	}
	c.n++
	c.carry = false
	return true
}

// readOperand drives the operand fetch of read instructions. It returns
// the operand and true on the instruction's last cycle; intermediate
// cycles perform the address computation, including the dummy read and
// extra cycle when indexing crosses a page.
func (c *CPU) readOperand(m amode) (uint8, bool) {
	switch m {
	case modeImm:
		v := c.read8(c.PC)
		c.PC++
		return v, true

	case modeZpg:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			return c.read8(uint16(c.m)), true
		default:
			c.badCycle()
		}

	case modeZpx, modeZpy:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.read8(uint16(c.m))
			c.m += c.index(m)
		case t4:
			return c.read8(uint16(c.m)), true
		default:
			c.badCycle()
		}

	case modeAbs:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.n = c.read8(c.PC)
			c.PC++
		case t4:
			return c.read8(word(c.m, c.n)), true
		default:
			c.badCycle()
		}

	case modeAbx, modeAby:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.n = c.read8(c.PC)
			c.PC++
			c.addIndex(m)
		case t4:
			v := c.read8(word(c.m, c.n))
			if !c.fixAddr() {
				return v, true
			}
		case t5:
			return c.read8(word(c.m, c.n)), true
		default:
			c.badCycle()
		}

	case modeIzx:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.read8(uint16(c.m))
			c.m += c.X
		case t4:
			c.q = c.read8(uint16(c.m))
		case t5:
			c.n = c.read8(uint16(c.m + 1))
			c.m = c.q
		case t6:
			return c.read8(word(c.m, c.n)), true
		default:
			c.badCycle()
		}

	case modeIzy:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.q = c.read8(uint16(c.m))
		case t4:
			c.n = c.read8(uint16(c.m + 1))
			c.m = c.q
			c.addIndex(m)
		case t5:
			v := c.read8(word(c.m, c.n))
			if !c.fixAddr() {
				return v, true
			}
		case t6:
			return c.read8(word(c.m, c.n)), true
		default:
			c.badCycle()
		}

	default:
		c.badCycle()
	}
	return 0, false
}

// writeTarget drives the effective-address computation of write
// instructions. It returns the address and true on the cycle the write
// must happen. Indexed modes always pay the fix cycle, page cross or not,
// with a dummy read at the unfixed address.
func (c *CPU) writeTarget(m amode) (uint16, bool) {
	switch m {
	case modeZpg:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			return uint16(c.m), true
		default:
			c.badCycle()
		}

	case modeZpx, modeZpy:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.read8(uint16(c.m))
			c.m += c.index(m)
		case t4:
			return uint16(c.m), true
		default:
			c.badCycle()
		}

	case modeAbs:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.n = c.read8(c.PC)
			c.PC++
		case t4:
			return word(c.m, c.n), true
		default:
			c.badCycle()
		}

	case modeAbx, modeAby:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.n = c.read8(c.PC)
			c.PC++
			c.addIndex(m)
		case t4:
			c.read8(word(c.m, c.n))
			c.fixAddr()
		case t5:
			return word(c.m, c.n), true
		default:
			c.badCycle()
		}

	case modeIzx:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.read8(uint16(c.m))
			c.m += c.X
		case t4:
			c.q = c.read8(uint16(c.m))
		case t5:
			c.n = c.read8(uint16(c.m + 1))
			c.m = c.q
		case t6:
			return word(c.m, c.n), true
		default:
			c.badCycle()
		}

	case modeIzy:
		switch c.cycle {
		case t2:
			c.m = c.read8(c.PC)
			c.PC++
		case t3:
			c.q = c.read8(uint16(c.m))
		case t4:
			c.n = c.read8(uint16(c.m + 1))
			c.m = c.q
			c.addIndex(m)
		case t5:
			c.read8(word(c.m, c.n))
			c.fixAddr()
		case t6:
			return word(c.m, c.n), true
		default:
			c.badCycle()
		}

	default:
		c.badCycle()
	}
	return 0, false
}

// rmwLastCycle gives the final cycle of a read-modify-write instruction in
// each mode: two cycles after the address is ready (value read, dummy
// write of the unmodified value, then the real write).
func rmwLastCycle(m amode) tcycle {
	switch m {
	case modeZpg:
		return t5
	case modeZpx, modeAbs:
		return t6
	case modeAbx, modeAby:
		return t7
	case modeIzx, modeIzy:
		return t8
	}
	return t0
}

// rmwCycle drives a read-modify-write instruction: address computation as
// for a write, then read the value, write it back unmodified while the ALU
// works, and finally write the result.
func (c *CPU) rmwCycle(d *opdef) {
	switch last := rmwLastCycle(d.mode); c.cycle {
	case last - 1:
		c.write8(word(c.m, c.n), c.q)
		c.q = d.rmw(c, c.q)
	case last:
		c.write8(word(c.m, c.n), c.q)
		c.endInstr()
	default:
		if addr, ok := c.writeTarget(d.mode); ok {
			c.q = c.read8(addr)
			c.m, c.n = lobyte(addr), hibyte(addr)
		}
	}
}

// branchCycle drives a conditional branch: 2 cycles when not taken, 3 when
// taken within the page, 4 when the target crosses a page. On the third
// cycle only the low byte of PC is updated; the wrong-page fetch at that
// address costs the fourth cycle.
func (c *CPU) branchCycle(d *opdef) {
	switch c.cycle {
	case t2:
		c.m = c.read8(c.PC)
		c.PC++
		if (c.P&d.flag != 0) != d.want {
			c.endInstr()
			return
		}
		target := c.PC + uint16(int8(c.m))
		c.m, c.n = lobyte(target), hibyte(target)
	case t3:
		c.read8(c.PC)
		same := hibyte(c.PC) == c.n
		c.PC = word(c.m, hibyte(c.PC))
		if same {
			c.endInstr()
		}
	case t4:
		c.read8(c.PC)
		c.PC = word(c.m, c.n)
		c.endInstr()
	default:
		c.badCycle()
	}
}
