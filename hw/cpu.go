package hw

import (
	"fami/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// tcycle numbers the cycles of the instruction in flight. The opcode fetch
// is t1; the longest instructions (read-modify-write with indexed indirect
// addressing) end at t8.
type tcycle uint8

const (
	t0 tcycle = iota
	t1
	t2
	t3
	t4
	t5
	t6
	t7
	t8
)

// CPU is a cycle-stepped 6502 core. Each call to Step advances it by one
// clock cycle; an instruction spreads its memory accesses over 2 to 8 of
// them, matching the hardware cycle counts.
type CPU struct {
	bus *Bus

	A, X, Y, SP uint8
	PC          uint16
	P           P

	Clock int64

	ir    uint8  // opcode of the instruction in flight
	cycle tcycle // its current cycle

	// Micro-architectural scratch: operand low/high bytes and the value
	// register used by read-modify-write sequences.
	m, n, q uint8

	// True when the indexed address computation carried out of the low
	// byte and the high byte still needs fixing.
	carry bool

	// Pending service routines, latched at the fetch cycle.
	svcReset bool
	svcInt   bool
	intNMI   bool

	dmaLeft int // remaining OAM DMA cycles
	dmaData uint8

	halted bool

	// Non-nil when execution tracing is enabled.
	tracer Tracer
}

// NewCPU creates a CPU at power-up state, about to fetch its first opcode.
func NewCPU(bus *Bus) *CPU {
	return &CPU{
		bus:   bus,
		SP:    0xFD,
		P:     Unused | Interrupt,
		cycle: t1,
	}
}

// PowerUp loads the program counter from the reset vector without burning
// cycles, so the first traced line shows the entry point at clock 0.
func (c *CPU) PowerUp() {
	lo := c.bus.PeekCPU(ResetVector)
	hi := c.bus.PeekCPU(ResetVector + 1)
	c.PC = word(lo, hi)
	log.ModCPU.InfoZ("power up").Hex16("PC", c.PC).End()
}

// SetTracer installs t, which is called once per instruction at the fetch
// cycle. A nil t disables tracing.
func (c *CPU) SetTracer(t Tracer) {
	c.tracer = t
}

// Halted reports whether a KIL opcode jammed the CPU. Only a reset
// recovers from it.
func (c *CPU) Halted() bool {
	return c.halted
}

// AtFetch reports whether the next Step will fetch an opcode, i.e. the CPU
// sits at an instruction boundary.
func (c *CPU) AtFetch() bool {
	return c.cycle == t1 && !c.svcReset && !c.svcInt && c.dmaLeft == 0
}

// Step runs the CPU for one clock cycle.
func (c *CPU) Step() {
	if c.halted {
		if !c.bus.Reset {
			return
		}
		c.halted = false
	}

	switch {
	case c.dmaLeft > 0:
		c.dmaStep()
	case c.svcReset:
		c.resetStep()
	case c.svcInt:
		c.intrStep()
	case c.cycle == t1:
		c.fetch()
	default:
		c.execCycle()
	}

	c.Clock++
	c.cycle++
}

// fetch runs the first cycle of every instruction: read the opcode and
// sample the signal lines. When a signal wins, the fetched opcode is
// thrown away and the matching service sequence runs instead.
func (c *CPU) fetch() {
	if c.tracer != nil {
		c.tracer.Trace(TraceState{
			PC: c.PC, A: c.A, X: c.X, Y: c.Y,
			SP: c.SP, P: c.P, Clock: c.Clock,
		})
	}

	c.ir = c.read8(c.PC)
	c.PC++
	c.pollSignals()
}

// pollSignals samples the bus signal lines, highest priority first. Reset
// and interrupts rewind PC over the just-fetched opcode so it executes
// after the service routine returns; OAM DMA instead keeps it, stealing
// its cycles before the instruction resumes.
func (c *CPU) pollSignals() {
	switch {
	case c.bus.Reset:
		c.bus.Reset = false
		c.PC--
		c.svcReset = true

	case c.bus.NMI:
		c.PC--
		c.svcInt = true
		c.intNMI = true

	case c.bus.IRQ && !c.P.IntDisable():
		c.PC--
		c.svcInt = true
		c.intNMI = false

	case c.bus.PPU.oamTransfer:
		c.bus.PPU.oamTransfer = false
		c.dmaLeft = 2 * 256
	}
}

// resetStep runs one cycle of the 7-cycle reset sequence. The stack
// pointer moves as if three bytes were pushed, but the writes are
// suppressed.
func (c *CPU) resetStep() {
	switch c.cycle {
	case t2:
		c.read8(c.PC)
	case t3, t4, t5:
		c.SP--
	case t6:
		c.m = c.read8(ResetVector)
	case t7:
		c.n = c.read8(ResetVector + 1)
		c.PC = word(c.m, c.n)
		c.P = c.P.SetIntDisable(true)
		c.svcReset = false
		c.halted = false
		log.ModCPU.InfoZ("reset").Hex16("PC", c.PC).End()
		c.endInstr()
	default:
		c.badCycle()
	}
}

// intrStep runs one cycle of the 7-cycle interrupt sequence shared by NMI
// and IRQ. The pushed status has the break flag clear.
func (c *CPU) intrStep() {
	switch c.cycle {
	case t2:
		c.read8(c.PC)
	case t3:
		c.push8(hibyte(c.PC))
	case t4:
		c.push8(lobyte(c.PC))
	case t5:
		c.push8(uint8(c.P.SetBreak(false).SetUnused(true)))
	case t6:
		c.m = c.read8(c.intVector())
		if !c.intNMI {
			c.P = c.P.SetIntDisable(true)
		}
	case t7:
		c.n = c.read8(c.intVector() + 1)
		c.PC = word(c.m, c.n)
		c.bus.NMI = false
		c.bus.IRQ = false
		c.svcInt = false
		c.endInstr()
	default:
		c.badCycle()
	}
}

func (c *CPU) intVector() uint16 {
	if c.intNMI {
		return NMIVector
	}
	return IRQVector
}

// dmaStep runs one of the 512 cycles stolen by an OAM DMA transfer: a read
// from the source page on even cycles, a write through the OAMDATA port on
// odd ones. The instruction fetched when the transfer was latched resumes
// at its second cycle once the last byte lands.
func (c *CPU) dmaStep() {
	i := 2*256 - c.dmaLeft
	if i%2 == 0 {
		src := uint16(c.bus.PPU.oamPage)<<8 + uint16(i/2)
		c.dmaData = c.read8(src)
	} else {
		c.bus.PPU.WriteOAMDATA(c.dmaData)
	}

	c.dmaLeft--
	c.cycle = t1
}

func (c *CPU) endInstr() {
	c.cycle = t0
}

func (c *CPU) badCycle() {
	log.ModCPU.PanicZ("unreachable instruction cycle").
		Hex8("op", c.ir).
		Int("cycle", int(c.cycle)).
		End()
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.bus.ReadCPU(addr)
}

func (c *CPU) write8(addr uint16, val uint8) {
	c.bus.WriteCPU(addr, val)
}

func (c *CPU) push8(val uint8) {
	c.write8(0x0100+uint16(c.SP), val)
	c.SP--
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.read8(0x0100 + uint16(c.SP))
}

func (c *CPU) setA(v uint8) {
	c.A = v
	c.P.checkNZ(v)
}

func (c *CPU) setX(v uint8) {
	c.X = v
	c.P.checkNZ(v)
}

func (c *CPU) setY(v uint8) {
	c.Y = v
	c.P.checkNZ(v)
}

func (c *CPU) adc(v uint8) {
	sum := uint16(c.A) + uint16(v) + uint16(b2u8(c.P.Carry()))
	c.P.checkCV(c.A, v, sum)
	c.setA(uint8(sum))
}

func (c *CPU) sbc(v uint8) {
	c.adc(^v)
}

func (c *CPU) compare(reg, v uint8) {
	c.P = c.P.SetC(reg >= v)
	c.P.checkNZ(reg - v)
}
