package hw

import (
	"fami/hw/snapshot"
)

// State captures the CPU register file. The caller must bring the CPU to
// an instruction boundary first.
func (c *CPU) State() snapshot.CPU {
	return snapshot.CPU{
		A: c.A, X: c.X, Y: c.Y,
		SP:     c.SP,
		PC:     c.PC,
		P:      uint8(c.P),
		Clock:  c.Clock,
		Halted: c.halted,
	}
}

// SetState restores a captured register file, leaving the CPU about to
// fetch.
func (c *CPU) SetState(s snapshot.CPU) {
	c.A, c.X, c.Y = s.A, s.X, s.Y
	c.SP = s.SP
	c.PC = s.PC
	c.P = P(s.P)
	c.Clock = s.Clock
	c.halted = s.Halted

	c.cycle = t1
	c.svcReset = false
	c.svcInt = false
	c.dmaLeft = 0
	c.carry = false
}

// State captures the PPU register and memory state. The framebuffer is
// not part of it: the next frame redraws it entirely.
func (p *PPU) State() snapshot.PPU {
	return snapshot.PPU{
		Ctrl:       p.ctrl,
		Mask:       p.mask,
		Status:     p.status,
		OAMAddr:    p.oamAddr,
		VRAMAddr:   p.v.U16(),
		VRAMTemp:   p.t.U16(),
		FineX:      p.x,
		WriteLatch: p.w,
		OpenBus:    p.latch,
		PPUDataBuf: p.rbuf,
		Dot:        p.Dot,
		Scanline:   p.Scanline,
		Frames:     p.Frames,
		OddFrame:   p.odd,
		RAM:        append([]byte(nil), p.RAM[:]...),
		Palette:    append([]byte(nil), p.Palette[:]...),
		OAM:        append([]byte(nil), p.OAM[:]...),
	}
}

func (p *PPU) SetState(s snapshot.PPU) {
	p.ctrl = s.Ctrl
	p.mask = s.Mask
	p.status = s.Status
	p.oamAddr = s.OAMAddr
	p.v = NewVRAMAddr(s.VRAMAddr)
	p.t = NewVRAMAddr(s.VRAMTemp)
	p.x = s.FineX
	p.w = s.WriteLatch
	p.latch = s.OpenBus
	p.rbuf = s.PPUDataBuf
	p.Dot = s.Dot
	p.Scanline = s.Scanline
	p.Frames = s.Frames
	p.odd = s.OddFrame
	copy(p.RAM[:], s.RAM)
	copy(p.Palette[:], s.Palette)
	copy(p.OAM[:], s.OAM)

	p.oamTransfer = false
	p.cur = tile{}
	p.next = tile{}
}

// State captures the whole machine.
func (b *Bus) State(cpu *CPU) *snapshot.NES {
	s := &snapshot.NES{
		Version: snapshot.Version,
		CPU:     cpu.State(),
		RAM:     append([]byte(nil), b.RAM[:]...),
		PPU:     b.PPU.State(),
	}
	if b.Cart.HasPRGRAM() {
		s.PRGRAM = append([]byte(nil), b.Cart.PRGRAM...)
	}
	return s
}

func (b *Bus) SetState(cpu *CPU, s *snapshot.NES) {
	cpu.SetState(s.CPU)
	copy(b.RAM[:], s.RAM)
	copy(b.Cart.PRGRAM, s.PRGRAM)
	b.PPU.SetState(s.PPU)

	b.Reset = false
	b.NMI = false
	b.IRQ = false
}
