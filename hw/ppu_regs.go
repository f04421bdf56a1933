package hw

import (
	"fami/emu/log"
)

const (
	// PPUCTRL bits
	// $2000

	// Nametable selection mask
	// (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
	ntselect = 0b11

	// VRAM address increment per CPU read/write of PPUDATA
	// (0: +1 i.e. horizontal; 1: +32 i.e. vertical)
	vramIncr = 2

	// Sprite pattern table address for 8x8 sprites
	// (0: $0000; 1: $1000; ignored in 8x16 mode)
	spriteAddr = 3

	// Background pattern table address (0: $0000; 1: $1000)
	backgroundAddr = 4

	// Sprite size (0: 8x8 pixels; 1: 8x16 pixels - see byte 1 of OAM)
	spriteSize = 5

	// Generate an NMI at the start of the
	// vertical blanking interval (0: off; 1: on)
	nmiEnable = 7
)

const (
	// PPUMASK bits
	// $2001

	showBg      = 3 // Show background
	showSprites = 4 // Show sprites
)

const (
	// PPUSTATUS bits
	// $2002

	// Low 5 bits return stale PPU bus contents.
	openbusMask = 0b11111

	spriteOverflow = 5
	sprite0Hit     = 6

	// Vertical blank has started (0: not in vblank; 1: in vblank).
	vblank = 7
)

// WriteCTRL handles PPUCTRL ($2000) writes: besides latching the register,
// the nametable-select bits transfer into the temporary VRAM address, and
// enabling NMI while the vblank flag is up pulls the NMI line immediately.
func (p *PPU) WriteCTRL(val uint8) {
	log.ModPPU.DebugZ("Write to PPUCTRL").Hex8("val", val).End()

	wasEnabled := GetBit8(p.ctrl, nmiEnable)
	p.ctrl = val

	p.t.SetNametables(val & ntselect)

	if !wasEnabled && GetBit8(p.ctrl, nmiEnable) && GetBit8(p.status, vblank) {
		p.bus.NMI = true
	}
}

// WriteMASK handles PPUMASK ($2001) writes.
func (p *PPU) WriteMASK(val uint8) {
	log.ModPPU.DebugZ("Write to PPUMASK").Hex8("val", val).End()
	p.mask = val
}

// ReadSTATUS handles PPUSTATUS ($2002) reads: the low 5 bits come from the
// open-bus latch; reading clears the vblank flag and the scroll/address
// write toggle.
func (p *PPU) ReadSTATUS() uint8 {
	ret := p.status&^uint8(openbusMask) | p.latch&openbusMask
	ClearBit8(&p.status, vblank)
	p.w = false
	return ret
}

// WriteOAMADDR handles OAMADDR ($2003) writes.
func (p *PPU) WriteOAMADDR(val uint8) {
	p.oamAddr = val
}

// ReadOAMDATA handles OAMDATA ($2004) reads at the current OAM address,
// advancing it.
func (p *PPU) ReadOAMDATA() uint8 {
	val := p.OAM[p.oamAddr]
	p.oamAddr++
	return val
}

// WriteOAMDATA handles OAMDATA ($2004) writes at the current OAM address,
// advancing it.
func (p *PPU) WriteOAMDATA(val uint8) {
	p.OAM[p.oamAddr] = val
	p.oamAddr++
}

// WriteSCROLL handles PPUSCROLL ($2005) writes. First write sets the
// horizontal position (coarse X into t, fine X aside), second write the
// vertical position; the w toggle flips on each write.
func (p *PPU) WriteSCROLL(val uint8) {
	log.ModPPU.DebugZ("Write to PPUSCROLL").Hex8("val", val).End()

	if !p.w {
		p.x = val & 0b111
		p.t.SetCoarseX(val >> 3)
	} else {
		p.t.SetFineY(val & 0b111)
		p.t.SetCoarseY(val >> 3)
	}
	p.w = !p.w
}

// WriteADDR handles PPUADDR ($2006) writes. High byte first (truncated to
// the 15-bit address space, clearing fine Y's top bit like the real latch),
// low byte second, at which point t transfers into v.
func (p *PPU) WriteADDR(val uint8) {
	if !p.w {
		p.t = p.t&0x00FF | VRAMAddr(val&0x3F)<<8
	} else {
		p.t = p.t&0x7F00 | VRAMAddr(val)
		p.v = p.t
	}
	p.w = !p.w
}

// ReadDATA handles PPUDATA ($2007) reads. VRAM reads are buffered: the
// value returned is the previous read's, except for palette addresses
// which respond immediately while the buffer picks up the nametable byte
// underneath the palette's address mirror. The VRAM address advances by 1
// or 32 per access, per PPUCTRL.
func (p *PPU) ReadDATA() uint8 {
	addr := p.v.U16() & 0x3FFF

	var val uint8
	if addr >= 0x3F00 {
		val = p.paletteRead(addr)
		p.rbuf = p.vramRead(addr - 0x1000)
	} else {
		val = p.rbuf
		p.rbuf = p.vramRead(addr)
	}

	p.incVRAMAddr()
	log.ModPPU.DebugZ("VRAM read").
		Hex16("addr", addr).
		Hex8("val", val).
		End()
	return val
}

// WriteDATA handles PPUDATA ($2007) writes.
func (p *PPU) WriteDATA(val uint8) {
	addr := p.v.U16() & 0x3FFF
	if addr >= 0x3F00 {
		p.paletteWrite(addr, val)
	} else {
		p.vramWrite(addr, val)
	}

	p.incVRAMAddr()
	log.ModPPU.DebugZ("VRAM write").
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

// WriteOAMDMA handles OAMDMA ($4014) writes: it requests a 256-byte OAM
// transfer from CPU page val. The CPU services the request at its next
// instruction fetch boundary.
func (p *PPU) WriteOAMDMA(val uint8) {
	log.ModDMA.InfoZ("OAM DMA requested").Hex8("page", val).End()
	p.oamPage = val
	p.oamTransfer = true
}

// After each access to PPUDATA, the VRAM address is incremented.
func (p *PPU) incVRAMAddr() {
	incr := VRAMAddr(1)
	if GetBit8(p.ctrl, vramIncr) {
		incr = 32
	}
	p.v = NewVRAMAddr(uint16(p.v + incr))
}

// paletteIndex mirrors a $3F00-$3FFF address into the 32-byte palette RAM,
// aliasing the sprite backdrop entries onto the background ones.
func paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) % 0x20
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

func (p *PPU) paletteRead(addr uint16) uint8 {
	return p.Palette[paletteIndex(addr)]
}

func (p *PPU) paletteWrite(addr uint16, val uint8) {
	p.Palette[paletteIndex(addr)] = val
}
