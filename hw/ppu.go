package hw

import (
	"fami/emu/log"
)

const (
	NumScanlines = 262 // Number of scanlines per frame.
	NumDots      = 341 // Number of PPU dots per scanline.

	// Visible frame dimensions.
	FrameWidth  = 256
	FrameHeight = 240
)

// tile is one entry of the background fetch pipeline: the two pattern
// planes of one tile row plus its 2-bit palette group.
type tile struct {
	lo, hi uint8
	pal    uint8
}

// PPU is the pixel-processing unit, clocked at 3 dots per CPU cycle. It
// owns the CPU-visible register state decoded from ports $2000-$2007, the
// internal VRAM, palette and OAM memories, and the dot/scanline rendering
// state machine.
type PPU struct {
	bus *Bus

	// Dot position. The pre-render scanline is -1.
	Dot      int
	Scanline int
	Frames   uint64
	odd      bool

	// CPU-visible registers.
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// VRAM addressing (loopy registers).
	v VRAMAddr // current VRAM address
	t VRAMAddr // temporary VRAM address (top-left of the screen)
	x uint8    // fine X scroll (3 bits)
	w bool     // write toggle for PPUSCROLL/PPUADDR

	latch uint8 // open bus: last value driven on the port bus
	rbuf  uint8 // PPUDATA buffered read

	RAM     [0x800]uint8 // 2 KiB of nametable RAM
	Palette [0x20]uint8
	OAM     [0x100]uint8

	// Pending OAM DMA request.
	oamPage     uint8
	oamTransfer bool

	// Background fetch pipeline: the tile being drawn and the one after
	// it. The pixel drawn at dot N uses data fetched for the previous
	// tile, which is what makes fine X spill into the next tile work.
	cur, next tile
	fetch     struct {
		nt, at, lo, hi uint8
	}

	// Framebuffer of NES color indices (palette RAM contents), plus the
	// background opacity mask used for sprite priority.
	fb     [FrameWidth * FrameHeight]uint8
	opaque [FrameWidth * FrameHeight]bool
}

func NewPPU() *PPU {
	return &PPU{Scanline: -1}
}

// Framebuffer exposes the composited frame to the rasterizer collaborator:
// one NES color index (0-63) per pixel, row major.
func (p *PPU) Framebuffer() []uint8 {
	return p.fb[:]
}

func (p *PPU) Reset() {
	p.Dot = 0
	p.Scanline = -1
	p.ctrl = 0
	p.mask = 0
	p.w = false
	p.v = 0
	p.t = 0
	p.x = 0
	p.rbuf = 0
	p.odd = false
}

func (p *PPU) showBg() bool      { return GetBit8(p.mask, showBg) }
func (p *PPU) showSprites() bool { return GetBit8(p.mask, showSprites) }

func (p *PPU) renderingEnabled() bool {
	return p.mask&(1<<showBg|1<<showSprites) != 0
}

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	visible := p.Scanline >= 0 && p.Scanline < FrameHeight
	pre := p.Scanline == -1

	if (visible || pre) && p.renderingEnabled() {
		p.fetchDot()

		switch {
		case p.Dot == 256:
			p.v.IncFineY()
		case p.Dot == 257:
			p.v.CopyX(p.t)
		case pre && p.Dot >= 280 && p.Dot <= 304:
			p.v.CopyY(p.t)
		}
	}

	if visible && p.Dot < FrameWidth {
		p.drawPixel()
	}

	if pre && p.Dot == 4 {
		const mask = 1<<vblank | 1<<sprite0Hit | 1<<spriteOverflow
		ClearBits8(&p.status, mask)
	}
	if p.Scanline == 241 && p.Dot == 4 {
		p.bus.StartVblank()
	}

	if p.Scanline == 239 && p.Dot == NumDots-1 && p.showSprites() {
		p.renderSprites()
	}

	p.advance()
}

func (p *PPU) advance() {
	p.Dot++
	if p.Dot < NumDots {
		return
	}
	p.Dot = 0
	p.Scanline++

	switch {
	case p.Scanline == 0:
		// NTSC skips the first dot of the first scanline on odd
		// frames when rendering is enabled.
		if p.odd && p.renderingEnabled() {
			p.Dot = 1
		}
	case p.Scanline == FrameHeight:
		p.Frames++
	case p.Scanline > 260:
		p.Scanline = -1
		p.odd = !p.odd
	}
}

// fetchDot performs the background fetch micro-step for the current dot.
// Every 8 dots of the two fetch windows the PPU reads, in order, the
// nametable byte, the attribute byte and the two pattern planes of the
// upcoming tile; on the eighth dot it advances coarse X and shifts the
// two-tile pipeline.
func (p *PPU) fetchDot() {
	inWindow := (p.Dot >= 1 && p.Dot <= 256) || (p.Dot >= 321 && p.Dot <= 340)
	if !inWindow {
		return
	}

	switch p.Dot % 8 {
	case 1:
		p.fetch.nt = p.vramRead(p.v.TileAddr())
	case 3:
		at := p.vramRead(p.v.AttrAddr())
		p.fetch.at = at >> p.v.AttrShift() & 0b11
	case 5:
		p.fetch.lo = p.vramRead(p.patternAddr(0))
	case 7:
		p.fetch.hi = p.vramRead(p.patternAddr(8))
	case 0:
		p.v.IncCoarseX()
		p.cur = p.next
		p.next = tile{lo: p.fetch.lo, hi: p.fetch.hi, pal: p.fetch.at}
	}
}

// patternAddr returns the pattern table address of the fetched tile's row
// for the current fine Y; plane is 0 for the low bit plane, 8 for the high.
func (p *PPU) patternAddr(plane uint16) uint16 {
	base := uint16(0)
	if GetBit8(p.ctrl, backgroundAddr) {
		base = 0x1000
	}
	return base + uint16(p.fetch.nt)*16 + uint16(p.v.FineY()) + plane
}

// drawPixel composites the background pixel at the current dot.
func (p *PPU) drawPixel() {
	idx := p.Scanline*FrameWidth + p.Dot

	if !p.showBg() {
		p.fb[idx] = p.Palette[0] & 0x3F
		p.opaque[idx] = false
		return
	}

	// Fine X selects within the current tile, spilling into the next.
	i := p.Dot%8 + int(p.x)
	t := &p.cur
	if i >= 8 {
		t = &p.next
		i -= 8
	}
	bit := uint8(7 - i)
	px := nthbit8(t.lo, bit) | nthbit8(t.hi, bit)<<1

	color := p.Palette[0]
	if px != 0 {
		color = p.paletteRead(0x3F00 + uint16(t.pal)*4 + uint16(px))
	}
	p.fb[idx] = color & 0x3F
	p.opaque[idx] = px != 0
}

// renderSprites composites all 64 OAM sprites into the framebuffer, in
// OAM order so that lower-numbered sprites win overlaps. Sprites with the
// behind-background attribute only show where the background was
// transparent. Sprite 0 hit detection is not modeled.
func (p *PPU) renderSprites() {
	height := 8
	if GetBit8(p.ctrl, spriteSize) {
		height = 16
	}

	for i := 63; i >= 0; i-- {
		y := int(p.OAM[i*4]) + 1
		tid := p.OAM[i*4+1]
		attr := p.OAM[i*4+2]
		x := int(p.OAM[i*4+3])

		if y >= FrameHeight {
			continue // offscreen marker
		}

		flipH := attr&0x40 != 0
		flipV := attr&0x80 != 0
		behind := attr&0x20 != 0
		pal := uint16(attr & 0b11)

		for row := 0; row < height; row++ {
			sy := y + row
			if sy >= FrameHeight {
				break
			}

			r := row
			if flipV {
				r = height - 1 - r
			}
			lo, hi := p.spriteRow(tid, r, height)

			for col := 0; col < 8; col++ {
				sx := x + col
				if sx >= FrameWidth {
					break
				}

				bit := uint8(7 - col)
				if flipH {
					bit = uint8(col)
				}
				px := nthbit8(lo, bit) | nthbit8(hi, bit)<<1
				if px == 0 {
					continue // transparent
				}

				idx := sy*FrameWidth + sx
				if behind && p.opaque[idx] {
					continue
				}
				color := p.paletteRead(0x3F10 + pal*4 + uint16(px))
				p.fb[idx] = color & 0x3F
			}
		}
	}
}

// spriteRow fetches the two pattern planes of one sprite row. In 8x16 mode
// the pattern table comes from bit 0 of the tile id and rows 8-15 read the
// next tile.
func (p *PPU) spriteRow(tid uint8, row, height int) (lo, hi uint8) {
	var addr uint16
	if height == 16 {
		base := uint16(tid&1) * 0x1000
		t := uint16(tid &^ 1)
		if row >= 8 {
			t++
			row -= 8
		}
		addr = base + t*16 + uint16(row)
	} else {
		base := uint16(0)
		if GetBit8(p.ctrl, spriteAddr) {
			base = 0x1000
		}
		addr = base + uint16(tid)*16 + uint16(row)
	}
	return p.vramRead(addr), p.vramRead(addr + 8)
}

// vramRead reads the PPU address space below the palette region, going
// through the mapper for classification.
func (p *PPU) vramRead(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr >= 0x3F00 {
		return p.paletteRead(addr)
	}

	loc := p.bus.Cart.Mapper.ReadPPU(addr)
	switch loc.Kind {
	case LocCHRROM:
		return p.bus.Cart.ReadCHR(loc.Addr)
	case LocPPURAM:
		return p.RAM[loc.Addr%uint16(len(p.RAM))]
	case LocNowhere:
		log.ModPPU.WarnZ("read at unmapped VRAM address").Hex16("addr", addr).End()
		return 0
	default:
		log.ModPPU.WarnZ("unexpected VRAM read classification").
			Hex16("addr", addr).
			Stringer("loc", loc.Kind).
			End()
		return 0
	}
}

func (p *PPU) vramWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	if addr >= 0x3F00 {
		p.paletteWrite(addr, val)
		return
	}

	loc := p.bus.Cart.Mapper.WritePPU(addr)
	switch loc.Kind {
	case LocPPURAM:
		p.RAM[loc.Addr%uint16(len(p.RAM))] = val
	case LocCHRROM:
		log.ModPPU.WarnZ("write to CHR ROM discarded").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	case LocNowhere:
		log.ModPPU.WarnZ("write at unmapped VRAM address").Hex16("addr", addr).End()
	default:
		log.ModPPU.WarnZ("unexpected VRAM write classification").
			Hex16("addr", addr).
			Stringer("loc", loc.Kind).
			End()
	}
}
