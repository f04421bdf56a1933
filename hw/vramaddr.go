package hw

// VRAMAddr is the PPU's 15-bit VRAM address in the canonical "loopy" layout:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll (tile column)
//	||| || +++++-------- coarse Y scroll (tile row)
//	||| ++-------------- nametable select (horizontal, vertical)
//	+++----------------- fine Y scroll (row within tile)
type VRAMAddr uint16

const (
	coarseXMask = 0x001F
	coarseYMask = 0x03E0
	ntHorzMask  = 0x0400
	ntVertMask  = 0x0800
	fineYMask   = 0x7000
)

// NewVRAMAddr truncates v to the 15 significant bits.
func NewVRAMAddr(v uint16) VRAMAddr {
	return VRAMAddr(v & 0x7FFF)
}

func (a VRAMAddr) U16() uint16 { return uint16(a) }

func (a VRAMAddr) CoarseX() uint8 { return uint8(a & coarseXMask) }
func (a VRAMAddr) CoarseY() uint8 { return uint8((a & coarseYMask) >> 5) }
func (a VRAMAddr) FineY() uint8   { return uint8((a & fineYMask) >> 12) }

func (a *VRAMAddr) SetCoarseX(x uint8) {
	*a = *a&^coarseXMask | VRAMAddr(x&0x1F)
}

func (a *VRAMAddr) SetCoarseY(y uint8) {
	*a = *a&^coarseYMask | VRAMAddr(y&0x1F)<<5
}

func (a *VRAMAddr) SetFineY(y uint8) {
	*a = *a&^VRAMAddr(fineYMask) | VRAMAddr(y&0x07)<<12
}

// SetNametables sets the two nametable-select bits from the low bits of nt
// (PPUCTRL bits 0-1).
func (a *VRAMAddr) SetNametables(nt uint8) {
	*a = *a&^VRAMAddr(ntHorzMask|ntVertMask) | VRAMAddr(nt&0x03)<<10
}

// IncCoarseX advances to the next tile column, wrapping 31 to 0 into the
// horizontally adjacent nametable.
func (a *VRAMAddr) IncCoarseX() {
	if *a&coarseXMask == 31 {
		*a &^= coarseXMask
		*a ^= ntHorzMask
	} else {
		*a++
	}
}

// IncFineY advances one pixel row. Fine Y wraps 7 to 0 into the next tile
// row; coarse Y wraps 29 to 0 toggling the vertical nametable, but wraps 31
// to 0 without toggling (rows 30-31 are the attribute table, and writing an
// out-of-range coarse Y through PPUADDR lands there on real hardware too).
func (a *VRAMAddr) IncFineY() {
	if *a&fineYMask != fineYMask {
		*a += 0x1000
		return
	}
	*a &^= fineYMask

	switch y := a.CoarseY(); y {
	case 29:
		a.SetCoarseY(0)
		*a ^= ntVertMask
	case 31:
		a.SetCoarseY(0)
	default:
		a.SetCoarseY(y + 1)
	}
}

// CopyX copies the horizontal scroll bits (coarse X and the horizontal
// nametable select) from t.
func (a *VRAMAddr) CopyX(t VRAMAddr) {
	const horz = coarseXMask | ntHorzMask
	*a = *a&^horz | t&horz
}

// CopyY copies the vertical scroll bits (coarse Y, fine Y and the vertical
// nametable select) from t.
func (a *VRAMAddr) CopyY(t VRAMAddr) {
	const vert = coarseYMask | ntVertMask | fineYMask
	*a = *a&^VRAMAddr(vert) | t&VRAMAddr(vert)
}

// TileAddr returns the nametable address of the tile the address points at.
func (a VRAMAddr) TileAddr() uint16 {
	return 0x2000 | uint16(a)&0x0FFF
}

// AttrAddr returns the attribute table address covering the tile the
// address points at.
func (a VRAMAddr) AttrAddr() uint16 {
	v := uint16(a)
	return 0x23C0 | v&0x0C00 | v>>4&0x38 | v>>2&0x07
}

// AttrShift returns the bit position of the 2-bit palette group for the
// 2x2-tile quadrant the address falls into.
func (a VRAMAddr) AttrShift() uint8 {
	return uint8(a.CoarseY()&2)<<1 | a.CoarseX()&2
}
