package mappers

import (
	"errors"

	"fami/hw"
	"fami/ines"
)

// nrom is mapper 0: no banking hardware at all. PRG ROM sits at $8000,
// mirrored when only 16 KiB is present; PRG RAM, if any, at $6000; CHR ROM
// fills the whole pattern table space. Nametable mirroring is hard-wired
// by a solder pad.
type nrom struct {
	prgMask uint16
	vert    bool
}

func loadNROM(rom *ines.Rom) (hw.Mapper, error) {
	switch len(rom.PRG) {
	case 0x4000, 0x8000:
	default:
		return nil, errors.New("NROM requires 16 or 32 KiB of PRG ROM")
	}
	return &nrom{
		prgMask: uint16(len(rom.PRG) - 1),
		vert:    rom.Mirroring() == ines.VertMirroring,
	}, nil
}

func (m *nrom) decodeCPU(addr uint16) hw.Location {
	if loc, ok := hw.DecodeCPUPlatform(addr); ok {
		return loc
	}
	switch {
	case addr < 0x6000:
		return hw.Location{Kind: hw.LocNowhere}
	case addr < 0x8000:
		return hw.Location{Kind: hw.LocPRGRAM, Addr: addr - 0x6000}
	}
	return hw.Location{Kind: hw.LocPRGROM, Addr: (addr - 0x8000) & m.prgMask}
}

func (m *nrom) ReadCPU(addr uint16) hw.Location  { return m.decodeCPU(addr) }
func (m *nrom) WriteCPU(addr uint16) hw.Location { return m.decodeCPU(addr) }

func (m *nrom) decodePPU(addr uint16) hw.Location {
	addr &= 0x3FFF
	if addr < 0x2000 {
		return hw.Location{Kind: hw.LocCHRROM, Addr: addr}
	}

	// Nametable space, $3000-$3EFF mirroring $2000-$2EFF.
	table := addr >> 10 & 0b11
	off := addr & 0x03FF
	if m.vert {
		table &= 1
	} else {
		table >>= 1
	}
	return hw.Location{Kind: hw.LocPPURAM, Addr: table<<10 | off}
}

func (m *nrom) ReadPPU(addr uint16) hw.Location  { return m.decodePPU(addr) }
func (m *nrom) WritePPU(addr uint16) hw.Location { return m.decodePPU(addr) }
