// Package mappers builds hw.Cartridge instances from decoded iNES images,
// selecting the address-classification logic matching the ROM's mapper
// number.
package mappers

import (
	"fmt"

	"fami/emu/log"
	"fami/hw"
	"fami/ines"
)

type desc struct {
	name string
	load func(*ines.Rom) (hw.Mapper, error)
}

var all = map[uint8]desc{
	0: {name: "NROM", load: loadNROM},
}

// NewCartridge assembles a cartridge from a decoded ROM: its memories plus
// the mapper matching the header's mapper number.
func NewCartridge(rom *ines.Rom) (*hw.Cartridge, error) {
	d, ok := all[rom.Mapper()]
	if !ok {
		return nil, fmt.Errorf("unsupported mapper %d", rom.Mapper())
	}

	m, err := d.load(rom)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapper %s: %w", d.name, err)
	}

	log.ModMapper.InfoZ("cartridge loaded").
		String("mapper", d.name).
		Int("prg", len(rom.PRG)).
		Int("chr", len(rom.CHR)).
		Stringer("mirror", rom.Mirroring()).
		End()

	return &hw.Cartridge{
		PRG:    rom.PRG,
		CHR:    rom.CHR,
		PRGRAM: make([]byte, rom.PRGRAMSize()),
		Mapper: m,
	}, nil
}
