package hw

import (
	"testing"
)

func tcheck(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// flatMapper maps the whole CPU address space onto cartridge RAM, giving
// CPU tests a flat, writable 64 KiB with no port side effects.
type flatMapper struct{}

func (flatMapper) ReadCPU(addr uint16) Location  { return Location{Kind: LocPRGRAM, Addr: addr} }
func (flatMapper) WriteCPU(addr uint16) Location { return Location{Kind: LocPRGRAM, Addr: addr} }
func (flatMapper) ReadPPU(addr uint16) Location {
	return Location{Kind: LocPPURAM, Addr: addr & 0x07FF}
}
func (flatMapper) WritePPU(addr uint16) Location {
	return Location{Kind: LocPPURAM, Addr: addr & 0x07FF}
}

func newFlatBus() (*Bus, *CPU) {
	cart := &Cartridge{
		PRGRAM: make([]byte, 0x10000),
		Mapper: flatMapper{},
	}
	bus := NewBus(cart)
	return bus, NewCPU(bus)
}

// platMapper decodes the console-fixed address space and falls back to
// cartridge RAM everywhere else, so tests reach the PPU ports and still
// have writable vectors.
type platMapper struct{}

func (platMapper) decodeCPU(addr uint16) Location {
	if loc, ok := DecodeCPUPlatform(addr); ok {
		return loc
	}
	return Location{Kind: LocPRGRAM, Addr: addr}
}

func (m platMapper) ReadCPU(addr uint16) Location  { return m.decodeCPU(addr) }
func (m platMapper) WriteCPU(addr uint16) Location { return m.decodeCPU(addr) }
func (platMapper) ReadPPU(addr uint16) Location {
	return Location{Kind: LocPPURAM, Addr: addr & 0x07FF}
}
func (platMapper) WritePPU(addr uint16) Location {
	return Location{Kind: LocPPURAM, Addr: addr & 0x07FF}
}

func newPlatBus() (*Bus, *CPU) {
	cart := &Cartridge{
		PRGRAM: make([]byte, 0x10000),
		Mapper: platMapper{},
	}
	bus := NewBus(cart)
	return bus, NewCPU(bus)
}

// romMapper maps $8000-$FFFF onto a mirrored 16 KiB of PRG ROM.
type romMapper struct{}

func (romMapper) decodeCPU(addr uint16) Location {
	if loc, ok := DecodeCPUPlatform(addr); ok {
		return loc
	}
	if addr < 0x8000 {
		return Location{Kind: LocNowhere}
	}
	return Location{Kind: LocPRGROM, Addr: (addr - 0x8000) & 0x3FFF}
}

func (m romMapper) ReadCPU(addr uint16) Location  { return m.decodeCPU(addr) }
func (m romMapper) WriteCPU(addr uint16) Location { return m.decodeCPU(addr) }
func (romMapper) ReadPPU(addr uint16) Location {
	return Location{Kind: LocPPURAM, Addr: addr & 0x07FF}
}
func (romMapper) WritePPU(addr uint16) Location {
	return Location{Kind: LocPPURAM, Addr: addr & 0x07FF}
}

// stepInstr runs the CPU to the next instruction boundary and returns the
// number of cycles it took.
func stepInstr(c *CPU) int64 {
	start := c.Clock
	c.Step()
	for !c.AtFetch() && !c.Halted() {
		c.Step()
	}
	return c.Clock - start
}
