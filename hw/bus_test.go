package hw

import "testing"

func TestWorkRAMMirroring(t *testing.T) {
	bus, _ := newPlatBus()

	bus.WriteCPU(0x0042, 0x5A)
	for _, addr := range []uint16{0x0042, 0x0842, 0x1042, 0x1842} {
		if got := bus.ReadCPU(addr); got != 0x5A {
			t.Errorf("read $%04X = %02X, want 5A", addr, got)
		}
	}

	bus.WriteCPU(0x1FFF, 0xC3)
	if got := bus.ReadCPU(0x07FF); got != 0xC3 {
		t.Errorf("read $07FF = %02X, want C3", got)
	}
}

func TestPPUPortMirroring(t *testing.T) {
	bus, _ := newPlatBus()

	// $2006 repeats every 8 bytes up to $3FFF.
	bus.WriteCPU(0x2006, 0x21)
	bus.WriteCPU(0x3FFE, 0x08)
	if got := bus.PPU.v.U16(); got != 0x2108 {
		t.Errorf("v = %04X, want 2108", got)
	}
}

func TestOpenBusOnWriteOnlyPorts(t *testing.T) {
	bus, _ := newPlatBus()

	// Any PPU port write drives the latch; reading a write-only port
	// returns it.
	bus.WriteCPU(0x2000, 0x3C)
	for _, addr := range []uint16{0x2000, 0x2001, 0x2003, 0x2005, 0x2006} {
		if got := bus.ReadCPU(addr); got != 0x3C {
			t.Errorf("read $%04X = %02X, want open bus 3C", addr, got)
		}
	}
}

func TestStatusReadLowBitsFromOpenBus(t *testing.T) {
	bus, _ := newPlatBus()

	bus.WriteCPU(0x2001, 0x17)
	if got := bus.ReadCPU(0x2002) & 0x1F; got != 0x17 {
		t.Errorf("PPUSTATUS low bits = %02X, want 17", got)
	}
}

func TestPRGROMWriteDiscarded(t *testing.T) {
	rom := make([]byte, 0x4000)
	rom[0x0123] = 0xAA
	cart := &Cartridge{PRG: rom, Mapper: romMapper{}}
	bus := NewBus(cart)

	bus.WriteCPU(0x8123, 0x55)
	if got := bus.ReadCPU(0x8123); got != 0xAA {
		t.Errorf("ROM byte = %02X after write, want AA", got)
	}
}

func TestPeekCPUHasNoSideEffects(t *testing.T) {
	bus, _ := newPlatBus()
	p := bus.PPU

	SetBit8(&p.status, vblank)
	p.w = true

	if bus.PeekCPU(0x2002) != p.latch {
		t.Error("peek of a PPU port must return the open bus")
	}
	if !GetBit8(p.status, vblank) || !p.w {
		t.Error("peek clobbered PPU register state")
	}
}
