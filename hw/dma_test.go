package hw

import (
	"bytes"
	"testing"
)

func TestOAMDMATransfer(t *testing.T) {
	bus, cpu := newPlatBus()

	// LDA #$02; STA $4014; NOP
	loadProg(bus, cpu, 0xA9, 0x02, 0x8D, 0x14, 0x40, 0xEA)

	// Source page $0200 lands in work RAM ($0200-$02FF).
	for i := range 256 {
		bus.RAM[0x0200+i] = uint8(i ^ 0xA5)
	}

	stepInstr(cpu) // LDA
	stepInstr(cpu) // STA $4014, latches the request

	if !bus.PPU.oamTransfer {
		t.Fatal("DMA request not latched")
	}

	// The NOP's fetch cycle services the request: 1 fetch + 512 stolen
	// cycles + 1 remaining NOP cycle.
	if n := stepInstr(cpu); n != 514 {
		t.Fatalf("NOP with DMA took %d cycles, want 514", n)
	}

	for i := range 256 {
		if bus.PPU.OAM[i] != uint8(i^0xA5) {
			t.Fatalf("OAM[%d] = %02X, want %02X", i, bus.PPU.OAM[i], uint8(i^0xA5))
		}
	}
}

func TestOAMDMAWrapsAroundOAMAddr(t *testing.T) {
	bus, cpu := newPlatBus()

	// Point OAMADDR at $10 before requesting the transfer.
	// LDA #$10; STA $2003; LDA #$02; STA $4014; NOP
	loadProg(bus, cpu,
		0xA9, 0x10, 0x8D, 0x03, 0x20,
		0xA9, 0x02, 0x8D, 0x14, 0x40,
		0xEA)

	for i := range 256 {
		bus.RAM[0x0200+i] = uint8(i)
	}

	for range 5 {
		stepInstr(cpu)
	}

	// Byte k of the page lands at OAM[($10 + k) & $FF].
	for i := range 256 {
		want := uint8(i - 0x10)
		if bus.PPU.OAM[i] != want {
			t.Fatalf("OAM[%d] = %02X, want %02X", i, bus.PPU.OAM[i], want)
		}
	}
}

func TestDMADoesNotTraceTwice(t *testing.T) {
	bus, cpu := newPlatBus()
	loadProg(bus, cpu, 0xA9, 0x02, 0x8D, 0x14, 0x40, 0xEA, 0xEA)

	var buf bytes.Buffer
	cpu.SetTracer(NewLineTracer(&buf))

	for range 4 {
		stepInstr(cpu)
	}

	// 4 instructions, 4 trace lines: the stolen DMA cycles are not an
	// instruction.
	if n := bytes.Count(buf.Bytes(), []byte("\n")); n != 4 {
		t.Errorf("got %d trace lines, want 4", n)
	}
}
